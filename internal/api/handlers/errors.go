package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/shipment-intake/internal/api/middleware"
	"github.com/jafarshop/shipment-intake/pkg/errors"
)

// Error types reported in details.type
const (
	TypeValidationError     = "ValidationError"
	TypeNotFound            = "NotFound"
	TypeBadRequest          = "BadRequest"
	TypeMethodNotAllowed    = "MethodNotAllowed"
	TypeInternalServerError = "InternalServerError"
)

const (
	msgBadRequest       = "درخواست نامعتبر است."
	msgNotFound         = "یافت نشد."
	msgMethodNotAllowed = "روش مجاز نیست."
	msgInternal         = "خطای داخلی سرور رخ داد."
	msgValidation       = "لطفاً خطاهای فرم را برطرف کنید."
	msgRequestNotFound  = "درخواست پیدا نشد."
	msgCatalogNotFound  = "منبع درخواست‌شده یافت نشد."
	msgInvalidRequestID = "شناسه درخواست نامعتبر است."
	msgInvalidBody      = "بدنه درخواست باید یک شیء JSON باشد."
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error     string                 `json:"error"`
	RequestID string                 `json:"request_id"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// RespondError writes the error envelope and aborts the chain
func RespondError(c *gin.Context, status int, message string, details map[string]interface{}) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     message,
		RequestID: middleware.GetRequestID(c),
		Details:   details,
	})
}

func errorType(t string) map[string]interface{} {
	return map[string]interface{}{"type": t}
}

// HandleNoRoute answers unknown paths
func HandleNoRoute(c *gin.Context) {
	RespondError(c, http.StatusNotFound, msgNotFound, errorType(TypeNotFound))
}

// HandleNoMethod answers known paths called with the wrong method
func HandleNoMethod(c *gin.Context) {
	RespondError(c, http.StatusMethodNotAllowed, msgMethodNotAllowed, errorType(TypeMethodNotAllowed))
}

// Recovery turns a panic into a logged 500 envelope
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Unhandled panic",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
		)
		RespondError(c, http.StatusInternalServerError, msgInternal, errorType(TypeInternalServerError))
	})
}

// handleError maps a service error to its status code. notFoundMsg is used
// for ErrNotFound.
func handleError(c *gin.Context, logger *zap.Logger, err error, notFoundMsg string) {
	var (
		invalid    *errors.ErrValidation
		notFound   *errors.ErrNotFound
		badRequest *errors.ErrBadRequest
	)
	switch {
	case stderrors.As(err, &invalid):
		RespondError(c, http.StatusUnprocessableEntity, msgValidation, map[string]interface{}{
			"type":   TypeValidationError,
			"fields": invalid.Fields,
		})
	case stderrors.As(err, &notFound):
		RespondError(c, http.StatusNotFound, notFoundMsg, errorType(TypeNotFound))
	case stderrors.As(err, &badRequest):
		RespondError(c, http.StatusBadRequest, badRequest.Message, errorType(TypeBadRequest))
	default:
		logger.Error("Request failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		RespondError(c, http.StatusInternalServerError, msgInternal, errorType(TypeInternalServerError))
	}
}
