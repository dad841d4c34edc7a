package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/shipment-intake/internal/service"
	"github.com/jafarshop/shipment-intake/internal/validation"
	"github.com/jafarshop/shipment-intake/pkg/errors"
)

// submitRequest is a draft plus the id of the request it replaces, if any
type submitRequest struct {
	validation.RawDraft
	ShipmentRequestID json.RawMessage `json:"shipment_request_id"`
}

// HandleSubmitShipment handles POST /shipment-requests
func HandleSubmitShipment(intake service.IntakeService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req submitRequest
		if err := bindObject(c, &req); err != nil {
			handleError(c, logger, err, msgNotFound)
			return
		}

		existingID, err := parseExistingID(req.ShipmentRequestID)
		if err != nil {
			handleError(c, logger, err, msgNotFound)
			return
		}

		result, err := intake.SubmitDraft(c.Request.Context(), req.RawDraft, existingID)
		if err != nil {
			handleError(c, logger, err, msgRequestNotFound)
			return
		}

		status := http.StatusOK
		if result.Created {
			status = http.StatusCreated
		}
		c.JSON(status, result.Response())
	}
}

// HandleValidateDraft handles POST /shipment/validate-draft
func HandleValidateDraft(intake service.IntakeService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var raw validation.RawDraft
		if err := bindObject(c, &raw); err != nil {
			handleError(c, logger, err, msgNotFound)
			return
		}

		draft, err := intake.ValidateDraft(c.Request.Context(), raw)
		if err != nil {
			handleError(c, logger, err, msgNotFound)
			return
		}

		c.JSON(http.StatusOK, service.ValidateResponse{OK: true, VolumeCBM: draft.VolumeM3})
	}
}

// HandleGetRequest handles GET /requests/:id
func HandleGetRequest(intake service.IntakeService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			RespondError(c, http.StatusBadRequest, msgInvalidRequestID, errorType(TypeBadRequest))
			return
		}

		view, err := intake.GetRequest(c.Request.Context(), id)
		if err != nil {
			handleError(c, logger, err, msgRequestNotFound)
			return
		}

		c.JSON(http.StatusOK, view)
	}
}

// bindObject decodes a JSON object body into dst. An empty body counts as {}.
func bindObject(c *gin.Context, dst interface{}) error {
	body, err := c.GetRawData()
	if err != nil {
		return &errors.ErrBadRequest{Message: msgBadRequest}
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil
	}
	if body[0] != '{' {
		return &errors.ErrBadRequest{Message: msgInvalidBody}
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &errors.ErrBadRequest{Message: msgInvalidBody}
	}
	return nil
}

// parseExistingID accepts a positive integer, as a JSON number or a numeric
// string. Absent, null and "" mean a new request.
func parseExistingID(raw json.RawMessage) (*int64, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" || s == `""` {
		return nil, nil
	}
	s = strings.Trim(s, `"`)
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return nil, &errors.ErrBadRequest{Message: msgInvalidRequestID}
	}
	return &id, nil
}
