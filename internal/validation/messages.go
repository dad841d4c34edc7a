package validation

import (
	"fmt"
	"strconv"
)

// Field names used as keys of FieldErrors
const (
	FieldShipmentMode   = "mode_shipment_mode"
	FieldPackageType    = "package_type"
	FieldIncotermCode   = "incoterm_code"
	FieldIsHazardous    = "is_hazardous"
	FieldIsRefrigerated = "is_refrigerated"
	FieldCommodityName  = "commodity_name"
	FieldHSCode         = "hs_code"
	FieldUnits          = "units"
	FieldLengthCM       = "length_cm"
	FieldWidthCM        = "width_cm"
	FieldHeightCM       = "height_cm"
	FieldWeightKG       = "weight_kg"
	FieldVolumeM3       = "volume_m3"
	FieldReadyDate      = "ready_date"
	FieldContactName    = "contact_name"
	FieldContactPhone   = "contact_phone"
	FieldContactEmail   = "contact_email"
	FieldNoteText       = "note_text"

	FieldOriginProvince = "origin_province_id"
	FieldOriginCounty   = "origin_county_id"
	FieldOriginCity     = "origin_city_id"
	FieldDestProvince   = "dest_province_id"
	FieldDestCounty     = "dest_county_id"
	FieldDestCity       = "dest_city_id"
)

// Field limits
const (
	MaxCommodityNameLen = 120
	MaxContactNameLen   = 80
	MaxHSCodeLen        = 20
	MaxNoteLen          = 140

	MinUnits = 1
	MaxUnits = 999_999

	MinMeasure = 0
	MaxMeasure = 100_000
)

const (
	MsgValueRequired   = "وارد کردن مقدار الزامی است."
	MsgIntegerRequired = "مقدار باید عدد صحیح باشد."
	MsgNumberRequired  = "مقدار باید عددی باشد."
	MsgNumberFinite    = "مقدار باید عددی معتبر باشد."
	MsgBoolean         = "مقدار باید بلی/خیر باشد."
	MsgDimensionsJoint = "برای ثبت ابعاد، تکمیل هر سه مقدار الزامی است."

	MsgWeightRequired = "وزن کالا الزامی است."

	MsgCommodityRequired = "نام کالا الزامی است."
	MsgCommodityTooLong  = "نام کالا نباید بیش از ۱۲۰ کاراکتر باشد."
	MsgContactRequired   = "نام مخاطب الزامی است."
	MsgContactTooLong    = "نام مخاطب نباید بیش از ۸۰ کاراکتر باشد."
	MsgHSCodeInvalid     = "کد HS نامعتبر است."
	MsgHSCodeTooLong     = "کد HS نباید بیش از ۲۰ کاراکتر باشد."
	MsgNoteInvalid       = "یادداشت نامعتبر است."
	MsgNoteTooLong       = "یادداشت نباید بیش از ۱۴۰ کاراکتر باشد."

	MsgModeRequired    = "روش حمل الزامی است."
	MsgModeInvalid     = "شناسه روش حمل نامعتبر است."
	MsgModeNotFound    = "روش حمل انتخاب‌شده معتبر نیست."
	MsgPackageRequired = "نوع بسته‌بندی الزامی است."
	MsgPackageInvalid  = "شناسه نوع بسته‌بندی نامعتبر است."
	MsgPackageNotFound = "نوع بسته‌بندی انتخاب‌شده معتبر نیست."
	MsgIncotermInvalid = "کد اینکوترمز نامعتبر است."
	MsgIncotermUnknown = "کد اینکوترمز در فهرست موجود نیست."

	MsgReadyDateInvalid = "تاریخ آمادگی نامعتبر است."
	MsgReadyDateFormat  = "تاریخ آمادگی باید در قالب YYYY-MM-DD باشد."
	MsgReadyDatePast    = "تاریخ آمادگی نمی‌تواند قبل از امروز باشد."

	MsgPhoneInvalid = "شماره تماس نامعتبر است."
	MsgPhoneFormat  = "شماره تماس باید با ۰۹ شروع شود و ۱۱ رقم باشد."
	MsgEmailInvalid = "ایمیل نامعتبر است."
	MsgEmailFormat  = "ایمیل واردشده معتبر نیست."
)

// MsgRange is the message for a number outside [min, max]
func MsgRange(min, max float64) string {
	return fmt.Sprintf("مقدار باید بین %s و %s باشد.", formatBound(min), formatBound(max))
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Geography messages name the role of the slot, e.g. "استان مبدأ"
func msgGeoRequired(role string) string { return fmt.Sprintf("%s الزامی است.", role) }
func msgGeoInvalid(role string) string  { return fmt.Sprintf("شناسه %s نامعتبر است.", role) }
func msgGeoNotFound(role string) string { return fmt.Sprintf("%s نامعتبر است.", role) }
func msgGeoParent(role string) string {
	return fmt.Sprintf("%s با انتخاب سطح بالاتر همخوانی ندارد.", role)
}

// catalogMessages groups the three messages of a required catalog reference
type catalogMessages struct {
	required string
	invalid  string
	notFound string
}

var (
	modeMessages    = catalogMessages{MsgModeRequired, MsgModeInvalid, MsgModeNotFound}
	packageMessages = catalogMessages{MsgPackageRequired, MsgPackageInvalid, MsgPackageNotFound}
)
