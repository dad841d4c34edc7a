package validation

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Kind is the JSON shape a raw field arrived in
type Kind int

const (
	KindAbsent Kind = iota
	KindNull
	KindString
	KindNumber
	KindBool
	KindOther
)

// Value is one loosely typed field of a submitted draft. All coercion happens
// in the validator; decoding only records what the client sent.
type Value struct {
	kind Kind
	text string // string contents or the number literal
	flag bool
}

// String returns a string value
func String(s string) Value { return Value{kind: KindString, text: s} }

// Number returns a numeric value
func Number(f float64) Value {
	return Value{kind: KindNumber, text: strconv.FormatFloat(f, 'g', -1, 64)}
}

// Int returns an integral numeric value
func Int(n int64) Value { return Value{kind: KindNumber, text: strconv.FormatInt(n, 10)} }

// Bool returns a boolean value
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// Null returns an explicit JSON null
func Null() Value { return Value{kind: KindNull} }

// Kind reports how the value was sent
func (v Value) Kind() Kind { return v.kind }

// UnmarshalJSON implements json.Unmarshaler
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*v = Value{}
		return nil
	}

	switch data[0] {
	case 'n':
		*v = Value{kind: KindNull}
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = Value{kind: KindBool, flag: b}
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value{kind: KindString, text: s}
	case '{', '[':
		*v = Value{kind: KindOther}
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = Value{kind: KindNumber, text: n.String()}
	}
	return nil
}

// missing reports absent or null
func (v Value) missing() bool {
	return v.kind == KindAbsent || v.kind == KindNull
}

// blank reports missing values and whitespace-only strings
func (v Value) blank() bool {
	if v.missing() {
		return true
	}
	return v.kind == KindString && isSpaceOnly(v.text)
}

// supplied is false for missing values and for the zero value of each JSON
// scalar: "", 0 and false
func (v Value) supplied() bool {
	switch v.kind {
	case KindAbsent, KindNull:
		return false
	case KindString:
		return v.text != ""
	case KindNumber:
		f, err := strconv.ParseFloat(v.text, 64)
		return err != nil || f != 0
	case KindBool:
		return v.flag
	}
	return true
}

// RawDraft is a shipment draft exactly as the client sent it
type RawDraft struct {
	ShipmentMode   Value `json:"mode_shipment_mode"`
	PackageType    Value `json:"package_type"`
	IncotermCode   Value `json:"incoterm_code"`
	IsHazardous    Value `json:"is_hazardous"`
	IsHazfreight   Value `json:"is_hazfreight"`
	IsRefrigerated Value `json:"is_refrigerated"`
	CommodityName  Value `json:"commodity_name"`
	HSCode         Value `json:"hs_code"`
	Units          Value `json:"units"`
	LengthCM       Value `json:"length_cm"`
	WidthCM        Value `json:"width_cm"`
	HeightCM       Value `json:"height_cm"`
	WeightKG       Value `json:"weight_kg"`
	VolumeM3       Value `json:"volume_m3"`
	VolumeCBM      Value `json:"volume_cbm"`
	ReadyDate      Value `json:"ready_date"`
	ContactName    Value `json:"contact_name"`
	ContactPhone   Value `json:"contact_phone"`
	ContactEmail   Value `json:"contact_email"`
	NoteText       Value `json:"note_text"`

	OriginProvinceID Value `json:"origin_province_id"`
	OriginCountyID   Value `json:"origin_county_id"`
	OriginCityID     Value `json:"origin_city_id"`
	DestProvinceID   Value `json:"dest_province_id"`
	DestCountyID     Value `json:"dest_county_id"`
	DestCityID       Value `json:"dest_city_id"`
}

// canonical folds the legacy aliases into their canonical fields.
// A canonical key that was sent at all wins over its alias.
func (r RawDraft) canonical() RawDraft {
	if r.IsHazardous.kind == KindAbsent {
		r.IsHazardous = r.IsHazfreight
	}
	if r.VolumeM3.kind == KindAbsent {
		r.VolumeM3 = r.VolumeCBM
	}
	r.IsHazfreight = Value{}
	r.VolumeCBM = Value{}
	return r
}
