package validation

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	mobilePattern = regexp.MustCompile(`^09[0-9]{9}$`)
	emailPattern  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

const dateLayout = "2006-01-02"

// FieldError is a single rejected field
type FieldError struct {
	Field   string
	Message string
}

func fieldErr(field, msg string) *FieldError {
	return &FieldError{Field: field, Message: msg}
}

func isSpaceOnly(s string) bool {
	return strings.TrimSpace(s) == ""
}

// numericText returns the literal to parse for numbers and numeric strings
func numericText(v Value) (string, bool) {
	switch v.kind {
	case KindNumber:
		return v.text, true
	case KindString:
		return strings.TrimSpace(v.text), true
	default:
		return "", false
	}
}

// parseInteger accepts integers and integral floats. Booleans are not numbers.
func parseInteger(v Value) (int64, bool) {
	text, ok := numericText(v)
	if !ok {
		return 0, false
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, false
	}
	return int64(f), true
}

// parseMeasure parses a finite number. The message is empty on success.
func parseMeasure(v Value) (float64, string) {
	text, ok := numericText(v)
	if !ok {
		return 0, MsgNumberRequired
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) && math.IsInf(f, 0) {
			return 0, MsgNumberFinite
		}
		return 0, MsgNumberRequired
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, MsgNumberFinite
	}
	return f, ""
}

// positiveID parses a positive integer identifier
func positiveID(v Value) (int64, bool) {
	n, ok := parseInteger(v)
	if !ok || n <= 0 {
		return 0, false
	}
	return n, true
}

func checkUnits(v Value) (int, *FieldError) {
	if v.blank() {
		return 0, fieldErr(FieldUnits, MsgValueRequired)
	}
	n, ok := parseInteger(v)
	if !ok {
		return 0, fieldErr(FieldUnits, MsgIntegerRequired)
	}
	if n < MinUnits || n > MaxUnits {
		return 0, fieldErr(FieldUnits, MsgRange(MinUnits, MaxUnits))
	}
	return int(n), nil
}

// checkMeasure validates an optional bounded number; blank means not supplied
func checkMeasure(field string, v Value) (*float64, *FieldError) {
	if v.blank() {
		return nil, nil
	}
	f, msg := parseMeasure(v)
	if msg != "" {
		return nil, fieldErr(field, msg)
	}
	if f < MinMeasure || f > MaxMeasure {
		return nil, fieldErr(field, MsgRange(MinMeasure, MaxMeasure))
	}
	return &f, nil
}

func checkWeight(v Value) (float64, *FieldError) {
	if v.blank() {
		return 0, fieldErr(FieldWeightKG, MsgWeightRequired)
	}
	f, fe := checkMeasure(FieldWeightKG, v)
	if fe != nil {
		return 0, fe
	}
	return *f, nil
}

// checkDimensionTriple flags the missing members of a partially filled
// length/width/height set
func checkDimensionTriple(length, width, height Value) []*FieldError {
	dims := []struct {
		field string
		value Value
	}{
		{FieldLengthCM, length},
		{FieldWidthCM, width},
		{FieldHeightCM, height},
	}

	provided := 0
	for _, d := range dims {
		if !d.value.blank() {
			provided++
		}
	}
	if provided == 0 || provided == len(dims) {
		return nil
	}

	var errs []*FieldError
	for _, d := range dims {
		if d.value.blank() {
			errs = append(errs, fieldErr(d.field, MsgDimensionsJoint))
		}
	}
	return errs
}

func checkFlag(field string, v Value) (bool, *FieldError) {
	if v.missing() {
		return false, nil
	}
	if v.kind != KindBool {
		return false, fieldErr(field, MsgBoolean)
	}
	return v.flag, nil
}

// checkRequiredText trims the value and bounds its length in characters
func checkRequiredText(field string, v Value, max int, required, tooLong string) (string, *FieldError) {
	if v.kind != KindString || isSpaceOnly(v.text) {
		return "", fieldErr(field, required)
	}
	s := strings.TrimSpace(v.text)
	if utf8.RuneCountInString(s) > max {
		return "", fieldErr(field, tooLong)
	}
	return s, nil
}

func checkHSCode(v Value) (*string, *FieldError) {
	if v.missing() {
		return nil, nil
	}
	if v.kind != KindString {
		return nil, fieldErr(FieldHSCode, MsgHSCodeInvalid)
	}
	s := strings.TrimSpace(v.text)
	if utf8.RuneCountInString(s) > MaxHSCodeLen {
		return nil, fieldErr(FieldHSCode, MsgHSCodeTooLong)
	}
	return optionalString(s), nil
}

// checkNote bounds the untrimmed note; the stored note is trimmed
func checkNote(v Value) (*string, *FieldError) {
	if v.missing() {
		return nil, nil
	}
	if v.kind != KindString {
		return nil, fieldErr(FieldNoteText, MsgNoteInvalid)
	}
	if utf8.RuneCountInString(v.text) > MaxNoteLen {
		return nil, fieldErr(FieldNoteText, MsgNoteTooLong)
	}
	return optionalString(strings.TrimSpace(v.text)), nil
}

// checkPattern validates an optional string that must fully match re once trimmed
func checkPattern(field string, v Value, re *regexp.Regexp, invalid, format string) (*string, *FieldError) {
	if !v.supplied() {
		return nil, nil
	}
	if v.kind != KindString {
		return nil, fieldErr(field, invalid)
	}
	s := strings.TrimSpace(v.text)
	if !re.MatchString(s) {
		return nil, fieldErr(field, format)
	}
	return &s, nil
}

// checkReadyDate parses YYYY-MM-DD and rejects days before today
func checkReadyDate(v Value, now time.Time) (*time.Time, *FieldError) {
	if !v.supplied() {
		return nil, nil
	}
	if v.kind != KindString {
		return nil, fieldErr(FieldReadyDate, MsgReadyDateInvalid)
	}
	d, err := time.Parse(dateLayout, v.text)
	if err != nil {
		return nil, fieldErr(FieldReadyDate, MsgReadyDateFormat)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if d.Before(today) {
		return nil, fieldErr(FieldReadyDate, MsgReadyDatePast)
	}
	return &d, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
