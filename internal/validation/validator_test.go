package validation

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jafarshop/shipment-intake/internal/domain"
)

type fakeLookup struct {
	catalog map[domain.CatalogKind][]domain.CatalogItem
	places  map[domain.GeoLevel]map[int64]domain.Place
	err     error
	calls   int
}

func newFakeLookup() *fakeLookup {
	return &fakeLookup{
		catalog: map[domain.CatalogKind][]domain.CatalogItem{
			domain.CatalogShipmentModes: domain.DefaultShipmentModes,
			domain.CatalogPackageTypes:  domain.DefaultPackageTypes,
			domain.CatalogIncoterms: {
				{ID: 1, Code: "EXW", Name: "EXW"},
				{ID: 2, Code: "DAP", Name: "DAP"},
			},
		},
		places: map[domain.GeoLevel]map[int64]domain.Place{
			domain.GeoProvince: {
				1: {ID: 1, Level: domain.GeoProvince, Name: "تهران"},
				2: {ID: 2, Level: domain.GeoProvince, Name: "اصفهان"},
			},
			domain.GeoCounty: {
				10: {ID: 10, Level: domain.GeoCounty, ParentID: 1, Name: "شمیرانات"},
				20: {ID: 20, Level: domain.GeoCounty, ParentID: 2, Name: "کاشان"},
			},
			domain.GeoCity: {
				100: {ID: 100, Level: domain.GeoCity, ParentID: 10, Name: "تجریش"},
				200: {ID: 200, Level: domain.GeoCity, ParentID: 20, Name: "کاشان"},
			},
		},
	}
}

func (f *fakeLookup) CatalogByID(ctx context.Context, kind domain.CatalogKind, id int64) (domain.CatalogItem, bool, error) {
	f.calls++
	if f.err != nil {
		return domain.CatalogItem{}, false, f.err
	}
	for _, item := range f.catalog[kind] {
		if item.ID == id {
			return item, true, nil
		}
	}
	return domain.CatalogItem{}, false, nil
}

func (f *fakeLookup) CatalogByCode(ctx context.Context, kind domain.CatalogKind, code string) (domain.CatalogItem, bool, error) {
	f.calls++
	if f.err != nil {
		return domain.CatalogItem{}, false, f.err
	}
	for _, item := range f.catalog[kind] {
		if strings.EqualFold(item.Code, code) {
			return item, true, nil
		}
	}
	return domain.CatalogItem{}, false, nil
}

func (f *fakeLookup) Place(ctx context.Context, level domain.GeoLevel, id int64) (domain.Place, bool, error) {
	f.calls++
	if f.err != nil {
		return domain.Place{}, false, f.err
	}
	p, ok := f.places[level][id]
	return p, ok, nil
}

var fixedNow = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

func newTestValidator(lookup Lookup) *Validator {
	return New(lookup, WithClock(func() time.Time { return fixedNow }))
}

// validDraft returns a draft that passes every rule. Negative tests break
// one field at a time.
func validDraft() RawDraft {
	return RawDraft{
		ShipmentMode:     Int(1),
		PackageType:      Int(2),
		CommodityName:    String("  لوازم خانگی "),
		Units:            Int(3),
		WeightKG:         Number(12.5),
		ContactName:      String("علی رضایی"),
		OriginProvinceID: Int(1),
		OriginCountyID:   Int(10),
		OriginCityID:     Int(100),
		DestProvinceID:   Int(2),
		DestCountyID:     Int(20),
		DestCityID:       Int(200),
	}
}

func validate(t *testing.T, raw RawDraft) (*domain.ShipmentDraft, FieldErrors) {
	t.Helper()
	draft, errs, err := newTestValidator(newFakeLookup()).Validate(context.Background(), raw)
	require.NoError(t, err)
	return draft, errs
}

func TestValidate_ValidDraft(t *testing.T) {
	draft, errs := validate(t, validDraft())
	require.Empty(t, errs)
	require.NotNil(t, draft)

	assert.Equal(t, int64(1), draft.ShipmentModeID)
	assert.Equal(t, int64(2), draft.PackageTypeID)
	assert.Equal(t, "لوازم خانگی", draft.CommodityName)
	assert.Equal(t, 3, draft.Units)
	assert.Equal(t, 12.5, draft.WeightKG)
	assert.Equal(t, 0.0, draft.VolumeM3)
	assert.False(t, draft.IsHazardous)
	assert.False(t, draft.IsRefrigerated)
	assert.Nil(t, draft.IncotermCode)
	assert.Nil(t, draft.ReadyDate)
	assert.Equal(t, domain.Location{ProvinceID: 1, CountyID: 10, CityID: 100}, draft.Origin)
	assert.Equal(t, domain.Location{ProvinceID: 2, CountyID: 20, CityID: 200}, draft.Destination)
}

func TestValidate_MissingRequiredFields(t *testing.T) {
	cases := []struct {
		field string
		clear func(r *RawDraft)
	}{
		{FieldCommodityName, func(r *RawDraft) { r.CommodityName = Value{} }},
		{FieldUnits, func(r *RawDraft) { r.Units = Value{} }},
		{FieldWeightKG, func(r *RawDraft) { r.WeightKG = Value{} }},
		{FieldContactName, func(r *RawDraft) { r.ContactName = Value{} }},
		{FieldShipmentMode, func(r *RawDraft) { r.ShipmentMode = Value{} }},
		{FieldPackageType, func(r *RawDraft) { r.PackageType = Value{} }},
		{FieldOriginProvince, func(r *RawDraft) { r.OriginProvinceID = Value{} }},
		{FieldOriginCounty, func(r *RawDraft) { r.OriginCountyID = Value{} }},
		{FieldOriginCity, func(r *RawDraft) { r.OriginCityID = Value{} }},
		{FieldDestProvince, func(r *RawDraft) { r.DestProvinceID = Value{} }},
		{FieldDestCounty, func(r *RawDraft) { r.DestCountyID = Value{} }},
		{FieldDestCity, func(r *RawDraft) { r.DestCityID = Value{} }},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			raw := validDraft()
			tc.clear(&raw)

			draft, errs := validate(t, raw)
			require.Nil(t, draft)
			require.Len(t, errs, 1)
			assert.Contains(t, errs, tc.field)
		})
	}
}

func TestValidate_RequiredMessages(t *testing.T) {
	_, errs := validate(t, RawDraft{})

	assert.Equal(t, MsgWeightRequired, errs[FieldWeightKG])
	assert.Equal(t, MsgValueRequired, errs[FieldUnits])
	assert.Equal(t, MsgCommodityRequired, errs[FieldCommodityName])
	assert.Equal(t, MsgContactRequired, errs[FieldContactName])
	assert.Equal(t, MsgModeRequired, errs[FieldShipmentMode])
	assert.Equal(t, MsgPackageRequired, errs[FieldPackageType])
	assert.Equal(t, "استان مبدأ الزامی است.", errs[FieldOriginProvince])
	assert.Equal(t, "شهر مقصد الزامی است.", errs[FieldDestCity])
	// optional fields stay quiet
	assert.NotContains(t, errs, FieldIncotermCode)
	assert.NotContains(t, errs, FieldReadyDate)
	assert.NotContains(t, errs, FieldLengthCM)
}

func TestValidate_AccumulatesIndependentFailures(t *testing.T) {
	raw := validDraft()
	raw.Units = Int(0)
	raw.ContactPhone = String("12345")
	raw.NoteText = String(strings.Repeat("a", MaxNoteLen+1))
	raw.IsRefrigerated = String("yes")

	_, errs := validate(t, raw)
	assert.Equal(t, FieldErrors{
		FieldUnits:          MsgRange(MinUnits, MaxUnits),
		FieldContactPhone:   MsgPhoneFormat,
		FieldNoteText:       MsgNoteTooLong,
		FieldIsRefrigerated: MsgBoolean,
	}, errs)
}

func TestValidate_DimensionTriple(t *testing.T) {
	type dims struct{ l, w, h bool }
	cases := []struct {
		name    string
		present dims
		missing []string
	}{
		{"none", dims{}, nil},
		{"all", dims{true, true, true}, nil},
		{"length only", dims{true, false, false}, []string{FieldWidthCM, FieldHeightCM}},
		{"width only", dims{false, true, false}, []string{FieldLengthCM, FieldHeightCM}},
		{"height only", dims{false, false, true}, []string{FieldLengthCM, FieldWidthCM}},
		{"length and width", dims{true, true, false}, []string{FieldHeightCM}},
		{"length and height", dims{true, false, true}, []string{FieldWidthCM}},
		{"width and height", dims{false, true, true}, []string{FieldLengthCM}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := validDraft()
			if tc.present.l {
				raw.LengthCM = Int(10)
			}
			if tc.present.w {
				raw.WidthCM = Int(20)
			}
			if tc.present.h {
				raw.HeightCM = Int(30)
			}

			_, errs := validate(t, raw)
			if len(tc.missing) == 0 {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, len(tc.missing))
			for _, field := range tc.missing {
				assert.Equal(t, MsgDimensionsJoint, errs[field])
			}
		})
	}
}

func TestValidate_DimensionTripleKeepsIndividualError(t *testing.T) {
	raw := validDraft()
	raw.LengthCM = String("abc")
	raw.WidthCM = Int(10)

	_, errs := validate(t, raw)
	assert.Equal(t, MsgNumberRequired, errs[FieldLengthCM])
	assert.Equal(t, MsgDimensionsJoint, errs[FieldHeightCM])
	assert.NotContains(t, errs, FieldWidthCM)
}

func TestValidate_BlankDimensionStringsCountAsAbsent(t *testing.T) {
	raw := validDraft()
	raw.LengthCM = String(" ")
	raw.WidthCM = Null()
	raw.HeightCM = String("")

	_, errs := validate(t, raw)
	assert.Empty(t, errs)
}

func TestValidate_VolumeDerivation(t *testing.T) {
	t.Run("computed from dimensions", func(t *testing.T) {
		raw := validDraft()
		raw.Units = Int(1)
		raw.LengthCM = Int(10)
		raw.WidthCM = Int(10)
		raw.HeightCM = Int(10)

		draft, errs := validate(t, raw)
		require.Empty(t, errs)
		assert.Equal(t, 0.001, draft.VolumeM3)
		assert.Equal(t, (10.0*10*10*1)/1_000_000, draft.VolumeM3)
	})

	t.Run("rounded to three decimals", func(t *testing.T) {
		raw := validDraft()
		raw.Units = Int(7)
		raw.LengthCM = Number(33.3)
		raw.WidthCM = Number(21.7)
		raw.HeightCM = Number(12.9)

		draft, errs := validate(t, raw)
		require.Empty(t, errs)
		assert.Equal(t, 0.065, draft.VolumeM3)
	})

	t.Run("explicit volume wins", func(t *testing.T) {
		raw := validDraft()
		raw.LengthCM = Int(10)
		raw.WidthCM = Int(10)
		raw.HeightCM = Int(10)
		raw.VolumeM3 = Number(2.25)

		draft, errs := validate(t, raw)
		require.Empty(t, errs)
		assert.Equal(t, 2.25, draft.VolumeM3)
	})

	t.Run("zero dimension yields zero", func(t *testing.T) {
		raw := validDraft()
		raw.LengthCM = Int(0)
		raw.WidthCM = Int(10)
		raw.HeightCM = Int(10)

		draft, errs := validate(t, raw)
		require.Empty(t, errs)
		assert.Equal(t, 0.0, draft.VolumeM3)
	})

	t.Run("volume_cbm alias", func(t *testing.T) {
		raw := validDraft()
		raw.VolumeCBM = Number(1.5)

		draft, errs := validate(t, raw)
		require.Empty(t, errs)
		assert.Equal(t, 1.5, draft.VolumeM3)
	})
}

func TestValidate_NumericContract(t *testing.T) {
	cases := []struct {
		name  string
		value Value
		msg   string
	}{
		{"negative", Number(-1), MsgRange(MinMeasure, MaxMeasure)},
		{"too large", Number(100_000.01), MsgRange(MinMeasure, MaxMeasure)},
		{"not a number", String("heavy"), MsgNumberRequired},
		{"boolean", Bool(true), MsgNumberRequired},
		{"nan", String("NaN"), MsgNumberFinite},
		{"infinity", String("Inf"), MsgNumberFinite},
		{"overflow", String("1e400"), MsgNumberFinite},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := validDraft()
			raw.WeightKG = tc.value
			_, errs := validate(t, raw)
			assert.Equal(t, FieldErrors{FieldWeightKG: tc.msg}, errs)
		})
	}

	t.Run("bounds are inclusive", func(t *testing.T) {
		raw := validDraft()
		raw.WeightKG = Int(0)
		raw.VolumeM3 = Int(100_000)
		draft, errs := validate(t, raw)
		require.Empty(t, errs)
		assert.Equal(t, 0.0, draft.WeightKG)
		assert.Equal(t, 100_000.0, draft.VolumeM3)
	})

	t.Run("numeric strings are coerced", func(t *testing.T) {
		raw := validDraft()
		raw.WeightKG = String(" 42.5 ")
		raw.Units = String("4")
		draft, errs := validate(t, raw)
		require.Empty(t, errs)
		assert.Equal(t, 42.5, draft.WeightKG)
		assert.Equal(t, 4, draft.Units)
	})
}

func TestValidate_Units(t *testing.T) {
	cases := []struct {
		name  string
		value Value
		msg   string
	}{
		{"fractional", Number(1.5), MsgIntegerRequired},
		{"text", String("many"), MsgIntegerRequired},
		{"zero", Int(0), MsgRange(MinUnits, MaxUnits)},
		{"too many", Int(1_000_000), MsgRange(MinUnits, MaxUnits)},
		{"blank", String("  "), MsgValueRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := validDraft()
			raw.Units = tc.value
			_, errs := validate(t, raw)
			assert.Equal(t, FieldErrors{FieldUnits: tc.msg}, errs)
		})
	}

	raw := validDraft()
	raw.Units = Number(999_999)
	_, errs := validate(t, raw)
	assert.Empty(t, errs)
}

func TestValidate_ReadyDate(t *testing.T) {
	cases := []struct {
		name  string
		value Value
		msg   string
	}{
		{"today", String("2026-10-16"), ""},
		{"future", String("2027-01-01"), ""},
		{"yesterday", String("2026-10-15"), MsgReadyDatePast},
		{"bad format", String("16/10/2026"), MsgReadyDateFormat},
		{"single digit month", String("2026-1-05"), MsgReadyDateFormat},
		{"not a string", Int(20261016), MsgReadyDateInvalid},
		{"empty string", String(""), ""},
		{"zero", Int(0), ""},
		{"false", Bool(false), ""},
		{"true", Bool(true), MsgReadyDateInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := validDraft()
			raw.ReadyDate = tc.value
			draft, errs := validate(t, raw)
			if tc.msg == "" {
				require.Empty(t, errs)
				require.NotNil(t, draft)
				return
			}
			assert.Equal(t, FieldErrors{FieldReadyDate: tc.msg}, errs)
		})
	}

	raw := validDraft()
	raw.ReadyDate = String("2026-10-16")
	draft, errs := validate(t, raw)
	require.Empty(t, errs)
	require.NotNil(t, draft.ReadyDate)
	assert.Equal(t, "2026-10-16", draft.ReadyDate.Format(dateLayout))
}

func TestValidate_ReadyDateUsesClockCalendarDay(t *testing.T) {
	tehran := time.FixedZone("IRST", 3*3600+1800)
	// 22:00 UTC on the 15th is already the 16th in Tehran
	now := time.Date(2026, 10, 15, 22, 0, 0, 0, time.UTC).In(tehran)
	v := New(newFakeLookup(), WithClock(func() time.Time { return now }))

	raw := validDraft()
	raw.ReadyDate = String("2026-10-15")
	_, errs, err := v.Validate(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, MsgReadyDatePast, errs[FieldReadyDate])
}

func TestValidate_Phone(t *testing.T) {
	cases := []struct {
		phone string
		valid bool
	}{
		{"09123456789", true},
		{" 09123456789 ", true},
		{"0912345678", false},
		{"091234567890", false},
		{"08123456789", false},
		{"+989123456789", false},
	}
	for _, tc := range cases {
		t.Run(tc.phone, func(t *testing.T) {
			raw := validDraft()
			raw.ContactPhone = String(tc.phone)
			draft, errs := validate(t, raw)
			if tc.valid {
				require.Empty(t, errs)
				assert.Equal(t, "09123456789", *draft.ContactPhone)
				return
			}
			assert.Equal(t, FieldErrors{FieldContactPhone: MsgPhoneFormat}, errs)
		})
	}

	raw := validDraft()
	raw.ContactPhone = Int(9123456789)
	_, errs := validate(t, raw)
	assert.Equal(t, MsgPhoneInvalid, errs[FieldContactPhone])

	// falsy scalars count as not supplied for the optional contact fields
	raw = validDraft()
	raw.ContactPhone = Int(0)
	raw.ContactEmail = Bool(false)
	draft, errs := validate(t, raw)
	require.Empty(t, errs)
	assert.Nil(t, draft.ContactPhone)
	assert.Nil(t, draft.ContactEmail)
}

func TestValidate_Email(t *testing.T) {
	cases := []struct {
		email string
		valid bool
	}{
		{"user@example.com", true},
		{"  user@example.co ", true},
		{"user@example", false},
		{"user example@x.com", false},
		{"a@b@c.com", false},
		{"@example.com", false},
	}
	for _, tc := range cases {
		t.Run(tc.email, func(t *testing.T) {
			raw := validDraft()
			raw.ContactEmail = String(tc.email)
			_, errs := validate(t, raw)
			if tc.valid {
				assert.Empty(t, errs)
				return
			}
			assert.Equal(t, FieldErrors{FieldContactEmail: MsgEmailFormat}, errs)
		})
	}
}

func TestValidate_TextFields(t *testing.T) {
	t.Run("commodity too long", func(t *testing.T) {
		raw := validDraft()
		raw.CommodityName = String(strings.Repeat("ک", MaxCommodityNameLen+1))
		_, errs := validate(t, raw)
		assert.Equal(t, FieldErrors{FieldCommodityName: MsgCommodityTooLong}, errs)
	})

	t.Run("commodity at limit counts characters not bytes", func(t *testing.T) {
		raw := validDraft()
		raw.CommodityName = String(strings.Repeat("ک", MaxCommodityNameLen))
		_, errs := validate(t, raw)
		assert.Empty(t, errs)
	})

	t.Run("contact name whitespace only", func(t *testing.T) {
		raw := validDraft()
		raw.ContactName = String("   ")
		_, errs := validate(t, raw)
		assert.Equal(t, FieldErrors{FieldContactName: MsgContactRequired}, errs)
	})

	t.Run("contact name not a string", func(t *testing.T) {
		raw := validDraft()
		raw.ContactName = Int(5)
		_, errs := validate(t, raw)
		assert.Equal(t, FieldErrors{FieldContactName: MsgContactRequired}, errs)
	})

	t.Run("contact name too long", func(t *testing.T) {
		raw := validDraft()
		raw.ContactName = String(strings.Repeat("x", MaxContactNameLen+1))
		_, errs := validate(t, raw)
		assert.Equal(t, FieldErrors{FieldContactName: MsgContactTooLong}, errs)
	})

	t.Run("hs code", func(t *testing.T) {
		raw := validDraft()
		raw.HSCode = String(strings.Repeat("1", MaxHSCodeLen+1))
		_, errs := validate(t, raw)
		assert.Equal(t, FieldErrors{FieldHSCode: MsgHSCodeTooLong}, errs)

		raw.HSCode = Int(8471)
		_, errs = validate(t, raw)
		assert.Equal(t, FieldErrors{FieldHSCode: MsgHSCodeInvalid}, errs)

		raw.HSCode = String(" 8471.30 ")
		draft, errs := validate(t, raw)
		require.Empty(t, errs)
		assert.Equal(t, "8471.30", *draft.HSCode)
	})

	t.Run("note", func(t *testing.T) {
		raw := validDraft()
		raw.NoteText = Bool(true)
		_, errs := validate(t, raw)
		assert.Equal(t, FieldErrors{FieldNoteText: MsgNoteInvalid}, errs)

		raw.NoteText = String(strings.Repeat("ن", MaxNoteLen))
		_, errs = validate(t, raw)
		assert.Empty(t, errs)

		raw.NoteText = String("   ")
		draft, errs := validate(t, raw)
		require.Empty(t, errs)
		assert.Nil(t, draft.NoteText)
	})
}

func TestValidate_Flags(t *testing.T) {
	raw := validDraft()
	raw.IsHazardous = Bool(true)
	raw.IsRefrigerated = Null()
	draft, errs := validate(t, raw)
	require.Empty(t, errs)
	assert.True(t, draft.IsHazardous)
	assert.False(t, draft.IsRefrigerated)

	raw = validDraft()
	raw.IsHazardous = Int(1)
	raw.IsRefrigerated = String("on")
	_, errs = validate(t, raw)
	assert.Equal(t, FieldErrors{FieldIsHazardous: MsgBoolean, FieldIsRefrigerated: MsgBoolean}, errs)

	t.Run("is_hazfreight alias", func(t *testing.T) {
		raw := validDraft()
		raw.IsHazfreight = Bool(true)
		draft, errs := validate(t, raw)
		require.Empty(t, errs)
		assert.True(t, draft.IsHazardous)

		raw.IsHazardous = Bool(false)
		draft, errs = validate(t, raw)
		require.Empty(t, errs)
		assert.False(t, draft.IsHazardous)
	})
}

func TestValidate_CatalogReferences(t *testing.T) {
	t.Run("unknown mode", func(t *testing.T) {
		raw := validDraft()
		raw.ShipmentMode = Int(99)
		_, errs := validate(t, raw)
		assert.Equal(t, FieldErrors{FieldShipmentMode: MsgModeNotFound}, errs)
	})

	t.Run("malformed package id", func(t *testing.T) {
		raw := validDraft()
		raw.PackageType = String("box")
		_, errs := validate(t, raw)
		assert.Equal(t, FieldErrors{FieldPackageType: MsgPackageInvalid}, errs)

		raw.PackageType = Int(-2)
		_, errs = validate(t, raw)
		assert.Equal(t, FieldErrors{FieldPackageType: MsgPackageInvalid}, errs)
	})

	t.Run("numeric string id", func(t *testing.T) {
		raw := validDraft()
		raw.ShipmentMode = String("3")
		draft, errs := validate(t, raw)
		require.Empty(t, errs)
		assert.Equal(t, int64(3), draft.ShipmentModeID)
	})

	t.Run("incoterm resolves case-insensitively", func(t *testing.T) {
		raw := validDraft()
		raw.IncotermCode = String(" dap ")
		draft, errs := validate(t, raw)
		require.Empty(t, errs)
		require.NotNil(t, draft.IncotermCode)
		assert.Equal(t, "DAP", *draft.IncotermCode)
	})

	t.Run("incoterm errors", func(t *testing.T) {
		raw := validDraft()
		raw.IncotermCode = String("XYZ")
		_, errs := validate(t, raw)
		assert.Equal(t, FieldErrors{FieldIncotermCode: MsgIncotermUnknown}, errs)

		raw.IncotermCode = String("   ")
		_, errs = validate(t, raw)
		assert.Equal(t, FieldErrors{FieldIncotermCode: MsgIncotermInvalid}, errs)

		raw.IncotermCode = Int(4)
		_, errs = validate(t, raw)
		assert.Equal(t, FieldErrors{FieldIncotermCode: MsgIncotermInvalid}, errs)
	})

	t.Run("incoterm absent or empty", func(t *testing.T) {
		raw := validDraft()
		for _, v := range []Value{String(""), Null(), Int(0), Bool(false)} {
			raw.IncotermCode = v
			draft, errs := validate(t, raw)
			require.Empty(t, errs)
			assert.Nil(t, draft.IncotermCode)
		}
	})
}

func TestValidate_Geography(t *testing.T) {
	t.Run("unknown city", func(t *testing.T) {
		raw := validDraft()
		raw.OriginCityID = Int(999)
		_, errs := validate(t, raw)
		assert.Equal(t, FieldErrors{FieldOriginCity: "شهر مبدأ نامعتبر است."}, errs)
	})

	t.Run("malformed id", func(t *testing.T) {
		raw := validDraft()
		raw.DestProvinceID = String("tehran")
		_, errs := validate(t, raw)
		assert.Equal(t, FieldErrors{FieldDestProvince: "شناسه استان مقصد نامعتبر است."}, errs)
	})

	t.Run("county outside the selected province", func(t *testing.T) {
		raw := validDraft()
		raw.OriginCountyID = Int(20)
		raw.OriginCityID = Int(200)
		_, errs := validate(t, raw)
		assert.Equal(t, FieldErrors{FieldOriginCounty: msgGeoParent("شهرستان مبدأ")}, errs)
	})

	t.Run("city outside the selected county", func(t *testing.T) {
		raw := validDraft()
		raw.DestCityID = Int(100)
		_, errs := validate(t, raw)
		assert.Equal(t, FieldErrors{FieldDestCity: msgGeoParent("شهر مقصد")}, errs)
	})
}

func TestValidate_Idempotent(t *testing.T) {
	raw := validDraft()
	raw.LengthCM = Int(50)
	raw.WidthCM = Int(40)
	raw.HeightCM = Int(30)
	raw.ReadyDate = String("2026-11-01")
	raw.IncotermCode = String("exw")

	v := newTestValidator(newFakeLookup())
	first, errs, err := v.Validate(context.Background(), raw)
	require.NoError(t, err)
	require.Empty(t, errs)
	second, errs, err := v.Validate(context.Background(), raw)
	require.NoError(t, err)
	require.Empty(t, errs)

	assert.Equal(t, first, second)
}

func TestValidate_LookupFailureIsAnError(t *testing.T) {
	lookup := newFakeLookup()
	lookup.err = errors.New("connection refused")

	draft, errs, err := newTestValidator(lookup).Validate(context.Background(), validDraft())
	require.Error(t, err)
	assert.ErrorIs(t, err, lookup.err)
	assert.Nil(t, draft)
	assert.Nil(t, errs)
}

func TestValidate_DecodedFromJSON(t *testing.T) {
	body := `{
		"mode_shipment_mode": 1,
		"package_type": "2",
		"incoterm_code": "fca",
		"is_hazfreight": false,
		"is_refrigerated": true,
		"commodity_name": "قطعات یدکی",
		"units": 2,
		"length_cm": 100,
		"width_cm": "50",
		"height_cm": 20.5,
		"weight_kg": 80,
		"ready_date": "2026-10-20",
		"contact_name": "مریم",
		"contact_phone": "09121112233",
		"contact_email": "m@example.ir",
		"note_text": null,
		"origin_province_id": 1,
		"origin_county_id": 10,
		"origin_city_id": 100,
		"dest_province_id": 2,
		"dest_county_id": 20,
		"dest_city_id": 200,
		"unexpected": {"ignored": true}
	}`

	var raw RawDraft
	require.NoError(t, json.Unmarshal([]byte(body), &raw))

	lookup := newFakeLookup()
	lookup.catalog[domain.CatalogIncoterms] = append(lookup.catalog[domain.CatalogIncoterms], domain.CatalogItem{ID: 3, Code: "FCA"})
	draft, errs, err := newTestValidator(lookup).Validate(context.Background(), raw)
	require.NoError(t, err)
	require.Empty(t, errs)

	assert.Equal(t, "FCA", *draft.IncotermCode)
	assert.True(t, draft.IsRefrigerated)
	assert.Equal(t, 50.0, *draft.WidthCM)
	assert.Equal(t, 0.205, draft.VolumeM3)
	assert.Nil(t, draft.NoteText)
}
