package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_UnmarshalJSON(t *testing.T) {
	var raw struct {
		S Value `json:"s"`
		N Value `json:"n"`
		B Value `json:"b"`
		Z Value `json:"z"`
		O Value `json:"o"`
		A Value `json:"a"`
		M Value `json:"m"`
	}
	body := `{"s":"text","n":12.50,"b":true,"z":null,"o":{"k":1},"a":[1,2]}`
	require.NoError(t, json.Unmarshal([]byte(body), &raw))

	assert.Equal(t, KindString, raw.S.Kind())
	assert.Equal(t, "text", raw.S.text)
	assert.Equal(t, KindNumber, raw.N.Kind())
	assert.Equal(t, "12.50", raw.N.text)
	assert.Equal(t, KindBool, raw.B.Kind())
	assert.True(t, raw.B.flag)
	assert.Equal(t, KindOther, raw.O.Kind())
	assert.Equal(t, KindOther, raw.A.Kind())
	assert.Equal(t, KindAbsent, raw.M.Kind())
	assert.True(t, raw.Z.missing())
}

func TestValue_Presence(t *testing.T) {
	assert.True(t, Value{}.blank())
	assert.True(t, Null().blank())
	assert.True(t, String(" \t").blank())
	assert.False(t, Int(0).blank())
	assert.False(t, Bool(false).blank())

	assert.False(t, String("").supplied())
	assert.True(t, String(" ").supplied())
	assert.False(t, Bool(false).supplied())
	assert.False(t, Int(0).supplied())
	assert.False(t, Number(0).supplied())
	assert.True(t, Bool(true).supplied())
	assert.True(t, Int(7).supplied())
}

func TestRawDraft_CanonicalPrefersCanonicalKeys(t *testing.T) {
	r := RawDraft{VolumeM3: Null(), VolumeCBM: Number(3)}
	c := r.canonical()
	assert.Equal(t, KindNull, c.VolumeM3.Kind())
	assert.Equal(t, KindAbsent, c.VolumeCBM.Kind())

	r = RawDraft{VolumeCBM: Number(3)}
	c = r.canonical()
	assert.Equal(t, KindNumber, c.VolumeM3.Kind())
}
