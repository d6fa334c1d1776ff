package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount_RoundsAtIngestion(t *testing.T) {
	assert.Equal(t, "123.46", ParseAmount("123.456").String())
	assert.Equal(t, "123.45", ParseAmount("123.454").String())
	assert.Equal(t, "0.00", ParseAmount("0").String())
	assert.Equal(t, "12.50", ParseAmount("12.5").String())
}

func TestParseAmount_InvalidInputIsUnavailable(t *testing.T) {
	for _, input := range []string{"abc", "", "12.3.4", "NaN-ish"} {
		a := ParseAmount(input)
		assert.False(t, a.Valid(), "input %q", input)
		assert.Equal(t, "N/A", a.String(), "input %q", input)
	}
}

func TestAmount_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(ParseAmount("123.456"))
	require.NoError(t, err)
	assert.Equal(t, `"123.46"`, string(data))

	data, err = json.Marshal(Unavailable())
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestAmount_UnmarshalJSON(t *testing.T) {
	var a Amount
	require.NoError(t, json.Unmarshal([]byte(`"12.50"`), &a))
	assert.Equal(t, "12.50", a.String())

	require.NoError(t, json.Unmarshal([]byte(`100`), &a))
	assert.Equal(t, "100.00", a.String())

	require.NoError(t, json.Unmarshal([]byte(`"abc"`), &a))
	assert.False(t, a.Valid())

	require.NoError(t, json.Unmarshal([]byte(`null`), &a))
	assert.False(t, a.Valid())
}

func TestConverter_Convert(t *testing.T) {
	conv := NewConverter(83)

	assert.Equal(t, "8300.00", conv.Convert(AmountFromFloat(100)).String())
	assert.Equal(t, "1037.50", conv.Convert(ParseAmount("12.50")).String())
}

func TestConverter_UnavailableStaysUnavailable(t *testing.T) {
	conv := NewConverter(83)

	out := conv.Convert(ParseAmount("abc"))
	assert.False(t, out.Valid())
	assert.Equal(t, "N/A", out.String())

	out = conv.Convert(Unavailable())
	assert.False(t, out.Valid())
}

func TestConverter_DefaultRate(t *testing.T) {
	conv := NewConverter(0)
	assert.Equal(t, "83.00", conv.Convert(AmountFromFloat(1)).String())

	conv = NewConverter(-1)
	assert.Equal(t, "83.00", conv.Convert(AmountFromFloat(1)).String())
}
