package quote

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		raw    string
		want   int
		wantOK bool
	}{
		{"3", 3, true},
		{" 12 ", 12, true},
		{"", 1, false},
		{"abc", 1, false},
		{"2.5", 1, false},
		{"0", 1, false},
		{"-4", 1, false},
	}
	for _, tt := range tests {
		f := ParseQuantity(tt.raw)
		assert.Equal(t, tt.want, f.Value, "raw %q", tt.raw)
		assert.Equal(t, tt.wantOK, f.OK(), "raw %q", tt.raw)
		assert.Equal(t, tt.raw, f.Raw)
	}
}

func TestParseAmount(t *testing.T) {
	f := ParseAmount("31160.50")
	require.True(t, f.OK())
	assertDec(t, "31160.5", f.Value)

	f = ParseAmount("twelve")
	assert.ErrorIs(t, f.Err, ErrNotNumeric)
	assert.True(t, f.Value.IsZero())

	f = ParseAmount("")
	assert.ErrorIs(t, f.Err, ErrMissing)

	f = ParseAmount("-1")
	assert.ErrorIs(t, f.Err, ErrOutOfRange)
	assert.True(t, f.Value.IsZero())
}

func TestParseAmountBounds(t *testing.T) {
	tests := []struct {
		raw    string
		wantOK bool
	}{
		{"999999999999999.99", true},
		{"1000000000000000", false},
		{"5000000000000000000", false},
		{"1e14", true},
		{"1e15", false},
		{"1e200000", false},
		{"0.000000000001", true},
		{"0.0000000000001", false},
		{"1e-200000", false},
		{"0e200000", true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			f := ParseAmount(tt.raw)
			assert.Equal(t, tt.wantOK, f.OK(), "err %v", f.Err)
			if !tt.wantOK {
				assert.ErrorIs(t, f.Err, ErrOutOfRange)
				assert.True(t, f.Value.IsZero())
			}
		})
	}
}

func TestParsePercentRejectsHugeExponentUnderPassthrough(t *testing.T) {
	f := ParsePercent("1e200000", PercentPassthrough)
	assert.ErrorIs(t, f.Err, ErrOutOfRange)
	assert.True(t, f.Value.IsZero())
}

func TestParsePercentUsesPolicy(t *testing.T) {
	f := ParsePercent("150", PercentPassthrough)
	require.True(t, f.OK())
	assertDec(t, "150", f.Value)

	f = ParsePercent("150", PercentClamp)
	require.True(t, f.OK())
	assertDec(t, "100", f.Value)

	f = ParsePercent("150", PercentReject)
	assert.ErrorIs(t, f.Err, ErrOutOfRange)
	assert.True(t, f.Value.IsZero())

	f = ParsePercent("x", PercentClamp)
	assert.ErrorIs(t, f.Err, ErrNotNumeric)
}

func TestNumericInputUnmarshal(t *testing.T) {
	var body struct {
		A NumericInput `json:"a"`
		B NumericInput `json:"b"`
		C NumericInput `json:"c"`
		D NumericInput `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 2, "b": "12.5", "c": null}`), &body))

	assert.True(t, body.A.IsSet())
	assert.Equal(t, "2", body.A.String())
	assert.Equal(t, "12.5", body.B.String())
	assert.True(t, body.C.IsSet())
	assert.Equal(t, "", body.C.String())
	assert.False(t, body.D.IsSet())
}

func TestFieldErrorsCheck(t *testing.T) {
	fe := FieldErrors{}
	assert.True(t, fe.Check("quantity", nil))
	assert.False(t, fe.Check("unit_price", ErrMissing))
	assert.Equal(t, FieldErrors{"unit_price": "value is required"}, fe)
}
