package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *float64
	}{
		{"currency with separators", "$1,250,000", f(1250000)},
		{"plain number", "450000", f(450000)},
		{"decimal", "0.5", f(0.5)},
		{"dollar sign only", "$", nil},
		{"empty", "", nil},
		{"non-numeric", "call for price", nil},
		{"nan literal", "NaN", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePrice(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestParseLotSize(t *testing.T) {
	parsed := ParseLotSize("0.5 acres")
	require.NotNil(t, parsed.Value)
	assert.Equal(t, 0.5, *parsed.Value)
	assert.Equal(t, "acres", parsed.Unit)

	parsed = ParseLotSize("8,712 sqft")
	require.NotNil(t, parsed.Value)
	assert.Equal(t, 8712.0, *parsed.Value)
	assert.Equal(t, "sqft", parsed.Unit)

	// Unmatched strings keep the default unit and a nil value.
	parsed = ParseLotSize("unknown")
	assert.Nil(t, parsed.Value)
	assert.Equal(t, DefaultLotUnit, parsed.Unit)

	// A bare number gets the default unit.
	parsed = ParseLotSize("5000")
	require.NotNil(t, parsed.Value)
	assert.Equal(t, 5000.0, *parsed.Value)
	assert.Equal(t, DefaultLotUnit, parsed.Unit)
}

func TestPricePerSqft(t *testing.T) {
	got := PricePerSqft(f(500000), f(2000))
	require.NotNil(t, got)
	assert.Equal(t, 250.0, *got)

	assert.Nil(t, PricePerSqft(nil, f(2000)))
	assert.Nil(t, PricePerSqft(f(500000), nil))
	assert.Nil(t, PricePerSqft(f(500000), f(0)))
}

func TestListPrice(t *testing.T) {
	// Most recent history entry wins over the static field.
	details := Payload{
		"price": 999999.0,
		"priceHistory": []interface{}{
			map[string]interface{}{"price": 450000.0},
			map[string]interface{}{"price": 400000.0},
		},
	}
	got := ListPrice(details)
	require.NotNil(t, got)
	assert.Equal(t, 450000.0, *got)

	// Empty history falls back to the static field.
	details = Payload{"price": 325000.0, "priceHistory": []interface{}{}}
	got = ListPrice(details)
	require.NotNil(t, got)
	assert.Equal(t, 325000.0, *got)

	// Nothing at all stays nil.
	assert.Nil(t, ListPrice(Payload{}))
}

func f(v float64) *float64 {
	return &v
}
