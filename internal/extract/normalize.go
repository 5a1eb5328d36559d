package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"homesight/server/internal/models"
)

// DefaultLotUnit is used when a lot-size string carries no unit token.
const DefaultLotUnit = "sqft"

var lotSizePattern = regexp.MustCompile(`^\s*([0-9][0-9,]*\.?[0-9]*)\s*([A-Za-z][A-Za-z .]*)?\s*$`)

// ParsePrice parses a currency string ("$1,250,000") into its numeric
// value. Non-numeric input yields nil, never NaN, and never panics.
func ParsePrice(s string) *float64 {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return nil
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// ParseLotSize splits a free-text lot size ("0.5 acres") into a value
// and a unit. Unmatched strings leave the value nil and the unit at its
// default so callers always have something to print.
func ParseLotSize(s string) models.LotSize {
	m := lotSizePattern.FindStringSubmatch(s)
	if m == nil {
		return models.LotSize{Unit: DefaultLotUnit}
	}
	value := ParsePrice(m[1])
	if value == nil {
		return models.LotSize{Unit: DefaultLotUnit}
	}
	unit := strings.TrimSpace(m[2])
	if unit == "" {
		unit = DefaultLotUnit
	}
	return models.LotSize{Value: value, Unit: unit}
}

// ListPrice applies the most-recent-first rule: the price of the first
// priceHistory entry wins, and the static price field is consulted only
// when the history is empty.
func ListPrice(details Payload) *float64 {
	for _, entry := range details.Slice("priceHistory") {
		if p := AsPayload(entry); p != nil {
			if price := p.Float("price"); price != nil {
				return price
			}
		}
		break
	}
	return details.Float("price", "listPrice")
}

// PricePerSqft derives round(price/sqft) when both inputs are present
// and the square footage is nonzero, else nil.
func PricePerSqft(price, sqft *float64) *float64 {
	if price == nil || sqft == nil || *sqft == 0 {
		return nil
	}
	v := math.Round(*price / *sqft)
	return &v
}
