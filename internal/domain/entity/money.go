package entity

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a cost value as reported by the billing API. Upstream delivers
// amounts as decimal-formatted strings; anything that does not parse is carried
// as the distinct "unavailable" state rather than being coerced to zero.
type Amount struct {
	value decimal.Decimal
	valid bool
}

// ParseAmount is the single ingestion point for upstream cost values. The
// parsed value is rounded to two decimal places here and never re-rounded
// downstream.
func ParseAmount(s string) Amount {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Amount{}
	}
	return Amount{value: d.Round(2), valid: true}
}

// AmountFromFloat builds an Amount from a native number, rounded to two
// decimal places.
func AmountFromFloat(f float64) Amount {
	return Amount{value: decimal.NewFromFloat(f).Round(2), valid: true}
}

// Unavailable returns the Amount representing a value that could not be
// computed or parsed.
func Unavailable() Amount {
	return Amount{}
}

// Valid reports whether the amount holds a usable value.
func (a Amount) Valid() bool {
	return a.valid
}

// Decimal returns the underlying decimal value. Zero when unavailable.
func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

// Mul multiplies a valid amount by the given factor, rounding the result to
// two decimal places. Unavailable amounts stay unavailable.
func (a Amount) Mul(factor decimal.Decimal) Amount {
	if !a.valid {
		return Amount{}
	}
	return Amount{value: a.value.Mul(factor).Round(2), valid: true}
}

// String renders the amount with exactly two fractional digits, or "N/A" when
// the value is unavailable. This is the display format used by the exporters
// and the terminal report.
func (a Amount) String() string {
	if !a.valid {
		return "N/A"
	}
	return a.value.StringFixed(2)
}

// MarshalJSON encodes valid amounts as two-decimal strings (the contract the
// frontend charts consume) and unavailable amounts as null.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.valid {
		return []byte("null"), nil
	}
	return json.Marshal(a.value.StringFixed(2))
}

// UnmarshalJSON accepts both string-encoded and numeric cost values, matching
// what the upstream API and older clients produce. Invalid input becomes
// unavailable, never zero.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = ParseAmount(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*a = AmountFromFloat(f)
		return nil
	}
	*a = Amount{}
	return nil
}

// Converter applies the fixed USD-to-secondary-currency rate used for the dual
// display columns. The rate is configuration, not a constant buried in the
// presentation layer.
type Converter struct {
	rate decimal.Decimal
}

// DefaultCurrencyRate approximates the USD to INR exchange rate.
const DefaultCurrencyRate = 83.0

// NewConverter builds a Converter for the given rate. Non-positive rates fall
// back to the default.
func NewConverter(rate float64) Converter {
	if rate <= 0 {
		rate = DefaultCurrencyRate
	}
	return Converter{rate: decimal.NewFromFloat(rate)}
}

// Convert multiplies a USD amount into the secondary currency. An unavailable
// input yields an unavailable output.
func (c Converter) Convert(a Amount) Amount {
	return a.Mul(c.rate)
}
