package domain

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Unavailable is the marker rendered for values that could not be
// determined. It is distinct from zero and from an empty string.
const Unavailable = "unavailable"

// Amount is an optional monetary value. The zero value is "unavailable".
type Amount struct {
	value decimal.Decimal
	valid bool
}

// AmountOf wraps a decimal into a present Amount.
func AmountOf(v decimal.Decimal) Amount {
	return Amount{value: v, valid: true}
}

// AmountFromFloat builds a present Amount from a float64.
func AmountFromFloat(f float64) Amount {
	return AmountOf(decimal.NewFromFloat(f))
}

// ParseAmount coerces a string into an Amount. Sentinels, empty strings and
// values that do not parse as a number all yield an unavailable Amount;
// malformed upstream data never produces an error.
func ParseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, Unavailable) || strings.EqualFold(s, "N/A") {
		return Amount{}
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}
	}
	return AmountOf(v)
}

// Valid reports whether the amount carries a real value.
func (a Amount) Valid() bool { return a.valid }

// Decimal returns the underlying value. Only meaningful when Valid.
func (a Amount) Decimal() decimal.Decimal { return a.value }

// Display renders the amount for export: two decimal places, or the
// unavailable marker.
func (a Amount) Display() string {
	if !a.valid {
		return Unavailable
	}
	return a.value.StringFixed(2)
}

// MarshalJSON emits the numeric value, or the unavailable marker as a string.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.valid {
		return json.Marshal(Unavailable)
	}
	return []byte(a.value.String()), nil
}

// UnmarshalJSON accepts a JSON number, a numeric string, null, or a sentinel
// string. Anything that cannot be coerced becomes unavailable.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*a = Amount{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			*a = Amount{}
			return nil
		}
		*a = ParseAmount(str)
		return nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		*a = Amount{}
		return nil
	}
	*a = AmountOf(v)
	return nil
}
