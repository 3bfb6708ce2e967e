package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	thousand = decimal.NewFromInt(1000)
	hundred  = decimal.NewFromInt(100)
)

// Money represents a monetary amount with exact decimal precision
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// FromThousands converts an amount expressed in thousands of dollars.
func FromThousands(d decimal.Decimal) Money {
	return Money{d.Mul(thousand)}
}

// RateFromPercent converts a whole-number percentage (3 == 3%) to a fraction.
func RateFromPercent(d decimal.Decimal) decimal.Decimal {
	return d.Div(hundred)
}

// Float64 returns the nearest float64 value.
func (m Money) Float64() float64 {
	return m.Decimal.InexactFloat64()
}

// String returns the string representation with cents
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// FormatWhole formats as whole dollars with thousands separators, e.g. "$1,250,000".
func (m Money) FormatWhole() string {
	s := m.Decimal.Round(0).StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-$" + b.String()
	}
	return "$" + b.String()
}

// FormatThousands formats as a rounded "k" amount, e.g. "$40k".
func (m Money) FormatThousands() string {
	return "$" + m.Decimal.Div(thousand).Round(0).StringFixed(0) + "k"
}
