package output

import (
	"strconv"

	money "github.com/rpgo/withdrawal-sweep/pkg/decimal"
)

// FormatCurrency formats whole dollars with thousands separators.
func FormatCurrency(amount float64) string { return money.NewMoney(amount).FormatWhole() }

// FormatThousands formats an amount as "$40k".
func FormatThousands(amount float64) string { return money.NewMoney(amount).FormatThousands() }

// FormatPercentage formats a fraction as a percentage with 2 decimals.
func FormatPercentage(fraction float64) string {
	return strconv.FormatFloat(fraction*100, 'f', 2, 64) + "%"
}

func intToString(n int) string { return strconv.Itoa(n) }

func floatToString(v float64) string { return strconv.FormatFloat(v, 'f', 0, 64) }
