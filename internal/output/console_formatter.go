package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/withdrawal-sweep/internal/domain"
)

// categoryCaptions describes each outcome level in table headings.
var categoryCaptions = map[string]string{
	domain.CategoryFail:    "tripped a failure threshold for its horizon",
	domain.CategoryBad:     "ended below 0.7x the original balance",
	domain.CategoryGood:    "ended above the original balance",
	domain.CategoryGreat:   "ended above 2x the original balance",
	domain.CategoryRunaway: "ended above 4x the original balance",
}

// ConsoleFormatter renders one level table per outcome category. Rows are
// spend tiers and columns are minimum spend tiers. Category limits the output
// to a single table.
type ConsoleFormatter struct {
	Category string
}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.GridResult) ([]byte, error) {
	categories := domain.Categories
	if c.Category != "" {
		if _, ok := categoryCaptions[c.Category]; !ok {
			return nil, fmt.Errorf("unknown outcome category %q", c.Category)
		}
		categories = []string{c.Category}
	}

	var buf bytes.Buffer
	p := result.Parameters
	fmt.Fprintln(&buf, "WITHDRAWAL SWEEP SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Balance: %s  Bonds: %s at %s\n", FormatCurrency(p.OriginalBalance), FormatCurrency(p.BondAmount), FormatPercentage(p.BondYield))
	fmt.Fprintf(&buf, "Reserve: %s (target %s)  COLA: %s\n", FormatCurrency(p.PiggyBankInit), FormatCurrency(p.PiggyBankTarget), FormatPercentage(p.COLA))
	fmt.Fprintf(&buf, "Start years counted: %d (present year %d)\n", result.CountedYears(), result.PresentYear)
	fmt.Fprintf(&buf, "Spend step: %s  Minimum spend step: %s\n", FormatCurrency(result.SpendIncrement), FormatCurrency(result.MinSpendIncrement))

	for _, category := range categories {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "%s: start years that %s\n", category, categoryCaptions[category])
		writeLevelTable(&buf, result, category)
	}
	return buf.Bytes(), nil
}

func writeLevelTable(buf *bytes.Buffer, result *domain.GridResult, category string) {
	fmt.Fprintf(buf, "%-10s", "Spend")
	for _, minSpend := range result.MinSpendTiers {
		fmt.Fprintf(buf, "%8s", FormatThousands(minSpend))
	}
	fmt.Fprintln(buf)
	for _, spend := range result.SpendTiers {
		fmt.Fprintf(buf, "%-10s", FormatThousands(spend))
		for _, minSpend := range result.MinSpendTiers {
			cell := "-"
			if stats, ok := result.Lookup(minSpend, spend); ok {
				n, _ := stats.Count(category)
				cell = intToString(n)
			}
			fmt.Fprintf(buf, "%8s", cell)
		}
		fmt.Fprintln(buf)
	}
}
