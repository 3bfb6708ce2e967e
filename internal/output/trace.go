package output

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/rpgo/withdrawal-sweep/internal/calculation"
	"github.com/rpgo/withdrawal-sweep/internal/domain"
)

// WriteTrace prints the quarter-by-quarter walk of a single starting year.
func WriteTrace(w io.Writer, result *domain.SimulationResult, quarters []calculation.QuarterSnapshot) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Year\tMonth\tPrice\tSignal\tSpend\tGap\tShares\tReserve\t")
	for _, q := range quarters {
		signal := ""
		switch {
		case q.Drawdown:
			signal = "drawdown"
		case q.Rally:
			signal = "rally"
		}
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%s\t%s\t%s\t%.2f\t%s\t\n",
			q.Year, q.Month, q.Price, signal,
			FormatCurrency(q.QuarterlySpend), FormatCurrency(q.Gap),
			q.EquityShares, FormatCurrency(q.PiggyBank))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nTerminal value: %s\n", FormatCurrency(float64(result.TerminalValue)))
	fmt.Fprintf(w, "Reserve range: %s to %s\n", FormatCurrency(result.PiggyBankLow), FormatCurrency(result.PiggyBankHigh))
	if result.Depleted {
		fmt.Fprintf(w, "Equity depleted in %d\n", result.DepletedYear)
	}
	return nil
}

// WriteSchedule prints an income schedule in year order.
func WriteSchedule(w io.Writer, schedule domain.IncomeSchedule) error {
	years := make([]int, 0, len(schedule))
	for y := range schedule {
		years = append(years, y)
	}
	sort.Ints(years)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Year\tSpend\tGuaranteed\tNet draw\t")
	for _, y := range years {
		e := schedule[y]
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t\n", y,
			FormatCurrency(e.AnnualSpend),
			FormatCurrency(e.AnnualGuaranteedIncome),
			FormatCurrency(e.AnnualSpend-e.AnnualGuaranteedIncome))
	}
	return tw.Flush()
}

// WriteSeriesReport prints the loaded price series summary and its data issues.
func WriteSeriesReport(w io.Writer, stats calculation.SeriesStatistics, points, skipped int, issues []string) error {
	fmt.Fprintln(w, "MARKET SERIES SUMMARY")
	fmt.Fprintln(w, "================================")
	fmt.Fprintf(w, "Years: %d-%d  Points: %d  Skipped lines: %d\n", stats.MinYear, stats.MaxYear, points, skipped)
	fmt.Fprintf(w, "Quarterly returns: %d  Mean: %s  Std dev: %s\n", stats.Quarters, FormatPercentage(stats.MeanReturn), FormatPercentage(stats.StdDevReturn))
	fmt.Fprintf(w, "Worst quarter: %s  Best quarter: %s\n", FormatPercentage(stats.WorstQuarter), FormatPercentage(stats.BestQuarter))
	if len(issues) == 0 {
		_, err := fmt.Fprintln(w, "No data gaps in the configured range")
		return err
	}
	fmt.Fprintln(w, "Data gaps:")
	for _, issue := range issues {
		if _, err := fmt.Fprintf(w, "  - %s\n", issue); err != nil {
			return err
		}
	}
	return nil
}
