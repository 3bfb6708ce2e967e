package main

import (
	"github.com/spf13/cobra"

	"github.com/rpgo/withdrawal-sweep/internal/output"
)

// seriesCmd summarises the loaded price series
var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Summarise the price series and report data gaps",
	Long: `Load the price series, print quarterly return statistics and list the
years in the sweep range that lack a quarter-start price.

Examples:
  rpgo-sweep series --data sp500.txt
  rpgo-sweep series --config plan.yaml`,
	RunE: runSeries,
}

func init() {
	rootCmd.AddCommand(seriesCmd)
}

func runSeries(cmd *cobra.Command, args []string) error {
	s, err := newSession(false)
	if err != nil {
		return err
	}
	market := s.engine.Market
	return output.WriteSeriesReport(cmd.OutOrStdout(), market.Statistics(), market.Len(), market.Skipped(), s.engine.QualityIssues())
}
