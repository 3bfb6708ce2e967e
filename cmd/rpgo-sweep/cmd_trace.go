package main

import (
	"github.com/spf13/cobra"

	"github.com/rpgo/withdrawal-sweep/internal/output"
)

// traceCmd replays a single start year quarter by quarter
var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Show the quarter-by-quarter path of one start year",
	Long: `Replay the configured plan from one historical start year and print
every quarter's price, drawdown or rally signal, spending, gap drawn from
equity and reserve balance.

Example:
  rpgo-sweep trace --config plan.yaml --start-year 1973`,
	RunE: runTrace,
}

var traceStartYear int

func init() {
	rootCmd.AddCommand(traceCmd)

	traceCmd.Flags().IntVar(&traceStartYear, "start-year", 0, "Historical start year")
	_ = traceCmd.MarkFlagRequired("start-year")
}

func runTrace(cmd *cobra.Command, args []string) error {
	s, err := newSession(true)
	if err != nil {
		return err
	}
	result, quarters, err := s.engine.Trace(s.config.Parameters(), traceStartYear)
	if err != nil {
		return err
	}
	return output.WriteTrace(cmd.OutOrStdout(), result, quarters)
}
