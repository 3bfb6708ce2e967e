package main

import (
	"github.com/spf13/cobra"

	"github.com/rpgo/withdrawal-sweep/internal/output"
)

// scheduleCmd prints the escalated spend and guaranteed income per year
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Print the income schedule for one start year",
	Long: `Print the annual spend and guaranteed income from a start year to the
present, with COLA escalation and delayed pension and spousal benefits.

Example:
  rpgo-sweep schedule --config plan.yaml --start-year 2000`,
	RunE: runSchedule,
}

var scheduleStartYear int

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().IntVar(&scheduleStartYear, "start-year", 0, "Historical start year")
	_ = scheduleCmd.MarkFlagRequired("start-year")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	s, err := newSession(true)
	if err != nil {
		return err
	}
	schedule, err := s.engine.Schedule(s.config.Parameters(), scheduleStartYear)
	if err != nil {
		return err
	}
	return output.WriteSchedule(cmd.OutOrStdout(), schedule)
}
