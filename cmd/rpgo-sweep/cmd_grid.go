package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rpgo/withdrawal-sweep/internal/domain"
	"github.com/rpgo/withdrawal-sweep/internal/output"
)

// gridCmd runs the full spend grid scan
var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Scan the 4x7 spend grid across every historical start year",
	Long: `Scan every (minimum spend, spend) cell of the grid, replaying the plan
from each historical start year and tallying Fail/Bad/Good/Great/Runaway
outcomes.

Examples:
  rpgo-sweep grid --config plan.yaml
  rpgo-sweep grid --config plan.yaml --category Good
  rpgo-sweep grid --config plan.yaml --format plot-csv --output scatter.csv`,
	RunE: runGrid,
}

// Grid command flags
var (
	gridFormat   string
	gridCategory string
	gridOutput   string
)

func init() {
	rootCmd.AddCommand(gridCmd)

	gridCmd.Flags().StringVar(&gridFormat, "format", "console", "Output format: "+strings.Join(output.AvailableFormatterNames(), ", "))
	gridCmd.Flags().StringVar(&gridCategory, "category", "", "Console table category: "+strings.Join(domain.Categories, ", ")+" (default all)")
	gridCmd.Flags().StringVar(&gridOutput, "output", "", "Output file (default: stdout)")
}

func runGrid(cmd *cobra.Command, args []string) error {
	category, err := parseCategory(gridCategory)
	if err != nil {
		return err
	}
	s, err := newSession(true)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := s.engine.RunGrid(ctx, s.config.Parameters())
	if err != nil {
		return err
	}
	s.log.Info().Int("cells", len(result.Statistics)).Int("counted_years", result.CountedYears()).Msg("grid scan complete")

	if gridOutput != "" {
		return writeGridFile(gridOutput, result, gridFormat, category)
	}
	return writeGridReport(cmd.OutOrStdout(), result, gridFormat, category)
}

// writeGridFile writes the report to path. A failed close is reported when
// the write itself succeeded.
func writeGridFile(path string, result *domain.GridResult, format, category string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	return writeGridReport(f, result, format, category)
}

func writeGridReport(w io.Writer, result *domain.GridResult, format, category string) error {
	if output.NormalizeFormatName(format) == "console" && category != "" {
		data, err := output.ConsoleFormatter{Category: category}.Format(result)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	return output.WriteReport(w, result, format)
}

// parseCategory matches a category name case-insensitively.
func parseCategory(name string) (string, error) {
	if name == "" {
		return "", nil
	}
	for _, c := range domain.Categories {
		if strings.EqualFold(c, name) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q, expected one of %s", name, strings.Join(domain.Categories, ", "))
}
