package integration

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/withdrawal-sweep/internal/calculation"
	"github.com/rpgo/withdrawal-sweep/internal/config"
	"github.com/rpgo/withdrawal-sweep/internal/domain"
	"github.com/rpgo/withdrawal-sweep/internal/output"
)

const testdataDir = "../testdata"

// isolatedParser ignores the process environment.
func isolatedParser() *config.InputParser {
	return &config.InputParser{Getenv: func(string) string { return "" }}
}

func loadExample(t *testing.T) (*config.Configuration, *calculation.SweepEngine) {
	t.Helper()
	cfg, err := isolatedParser().LoadFromFile(filepath.Join(testdataDir, "example_config.yaml"))
	require.NoError(t, err)

	market, err := calculation.LoadSeriesFile(filepath.Join(testdataDir, cfg.Sweep.DataFile))
	require.NoError(t, err)
	return cfg, calculation.NewSweepEngine(market, cfg.GridOptions())
}

func TestEndToEndGridScan(t *testing.T) {
	cfg, engine := loadExample(t)
	assert.Empty(t, engine.QualityIssues())

	params := cfg.Parameters()
	assert.Equal(t, 40000.0, params.Spend)
	assert.Equal(t, 28000.0, params.MinSpend)
	assert.Equal(t, 900000.0, params.EquityAmount())

	result, err := engine.RunGrid(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, []float64{28000, 32000, 36000, 40000}, result.MinSpendTiers)
	assert.Equal(t, []float64{40000, 45000, 50000, 55000, 60000, 65000, 70000}, result.SpendTiers)
	require.Len(t, result.Statistics, 28)

	// 1970 through 2014 have horizons above nine years.
	for _, s := range result.Statistics {
		assert.Equal(t, 45, s.CountedYears, s.Key.String())
		assert.GreaterOrEqual(t, s.Good, s.Great)
		assert.GreaterOrEqual(t, s.Great, s.Runaway)
		assert.LessOrEqual(t, s.Bad+s.Good, s.CountedYears)
		assert.LessOrEqual(t, s.P10, s.Median)
		assert.LessOrEqual(t, s.Median, s.P90)
	}
	require.Len(t, result.PlotBuckets, 4)
	for _, b := range result.PlotBuckets {
		assert.Len(t, b.Points, 7*45)
	}

	// Higher spend at the same floor never leaves more money behind on a
	// rising series.
	low, ok := result.Lookup(28000, 40000)
	require.True(t, ok)
	high, ok := result.Lookup(28000, 70000)
	require.True(t, ok)
	assert.GreaterOrEqual(t, low.Median, high.Median)
}

func TestEndToEndFormatters(t *testing.T) {
	cfg, engine := loadExample(t)
	result, err := engine.RunGrid(context.Background(), cfg.Parameters())
	require.NoError(t, err)

	for _, name := range output.AvailableFormatterNames() {
		var buf bytes.Buffer
		require.NoError(t, output.WriteReport(&buf, result, name), name)
		assert.NotEmpty(t, buf.Bytes(), name)
	}

	dir := t.TempDir()
	path, err := output.GenerateReport(result, "plot-csv", dir)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 1+4*7*45)
}

func TestEndToEndTraceAndSchedule(t *testing.T) {
	cfg, engine := loadExample(t)
	params := cfg.Parameters()

	schedule, err := engine.Schedule(params, 2000)
	require.NoError(t, err)
	assert.Len(t, schedule, 25)
	assert.Equal(t, 0.0, schedule[2004].AnnualGuaranteedIncome)
	assert.Equal(t, 12000.0, schedule[2005].AnnualGuaranteedIncome)
	assert.InDelta(t, 12300.0, schedule[2006].AnnualGuaranteedIncome, 1e-6)

	result, quarters, err := engine.Trace(params, 2000)
	require.NoError(t, err)
	assert.Len(t, quarters, 24*4)
	assert.Equal(t, 2000, quarters[0].Year)
	assert.Equal(t, "Jan", quarters[0].Month)
	assert.GreaterOrEqual(t, result.PiggyBankLow, 0.0)
	assert.LessOrEqual(t, result.PiggyBankHigh, 2*params.PiggyBankTarget)

	var buf bytes.Buffer
	require.NoError(t, output.WriteTrace(&buf, result, quarters))
	assert.Contains(t, buf.String(), "Terminal value:")
}

// writeScenario writes a series with an optional missing quarter and a
// config pointing at it.
func writeScenario(t *testing.T, dropYear int, dropMonth string) string {
	t.Helper()
	dir := t.TempDir()

	var series strings.Builder
	for y := 1990; y <= 2024; y++ {
		for q, m := range []string{"Jan", "Apr", "Jul", "Oct"} {
			if y == dropYear && m == dropMonth {
				continue
			}
			fmt.Fprintf(&series, "%s%d %.2f\n", m, y, 300+float64((y*7+q*13)%40))
		}
	}
	seriesPath := filepath.Join(dir, "series.txt")
	require.NoError(t, os.WriteFile(seriesPath, []byte(series.String()), 0644))

	cfg := fmt.Sprintf(`scenario:
  spend: 50
  min_spend: 35
  balance: 1200
  cash_target: 50
  cola: 2
sweep:
  data_file: %s
  present_year: 2024
  first_year: 1990
  workers: 3
`, seriesPath)
	cfgPath := filepath.Join(dir, "plan.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0644))
	return cfgPath
}

func TestEndToEndMissingQuarterAbortsGrid(t *testing.T) {
	cfgPath := writeScenario(t, 2001, "Jul")
	cfg, err := isolatedParser().LoadFromFile(cfgPath)
	require.NoError(t, err)

	market, err := calculation.LoadSeriesFile(cfg.Sweep.DataFile)
	require.NoError(t, err)
	engine := calculation.NewSweepEngine(market, cfg.GridOptions())
	assert.Equal(t, []string{"year 2001 is missing at least one quarter-start price"}, engine.QualityIssues())

	_, err = engine.RunGrid(context.Background(), cfg.Parameters())
	require.Error(t, err)
	var missing *domain.MissingDataError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, 2001, missing.Year)
	assert.Equal(t, "Jul", missing.Month)
}

func TestEndToEndEnvironmentOverride(t *testing.T) {
	cfgPath := writeScenario(t, 0, "")
	altSeries := filepath.Join(filepath.Dir(writeScenario(t, 0, "")), "series.txt")

	env := map[string]string{config.EnvDataFile: altSeries, config.EnvWorkers: "2"}
	parser := &config.InputParser{Getenv: func(k string) string { return env[k] }}
	cfg, err := parser.LoadFromFile(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, altSeries, cfg.Sweep.DataFile)
	assert.Equal(t, 2, cfg.GridOptions().Workers)

	market, err := calculation.LoadSeriesFile(cfg.Sweep.DataFile)
	require.NoError(t, err)
	result, err := calculation.NewSweepEngine(market, cfg.GridOptions()).RunGrid(context.Background(), cfg.Parameters())
	require.NoError(t, err)
	assert.Equal(t, 2024-1990-9, result.CountedYears())
}
