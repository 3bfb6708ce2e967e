package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rpgo/withdrawal-sweep/internal/calculation"
	"github.com/rpgo/withdrawal-sweep/internal/config"
	"github.com/rpgo/withdrawal-sweep/pkg/logger"
)

// Persistent flags shared by every subcommand.
var (
	configPath string
	dataPath   string
	logLevel   string
	prettyLogs bool
	envFiles   []string
)

// rootCmd is the base command for the sweep CLI
var rootCmd = &cobra.Command{
	Use:   "rpgo-sweep",
	Short: "Historical withdrawal sweep for retirement spending plans",
	Long: `rpgo-sweep replays a retirement spending plan against every historical
starting year of an equity index, trimming spending during market pullbacks
and smoothing shortfalls with a cash reserve, then tallies the outcomes over
a grid of spending levels.

Example usage:
  rpgo-sweep grid --config plan.yaml
  rpgo-sweep grid --config plan.yaml --format csv --output grid.csv
  rpgo-sweep trace --config plan.yaml --start-year 1973
  rpgo-sweep schedule --config plan.yaml --start-year 2000
  rpgo-sweep series --data sp500.txt`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Path to the scenario YAML file")
	pf.StringVar(&dataPath, "data", "", "Price series file (overrides sweep.data_file)")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default from RPGO_LOG_LEVEL or info)")
	pf.BoolVar(&prettyLogs, "pretty", false, "Human readable console logs")
	pf.StringSliceVar(&envFiles, "env-file", nil, "Dotenv files to load before reading the environment (default .env)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "Error: ")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// session bundles what every subcommand needs after startup.
type session struct {
	config *config.Configuration
	engine *calculation.SweepEngine
	log    zerolog.Logger
}

// newSession loads env files, the scenario config and the price series.
// The config file is optional only when requireConfig is false.
func newSession(requireConfig bool) (*session, error) {
	if err := config.LoadEnvFiles(envFiles...); err != nil {
		return nil, err
	}
	parser := config.NewInputParser()
	level := logLevel
	if level == "" {
		level = parser.LogLevel("info")
	}
	log := logger.New(logger.Config{Level: level, Pretty: prettyLogs})

	var cfg *config.Configuration
	switch {
	case configPath != "":
		loaded, err := parser.LoadFromFile(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case requireConfig:
		return nil, errors.New("--config is required")
	default:
		cfg = &config.Configuration{}
		opts := calculation.DefaultGridOptions()
		cfg.Sweep.PresentYear = opts.PresentYear
		cfg.Sweep.FirstYear = opts.FirstYear
		cfg.Sweep.Workers = opts.Workers
		cfg.Sweep.DataFile = os.Getenv(config.EnvDataFile)
	}
	if dataPath != "" {
		cfg.Sweep.DataFile = dataPath
	}
	dataFile, err := resolveDataFile(cfg.Sweep.DataFile)
	if err != nil {
		return nil, err
	}

	market, err := calculation.LoadSeriesFile(dataFile)
	if err != nil {
		return nil, err
	}
	minYear, maxYear := market.YearRange()
	log.Info().
		Str("file", dataFile).
		Int("points", market.Len()).
		Int("skipped", market.Skipped()).
		Int("min_year", minYear).
		Int("max_year", maxYear).
		Msg("loaded price series")

	engine := calculation.NewSweepEngine(market, cfg.GridOptions())
	engine.SetLogger(logger.NewAdapter(log))
	return &session{config: cfg, engine: engine, log: log}, nil
}

// resolveDataFile finds the series file, trying the config file's
// directory for relative paths that do not exist in the working directory.
func resolveDataFile(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("no price series configured (set sweep.data_file, --data or %s)", config.EnvDataFile)
	}
	if filepath.IsAbs(path) || configPath == "" {
		return path, nil
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	return filepath.Join(filepath.Dir(configPath), path), nil
}
