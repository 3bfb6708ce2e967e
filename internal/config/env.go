package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override the sweep section.
const (
	EnvDataFile = "RPGO_DATA_FILE"
	EnvLogLevel = "RPGO_LOG_LEVEL"
	EnvWorkers  = "RPGO_WORKERS"
)

// LoadEnvFiles loads .env style files into the process environment.
// Missing files are ignored; existing variables are not overwritten.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

func (ip *InputParser) getenv(key string) string {
	if ip.Getenv == nil {
		return ""
	}
	return ip.Getenv(key)
}

func (ip *InputParser) applyEnv(config *Configuration) error {
	if v := ip.getenv(EnvDataFile); v != "" {
		config.Sweep.DataFile = v
	}
	if v := ip.getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWorkers, err)
		}
		config.Sweep.Workers = n
	}
	return nil
}

// LogLevel returns the configured log level override, or fallback.
func (ip *InputParser) LogLevel(fallback string) string {
	if v := ip.getenv(EnvLogLevel); v != "" {
		return v
	}
	return fallback
}
