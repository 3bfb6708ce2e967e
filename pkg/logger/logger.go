package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration
type Config struct {
	Level  string // debug, info, warn, error
	Pretty bool   // Enable pretty console output
	Output io.Writer
}

// New creates a new structured logger
func New(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339

	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: "15:04:05",
		}
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// Adapter exposes a zerolog.Logger through the printf-style Logger interface
// used by the simulation engine.
type Adapter struct {
	Log zerolog.Logger
}

// NewAdapter wraps a zerolog logger.
func NewAdapter(l zerolog.Logger) *Adapter {
	return &Adapter{Log: l}
}

func (a *Adapter) Debugf(format string, args ...any) { a.Log.Debug().Msg(fmt.Sprintf(format, args...)) }
func (a *Adapter) Infof(format string, args ...any)  { a.Log.Info().Msg(fmt.Sprintf(format, args...)) }
func (a *Adapter) Warnf(format string, args ...any)  { a.Log.Warn().Msg(fmt.Sprintf(format, args...)) }
func (a *Adapter) Errorf(format string, args ...any) { a.Log.Error().Msg(fmt.Sprintf(format, args...)) }
