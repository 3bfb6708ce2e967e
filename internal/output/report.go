package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/rpgo/withdrawal-sweep/internal/domain"
)

// lookup resolves a format name or returns an error listing the options.
func lookup(format string) (Formatter, error) {
	if f := GetFormatterByName(format); f != nil {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// WriteReport formats a grid result and writes it to w.
func WriteReport(w io.Writer, result *domain.GridResult, format string) error {
	f, err := lookup(format)
	if err != nil {
		return err
	}
	data, err := f.Format(result)
	if err != nil {
		return fmt.Errorf("%s formatter failed: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// GenerateReport writes a grid result to a timestamped file in dir and returns its path.
func GenerateReport(result *domain.GridResult, format, dir string) (string, error) {
	f, err := lookup(format)
	if err != nil {
		return "", err
	}
	return WriteFormatted(f, result, dir, Extension(f.Name()))
}
