package domain

import "fmt"

// MissingDataError reports a (year, month) price absent from the market history.
type MissingDataError struct {
	Year  int
	Month string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("missing market data for %s %d", e.Month, e.Year)
}

// InvalidParameterError reports a scenario parameter outside its domain.
type InvalidParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%g: %s", e.Field, e.Value, e.Reason)
}
