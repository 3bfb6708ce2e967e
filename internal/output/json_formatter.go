package output

import (
	"encoding/json"

	"github.com/rpgo/withdrawal-sweep/internal/domain"
)

// JSONFormatter serializes the grid result as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.GridResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
