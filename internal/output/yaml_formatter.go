package output

import (
	"gopkg.in/yaml.v3"

	"github.com/rpgo/withdrawal-sweep/internal/domain"
)

// YAMLFormatter serializes the grid result as YAML.
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(result *domain.GridResult) ([]byte, error) {
	return yaml.Marshal(result)
}
