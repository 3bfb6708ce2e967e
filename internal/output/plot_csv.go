package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rpgo/withdrawal-sweep/internal/domain"
)

// PlotCSVExporter writes the scatter plot samples, one row per point, grouped
// by minimum spend tier.
type PlotCSVExporter struct{}

func (p PlotCSVExporter) Name() string { return "plot-csv" }

func (p PlotCSVExporter) Format(result *domain.GridResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Tier", "MinSpend", "Spend", "TerminalValue"}); err != nil {
		return nil, err
	}
	for _, bucket := range result.PlotBuckets {
		for _, pt := range bucket.Points {
			row := []string{
				intToString(bucket.Tier),
				floatToString(bucket.MinSpend),
				floatToString(pt.Spend),
				strconv.FormatInt(pt.TerminalValue, 10),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
