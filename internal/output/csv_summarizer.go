package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/withdrawal-sweep/internal/domain"
)

// CSVSummarizer writes one row of outcome counts per grid cell.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(result *domain.GridResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"MinSpend", "Spend", "Fail", "Bad", "Good", "Great", "Runaway", "CountedYears", "BestYear", "WorstYear", "Median", "P10", "P90"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, s := range result.Statistics {
		row := []string{
			floatToString(s.Key.MinSpend),
			floatToString(s.Key.Spend),
			intToString(s.Fail),
			intToString(s.Bad),
			intToString(s.Good),
			intToString(s.Great),
			intToString(s.Runaway),
			intToString(s.CountedYears),
			intToString(s.BestYear),
			intToString(s.WorstYear),
			floatToString(s.Median),
			floatToString(s.P10),
			floatToString(s.P90),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
