package calculation

import (
	"sort"

	"github.com/rpgo/withdrawal-sweep/internal/domain"
	"github.com/rpgo/withdrawal-sweep/pkg/dateutil"
	"gonum.org/v1/gonum/stat"
)

// OutcomeClassifier buckets terminal values into outcome categories.
type OutcomeClassifier struct {
	PresentYear int
}

// NewOutcomeClassifier creates a classifier measuring horizons against presentYear.
func NewOutcomeClassifier(presentYear int) OutcomeClassifier {
	return OutcomeClassifier{PresentYear: presentYear}
}

// Counted reports whether a starting year's horizon is long enough to classify.
func (c OutcomeClassifier) Counted(startYear int) bool {
	return c.horizon(startYear) > MinCountedHorizon
}

func (c OutcomeClassifier) horizon(startYear int) int {
	return dateutil.YearsBetween(startYear, c.PresentYear)
}

// FailCount returns how many fail rules a terminal value trips at a horizon.
func FailCount(value int64, horizon int) int {
	n := 0
	for _, rule := range FailRules {
		if float64(value) < rule.Below && horizon < rule.HorizonUnder {
			n++
		}
	}
	return n
}

// Classify tallies every counted starting year into a statistics record.
func (c OutcomeClassifier) Classify(key domain.GridKey, originalBalance float64, values domain.TerminalValueRecord) domain.OutcomeStatistics {
	stats := domain.OutcomeStatistics{Key: key}

	years := make([]int, 0, len(values))
	for year := range values {
		if c.Counted(year) {
			years = append(years, year)
		}
	}
	sort.Ints(years)

	samples := make([]float64, 0, len(years))
	for i, year := range years {
		v := values[year]
		fv := float64(v)
		stats.CountedYears++
		stats.Fail += FailCount(v, c.horizon(year))

		if fv < originalBalance*BadMultiple {
			stats.Bad++
		}
		if fv > originalBalance {
			stats.Good++
		}
		if fv > originalBalance*GreatMultiple {
			stats.Great++
		}
		if fv > originalBalance*RunawayMultiple {
			stats.Runaway++
		}

		if i == 0 || v > values[stats.BestYear] {
			stats.BestYear = year
		}
		if i == 0 || v < values[stats.WorstYear] {
			stats.WorstYear = year
		}
		samples = append(samples, fv)
	}

	if len(samples) > 0 {
		sort.Float64s(samples)
		stats.Median = stat.Quantile(0.5, stat.Empirical, samples, nil)
		stats.P10 = stat.Quantile(0.1, stat.Empirical, samples, nil)
		stats.P90 = stat.Quantile(0.9, stat.Empirical, samples, nil)
	}
	return stats
}
