package domain

import "fmt"

// TerminalValueRecord maps a historical starting year to the terminal portfolio
// value (rounded dollars) reached at the present year.
type TerminalValueRecord map[int]int64

// SimulationResult is the outcome of replaying one starting year.
type SimulationResult struct {
	StartYear int `yaml:"start_year" json:"start_year"`
	// YearlyValues[i] is the portfolio value at the start of year StartYear+i.
	// Index 0 is left empty; the simulator records from index 1.
	YearlyValues  []int64 `yaml:"yearly_values" json:"yearly_values"`
	TerminalValue int64   `yaml:"terminal_value" json:"terminal_value"`
	Depleted      bool    `yaml:"depleted" json:"depleted"`
	DepletedYear  int     `yaml:"depleted_year,omitempty" json:"depleted_year,omitempty"`
	// PiggyBankLow and PiggyBankHigh track the reserve's range across the run.
	PiggyBankLow  float64 `yaml:"piggy_bank_low" json:"piggy_bank_low"`
	PiggyBankHigh float64 `yaml:"piggy_bank_high" json:"piggy_bank_high"`
}

// SweepResult collects every starting year replayed for one parameter set.
type SweepResult struct {
	PresentYear    int                 `yaml:"present_year" json:"present_year"`
	TerminalValues TerminalValueRecord `yaml:"terminal_values" json:"terminal_values"`
	// Trajectories holds per start year value paths when retention is enabled.
	Trajectories map[int][]int64 `yaml:"trajectories,omitempty" json:"trajectories,omitempty"`
}

// GridKey identifies one (minimum spend, spend) grid cell.
type GridKey struct {
	MinSpend float64 `yaml:"min_spend" json:"min_spend"`
	Spend    float64 `yaml:"spend" json:"spend"`
}

func (k GridKey) String() string {
	return fmt.Sprintf("%.0f, %.0f", k.MinSpend, k.Spend)
}

// OutcomeStatistics summarises one grid cell across every counted starting year.
type OutcomeStatistics struct {
	Key          GridKey `yaml:"key" json:"key"`
	Fail         int     `yaml:"fail" json:"fail"`
	Bad          int     `yaml:"bad" json:"bad"`
	Good         int     `yaml:"good" json:"good"`
	Great        int     `yaml:"great" json:"great"`
	Runaway      int     `yaml:"runaway" json:"runaway"`
	CountedYears int     `yaml:"counted_years" json:"counted_years"`

	// Informational only.
	BestYear  int     `yaml:"best_year" json:"best_year"`
	WorstYear int     `yaml:"worst_year" json:"worst_year"`
	Median    float64 `yaml:"median" json:"median"`
	P10       float64 `yaml:"p10" json:"p10"`
	P90       float64 `yaml:"p90" json:"p90"`
}

// Category names accepted by OutcomeStatistics.Count.
const (
	CategoryFail    = "Fail"
	CategoryBad     = "Bad"
	CategoryGood    = "Good"
	CategoryGreat   = "Great"
	CategoryRunaway = "Runaway"
)

// Categories lists the outcome categories in display order.
var Categories = []string{CategoryFail, CategoryBad, CategoryGood, CategoryGreat, CategoryRunaway}

// Count returns the tally for a named category.
func (s OutcomeStatistics) Count(category string) (int, bool) {
	switch category {
	case CategoryFail:
		return s.Fail, true
	case CategoryBad:
		return s.Bad, true
	case CategoryGood:
		return s.Good, true
	case CategoryGreat:
		return s.Great, true
	case CategoryRunaway:
		return s.Runaway, true
	}
	return 0, false
}

// PlotPoint is one scatter-plot sample: a spend level and a terminal value.
type PlotPoint struct {
	Spend         float64 `yaml:"spend" json:"spend"`
	TerminalValue int64   `yaml:"terminal_value" json:"terminal_value"`
}

// PlotBucket holds the samples for one minimum-spend tier.
type PlotBucket struct {
	Tier     int         `yaml:"tier" json:"tier"`
	MinSpend float64     `yaml:"min_spend" json:"min_spend"`
	Points   []PlotPoint `yaml:"points" json:"points"`
}

// GridResult is the full output of a grid scan.
type GridResult struct {
	Parameters        ScenarioParameters  `yaml:"parameters" json:"parameters"`
	PresentYear       int                 `yaml:"present_year" json:"present_year"`
	SpendIncrement    float64             `yaml:"spend_increment" json:"spend_increment"`
	MinSpendIncrement float64             `yaml:"min_spend_increment" json:"min_spend_increment"`
	MinSpendTiers     []float64           `yaml:"min_spend_tiers" json:"min_spend_tiers"`
	SpendTiers        []float64           `yaml:"spend_tiers" json:"spend_tiers"`
	Statistics        []OutcomeStatistics `yaml:"statistics" json:"statistics"`
	PlotBuckets       []PlotBucket        `yaml:"plot_buckets" json:"plot_buckets"`
}

// Lookup returns the statistics for a grid cell.
func (r *GridResult) Lookup(minSpend, spend float64) (OutcomeStatistics, bool) {
	for _, s := range r.Statistics {
		if s.Key.MinSpend == minSpend && s.Key.Spend == spend {
			return s, true
		}
	}
	return OutcomeStatistics{}, false
}

// CountedYears reports the number of starting years analysed per cell.
func (r *GridResult) CountedYears() int {
	if len(r.Statistics) == 0 {
		return 0
	}
	return r.Statistics[len(r.Statistics)-1].CountedYears
}
