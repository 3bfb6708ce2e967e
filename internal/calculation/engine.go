package calculation

import (
	"context"
	"fmt"

	"github.com/rpgo/withdrawal-sweep/internal/domain"
)

// SweepEngine orchestrates grid scans, single-start traces and schedule
// previews over one loaded market history.
type SweepEngine struct {
	Market  *MarketHistoryStore
	Options GridOptions
	Logger  Logger
}

// NewSweepEngine creates an engine over a loaded market history.
func NewSweepEngine(market *MarketHistoryStore, opts GridOptions) *SweepEngine {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	return &SweepEngine{
		Market:  market,
		Options: opts,
		Logger:  NopLogger{},
	}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (e *SweepEngine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// QualityIssues lists data gaps that would abort a scan over the configured range.
func (e *SweepEngine) QualityIssues() []string {
	var issues []string
	for _, year := range e.Market.IncompleteYears(e.Options.FirstYear, e.Options.PresentYear-1) {
		issues = append(issues, fmt.Sprintf("year %d is missing at least one quarter-start price", year))
	}
	if _, err := e.Market.PriceAt(e.Options.PresentYear, "Jan"); err != nil {
		issues = append(issues, fmt.Sprintf("present year %d has no Jan price", e.Options.PresentYear))
	}
	return issues
}

// RunGrid validates the parameters and scans the full spend grid.
func (e *SweepEngine) RunGrid(ctx context.Context, params domain.ScenarioParameters) (*domain.GridResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	for _, issue := range e.QualityIssues() {
		e.Logger.Warnf("market data: %s", issue)
	}

	scanner := NewGridScanner(e.Market, e.Options)
	scanner.SetLogger(e.Logger)
	e.Logger.Infof("scanning %d cells over start years %d-%d", MinSpendTierCount*SpendTierCount, e.Options.FirstYear, e.Options.PresentYear-1)

	result, err := scanner.Scan(ctx, params)
	if err != nil {
		e.Logger.Errorf("grid scan failed: %v", err)
		return nil, fmt.Errorf("grid scan failed: %w", err)
	}
	return result, nil
}

// Schedule returns the income schedule for a starting year.
func (e *SweepEngine) Schedule(params domain.ScenarioParameters, startYear int) (domain.IncomeSchedule, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if startYear >= e.Options.PresentYear {
		return nil, fmt.Errorf("start year %d must precede present year %d", startYear, e.Options.PresentYear)
	}
	return BuildIncomeSchedule(startYear, e.Options.PresentYear, params), nil
}

// Trace simulates one starting year and returns its result together with
// every quarter's snapshot.
func (e *SweepEngine) Trace(params domain.ScenarioParameters, startYear int) (*domain.SimulationResult, []QuarterSnapshot, error) {
	schedule, err := e.Schedule(params, startYear)
	if err != nil {
		return nil, nil, err
	}
	var quarters []QuarterSnapshot
	sim := NewPortfolioSimulator(e.Market, e.Options.PresentYear)
	sim.SetLogger(e.Logger)
	sim.OnQuarter = func(s QuarterSnapshot) { quarters = append(quarters, s) }

	result, err := sim.Run(startYear, params, schedule)
	if err != nil {
		return nil, nil, fmt.Errorf("trace %d: %w", startYear, err)
	}
	return result, quarters, nil
}
