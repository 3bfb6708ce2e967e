package calculation

import (
	"fmt"

	"github.com/rpgo/withdrawal-sweep/internal/domain"
	"github.com/rpgo/withdrawal-sweep/pkg/dateutil"
)

// HistoricalSweepRunner replays one parameter set from every feasible
// historical starting year.
type HistoricalSweepRunner struct {
	Simulator          *PortfolioSimulator
	FirstYear          int
	RetainTrajectories bool
}

// NewHistoricalSweepRunner creates a runner covering FirstYear through the
// simulator's present year.
func NewHistoricalSweepRunner(sim *PortfolioSimulator, firstYear int) *HistoricalSweepRunner {
	return &HistoricalSweepRunner{Simulator: sim, FirstYear: firstYear}
}

// Run simulates every horizon from the longest down to one year. Each starting
// year gets a freshly built schedule and portfolio state.
func (r *HistoricalSweepRunner) Run(params domain.ScenarioParameters) (*domain.SweepResult, error) {
	present := r.Simulator.PresentYear
	if r.FirstYear >= present {
		return nil, fmt.Errorf("first year %d must precede present year %d", r.FirstYear, present)
	}

	result := &domain.SweepResult{
		PresentYear:    present,
		TerminalValues: make(domain.TerminalValueRecord, present-r.FirstYear),
	}
	if r.RetainTrajectories {
		result.Trajectories = make(map[int][]int64, present-r.FirstYear)
	}

	for horizon := dateutil.YearsBetween(r.FirstYear, present); horizon > 0; horizon-- {
		startYear := present - horizon
		schedule := BuildIncomeSchedule(startYear, present, params)
		sim, err := r.Simulator.Run(startYear, params, schedule)
		if err != nil {
			return nil, fmt.Errorf("start year %d: %w", startYear, err)
		}
		result.TerminalValues[startYear] = sim.TerminalValue
		if r.RetainTrajectories {
			result.Trajectories[startYear] = sim.YearlyValues
		}
	}
	return result, nil
}
