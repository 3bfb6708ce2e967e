package calculation

import (
	"fmt"
	"math"

	"github.com/rpgo/withdrawal-sweep/internal/domain"
	"github.com/rpgo/withdrawal-sweep/pkg/dateutil"
)

// PortfolioState is the mutable state of one simulation run. It is created
// fresh for every starting year and never shared.
type PortfolioState struct {
	EquityShares float64
	BondAmount   float64
	PiggyBank    float64
}

// yearState carries the quarterly budget for one calendar year. Spending cuts
// applied in one quarter persist into the later quarters of the same year.
type yearState struct {
	quarterlySpend  float64
	quarterlyIncome float64
}

// QuarterSnapshot describes one simulated quarter after all adjustments.
type QuarterSnapshot struct {
	Year           int
	Month          string
	Price          float64
	Drawdown       bool
	Rally          bool
	QuarterlySpend float64
	Gap            float64
	EquityShares   float64
	PiggyBank      float64
	// Depleted is set when the quarter's withdrawal left negative equity.
	Depleted bool
}

// PortfolioSimulator replays a spending plan against history from one
// starting year to the present.
type PortfolioSimulator struct {
	Prices      PriceSource
	PresentYear int
	Logger      Logger
	// OnQuarter, when set, observes every simulated quarter.
	OnQuarter func(QuarterSnapshot)
}

// NewPortfolioSimulator creates a simulator over the given price source.
func NewPortfolioSimulator(prices PriceSource, presentYear int) *PortfolioSimulator {
	return &PortfolioSimulator{
		Prices:      prices,
		PresentYear: presentYear,
		Logger:      NopLogger{},
	}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (ps *PortfolioSimulator) SetLogger(l Logger) {
	if l == nil {
		ps.Logger = NopLogger{}
		return
	}
	ps.Logger = l
}

// Run simulates startYear through PresentYear-1 quarter by quarter and returns
// the year-indexed value trajectory and terminal value.
func (ps *PortfolioSimulator) Run(startYear int, params domain.ScenarioParameters, schedule domain.IncomeSchedule) (*domain.SimulationResult, error) {
	if startYear >= ps.PresentYear {
		return nil, fmt.Errorf("start year %d must precede present year %d", startYear, ps.PresentYear)
	}
	logger := ps.Logger
	if logger == nil {
		logger = NopLogger{}
	}

	startPrice, err := ps.Prices.PriceAt(startYear, dateutil.QuarterMonths[0])
	if err != nil {
		return nil, err
	}

	state := &PortfolioState{
		EquityShares: params.EquityAmount() / startPrice,
		BondAmount:   params.BondAmount,
		PiggyBank:    params.PiggyBankInit,
	}
	window := NewTrailingWindow(startPrice)
	buffer := NewBufferController(params.PiggyBankCap())
	spread := (params.Spend - params.MinSpend) / QuartersPerYear

	result := &domain.SimulationResult{
		StartYear:     startYear,
		YearlyValues:  make([]int64, ps.PresentYear-startYear+1),
		PiggyBankLow:  state.PiggyBank,
		PiggyBankHigh: state.PiggyBank,
	}

	for year := startYear; year < ps.PresentYear; year++ {
		income, ok := schedule[year]
		if !ok {
			return nil, fmt.Errorf("income schedule has no entry for %d", year)
		}
		ys := &yearState{
			quarterlySpend:  income.AnnualSpend / QuartersPerYear,
			quarterlyIncome: (state.BondAmount*params.BondYield + income.AnnualGuaranteedIncome) / QuartersPerYear,
		}

		for _, month := range dateutil.QuarterMonths {
			price, err := ps.Prices.PriceAt(year, month)
			if err != nil {
				return nil, err
			}
			snap := ps.stepQuarter(state, ys, &window, buffer, spread, price)
			result.PiggyBankLow = math.Min(result.PiggyBankLow, state.PiggyBank)
			result.PiggyBankHigh = math.Max(result.PiggyBankHigh, state.PiggyBank)
			if snap.Depleted && !result.Depleted {
				result.Depleted = true
				result.DepletedYear = year
				logger.Warnf("equity depleted in %s %d for start year %d (shares %.2f)", month, year, startYear, state.EquityShares)
			}
			if ps.OnQuarter != nil {
				snap.Year, snap.Month = year, month
				ps.OnQuarter(snap)
			}
		}

		nextPrice, err := ps.Prices.PriceAt(year+1, dateutil.QuarterMonths[0])
		if err != nil {
			return nil, err
		}
		value := int64(math.Round(state.EquityShares*nextPrice + state.BondAmount))
		result.YearlyValues[year-startYear+1] = value
	}

	result.TerminalValue = result.YearlyValues[len(result.YearlyValues)-1]
	return result, nil
}

// stepQuarter advances the state by one quarter at the given price.
func (ps *PortfolioSimulator) stepQuarter(state *PortfolioState, ys *yearState, window *TrailingWindow, buffer BufferController, spread, price float64) QuarterSnapshot {
	equityValue := price * state.EquityShares
	dividend := equityValue * DividendYield / QuartersPerYear
	effectiveIncome := ys.quarterlyIncome + dividend

	drawdown := IsDrawdown(*window, price)
	rally := IsRally(*window, price)
	if drawdown {
		ys.quarterlySpend -= spread * ReductionPercent(*window, price)
	}

	gap := ys.quarterlySpend - effectiveIncome
	state.PiggyBank, gap = buffer.Apply(state.PiggyBank, gap, drawdown, rally)

	window.Push(price)
	state.EquityShares -= gap / price

	return QuarterSnapshot{
		Price:          price,
		Drawdown:       drawdown,
		Rally:          rally,
		QuarterlySpend: ys.quarterlySpend,
		Gap:            gap,
		EquityShares:   state.EquityShares,
		PiggyBank:      state.PiggyBank,
		Depleted:       state.EquityShares < 0,
	}
}
