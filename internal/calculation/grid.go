package calculation

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/rpgo/withdrawal-sweep/internal/domain"
)

// GridOptions configures a grid scan.
type GridOptions struct {
	PresentYear int
	FirstYear   int
	// Workers bounds the number of cells simulated concurrently.
	Workers int
	// GraduatedTiers enables the 15000 spend increment for spends in
	// [100000, 150000). It is off by default to keep the legacy tier table.
	GraduatedTiers bool
}

// DefaultGridOptions returns the options used when none are configured.
func DefaultGridOptions() GridOptions {
	return GridOptions{
		PresentYear: DefaultPresentYear,
		FirstYear:   DefaultFirstYear,
		Workers:     DefaultWorkers,
	}
}

// GridScanner sweeps a 4x7 matrix of (minimum spend, spend) cells.
type GridScanner struct {
	Prices  PriceSource
	Options GridOptions
	Logger  Logger
}

// NewGridScanner creates a scanner over the given price source.
func NewGridScanner(prices PriceSource, opts GridOptions) *GridScanner {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	return &GridScanner{Prices: prices, Options: opts, Logger: NopLogger{}}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (g *GridScanner) SetLogger(l Logger) {
	if l == nil {
		g.Logger = NopLogger{}
		return
	}
	g.Logger = l
}

// SpendIncrement selects the spend step for the grid rows from the base spend.
//
// The legacy table never reaches the 15000 tier: its guard compared an
// unrelated value, so every spend of 100000 or more falls to the 20000 default.
// Pass graduated=true to apply the 15000 tier below 150000.
func SpendIncrement(spend float64, graduated bool) float64 {
	switch {
	case spend < 50000:
		return spendIncrementSmall
	case spend < 100000:
		return spendIncrementMedium
	case graduated && spend < 150000:
		return spendIncrementLarge
	}
	return spendIncrementMax
}

// MinSpendIncrement is the step between minimum-spend columns, truncated to
// whole dollars.
func MinSpendIncrement(spend, minSpend float64) float64 {
	return math.Trunc((spend - minSpend) / 3)
}

type cellResult struct {
	stats  domain.OutcomeStatistics
	points []domain.PlotPoint
}

// Scan evaluates every grid cell. Cells run concurrently on isolated state;
// results are assembled in tier order (minimum-spend tier major). The first
// failing cell cancels the rest and its error is returned.
func (g *GridScanner) Scan(ctx context.Context, params domain.ScenarioParameters) (*domain.GridResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if g.Options.FirstYear >= g.Options.PresentYear {
		return nil, fmt.Errorf("first year %d must precede present year %d", g.Options.FirstYear, g.Options.PresentYear)
	}
	logger := g.Logger
	if logger == nil {
		logger = NopLogger{}
	}

	spendIncr := SpendIncrement(params.Spend, g.Options.GraduatedTiers)
	minIncr := MinSpendIncrement(params.Spend, params.MinSpend)

	result := &domain.GridResult{
		Parameters:        params,
		PresentYear:       g.Options.PresentYear,
		SpendIncrement:    spendIncr,
		MinSpendIncrement: minIncr,
		MinSpendTiers:     make([]float64, MinSpendTierCount),
		SpendTiers:        make([]float64, SpendTierCount),
	}
	for j := range result.MinSpendTiers {
		result.MinSpendTiers[j] = params.MinSpend + float64(j)*minIncr
	}
	for i := range result.SpendTiers {
		result.SpendTiers[i] = params.Spend + float64(i)*spendIncr
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cells := make([]cellResult, MinSpendTierCount*SpendTierCount)
	var wg sync.WaitGroup
	var once sync.Once
	var firstErr error
	semaphore := make(chan struct{}, g.Options.Workers)

	for idx := range cells {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-semaphore }()
			if ctx.Err() != nil {
				return
			}

			tier, row := idx/SpendTierCount, idx%SpendTierCount
			cell := params.WithCell(result.MinSpendTiers[tier], result.SpendTiers[row])
			res, err := g.scanCell(cell)
			if err != nil {
				once.Do(func() {
					firstErr = fmt.Errorf("grid cell (%s): %w", domain.GridKey{MinSpend: cell.MinSpend, Spend: cell.Spend}, err)
					cancel()
				})
				return
			}
			cells[idx] = res
			logger.Debugf("cell %s done: %d years, %d good", res.stats.Key, res.stats.CountedYears, res.stats.Good)
		}(idx)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result.Statistics = make([]domain.OutcomeStatistics, 0, len(cells))
	result.PlotBuckets = make([]domain.PlotBucket, MinSpendTierCount)
	for j := range result.PlotBuckets {
		result.PlotBuckets[j] = domain.PlotBucket{Tier: j, MinSpend: result.MinSpendTiers[j]}
	}
	for idx, c := range cells {
		result.Statistics = append(result.Statistics, c.stats)
		tier := idx / SpendTierCount
		result.PlotBuckets[tier].Points = append(result.PlotBuckets[tier].Points, c.points...)
	}

	logger.Infof("grid scan complete: %d cells, %d start years per cell", len(cells), result.CountedYears())
	return result, nil
}

// scanCell runs the historical sweep and classification for one cell using
// state private to this call.
func (g *GridScanner) scanCell(params domain.ScenarioParameters) (cellResult, error) {
	sim := NewPortfolioSimulator(g.Prices, g.Options.PresentYear)
	sim.SetLogger(g.Logger)
	runner := NewHistoricalSweepRunner(sim, g.Options.FirstYear)

	sweep, err := runner.Run(params)
	if err != nil {
		return cellResult{}, err
	}

	classifier := NewOutcomeClassifier(g.Options.PresentYear)
	key := domain.GridKey{MinSpend: params.MinSpend, Spend: params.Spend}
	stats := classifier.Classify(key, params.OriginalBalance, sweep.TerminalValues)

	years := make([]int, 0, len(sweep.TerminalValues))
	for year := range sweep.TerminalValues {
		if classifier.Counted(year) {
			years = append(years, year)
		}
	}
	sort.Ints(years)
	points := make([]domain.PlotPoint, 0, len(years))
	for _, year := range years {
		points = append(points, domain.PlotPoint{Spend: params.Spend, TerminalValue: sweep.TerminalValues[year]})
	}
	return cellResult{stats: stats, points: points}, nil
}
