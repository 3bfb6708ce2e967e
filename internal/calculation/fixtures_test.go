package calculation

import (
	"github.com/rpgo/withdrawal-sweep/internal/domain"
	"github.com/rpgo/withdrawal-sweep/pkg/dateutil"
)

// buildSeries creates a store with every quarter-start month for years
// first through last inclusive, priced by fn.
func buildSeries(first, last int, fn func(year, quarter int) float64) *MarketHistoryStore {
	var points []PricePoint
	for y := first; y <= last; y++ {
		for q, month := range dateutil.QuarterMonths {
			points = append(points, PricePoint{Year: y, Month: month, Price: fn(y, q)})
		}
	}
	return NewMarketHistoryStore(points)
}

func flatSeries(first, last int, price float64) *MarketHistoryStore {
	return buildSeries(first, last, func(int, int) float64 { return price })
}

// baseParams is the plain linear-drawdown scenario used across tests.
func baseParams() domain.ScenarioParameters {
	return domain.ScenarioParameters{
		Spend:           40000,
		MinSpend:        20000,
		OriginalBalance: 1000000,
		PiggyBankTarget: 50000,
	}
}

// recordingLogger captures warnings for assertions.
type recordingLogger struct {
	NopLogger
	warnings []string
}

func (r *recordingLogger) Warnf(format string, args ...any) {
	r.warnings = append(r.warnings, format)
}
