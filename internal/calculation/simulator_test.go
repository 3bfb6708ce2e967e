package calculation

import (
	"errors"
	"math"
	"testing"

	"github.com/rpgo/withdrawal-sweep/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortfolioSimulator_FlatMarketLinearDrawdown(t *testing.T) {
	store := flatSeries(2000, 2010, 100)
	params := baseParams()

	sim := NewPortfolioSimulator(store, 2010)
	result, err := sim.Run(2000, params, BuildIncomeSchedule(2000, 2010, params))
	require.NoError(t, err)

	// Each quarter withdraws 10000 and earns 0.125% dividends on the equity
	// value, so V' = V*(1+d) - 10000 for 40 quarters.
	d := DividendYield / QuartersPerYear
	growth := math.Pow(1+d, 40)
	expected := params.OriginalBalance*growth - (params.Spend/4)*(growth-1)/d

	assert.InDelta(t, expected, float64(result.TerminalValue), 1)
	assert.Greater(t, result.TerminalValue, int64(params.OriginalBalance-10*params.Spend), "dividends offset part of the drawdown")
	assert.Len(t, result.YearlyValues, 11)
	assert.Equal(t, result.YearlyValues[10], result.TerminalValue)
	assert.False(t, result.Depleted)

	for i := 2; i < len(result.YearlyValues); i++ {
		assert.Less(t, result.YearlyValues[i], result.YearlyValues[i-1], "value should fall every year")
	}
}

func TestPortfolioSimulator_FlatMarketRaisesNoSignals(t *testing.T) {
	store := flatSeries(2000, 2010, 100)
	params := baseParams()
	params.BondAmount = 0

	sim := NewPortfolioSimulator(store, 2010)
	var quarters int
	sim.OnQuarter = func(s QuarterSnapshot) {
		quarters++
		assert.False(t, s.Drawdown)
		assert.False(t, s.Rally)
		assert.Equal(t, 10000.0, s.QuarterlySpend)
		assert.Zero(t, s.PiggyBank)
	}
	_, err := sim.Run(2000, params, BuildIncomeSchedule(2000, 2010, params))
	require.NoError(t, err)
	assert.Equal(t, 40, quarters)
}

func TestPortfolioSimulator_InYearReductionsCompound(t *testing.T) {
	prices := map[[2]int]float64{
		{2000, 1}: 90, {2000, 2}: 90, {2000, 3}: 90,
	}
	store := buildSeries(2000, 2002, func(year, q int) float64 {
		if p, ok := prices[[2]int{year, q}]; ok {
			return p
		}
		return 100
	})
	params := baseParams()
	params.PiggyBankTarget = 0

	var spends []float64
	sim := NewPortfolioSimulator(store, 2002)
	sim.OnQuarter = func(s QuarterSnapshot) {
		spends = append(spends, s.QuarterlySpend)
	}
	_, err := sim.Run(2000, params, BuildIncomeSchedule(2000, 2002, params))
	require.NoError(t, err)

	// Each drawdown quarter cuts the full (40000-20000)/4 spread and the cut
	// carries into the remaining quarters of the year.
	require.Len(t, spends, 8)
	assert.Equal(t, []float64{10000, 5000, 0, -5000}, spends[:4])
	assert.Equal(t, 10000.0, spends[4], "a new year restarts from the schedule")
}

func TestPortfolioSimulator_PiggyBankStaysBounded(t *testing.T) {
	// A choppy market with frequent rallies and pullbacks.
	store := buildSeries(1980, 2010, func(year, q int) float64 {
		k := float64((year-1980)*4 + q)
		return 100 * (1 + 0.25*math.Sin(k*0.9)) * (1 + 0.01*k)
	})
	params := baseParams()
	params.PiggyBankInit = 30000
	params.PiggyBankTarget = 25000
	params.BondAmount = 200000
	params.BondYield = 0.04
	params.PensionAmount = 15000
	params.PensionStartOffset = 3

	cap := params.PiggyBankCap()
	var drawdowns, rallies int
	sim := NewPortfolioSimulator(store, 2010)
	sim.OnQuarter = func(s QuarterSnapshot) {
		if s.Drawdown {
			drawdowns++
		}
		if s.Rally {
			rallies++
		}
		assert.GreaterOrEqual(t, s.PiggyBank, 0.0)
		assert.LessOrEqual(t, s.PiggyBank, cap)
	}
	result, err := sim.Run(1980, params, BuildIncomeSchedule(1980, 2010, params))
	require.NoError(t, err)

	assert.Positive(t, drawdowns)
	assert.Positive(t, rallies)
	assert.GreaterOrEqual(t, result.PiggyBankLow, 0.0)
	assert.LessOrEqual(t, result.PiggyBankHigh, cap)
}

func TestPortfolioSimulator_Deterministic(t *testing.T) {
	store := buildSeries(1990, 2020, func(year, q int) float64 {
		return 100 + float64((year*7+q*13)%40)
	})
	params := baseParams()
	params.PiggyBankInit = 20000
	params.COLA = 0.025

	sim := NewPortfolioSimulator(store, 2020)
	first, err := sim.Run(1995, params, BuildIncomeSchedule(1995, 2020, params))
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := sim.Run(1995, params, BuildIncomeSchedule(1995, 2020, params))
		require.NoError(t, err)
		assert.Equal(t, first.TerminalValue, again.TerminalValue)
		assert.Equal(t, first.YearlyValues, again.YearlyValues)
	}
}

func TestPortfolioSimulator_BondsAndIncomeReduceWithdrawals(t *testing.T) {
	store := flatSeries(2000, 2010, 100)
	params := baseParams()
	params.BondAmount = 400000
	params.BondYield = 0.05
	params.PensionAmount = 20000

	sim := NewPortfolioSimulator(store, 2010)
	result, err := sim.Run(2000, params, BuildIncomeSchedule(2000, 2010, params))
	require.NoError(t, err)

	// Bond coupon 20000 plus pension 20000 covers the 40000 spend, so only
	// dividends move the equity and the portfolio grows.
	assert.Greater(t, result.TerminalValue, int64(params.OriginalBalance))
}

func TestPortfolioSimulator_DepletionFlagged(t *testing.T) {
	store := flatSeries(2000, 2010, 100)
	params := baseParams()
	params.OriginalBalance = 100000
	params.PiggyBankTarget = 0

	logger := &recordingLogger{}
	sim := NewPortfolioSimulator(store, 2010)
	sim.SetLogger(logger)
	result, err := sim.Run(2000, params, BuildIncomeSchedule(2000, 2010, params))
	require.NoError(t, err)

	assert.True(t, result.Depleted)
	assert.Equal(t, 2002, result.DepletedYear)
	assert.Negative(t, result.TerminalValue, "values are flagged, not clamped")
	assert.Len(t, logger.warnings, 1)
}

func TestPortfolioSimulator_DepletionFlaggedWithinYear(t *testing.T) {
	// The first quarter overdraws the equity. Two deep drawdowns then cut the
	// quarterly spend below zero, so later quarters buy shares back and the
	// year ends positive.
	q2000 := []float64{100, 50, 25, 25}
	store := buildSeries(2000, 2001, func(year, q int) float64 {
		if year == 2000 {
			return q2000[q]
		}
		return 25
	})
	params := domain.ScenarioParameters{Spend: 500000, OriginalBalance: 100000}

	var snaps []QuarterSnapshot
	logger := &recordingLogger{}
	sim := NewPortfolioSimulator(store, 2001)
	sim.SetLogger(logger)
	sim.OnQuarter = func(s QuarterSnapshot) { snaps = append(snaps, s) }
	result, err := sim.Run(2000, params, BuildIncomeSchedule(2000, 2001, params))
	require.NoError(t, err)

	require.Len(t, snaps, 4)
	assert.True(t, snaps[0].Depleted)
	assert.False(t, snaps[3].Depleted)
	assert.Positive(t, result.TerminalValue)
	assert.True(t, result.Depleted)
	assert.Equal(t, 2000, result.DepletedYear)
	assert.Len(t, logger.warnings, 1)
}

func TestPortfolioSimulator_MissingData(t *testing.T) {
	points := []PricePoint{}
	for _, m := range []string{"Jan", "Apr", "Oct"} {
		points = append(points, PricePoint{Year: 2000, Month: m, Price: 100})
	}
	store := NewMarketHistoryStore(points)
	params := baseParams()

	sim := NewPortfolioSimulator(store, 2001)
	_, err := sim.Run(2000, params, BuildIncomeSchedule(2000, 2001, params))
	var missing *domain.MissingDataError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "Jul", missing.Month)
	assert.Equal(t, 2000, missing.Year)
}

func TestPortfolioSimulator_RejectsStartAtPresent(t *testing.T) {
	sim := NewPortfolioSimulator(flatSeries(2000, 2010, 100), 2010)
	_, err := sim.Run(2010, baseParams(), nil)
	assert.Error(t, err)
}
