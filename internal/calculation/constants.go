package calculation

// Simulation constants. Each is named so tests can target it directly.
const (
	// DividendYield is the annual dividend yield paid on the equity position.
	DividendYield = 0.005
	// QuartersPerYear is the number of simulation steps per calendar year.
	QuartersPerYear = 4

	// ReductionSensitivity scales the peak-to-current decline into a spending cut fraction.
	ReductionSensitivity = 15.0
	// RallyThreshold is the single-quarter price ratio above which the reserve is replenished.
	RallyThreshold = 1.03
	// ReserveTopUp is the largest amount added to the reserve in one quarter.
	ReserveTopUp = 10000.0

	// MinCountedHorizon excludes starting years whose horizon is not strictly greater.
	MinCountedHorizon = 9
	// BadMultiple, GreatMultiple and RunawayMultiple scale the original balance into
	// classification thresholds; "good" uses the original balance itself.
	BadMultiple     = 0.7
	GreatMultiple   = 2.0
	RunawayMultiple = 4.0

	// MinSpendTierCount and SpendTierCount define the grid shape.
	MinSpendTierCount = 4
	SpendTierCount    = 7

	DefaultPresentYear = 2024
	DefaultFirstYear   = 1970
	DefaultWorkers     = 4
)

// DrawdownThresholds are applied to the trailing window, oldest first. A current
// price below trailing[i]*DrawdownThresholds[i] signals a drawdown.
var DrawdownThresholds = [4]float64{0.92, 0.94, 0.95, 0.95}

// FailRule counts a failure when a terminal value is below Below and the
// horizon is shorter than HorizonUnder years.
type FailRule struct {
	Below        float64
	HorizonUnder int
}

// FailRules are evaluated independently; one starting year may match several.
var FailRules = []FailRule{
	{Below: 150000, HorizonUnder: 20},
	{Below: 1000000, HorizonUnder: 25},
	{Below: 500000, HorizonUnder: 30},
	{Below: 0, HorizonUnder: 35},
}

// Spend increment tiers used by the grid scanner.
const (
	spendIncrementSmall  = 5000.0
	spendIncrementMedium = 10000.0
	spendIncrementLarge  = 15000.0
	spendIncrementMax    = 20000.0
)
