package calculation

import "math"

// TrailingWindow holds the four most recent quarter-start prices, oldest first.
type TrailingWindow [4]float64

// NewTrailingWindow seeds every slot with the opening price.
func NewTrailingWindow(price float64) TrailingWindow {
	return TrailingWindow{price, price, price, price}
}

// Push drops the oldest price and appends the newest.
func (w *TrailingWindow) Push(price float64) {
	copy(w[:], w[1:])
	w[len(w)-1] = price
}

// Max returns the highest price in the window.
func (w TrailingWindow) Max() float64 {
	m := w[0]
	for _, p := range w[1:] {
		m = math.Max(m, p)
	}
	return m
}

// Last returns the price one quarter prior.
func (w TrailingWindow) Last() float64 {
	return w[len(w)-1]
}

// IsDrawdown reports whether current is a pullback relative to the window:
// 8% below the price four quarters back, 6% below three back, or 5% below
// either of the last two. Each comparison is against a single point.
func IsDrawdown(trailing TrailingWindow, current float64) bool {
	for i, threshold := range DrawdownThresholds {
		if trailing[i]*threshold > current {
			return true
		}
	}
	return false
}

// IsRally reports a single-quarter gain of more than 3%.
func IsRally(trailing TrailingWindow, current float64) bool {
	return trailing.Last()*RallyThreshold < current
}

// ReductionPercent converts the decline from the window peak into a cut
// fraction in [0, 1].
func ReductionPercent(trailing TrailingWindow, current float64) float64 {
	peak := trailing.Max()
	if peak <= 0 {
		return 0
	}
	pct := ReductionSensitivity * (peak - current) / peak
	return math.Min(math.Max(pct, 0), 1)
}
