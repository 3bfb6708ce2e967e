package calculation

import "math"

// BufferController governs the cash reserve ("piggy bank") that absorbs
// shortfalls during drawdowns and is refilled during rallies.
type BufferController struct {
	// Cap is the maximum reserve balance.
	Cap float64
}

// NewBufferController creates a controller that refills the reserve up to cap.
func NewBufferController(cap float64) BufferController {
	return BufferController{Cap: cap}
}

// Apply runs one quarter of reserve policy and returns the new reserve balance
// and the adjusted gap (the amount to raise by selling equity).
//
// Relief and replenishment are mutually exclusive and checked in that order.
// Relief only draws against a positive gap. Replenishment adds at most
// ReserveTopUp, never past Cap, and the top-up is added to the gap.
func (b BufferController) Apply(piggyBank, gap float64, drawdown, rally bool) (float64, float64) {
	if drawdown && piggyBank > 0 {
		if gap <= 0 {
			return piggyBank, gap
		}
		if piggyBank >= gap {
			return piggyBank - gap, 0
		}
		return 0, gap - piggyBank
	}
	if rally && piggyBank < b.Cap {
		topUp := math.Min(ReserveTopUp, b.Cap-piggyBank)
		return piggyBank + topUp, gap + topUp
	}
	return piggyBank, gap
}
