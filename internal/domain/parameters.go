package domain

import "math"

const (
	// MaxRate bounds the annual rates (COLA, bond yield) accepted by Validate.
	MaxRate = 0.2
	// ReserveCapMultiple bounds the reserve at this multiple of its target.
	ReserveCapMultiple = 2.0
)

// ScenarioParameters bundles every tunable financial input for one simulation run.
// All monetary amounts are nominal dollars; rates are fractions (0.03 == 3%).
type ScenarioParameters struct {
	Spend           float64 `yaml:"spend" json:"spend"`
	MinSpend        float64 `yaml:"min_spend" json:"min_spend"`
	OriginalBalance float64 `yaml:"original_balance" json:"original_balance"`
	BondYield       float64 `yaml:"bond_yield" json:"bond_yield"`
	BondAmount      float64 `yaml:"bond_amount" json:"bond_amount"`
	PiggyBankInit   float64 `yaml:"piggy_bank_init" json:"piggy_bank_init"`
	PiggyBankTarget float64 `yaml:"piggy_bank_target" json:"piggy_bank_target"`
	COLA            float64 `yaml:"cola" json:"cola"`

	PensionAmount      float64 `yaml:"pension_amount" json:"pension_amount"`
	PensionStartOffset int     `yaml:"pension_start_offset" json:"pension_start_offset"`

	SpouseBenefitAmount      float64 `yaml:"spouse_benefit_amount" json:"spouse_benefit_amount"`
	SpouseBenefitStartOffset int     `yaml:"spouse_benefit_start_offset" json:"spouse_benefit_start_offset"`
}

// EquityAmount is the portion of the starting balance invested in the equity index.
func (p ScenarioParameters) EquityAmount() float64 {
	return p.OriginalBalance - p.BondAmount
}

// PiggyBankCap is the upper bound the reserve may be replenished to.
func (p ScenarioParameters) PiggyBankCap() float64 {
	return ReserveCapMultiple * p.PiggyBankTarget
}

// WithCell returns a copy of the parameters with spend and minimum spend replaced.
// The receiver is not modified.
func (p ScenarioParameters) WithCell(minSpend, spend float64) ScenarioParameters {
	p.MinSpend = minSpend
	p.Spend = spend
	return p
}

// Validate rejects parameter sets that would produce nonsensical simulations.
func (p ScenarioParameters) Validate() error {
	amounts := []struct {
		field string
		value float64
	}{
		{"spend", p.Spend},
		{"min_spend", p.MinSpend},
		{"original_balance", p.OriginalBalance},
		{"bond_amount", p.BondAmount},
		{"piggy_bank_init", p.PiggyBankInit},
		{"piggy_bank_target", p.PiggyBankTarget},
		{"pension_amount", p.PensionAmount},
		{"spouse_benefit_amount", p.SpouseBenefitAmount},
	}
	for _, a := range amounts {
		if math.IsNaN(a.value) || math.IsInf(a.value, 0) {
			return &InvalidParameterError{Field: a.field, Value: a.value, Reason: "must be a finite number"}
		}
		if a.value < 0 {
			return &InvalidParameterError{Field: a.field, Value: a.value, Reason: "cannot be negative"}
		}
	}

	for _, r := range []struct {
		field string
		value float64
	}{{"cola", p.COLA}, {"bond_yield", p.BondYield}} {
		if math.IsNaN(r.value) || r.value < 0 || r.value > MaxRate {
			return &InvalidParameterError{Field: r.field, Value: r.value, Reason: "must be between 0 and 0.2"}
		}
	}

	if p.Spend < p.MinSpend {
		return &InvalidParameterError{Field: "min_spend", Value: p.MinSpend, Reason: "cannot exceed spend"}
	}
	if p.OriginalBalance <= 0 {
		return &InvalidParameterError{Field: "original_balance", Value: p.OriginalBalance, Reason: "must be positive"}
	}
	if p.BondAmount > p.OriginalBalance {
		return &InvalidParameterError{Field: "bond_amount", Value: p.BondAmount, Reason: "cannot exceed original balance"}
	}
	if p.PiggyBankInit > p.PiggyBankCap() {
		return &InvalidParameterError{Field: "piggy_bank_init", Value: p.PiggyBankInit, Reason: "cannot exceed twice the piggy bank target"}
	}
	if p.PensionStartOffset < 0 {
		return &InvalidParameterError{Field: "pension_start_offset", Value: float64(p.PensionStartOffset), Reason: "cannot be negative"}
	}
	if p.SpouseBenefitStartOffset < 0 {
		return &InvalidParameterError{Field: "spouse_benefit_start_offset", Value: float64(p.SpouseBenefitStartOffset), Reason: "cannot be negative"}
	}
	return nil
}
