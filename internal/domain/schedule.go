package domain

// YearIncome is the spending target and guaranteed income for one calendar year.
type YearIncome struct {
	AnnualSpend            float64 `json:"annual_spend"`
	AnnualGuaranteedIncome float64 `json:"annual_guaranteed_income"`
}

// IncomeSchedule maps calendar year to that year's spend and guaranteed income.
type IncomeSchedule map[int]YearIncome
