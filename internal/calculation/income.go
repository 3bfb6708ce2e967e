package calculation

import "github.com/rpgo/withdrawal-sweep/internal/domain"

// BuildIncomeSchedule derives the spend target and guaranteed income for each
// calendar year from startYear through presentYear inclusive.
//
// Spend starts at the unescalated base. Pension and spousal benefits join the
// running income total in their activation year. After each year is assigned,
// both running totals grow by (1+COLA), so escalation compounds.
func BuildIncomeSchedule(startYear, presentYear int, p domain.ScenarioParameters) domain.IncomeSchedule {
	schedule := make(domain.IncomeSchedule, presentYear-startYear+1)
	spend := p.Spend
	income := 0.0
	growth := 1 + p.COLA

	for year := startYear; year <= presentYear; year++ {
		if year == startYear+p.PensionStartOffset {
			income += p.PensionAmount
		}
		if year == startYear+p.SpouseBenefitStartOffset {
			income += p.SpouseBenefitAmount
		}
		schedule[year] = domain.YearIncome{
			AnnualSpend:            spend,
			AnnualGuaranteedIncome: income,
		}
		spend *= growth
		income *= growth
	}
	return schedule
}
