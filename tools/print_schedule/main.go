package main

import (
	"fmt"
	"sort"

	"github.com/rpgo/withdrawal-sweep/internal/calculation"
	"github.com/rpgo/withdrawal-sweep/internal/domain"
)

func main() {
	// Pension delayed five years, spousal benefit delayed eight.
	params := domain.ScenarioParameters{
		Spend:                    60000,
		MinSpend:                 45000,
		OriginalBalance:          1500000,
		COLA:                     0.03,
		PensionAmount:            12000,
		PensionStartOffset:       5,
		SpouseBenefitAmount:      9000,
		SpouseBenefitStartOffset: 8,
	}
	schedule := calculation.BuildIncomeSchedule(2010, 2024, params)

	years := make([]int, 0, len(schedule))
	for y := range schedule {
		years = append(years, y)
	}
	sort.Ints(years)

	fmt.Println("Year,AnnualSpend,GuaranteedIncome,QuarterlyGap")
	for _, y := range years {
		e := schedule[y]
		gap := (e.AnnualSpend - e.AnnualGuaranteedIncome) / calculation.QuartersPerYear
		fmt.Printf("%d,%.2f,%.2f,%.2f\n", y, e.AnnualSpend, e.AnnualGuaranteedIncome, gap)
	}
}
