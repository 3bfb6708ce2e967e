package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	calc "github.com/rpgo/withdrawal-sweep/internal/calculation"
	"github.com/rpgo/withdrawal-sweep/internal/config"
)

// Prints every start year's portfolio path for the configured spend as CSV,
// one row per start year, one column per calendar year.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_trajectories <config-file>")
		return
	}
	p := config.NewInputParser()
	cfg, err := p.LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	market, err := calc.LoadSeriesFile(cfg.Sweep.DataFile)
	if err != nil {
		panic(err)
	}
	opts := cfg.GridOptions()

	sim := calc.NewPortfolioSimulator(market, opts.PresentYear)
	runner := calc.NewHistoricalSweepRunner(sim, opts.FirstYear)
	runner.RetainTrajectories = true
	res, err := runner.Run(cfg.Parameters())
	if err != nil {
		panic(err)
	}

	starts := make([]int, 0, len(res.Trajectories))
	for y := range res.Trajectories {
		starts = append(starts, y)
	}
	sort.Ints(starts)

	header := []string{"Start"}
	for y := opts.FirstYear + 1; y <= opts.PresentYear; y++ {
		header = append(header, fmt.Sprint(y))
	}
	fmt.Println(strings.Join(header, ","))
	for _, start := range starts {
		row := make([]string, 0, len(header))
		row = append(row, fmt.Sprint(start))
		path := res.Trajectories[start]
		for y := opts.FirstYear + 1; y <= opts.PresentYear; y++ {
			i := y - start
			if i < 1 || i >= len(path) {
				row = append(row, "")
				continue
			}
			row = append(row, fmt.Sprint(path[i]))
		}
		fmt.Println(strings.Join(row, ","))
	}
}
