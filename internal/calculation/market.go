package calculation

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rpgo/withdrawal-sweep/internal/domain"
	"github.com/rpgo/withdrawal-sweep/pkg/dateutil"
	"gonum.org/v1/gonum/stat"
)

// PriceSource supplies index prices keyed by calendar year and month label.
type PriceSource interface {
	PriceAt(year int, month string) (float64, error)
}

// PricePoint is a single historical index observation.
type PricePoint struct {
	Year  int     `json:"year"`
	Month string  `json:"month"`
	Price float64 `json:"price"`
}

// HistoricalSeries maps year -> month label -> price.
type HistoricalSeries map[int]map[string]float64

// SeriesStatistics summarises quarter-over-quarter index returns.
type SeriesStatistics struct {
	Quarters        int     `yaml:"quarters" json:"quarters"`
	MeanReturn      float64 `yaml:"mean_return" json:"mean_return"`
	StdDevReturn    float64 `yaml:"std_dev_return" json:"std_dev_return"`
	WorstQuarter    float64 `yaml:"worst_quarter" json:"worst_quarter"`
	BestQuarter     float64 `yaml:"best_quarter" json:"best_quarter"`
	MinYear         int     `yaml:"min_year" json:"min_year"`
	MaxYear         int     `yaml:"max_year" json:"max_year"`
	IncompleteYears []int   `yaml:"incomplete_years" json:"incomplete_years"`
}

// MarketHistoryStore indexes a price series by year then month label.
// It is read-only after construction and safe for concurrent use.
type MarketHistoryStore struct {
	series  HistoricalSeries
	points  int
	skipped int
	minYear int
	maxYear int
}

// NewMarketHistoryStore indexes the given points. Later duplicates replace earlier ones.
func NewMarketHistoryStore(points []PricePoint) *MarketHistoryStore {
	s := &MarketHistoryStore{series: make(HistoricalSeries)}
	for _, p := range points {
		months, ok := s.series[p.Year]
		if !ok {
			months = make(map[string]float64)
			s.series[p.Year] = months
		}
		months[p.Month] = p.Price
		if s.points == 0 || p.Year < s.minYear {
			s.minYear = p.Year
		}
		if s.points == 0 || p.Year > s.maxYear {
			s.maxYear = p.Year
		}
		s.points++
	}
	return s
}

// ParseSeries reads fixed-width records: month label in columns 0-2, four digit
// year in columns 3-6 and the price from column 8 onward. Malformed lines are
// skipped and counted; they surface later as missing data at lookup time.
func ParseSeries(r io.Reader) ([]PricePoint, int, error) {
	var points []PricePoint
	skipped := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		p, ok := parseRecord(line)
		if !ok {
			skipped++
			continue
		}
		points = append(points, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("failed to read price series: %w", err)
	}
	return points, skipped, nil
}

func parseRecord(line string) (PricePoint, bool) {
	if len(line) < 9 {
		return PricePoint{}, false
	}
	month, err := dateutil.ParseMonthLabel(line[0:3])
	if err != nil {
		return PricePoint{}, false
	}
	year, err := strconv.Atoi(strings.TrimSpace(line[3:7]))
	if err != nil {
		return PricePoint{}, false
	}
	fields := strings.Fields(line[8:])
	if len(fields) == 0 {
		return PricePoint{}, false
	}
	price, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || price <= 0 || math.IsInf(price, 0) {
		return PricePoint{}, false
	}
	return PricePoint{Year: year, Month: dateutil.MonthLabel(month), Price: price}, true
}

// LoadSeries parses and indexes a series from a reader.
func LoadSeries(r io.Reader) (*MarketHistoryStore, error) {
	points, skipped, err := ParseSeries(r)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("no valid price records found")
	}
	s := NewMarketHistoryStore(points)
	s.skipped = skipped
	return s, nil
}

// LoadSeriesFile loads a series from a data file on disk.
func LoadSeriesFile(path string) (*MarketHistoryStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open price series %s: %w", path, err)
	}
	defer f.Close()

	s, err := LoadSeries(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return s, nil
}

// PriceAt returns the price for a year and month label, or a *domain.MissingDataError.
func (s *MarketHistoryStore) PriceAt(year int, month string) (float64, error) {
	if months, ok := s.series[year]; ok {
		if price, ok := months[month]; ok {
			return price, nil
		}
	}
	return 0, &domain.MissingDataError{Year: year, Month: month}
}

// YearRange returns the first and last years present in the series.
func (s *MarketHistoryStore) YearRange() (int, int) {
	return s.minYear, s.maxYear
}

// Len returns the number of indexed records.
func (s *MarketHistoryStore) Len() int { return s.points }

// Skipped returns the number of malformed lines dropped during parsing.
func (s *MarketHistoryStore) Skipped() int { return s.skipped }

// IncompleteYears lists years in [from, to] lacking any quarter-start price.
func (s *MarketHistoryStore) IncompleteYears(from, to int) []int {
	var missing []int
	for year := from; year <= to; year++ {
		for _, q := range dateutil.QuarterMonths {
			if _, err := s.PriceAt(year, q); err != nil {
				missing = append(missing, year)
				break
			}
		}
	}
	return missing
}

// Statistics computes quarter-over-quarter return statistics over the
// contiguous quarter-start prices of the series.
func (s *MarketHistoryStore) Statistics() SeriesStatistics {
	st := SeriesStatistics{MinYear: s.minYear, MaxYear: s.maxYear}
	if s.points == 0 {
		return st
	}
	st.IncompleteYears = s.IncompleteYears(s.minYear, s.maxYear)

	years := make([]int, 0, len(s.series))
	for y := range s.series {
		years = append(years, y)
	}
	sort.Ints(years)

	var returns []float64
	prev := math.NaN()
	for i, y := range years {
		if i > 0 && y != years[i-1]+1 {
			prev = math.NaN()
		}
		for _, q := range dateutil.QuarterMonths {
			price, err := s.PriceAt(y, q)
			if err != nil {
				prev = math.NaN()
				continue
			}
			if !math.IsNaN(prev) {
				returns = append(returns, price/prev-1)
			}
			prev = price
		}
	}
	if len(returns) == 0 {
		return st
	}

	st.Quarters = len(returns)
	st.MeanReturn = stat.Mean(returns, nil)
	if len(returns) > 1 {
		st.StdDevReturn = stat.StdDev(returns, nil)
	}
	st.WorstQuarter, st.BestQuarter = returns[0], returns[0]
	for _, r := range returns {
		st.WorstQuarter = math.Min(st.WorstQuarter, r)
		st.BestQuarter = math.Max(st.BestQuarter, r)
	}
	return st
}
