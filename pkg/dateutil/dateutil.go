package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// QuarterMonths are the month labels that open each calendar quarter, in order.
var QuarterMonths = [4]string{"Jan", "Apr", "Jul", "Oct"}

var monthLabels = map[string]time.Month{
	"Jan": time.January,
	"Feb": time.February,
	"Mar": time.March,
	"Apr": time.April,
	"May": time.May,
	"Jun": time.June,
	"Jul": time.July,
	"Aug": time.August,
	"Sep": time.September,
	"Oct": time.October,
	"Nov": time.November,
	"Dec": time.December,
}

// ParseMonthLabel converts a three-letter month abbreviation to a time.Month.
// Matching is case-insensitive; surrounding whitespace is ignored.
func ParseMonthLabel(label string) (time.Month, error) {
	l := strings.TrimSpace(label)
	if len(l) != 3 {
		return 0, fmt.Errorf("invalid month label %q", label)
	}
	l = strings.ToUpper(l[:1]) + strings.ToLower(l[1:])
	m, ok := monthLabels[l]
	if !ok {
		return 0, fmt.Errorf("invalid month label %q", label)
	}
	return m, nil
}

// MonthLabel returns the canonical three-letter label for a month.
func MonthLabel(m time.Month) string {
	return m.String()[:3]
}

// YearsBetween returns the number of whole years from start to end (end - start).
func YearsBetween(start, end int) int {
	return end - start
}
