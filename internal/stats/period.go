package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/lyphol/funnytime/internal/calendar"
)

// Period is the aggregation granularity.
type Period int

const (
	Week Period = iota
	Month
)

func (p Period) String() string {
	if p == Month {
		return "month"
	}
	return "week"
}

// ParsePeriod accepts "week" or "month" (case-insensitive).
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "week", "w":
		return Week, nil
	case "month", "m":
		return Month, nil
	}
	return Week, fmt.Errorf("invalid period %q (expected week or month)", s)
}

// ComputeRange returns the half-open [start, end) range of the period
// containing anchor.
func ComputeRange(p Period, anchor time.Time) (time.Time, time.Time) {
	if p == Month {
		return calendar.StartOfMonth(anchor), calendar.EndOfMonth(anchor)
	}
	return calendar.StartOfISOWeek(anchor), calendar.EndOfISOWeek(anchor)
}

// Shift moves t by n periods. Weeks move in 7 day steps, months clamp the
// day of month.
func Shift(p Period, t time.Time, n int) time.Time {
	if p == Month {
		return calendar.AddMonths(t, n)
	}
	return t.AddDate(0, 0, 7*n)
}

// PeriodTitle labels the period containing anchor. Weeks use the ISO year
// and week that ComputeRange covers.
func PeriodTitle(p Period, anchor time.Time) string {
	if p == Month {
		return calendar.FormatMonth(anchor)
	}
	return calendar.FormatWeekNumber(anchor)
}
