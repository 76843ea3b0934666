package stats

import (
	"time"

	"github.com/lyphol/funnytime/internal/attendance"
	"github.com/lyphol/funnytime/internal/calendar"
	"github.com/lyphol/funnytime/internal/workday"
)

// DailyStat is the worked hours of one calendar day. Hours is 0 both for
// rest days and for workdays without a complete pair; Workday tells them
// apart.
type DailyStat struct {
	Date    time.Time
	Hours   float64
	Workday bool
}

// PeriodStats summarises a daily series. Days counts the days with
// positive hours, which is also the average's denominator.
type PeriodStats struct {
	Average float64
	Total   float64
	Days    int
}

// DailyStats returns one entry per day of the period containing anchor, in
// ascending order.
func DailyStats(p Period, anchor time.Time, records []attendance.Record, overrides workday.Overrides) []DailyStat {
	start, end := ComputeRange(p, anchor)
	days := calendar.Days(start, end)

	out := make([]DailyStat, 0, len(days))
	for _, day := range days {
		isWorkday := workday.IsWorkday(day, overrides)
		var hours float64
		for _, r := range records {
			if calendar.SameDay(day, r.Date) {
				hours += attendance.HoursFor(r, isWorkday)
			}
		}
		out = append(out, DailyStat{Date: day, Hours: hours, Workday: isWorkday})
	}
	return out
}

// Summarize totals the days with positive hours and averages over them.
// Zero-hour days are left out of the denominator.
func Summarize(daily []DailyStat) PeriodStats {
	var s PeriodStats
	for _, d := range daily {
		if d.Hours > 0 {
			s.Total += d.Hours
			s.Days++
		}
	}
	if s.Days > 0 {
		s.Average = s.Total / float64(s.Days)
	}
	return s
}
