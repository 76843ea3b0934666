package stats

import (
	"time"

	"github.com/lyphol/funnytime/internal/attendance"
	"github.com/lyphol/funnytime/internal/workday"
)

// Report is everything a renderer needs to show one period.
type Report struct {
	Period       Period
	Anchor       time.Time
	Title        string
	Start        time.Time
	End          time.Time
	Daily        []DailyStat
	Summary      PeriodStats
	CanGoBack    bool
	CanGoForward bool
}

// BuildReport computes the report for the period containing anchor.
func BuildReport(p Period, anchor time.Time, records []attendance.Record, overrides workday.Overrides, nav Navigator) Report {
	start, end := ComputeRange(p, anchor)
	daily := DailyStats(p, anchor, records, overrides)
	return Report{
		Period:       p,
		Anchor:       anchor,
		Title:        PeriodTitle(p, anchor),
		Start:        start,
		End:          end,
		Daily:        daily,
		Summary:      Summarize(daily),
		CanGoBack:    nav.CanGoBack(p, anchor),
		CanGoForward: nav.CanGoForward(p, anchor),
	}
}

// WorkdayCount returns how many days of the report are workdays.
func (r Report) WorkdayCount() int {
	n := 0
	for _, d := range r.Daily {
		if d.Workday {
			n++
		}
	}
	return n
}
