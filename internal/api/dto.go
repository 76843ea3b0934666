package api

import (
	"time"

	"github.com/lyphol/funnytime/internal/attendance"
	"github.com/lyphol/funnytime/internal/calendar"
	"github.com/lyphol/funnytime/internal/stats"
	"github.com/lyphol/funnytime/internal/workday"
)

const dayLayout = "2006-01-02"

type RecordResponse struct {
	Date         string     `json:"date"`
	Weekday      string     `json:"weekday"`
	State        string     `json:"state"`
	CheckInTime  *time.Time `json:"checkInTime,omitempty"`
	CheckOutTime *time.Time `json:"checkOutTime,omitempty"`
	Hours        float64    `json:"hours"`
}

func newRecordResponse(r attendance.Record) RecordResponse {
	return RecordResponse{
		Date:         r.Date.Format(dayLayout),
		Weekday:      calendar.FormatWeekday(r.Date),
		State:        r.State().String(),
		CheckInTime:  r.CheckInAt,
		CheckOutTime: r.CheckOutAt,
		Hours:        attendance.WorkedHours(r),
	}
}

type DailyStatResponse struct {
	Date    string  `json:"date"`
	Weekday string  `json:"weekday"`
	Hours   float64 `json:"hours"`
	Workday bool    `json:"workday"`
}

type SummaryResponse struct {
	Average float64 `json:"average"`
	Total   float64 `json:"total"`
	Days    int     `json:"days"`
}

type StatsResponse struct {
	Period       string              `json:"period"`
	Title        string              `json:"title"`
	Anchor       string              `json:"anchor"`
	Start        string              `json:"start"`
	End          string              `json:"end"`
	Daily        []DailyStatResponse `json:"daily"`
	Summary      SummaryResponse     `json:"summary"`
	Workdays     int                 `json:"workdays"`
	CanGoBack    bool                `json:"canGoBack"`
	CanGoForward bool                `json:"canGoForward"`
}

// newStatsResponse renders a report. End is the last day of the period,
// not the exclusive bound.
func newStatsResponse(r stats.Report) StatsResponse {
	daily := make([]DailyStatResponse, len(r.Daily))
	for i, d := range r.Daily {
		daily[i] = DailyStatResponse{
			Date:    d.Date.Format(dayLayout),
			Weekday: calendar.FormatWeekday(d.Date),
			Hours:   d.Hours,
			Workday: d.Workday,
		}
	}
	return StatsResponse{
		Period:       r.Period.String(),
		Title:        r.Title,
		Anchor:       r.Anchor.Format(dayLayout),
		Start:        r.Start.Format(dayLayout),
		End:          r.End.AddDate(0, 0, -1).Format(dayLayout),
		Daily:        daily,
		Summary:      SummaryResponse{Average: r.Summary.Average, Total: r.Summary.Total, Days: r.Summary.Days},
		Workdays:     r.WorkdayCount(),
		CanGoBack:    r.CanGoBack,
		CanGoForward: r.CanGoForward,
	}
}

type WorkdaysResponse struct {
	Year        int      `json:"year"`
	Week        int      `json:"week"`
	Title       string   `json:"title"`
	Workdays    []int    `json:"workdays"`
	Override    bool     `json:"override"`
	Description string   `json:"description"`
	RRule       string   `json:"rrule"`
	Dates       []string `json:"dates"`
}

func newWorkdaysResponse(k workday.Key, overrides workday.Overrides, loc *time.Location) (WorkdaysResponse, error) {
	set := workday.WorkdaysFor(k, overrides)
	dates, err := workday.WeekDates(k, overrides, loc)
	if err != nil {
		return WorkdaysResponse{}, err
	}
	labels := make([]string, len(dates))
	for i, d := range dates {
		labels[i] = d.Format(dayLayout)
	}
	_, override := overrides.Lookup(k)
	return WorkdaysResponse{
		Year:        k.Year,
		Week:        k.Week,
		Title:       calendar.FormatWeekNumber(calendar.ISOWeekStart(k.Year, k.Week, loc)),
		Workdays:    set.List(),
		Override:    override,
		Description: workday.Describe(set),
		RRule:       workday.RRule(set),
		Dates:       labels,
	}, nil
}

type punchRequest struct {
	Time *time.Time `json:"time"`
}

type workdayRequest struct {
	On *bool `json:"on"`
}
