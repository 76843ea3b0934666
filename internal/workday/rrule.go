package workday

import (
	"strings"
	"time"

	"github.com/lyphol/funnytime/internal/calendar"
	"github.com/teambition/rrule-go"
)

var rruleDays = [...]rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA, rrule.SU}

var dayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (w Weekdays) byWeekday() []rrule.Weekday {
	days := make([]rrule.Weekday, 0, 7)
	for _, d := range w.List() {
		days = append(days, rruleDays[d-1])
	}
	return days
}

// RRule returns the RFC 5545 weekly rule for the set, e.g.
// "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR". An empty set yields "".
func RRule(w Weekdays) string {
	if w == 0 {
		return ""
	}
	opt := rrule.ROption{Freq: rrule.WEEKLY, Byweekday: w.byWeekday()}
	return opt.RRuleString()
}

// Describe returns a human-readable description of the set.
func Describe(w Weekdays) string {
	switch w {
	case 0:
		return "no workdays"
	case Default:
		return "every weekday"
	case Weekdays(0).With(6).With(7):
		return "every weekend"
	case Default.With(6).With(7):
		return "every day"
	}

	names := make([]string, 0, 7)
	for _, d := range w.List() {
		names = append(names, dayNames[d-1])
	}
	return "every " + strings.Join(names, ", ")
}

// WeekDates expands the effective workday set of an ISO week into concrete
// dates in loc, Monday first.
func WeekDates(k Key, overrides Overrides, loc *time.Location) ([]time.Time, error) {
	w := WorkdaysFor(k, overrides)
	if w == 0 {
		return nil, nil
	}

	monday := calendar.ISOWeekStart(k.Year, k.Week, loc)
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: w.byWeekday(),
		Wkst:      rrule.MO,
		Dtstart:   monday,
		Until:     monday.AddDate(0, 0, 6),
	})
	if err != nil {
		return nil, err
	}

	dates := r.All()
	for i, d := range dates {
		dates[i] = calendar.StartOfDay(d.In(loc))
	}
	return dates, nil
}
