package cli

import (
	"fmt"
	"time"

	"github.com/lyphol/funnytime/internal/attendance"
	"github.com/lyphol/funnytime/internal/calendar"
	"github.com/lyphol/funnytime/internal/timeparse"
)

var dateFlag = StringFlag{Name: "date", Shorthand: "d", Usage: "day to act on (today, yesterday, monday, 2025-01-15, ...)"}

// resolveDay reads a day expression relative to now. Empty means today.
func resolveDay(expr string, now time.Time) (time.Time, error) {
	day, err := timeparse.ParseDay(expr, now)
	if err != nil {
		return time.Time{}, err
	}
	if day.After(now) {
		return time.Time{}, fmt.Errorf("%s is in the future", calendar.FormatDate(day))
	}
	return day, nil
}

// resolveInstant reads --at on day. Without --at only today is allowed and
// now is used.
func resolveInstant(expr string, day, now time.Time) (time.Time, error) {
	if expr == "" {
		if !calendar.SameDay(day, now) {
			return time.Time{}, fmt.Errorf("--at is required for %s", calendar.FormatDate(day))
		}
		return now.Truncate(time.Second), nil
	}
	t, err := timeparse.ParseInstant(expr, day)
	if err != nil {
		return time.Time{}, err
	}
	if !calendar.SameDay(t, day) {
		return time.Time{}, fmt.Errorf("%s does not fall on %s", t.Format(time.RFC3339), calendar.FormatDate(day))
	}
	if t.After(now) {
		return time.Time{}, fmt.Errorf("%s is in the future", t.Format("2006-01-02 15:04"))
	}
	return t, nil
}

func dayLabel(day time.Time) string {
	return calendar.FormatDate(day) + " " + calendar.FormatWeekday(day)
}

func clockLabel(t *time.Time) string {
	if t == nil {
		return "--:--"
	}
	return t.Format("15:04")
}

// describeRecord prints one line for a record: day, in, out and hours.
func describeRecord(r attendance.Record) string {
	return fmt.Sprintf("%s  %s → %s  %s",
		Info(dayLabel(r.Date)),
		Primary(clockLabel(r.CheckInAt)),
		Primary(clockLabel(r.CheckOutAt)),
		attendance.FormatHours(attendance.WorkedHours(r)))
}
