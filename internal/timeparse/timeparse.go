// Package timeparse reads the loose time and day expressions accepted on
// the command line.
package timeparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/lyphol/funnytime/internal/calendar"
)

// TimeOfDay is a wall clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On places t on day's calendar date in day's location.
func (t TimeOfDay) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, 0, 0, day.Location())
}

var (
	// 9:30am, 9.30 pm, 9am
	clock12 = regexp.MustCompile(`^(\d{1,2})(?:[:.](\d{2}))?\s*(am|pm)$`)
	// 14:00, 09.30
	clock24 = regexp.MustCompile(`^(\d{1,2})[:.](\d{2})$`)
)

// ParseTimeOfDay accepts "9:30", "14.00", "9am", "9:30pm" and "9.30 am".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	if m := clock12.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if hour < 1 || hour > 12 {
			return TimeOfDay{}, fmt.Errorf("hour %d out of range for 12-hour format", hour)
		}
		if minute > 59 {
			return TimeOfDay{}, fmt.Errorf("minute %d out of range", minute)
		}
		hour %= 12
		if m[3] == "pm" {
			hour += 12
		}
		return TimeOfDay{Hour: hour, Minute: minute}, nil
	}

	if m := clock24.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour > 23 {
			return TimeOfDay{}, fmt.Errorf("hour %d out of range", hour)
		}
		if minute > 59 {
			return TimeOfDay{}, fmt.Errorf("minute %d out of range", minute)
		}
		return TimeOfDay{Hour: hour, Minute: minute}, nil
	}

	return TimeOfDay{}, fmt.Errorf("unrecognized time format %q", s)
}

// ParseInstant resolves a time-of-day expression on day, or an RFC 3339
// timestamp as-is.
func ParseInstant(s string, day time.Time) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(s)); err == nil {
		return t.In(day.Location()), nil
	}
	tod, err := ParseTimeOfDay(s)
	if err != nil {
		return time.Time{}, err
	}
	return tod.On(day), nil
}

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

var dayLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"Jan 2 2006",
	"January 2 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2",
	"January 2",
	"2 Jan",
	"2 January",
}

// ParseDay resolves a day expression relative to now and returns midnight of
// that day in now's location. Attendance is recorded after the fact, so bare
// weekday names mean the most recent such day (today included).
// Supports "today", "yesterday", "monday", "last friday", "2025-01-15",
// "Jan 2", "2 January 2006".
func ParseDay(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimSpace(strings.TrimPrefix(s, "on "))
	today := calendar.StartOfDay(now)

	switch s {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}

	if name, ok := strings.CutPrefix(s, "last "); ok {
		if wd, ok := weekdayNames[name]; ok {
			return previousWeekday(today, wd, false), nil
		}
	}
	if wd, ok := weekdayNames[s]; ok {
		return previousWeekday(today, wd, true), nil
	}

	for _, layout := range dayLayouts {
		t, err := time.ParseInLocation(layout, s, now.Location())
		if err != nil {
			continue
		}
		if !strings.Contains(layout, "2006") {
			t = time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())
		}
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// previousWeekday returns the latest wd on or before today. With
// includeToday false, today itself is skipped.
func previousWeekday(today time.Time, wd time.Weekday, includeToday bool) time.Time {
	back := (int(today.Weekday()) - int(wd) + 7) % 7
	if back == 0 && !includeToday {
		back = 7
	}
	return today.AddDate(0, 0, -back)
}

// ParseWeekday accepts an ordinal 1..7 or an English weekday name and
// returns the Monday=1 ordinal.
func ParseWeekday(s string) (int, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 7 {
			return 0, fmt.Errorf("weekday %d out of range 1..7", n)
		}
		return n, nil
	}
	if wd, ok := weekdayNames[s]; ok {
		if wd == time.Sunday {
			return 7, nil
		}
		return int(wd), nil
	}
	return 0, fmt.Errorf("unrecognized weekday %q", s)
}
