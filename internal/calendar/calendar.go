package calendar

import "time"

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date,
// evaluated in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Weekday returns the Monday=1 .. Sunday=7 ordinal of t.
// This is the only place native weekday numbering is converted.
func Weekday(t time.Time) int {
	if t.Weekday() == time.Sunday {
		return 7
	}
	return int(t.Weekday())
}

// StartOfISOWeek returns Monday 00:00 of the ISO week containing t.
// Sunday steps back six days, every other day steps back to Monday.
func StartOfISOWeek(t time.Time) time.Time {
	offset := -(int(t.Weekday()) - 1)
	if t.Weekday() == time.Sunday {
		offset = -6
	}
	return StartOfDay(t).AddDate(0, 0, offset)
}

// EndOfISOWeek returns the exclusive end of t's ISO week (the next Monday).
func EndOfISOWeek(t time.Time) time.Time {
	return StartOfISOWeek(t).AddDate(0, 0, 7)
}

// StartOfMonth returns the first day of t's month at midnight.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the exclusive end of t's month (the first of the next month).
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths shifts t by n months. The day is clamped to the last day of the
// target month, so Jan 31 + 1 month is Feb 28 (or 29), not Mar 3.
func AddMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	target := first.AddDate(0, n, 0)
	day := t.Day()
	if last := DaysIn(target.Year(), target.Month()); day > last {
		day = last
	}
	return target.AddDate(0, 0, day-1)
}

// ISOWeekStart returns the Monday of the given ISO year and week in loc.
func ISOWeekStart(year, week int, loc *time.Location) time.Time {
	// Jan 4 is always in week 1 of its ISO year
	jan4 := time.Date(year, 1, 4, 0, 0, 0, 0, loc)
	return StartOfISOWeek(jan4).AddDate(0, 0, (week-1)*7)
}

// ISOWeeksInYear returns 52 or 53, the number of ISO weeks in isoYear.
func ISOWeeksInYear(isoYear int) int {
	// Dec 28 always falls in the last week of its ISO year
	_, w := time.Date(isoYear, 12, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return w
}

// Days returns every calendar day in [start, end) in ascending order.
func Days(start, end time.Time) []time.Time {
	var days []time.Time
	for d := StartOfDay(start); d.Before(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
