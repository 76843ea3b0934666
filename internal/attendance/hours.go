package attendance

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/lyphol/funnytime/internal/calendar"
)

// WorkedHours returns the raw check-in to check-out span in hours, or 0
// when the pair is incomplete.
func WorkedHours(r Record) float64 {
	if r.CheckInAt == nil || r.CheckOutAt == nil {
		return 0
	}
	return r.CheckOutAt.Sub(*r.CheckInAt).Hours()
}

// HoursFor returns the hours a record contributes to statistics. Rest days
// and incomplete pairs contribute 0. The value is not clamped: an inverted
// pair yields a negative number.
func HoursFor(r Record, isWorkday bool) float64 {
	if !isWorkday {
		return 0
	}
	return WorkedHours(r)
}

// FormatHours formats fractional hours as "8.5h".
func FormatHours(h float64) string {
	h = math.Round(h*10) / 10
	if h == math.Trunc(h) {
		return fmt.Sprintf("%.0fh", h)
	}
	return fmt.Sprintf("%.1fh", h)
}

// Find returns the index of the record for day's calendar date, or -1.
func Find(records []Record, day time.Time) int {
	for i := range records {
		if calendar.SameDay(day, records[i].Date) {
			return i
		}
	}
	return -1
}

// Upsert replaces the record sharing r's day, or appends r.
func Upsert(records []Record, r Record) []Record {
	if i := Find(records, r.Date); i >= 0 {
		records[i] = r
		return records
	}
	return append(records, r)
}

// Remove drops the record for day's calendar date. It reports whether a
// record was removed.
func Remove(records []Record, day time.Time) ([]Record, bool) {
	i := Find(records, day)
	if i < 0 {
		return records, false
	}
	return append(records[:i], records[i+1:]...), true
}

// InRange returns the records whose day lies in [start, end), newest first.
func InRange(records []Record, start, end time.Time) []Record {
	var out []Record
	for _, r := range records {
		if !r.Date.Before(start) && r.Date.Before(end) {
			out = append(out, r)
		}
	}
	SortNewestFirst(out)
	return out
}

// SortNewestFirst orders records by day, most recent first.
func SortNewestFirst(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
}
