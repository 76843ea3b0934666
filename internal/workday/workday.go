package workday

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lyphol/funnytime/internal/calendar"
)

// Weekdays is a set of weekday ordinals, Monday=1 .. Sunday=7.
type Weekdays uint8

// Default is the workday set used by weeks without an override: Mon-Fri.
const Default Weekdays = 1<<1 | 1<<2 | 1<<3 | 1<<4 | 1<<5

// ValidationError reports an argument outside its allowed range.
type ValidationError struct {
	Field  string
	Value  int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %d: %s", e.Field, e.Value, e.Reason)
}

func validWeekday(d int) error {
	if d < 1 || d > 7 {
		return &ValidationError{Field: "weekday", Value: d, Reason: "expected 1 (Monday) to 7 (Sunday)"}
	}
	return nil
}

func validWeek(year, w int) error {
	last := calendar.ISOWeeksInYear(year)
	if w < 1 || w > last {
		return &ValidationError{Field: "week", Value: w, Reason: fmt.Sprintf("ISO year %d has weeks 1-%d", year, last)}
	}
	return nil
}

// FromList builds a set from ordinals. Duplicates collapse.
func FromList(days []int) (Weekdays, error) {
	var w Weekdays
	for _, d := range days {
		if err := validWeekday(d); err != nil {
			return 0, err
		}
		w = w.With(d)
	}
	return w, nil
}

// Has reports whether ordinal d is in the set.
func (w Weekdays) Has(d int) bool {
	if d < 1 || d > 7 {
		return false
	}
	return w&(1<<d) != 0
}

// With returns the set with d added.
func (w Weekdays) With(d int) Weekdays {
	if d < 1 || d > 7 {
		return w
	}
	return w | 1<<d
}

// Without returns the set with d removed.
func (w Weekdays) Without(d int) Weekdays {
	if d < 1 || d > 7 {
		return w
	}
	return w &^ (1 << d)
}

// List returns the ordinals in ascending order.
func (w Weekdays) List() []int {
	days := []int{}
	for d := 1; d <= 7; d++ {
		if w.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

// Len returns the number of days in the set.
func (w Weekdays) Len() int {
	return len(w.List())
}

// String returns the zh_CN weekday names, e.g. "周一 周二".
func (w Weekdays) String() string {
	names := make([]string, 0, 7)
	for _, d := range w.List() {
		names = append(names, calendar.WeekdayName(d))
	}
	return strings.Join(names, " ")
}

// Key identifies an ISO week. Year is the ISO year, not the calendar year.
type Key struct {
	Year int
	Week int
}

// KeyOf returns the ISO week key for t.
func KeyOf(t time.Time) Key {
	y, w := t.ISOWeek()
	return Key{Year: y, Week: w}
}

// Validate checks that the week exists in the key's ISO year.
func (k Key) Validate() error {
	return validWeek(k.Year, k.Week)
}

func (k Key) String() string {
	return fmt.Sprintf("%d-W%02d", k.Year, k.Week)
}

// Override replaces the default workday set for one ISO week.
type Override struct {
	Year     int
	Week     int
	Workdays Weekdays
}

// Key returns the override's ISO week key.
func (o Override) Key() Key {
	return Key{Year: o.Year, Week: o.Week}
}

// Overrides is the per-week override table. A nil table is valid and empty.
type Overrides map[Key]Weekdays

// FromOverrides builds a table from a list. Later entries win on duplicate keys.
func FromOverrides(list []Override) Overrides {
	out := make(Overrides, len(list))
	for _, o := range list {
		out[o.Key()] = o.Workdays
	}
	return out
}

// List returns the overrides sorted by year, then week.
func (o Overrides) List() []Override {
	list := make([]Override, 0, len(o))
	for k, w := range o {
		list = append(list, Override{Year: k.Year, Week: k.Week, Workdays: w})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Year != list[j].Year {
			return list[i].Year < list[j].Year
		}
		return list[i].Week < list[j].Week
	})
	return list
}

// Lookup returns the override for k, if any.
func (o Overrides) Lookup(k Key) (Weekdays, bool) {
	w, ok := o[k]
	return w, ok
}

// Clone returns an independent copy.
func (o Overrides) Clone() Overrides {
	out := make(Overrides, len(o))
	for k, w := range o {
		out[k] = w
	}
	return out
}

// WorkdaysFor returns the effective set for an ISO week.
func WorkdaysFor(k Key, overrides Overrides) Weekdays {
	if w, ok := overrides.Lookup(k); ok {
		return w
	}
	return Default
}

// IsWorkday reports whether t's calendar day is a workday under overrides.
func IsWorkday(t time.Time, overrides Overrides) bool {
	return WorkdaysFor(KeyOf(t), overrides).Has(calendar.Weekday(t))
}

// SetWorkdayStatus returns a copy of overrides with weekday switched on or off
// for the given ISO week. A week without an override is first seeded from the
// default set. The input table is never modified.
func SetWorkdayStatus(overrides Overrides, year, week, weekday int, on bool) (Overrides, error) {
	if err := validWeekday(weekday); err != nil {
		return overrides, err
	}
	if err := validWeek(year, week); err != nil {
		return overrides, err
	}

	k := Key{Year: year, Week: week}
	current := WorkdaysFor(k, overrides)
	if on {
		current = current.With(weekday)
	} else {
		current = current.Without(weekday)
	}

	out := overrides.Clone()
	out[k] = current
	return out, nil
}
