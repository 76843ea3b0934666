package workday

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-W03 runs Monday Jan 13 to Sunday Jan 19.
func dayOfW03(weekday int) time.Time {
	return time.Date(2025, 1, 12+weekday, 10, 0, 0, 0, time.UTC)
}

func TestIsWorkdayDefaultsToMonFri(t *testing.T) {
	for d := 1; d <= 7; d++ {
		assert.Equal(t, d <= 5, IsWorkday(dayOfW03(d), nil), "weekday %d", d)
	}
}

func TestIsWorkdayUsesOverride(t *testing.T) {
	overrides := FromOverrides([]Override{
		{Year: 2025, Week: 3, Workdays: Weekdays(0).With(2).With(6)},
	})

	assert.False(t, IsWorkday(dayOfW03(1), overrides))
	assert.True(t, IsWorkday(dayOfW03(2), overrides))
	assert.True(t, IsWorkday(dayOfW03(6), overrides))

	// the following week keeps the default
	assert.True(t, IsWorkday(dayOfW03(1).AddDate(0, 0, 7), overrides))
	assert.False(t, IsWorkday(dayOfW03(6).AddDate(0, 0, 7), overrides))
}

func TestIsWorkdayUsesISOYear(t *testing.T) {
	// Dec 30 2024 is Monday of 2025-W01.
	overrides := FromOverrides([]Override{{Year: 2025, Week: 1, Workdays: 0}})
	assert.False(t, IsWorkday(time.Date(2024, 12, 30, 9, 0, 0, 0, time.UTC), overrides))

	// A calendar-year key must not match.
	overrides = FromOverrides([]Override{{Year: 2024, Week: 1, Workdays: 0}})
	assert.True(t, IsWorkday(time.Date(2024, 12, 30, 9, 0, 0, 0, time.UTC), overrides))
}

func TestSetWorkdayStatusSaturdayOn(t *testing.T) {
	updated, err := SetWorkdayStatus(nil, 2025, 3, 6, true)
	require.NoError(t, err)

	assert.True(t, IsWorkday(dayOfW03(6), updated))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, updated[Key{2025, 3}].List())

	// other weeks unaffected
	assert.False(t, IsWorkday(dayOfW03(6).AddDate(0, 0, -7), updated))
	assert.Len(t, updated, 1)
}

func TestSetWorkdayStatusDoesNotMutateInput(t *testing.T) {
	original := FromOverrides([]Override{{Year: 2025, Week: 3, Workdays: Default}})
	updated, err := SetWorkdayStatus(original, 2025, 3, 1, false)
	require.NoError(t, err)

	assert.Equal(t, Default, original[Key{2025, 3}])
	assert.Equal(t, []int{2, 3, 4, 5}, updated[Key{2025, 3}].List())
}

func TestSetWorkdayStatusIdempotent(t *testing.T) {
	ov, err := SetWorkdayStatus(nil, 2025, 3, 3, true)
	require.NoError(t, err)
	assert.Equal(t, Default, ov[Key{2025, 3}], "adding an existing day dedups")

	ov, err = SetWorkdayStatus(ov, 2025, 3, 7, false)
	require.NoError(t, err)
	assert.Equal(t, Default, ov[Key{2025, 3}], "removing an absent day is a no-op")
}

func TestSetWorkdayStatusRejectsInvalidInput(t *testing.T) {
	original := FromOverrides([]Override{{Year: 2025, Week: 3, Workdays: Default}})

	tests := []struct {
		name          string
		week, weekday int
		field         string
	}{
		{"weekday zero", 3, 0, "weekday"},
		{"weekday eight", 3, 8, "weekday"},
		{"negative weekday", 3, -1, "weekday"},
		{"week zero", 0, 1, "week"},
		{"week 54", 54, 1, "week"},
		{"week 53 of a 52-week year", 53, 6, "week"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SetWorkdayStatus(original, 2025, tt.week, tt.weekday, true)
			require.Error(t, err)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, original, got)
			assert.Len(t, original, 1)
		})
	}
}

func TestSetWorkdayStatusAcceptsWeek53InLongYear(t *testing.T) {
	ov, err := SetWorkdayStatus(nil, 2020, 53, 6, true)
	require.NoError(t, err)
	assert.Equal(t, Default.With(6), ov[Key{2020, 53}])
	assert.True(t, IsWorkday(time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC), ov), "2021-01-02 is in 2020-W53")
}

func TestKeyValidate(t *testing.T) {
	assert.NoError(t, Key{2020, 53}.Validate())
	assert.NoError(t, Key{2026, 53}.Validate())
	assert.NoError(t, Key{2025, 52}.Validate())
	assert.Error(t, Key{2025, 53}.Validate())
	assert.Error(t, Key{2025, 0}.Validate())
}

func TestWeekdaysSet(t *testing.T) {
	w, err := FromList([]int{5, 1, 1, 3})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 5}, w.List())
	assert.Equal(t, 3, w.Len())
	assert.Equal(t, "周一 周三 周五", w.String())
	assert.False(t, w.Has(0))
	assert.False(t, w.Has(8))
	assert.Equal(t, w, w.With(9))

	_, err = FromList([]int{1, 8})
	assert.Error(t, err)

	assert.Equal(t, []int{}, Weekdays(0).List())
}

func TestOverridesListSorted(t *testing.T) {
	ov := FromOverrides([]Override{
		{Year: 2025, Week: 10, Workdays: Default},
		{Year: 2024, Week: 52, Workdays: Default},
		{Year: 2025, Week: 2, Workdays: Default},
	})

	list := ov.List()
	require.Len(t, list, 3)
	assert.Equal(t, Key{2024, 52}, list[0].Key())
	assert.Equal(t, Key{2025, 2}, list[1].Key())
	assert.Equal(t, Key{2025, 10}, list[2].Key())
}

func TestRRuleAndDescribe(t *testing.T) {
	assert.Contains(t, RRule(Default), "FREQ=WEEKLY")
	assert.Contains(t, RRule(Default), "BYDAY=MO,TU,WE,TH,FR")
	assert.Equal(t, "", RRule(0))

	assert.Equal(t, "every weekday", Describe(Default))
	assert.Equal(t, "every weekend", Describe(Weekdays(0).With(6).With(7)))
	assert.Equal(t, "every day", Describe(Default.With(6).With(7)))
	assert.Equal(t, "no workdays", Describe(0))
	assert.Equal(t, "every Monday, Saturday", Describe(Weekdays(0).With(1).With(6)))
}

func TestWeekDates(t *testing.T) {
	ov := FromOverrides([]Override{{Year: 2025, Week: 3, Workdays: Weekdays(0).With(1).With(6)}})

	dates, err := WeekDates(Key{2025, 3}, ov, time.UTC)
	require.NoError(t, err)
	require.Len(t, dates, 2)
	assert.Equal(t, time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC), dates[0])
	assert.Equal(t, time.Date(2025, 1, 18, 0, 0, 0, 0, time.UTC), dates[1])

	dates, err = WeekDates(Key{2025, 4}, ov, time.UTC)
	require.NoError(t, err)
	assert.Len(t, dates, 5)

	dates, err = WeekDates(Key{2025, 5}, FromOverrides([]Override{{Year: 2025, Week: 5}}), time.UTC)
	require.NoError(t, err)
	assert.Empty(t, dates)
}
