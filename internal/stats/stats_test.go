package stats

import (
	"testing"
	"time"

	"github.com/lyphol/funnytime/internal/attendance"
	"github.com/lyphol/funnytime/internal/workday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(m time.Month, d int) time.Time {
	return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC)
}

func worked(date time.Time, fromHour, toHour int) attendance.Record {
	in := date.Add(time.Duration(fromHour) * time.Hour)
	out := date.Add(time.Duration(toHour) * time.Hour)
	return attendance.Record{Date: date, CheckInAt: &in, CheckOutAt: &out}
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("Month")
	require.NoError(t, err)
	assert.Equal(t, Month, p)

	p, err = ParsePeriod("week")
	require.NoError(t, err)
	assert.Equal(t, Week, p)

	_, err = ParsePeriod("year")
	assert.Error(t, err)
}

func TestComputeRange(t *testing.T) {
	// Sunday belongs to the week that started the previous Monday
	start, end := ComputeRange(Week, time.Date(2025, 6, 22, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, day(6, 16), start)
	assert.Equal(t, day(6, 23), end)

	start, end = ComputeRange(Month, time.Date(2025, 2, 14, 8, 0, 0, 0, time.UTC))
	assert.Equal(t, day(2, 1), start)
	assert.Equal(t, day(3, 1), end)
}

func TestDailyStatsWeek(t *testing.T) {
	tuesdayIn := day(6, 17).Add(9 * time.Hour)
	records := []attendance.Record{
		worked(day(6, 16), 9, 17),
		{Date: day(6, 17), CheckInAt: &tuesdayIn},
		worked(day(6, 19), 9, 15),
		worked(day(6, 21), 10, 12), // Saturday, rest day
		worked(day(6, 23), 9, 18),  // next week
	}

	daily := DailyStats(Week, day(6, 18), records, nil)
	require.Len(t, daily, 7)

	hours := make([]float64, len(daily))
	for i, d := range daily {
		hours[i] = d.Hours
	}
	assert.Equal(t, []float64{8, 0, 0, 6, 0, 0, 0}, hours)
	assert.Equal(t, day(6, 16), daily[0].Date)
	assert.Equal(t, day(6, 22), daily[6].Date)
	assert.True(t, daily[1].Workday, "incomplete workday is still a workday")
	assert.False(t, daily[5].Workday)

	s := Summarize(daily)
	assert.Equal(t, 7.0, s.Average)
	assert.Equal(t, 14.0, s.Total)
	assert.Equal(t, 2, s.Days)
}

func TestDailyStatsHonoursOverrides(t *testing.T) {
	overrides, err := workday.SetWorkdayStatus(nil, 2025, 25, 6, true)
	require.NoError(t, err)

	daily := DailyStats(Week, day(6, 18), []attendance.Record{worked(day(6, 21), 10, 12)}, overrides)
	assert.Equal(t, 2.0, daily[5].Hours)
	assert.True(t, daily[5].Workday)
}

func TestDailyStatsMonth(t *testing.T) {
	daily := DailyStats(Month, day(6, 18), []attendance.Record{worked(day(6, 30), 9, 17), worked(day(7, 1), 9, 17)}, nil)
	require.Len(t, daily, 30)
	assert.Equal(t, day(6, 1), daily[0].Date)
	assert.Equal(t, 8.0, daily[29].Hours)
	assert.Equal(t, 8.0, Summarize(daily).Total)
}

func TestSummarizeExcludesZeroHourDays(t *testing.T) {
	var daily []DailyStat
	for _, h := range []float64{8, 0, 0, 6, 0} {
		daily = append(daily, DailyStat{Hours: h})
	}
	s := Summarize(daily)
	assert.Equal(t, 7.0, s.Average)
	assert.Equal(t, 14.0, s.Total)

	assert.Equal(t, PeriodStats{}, Summarize(nil))
	assert.Equal(t, PeriodStats{}, Summarize([]DailyStat{{Hours: 0}, {Hours: 0}}))
}

func TestDailyStatsIsIdempotent(t *testing.T) {
	records := []attendance.Record{worked(day(6, 16), 9, 17)}
	assert.Equal(t, DailyStats(Week, day(6, 18), records, nil), DailyStats(Week, day(6, 18), records, nil))
}

func TestPeriodTitle(t *testing.T) {
	assert.Equal(t, "2025年第25周", PeriodTitle(Week, day(6, 18)))
	assert.Equal(t, "2025年第1周", PeriodTitle(Week, time.Date(2024, 12, 30, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025年6月", PeriodTitle(Month, day(6, 18)))
}

func TestBuildReport(t *testing.T) {
	now := time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)
	nav := NewNavigator(func() time.Time { return now })

	r := BuildReport(Week, now, []attendance.Record{worked(day(6, 16), 9, 17)}, nil, nav)
	assert.Equal(t, "2025年第25周", r.Title)
	assert.Equal(t, day(6, 16), r.Start)
	assert.Equal(t, day(6, 23), r.End)
	assert.Equal(t, 8.0, r.Summary.Total)
	assert.True(t, r.CanGoBack)
	assert.False(t, r.CanGoForward)
	assert.Equal(t, 5, r.WorkdayCount())
}
