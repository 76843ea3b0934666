package cli

import (
	"context"
	"testing"

	"github.com/lyphol/funnytime/internal/workday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkdaysDefaultWeek(t *testing.T) {
	a := newTestApp(t)
	cmd, buf := newTestCmd()

	require.NoError(t, runWorkdays(cmd, a, "", fixedNow))
	out := buf.String()

	assert.Contains(t, out, "2025年第25周")
	assert.Contains(t, out, "2025年6月16日 to 2025年6月22日")
	assert.Contains(t, out, "every weekday")
	assert.Contains(t, out, "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR")
	assert.Contains(t, out, "(default)")
	assert.Contains(t, out, "5 workdays: 06-16 06-17 06-18 06-19 06-20")
}

func TestWorkdaysShowsOverride(t *testing.T) {
	a := newTestApp(t)
	cmd, buf := newTestCmd()
	seedOverride(t, a, 2025, 1, 1, 2, 3)

	require.NoError(t, runWorkdays(cmd, a, "2025-01-01", fixedNow))
	out := buf.String()
	assert.Contains(t, out, "2025年第1周")
	assert.Contains(t, out, "every Monday, Tuesday, Wednesday")
	assert.Contains(t, out, "(override)")
	assert.Contains(t, out, "3 workdays: 12-30 12-31 01-01")
}

func TestWorkdaysSetSaturdayOn(t *testing.T) {
	a := newTestApp(t)
	cmd, buf := newTestCmd()

	require.NoError(t, runWorkdaysSet(cmd, a, "", "saturday", "on", fixedNow))
	assert.Contains(t, buf.String(), "周六 of 2025年第25周 is now a workday")
	assert.Contains(t, buf.String(), "6 workdays")

	ov, err := a.store.Overrides(context.Background())
	require.NoError(t, err)
	assert.Equal(t, workday.Default.With(6), ov[workday.Key{Year: 2025, Week: 25}])
	assert.Len(t, ov, 1, "other weeks untouched")
}

func TestWorkdaysSetIsIdempotent(t *testing.T) {
	a := newTestApp(t)
	cmd, _ := newTestCmd()

	require.NoError(t, runWorkdaysSet(cmd, a, "2025-06-02", "1", "off", fixedNow))
	require.NoError(t, runWorkdaysSet(cmd, a, "2025-06-02", "mon", "off", fixedNow))

	ov, err := a.store.Overrides(context.Background())
	require.NoError(t, err)
	assert.Equal(t, workday.Default.Without(1), ov[workday.Key{Year: 2025, Week: 23}])
}

func TestWorkdaysSetAllowsFutureWeeks(t *testing.T) {
	a := newTestApp(t)
	cmd, _ := newTestCmd()

	require.NoError(t, runWorkdaysSet(cmd, a, "2025-10-01", "wed", "off", fixedNow))
	ov, err := a.store.Overrides(context.Background())
	require.NoError(t, err)
	assert.False(t, ov[workday.Key{Year: 2025, Week: 40}].Has(3))
}

func TestWorkdaysSetRejectsBadInput(t *testing.T) {
	a := newTestApp(t)
	cmd, _ := newTestCmd()

	assert.Error(t, runWorkdaysSet(cmd, a, "", "8", "on", fixedNow))
	assert.Error(t, runWorkdaysSet(cmd, a, "", "funday", "on", fixedNow))
	assert.ErrorContains(t, runWorkdaysSet(cmd, a, "", "mon", "maybe", fixedNow), "expected on or off")
	assert.Error(t, runWorkdaysSet(cmd, a, "someday", "mon", "on", fixedNow))

	ov, err := a.store.Overrides(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ov)
}
