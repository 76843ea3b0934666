package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)

func fixedNav() Navigator {
	return NewNavigator(func() time.Time { return fixedNow })
}

func TestCanGoForward(t *testing.T) {
	nav := fixedNav()

	assert.False(t, nav.CanGoForward(Week, fixedNow))
	assert.True(t, nav.CanGoForward(Week, fixedNow.AddDate(0, 0, -7)), "shifted anchor equal to now is allowed")
	assert.False(t, nav.CanGoForward(Week, fixedNow.AddDate(0, 0, -6)))

	assert.False(t, nav.CanGoForward(Month, fixedNow))
	assert.True(t, nav.CanGoForward(Month, time.Date(2025, 5, 18, 12, 0, 0, 0, time.UTC)))
}

func TestCanGoBackStopsAtHistoryLimit(t *testing.T) {
	nav := fixedNav()

	lb := nav.LowerBound(Week)
	assert.Equal(t, fixedNow.AddDate(0, 0, -350), lb)
	assert.True(t, nav.CanGoBack(Week, lb.AddDate(0, 0, 7)))
	assert.False(t, nav.CanGoBack(Week, lb.AddDate(0, 0, 6)))

	assert.Equal(t, time.Date(2021, 4, 18, 12, 0, 0, 0, time.UTC), nav.LowerBound(Month))

	nav.Limit = 2
	assert.True(t, nav.CanGoBack(Month, fixedNow.AddDate(0, -1, 0)))
	assert.False(t, nav.CanGoBack(Month, fixedNow.AddDate(0, -2, 0)))
}

func TestLowerBoundFollowsClock(t *testing.T) {
	now := fixedNow
	nav := NewNavigator(func() time.Time { return now })
	first := nav.LowerBound(Week)

	now = now.AddDate(0, 0, 7)
	assert.Equal(t, first.AddDate(0, 0, 7), nav.LowerBound(Week))
}

func TestStep(t *testing.T) {
	nav := fixedNav()

	prev, err := nav.Step(Week, fixedNow, -1)
	require.NoError(t, err)
	assert.Equal(t, fixedNow.AddDate(0, 0, -7), prev)

	next, err := nav.Step(Week, prev, 1)
	require.NoError(t, err)
	assert.Equal(t, fixedNow, next)

	same, err := nav.Step(Week, fixedNow, 1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, fixedNow, same)

	_, err = nav.Step(Week, nav.LowerBound(Week), -1)
	assert.ErrorIs(t, err, ErrOutOfRange)

	same, err = nav.Step(Month, fixedNow, 0)
	require.NoError(t, err)
	assert.Equal(t, fixedNow, same)
}

func TestWalkBackVisitsExactlyLimitPeriods(t *testing.T) {
	nav := fixedNav()
	anchor := fixedNow
	steps := 0
	for nav.CanGoBack(Week, anchor) {
		anchor, _ = nav.Step(Week, anchor, -1)
		steps++
	}
	assert.Equal(t, DefaultHistoryLimit, steps)
}

func TestClamp(t *testing.T) {
	nav := fixedNav()

	assert.Equal(t, fixedNow, nav.Clamp(Week, fixedNow.AddDate(0, 1, 0)))
	assert.Equal(t, nav.LowerBound(Week), nav.Clamp(Week, fixedNow.AddDate(-3, 0, 0)))

	inside := fixedNow.AddDate(0, -2, 0)
	assert.Equal(t, inside, nav.Clamp(Week, inside))
}

func TestSwitchPeriodClampsAnchor(t *testing.T) {
	nav := fixedNav()

	// 40 months back is browsable by month but beyond the 50 week floor
	anchor := fixedNow.AddDate(0, -40, 0)
	require.True(t, nav.CanGoBack(Month, anchor))

	p, clamped := nav.SwitchPeriod(Week, anchor)
	assert.Equal(t, Week, p)
	assert.Equal(t, nav.LowerBound(Week), clamped)

	p, kept := nav.SwitchPeriod(Month, clamped)
	assert.Equal(t, Month, p)
	assert.Equal(t, clamped, kept)
}

func TestToday(t *testing.T) {
	assert.Equal(t, fixedNow, fixedNav().Today())
}
