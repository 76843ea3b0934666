package stats

import (
	"errors"
	"time"
)

// DefaultHistoryLimit is how many periods back from now browsing may go.
const DefaultHistoryLimit = 50

// ErrOutOfRange is returned when a step would leave [LowerBound, now].
var ErrOutOfRange = errors.New("period is out of the browsable range")

// Navigator decides which anchors may be browsed. Both bounds are derived
// from Clock on every call.
type Navigator struct {
	Clock func() time.Time
	Limit int
}

// NewNavigator returns a navigator with the default history limit.
func NewNavigator(clock func() time.Time) Navigator {
	return Navigator{Clock: clock, Limit: DefaultHistoryLimit}
}

func (n Navigator) now() time.Time {
	if n.Clock == nil {
		return time.Now()
	}
	return n.Clock()
}

func (n Navigator) limit() int {
	if n.Limit <= 0 {
		return DefaultHistoryLimit
	}
	return n.Limit
}

// LowerBound is now shifted back Limit periods.
func (n Navigator) LowerBound(p Period) time.Time {
	return Shift(p, n.now(), -n.limit())
}

// CanGoBack reports whether the previous period is still within the floor.
func (n Navigator) CanGoBack(p Period, anchor time.Time) bool {
	return !Shift(p, anchor, -1).Before(n.LowerBound(p))
}

// CanGoForward reports whether the next period would not pass now.
func (n Navigator) CanGoForward(p Period, anchor time.Time) bool {
	return !Shift(p, anchor, 1).After(n.now())
}

// Step moves anchor one period in dir (negative is back). The anchor is
// returned unchanged with ErrOutOfRange when the move is not allowed.
func (n Navigator) Step(p Period, anchor time.Time, dir int) (time.Time, error) {
	switch {
	case dir < 0:
		if !n.CanGoBack(p, anchor) {
			return anchor, ErrOutOfRange
		}
		return Shift(p, anchor, -1), nil
	case dir > 0:
		if !n.CanGoForward(p, anchor) {
			return anchor, ErrOutOfRange
		}
		return Shift(p, anchor, 1), nil
	}
	return anchor, nil
}

// Clamp moves anchor into [LowerBound(p), now].
func (n Navigator) Clamp(p Period, anchor time.Time) time.Time {
	now := n.now()
	if anchor.After(now) {
		return now
	}
	if lb := n.LowerBound(p); anchor.Before(lb) {
		return lb
	}
	return anchor
}

// SwitchPeriod changes the period type and clamps the anchor to the new
// period's bounds.
func (n Navigator) SwitchPeriod(to Period, anchor time.Time) (Period, time.Time) {
	return to, n.Clamp(to, anchor)
}

// Today returns the anchor for the current period.
func (n Navigator) Today() time.Time {
	return n.now()
}
