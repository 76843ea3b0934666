package attendance

import (
	"errors"
	"fmt"
	"time"

	"github.com/lyphol/funnytime/internal/calendar"
)

// State is the position of a record in the check-in/check-out flow.
type State int

const (
	NotStarted State = iota
	CheckedIn
	Completed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case CheckedIn:
		return "checked in"
	case Completed:
		return "completed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

var (
	ErrAlreadyCheckedIn  = errors.New("already checked in for this day")
	ErrNotCheckedIn      = errors.New("not checked in for this day")
	ErrAlreadyCheckedOut = errors.New("already checked out for this day")
	ErrAlreadyCompleted  = errors.New("attendance for this day is already completed")
)

// TimeOrderingError is returned when a check-out would precede its check-in.
type TimeOrderingError struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func (e *TimeOrderingError) Error() string {
	return fmt.Sprintf("check-out %s is before check-in %s",
		e.CheckOut.Format("2006-01-02 15:04"), e.CheckIn.Format("2006-01-02 15:04"))
}

// Record is one day of attendance. Its identity is the calendar day of Date,
// which is always stored as midnight.
type Record struct {
	Date       time.Time
	CheckInAt  *time.Time
	CheckOutAt *time.Time
}

// New creates an empty record for t's calendar day in loc.
func New(t time.Time, loc *time.Location) Record {
	return Record{Date: calendar.StartOfDay(t.In(loc))}
}

// State derives the flow position from the timestamp pair. A record that
// only has a check-out (set manually) has not started: it still awaits its
// check-in.
func (r Record) State() State {
	switch {
	case r.CheckInAt != nil && r.CheckOutAt != nil:
		return Completed
	case r.CheckInAt != nil:
		return CheckedIn
	default:
		return NotStarted
	}
}

// CheckIn records the check-in time. Only valid before any check-in. A
// check-out already on the record must not precede t.
func (r *Record) CheckIn(t time.Time) error {
	if r.State() != NotStarted {
		return ErrAlreadyCheckedIn
	}
	if r.CheckOutAt != nil && r.CheckOutAt.Before(t) {
		return &TimeOrderingError{CheckIn: t, CheckOut: *r.CheckOutAt}
	}
	r.CheckInAt = &t
	return nil
}

// CheckOut records the check-out time. Requires a check-in and t not before it.
func (r *Record) CheckOut(t time.Time) error {
	switch r.State() {
	case NotStarted:
		return ErrNotCheckedIn
	case Completed:
		return ErrAlreadyCheckedOut
	}
	if t.Before(*r.CheckInAt) {
		return &TimeOrderingError{CheckIn: *r.CheckInAt, CheckOut: t}
	}
	r.CheckOutAt = &t
	return nil
}

// Punch advances the one-button flow: check in, then check out.
func (r *Record) Punch(t time.Time) (State, error) {
	switch r.State() {
	case NotStarted:
		if err := r.CheckIn(t); err != nil {
			return NotStarted, err
		}
		return r.State(), nil
	case CheckedIn:
		if err := r.CheckOut(t); err != nil {
			return CheckedIn, err
		}
		return Completed, nil
	}
	return Completed, ErrAlreadyCompleted
}

// EditCheckIn replaces the check-in time. A present check-out must not
// precede the new value.
func (r *Record) EditCheckIn(t time.Time) error {
	if r.CheckOutAt != nil && r.CheckOutAt.Before(t) {
		return &TimeOrderingError{CheckIn: t, CheckOut: *r.CheckOutAt}
	}
	r.CheckInAt = &t
	return nil
}

// EditCheckOut replaces the check-out time of a checked-in record.
func (r *Record) EditCheckOut(t time.Time) error {
	if r.CheckInAt == nil {
		return ErrNotCheckedIn
	}
	if t.Before(*r.CheckInAt) {
		return &TimeOrderingError{CheckIn: *r.CheckInAt, CheckOut: t}
	}
	r.CheckOutAt = &t
	return nil
}
