package transfer

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/lyphol/funnytime/internal/attendance"
	"github.com/lyphol/funnytime/internal/workday"
)

// Document is the transfer format shared with earlier exports.
type Document struct {
	Records  []RecordEntry  `json:"records"`
	Workdays []WorkdayEntry `json:"workdays"`
}

// RecordEntry is one attendance record. Timestamps are absolute instants.
type RecordEntry struct {
	Date         *time.Time `json:"date"`
	CheckInTime  *time.Time `json:"checkInTime,omitempty"`
	CheckOutTime *time.Time `json:"checkOutTime,omitempty"`
}

// WorkdayEntry is one per-week workday override.
type WorkdayEntry struct {
	Year     int   `json:"year"`
	Week     int   `json:"week"`
	Workdays []int `json:"workdays"`
}

// Snapshot is a validated document in domain types.
type Snapshot struct {
	Records   []attendance.Record
	Overrides workday.Overrides
}

// ImportFormatError reports a document that cannot be imported.
type ImportFormatError struct {
	Reason string
	Err    error
}

func (e *ImportFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid import document: %s: %v", e.Reason, e.Err)
	}
	return "invalid import document: " + e.Reason
}

func (e *ImportFormatError) Unwrap() error { return e.Err }

func formatErr(format string, args ...any) error {
	return &ImportFormatError{Reason: fmt.Sprintf(format, args...)}
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC().Truncate(time.Second)
	return &u
}

// Serialize converts records and overrides into a document. Records are
// ordered newest first and overrides by (year, week).
func Serialize(records []attendance.Record, overrides workday.Overrides) Document {
	sorted := make([]attendance.Record, len(records))
	copy(sorted, records)
	attendance.SortNewestFirst(sorted)

	doc := Document{
		Records:  make([]RecordEntry, 0, len(sorted)),
		Workdays: make([]WorkdayEntry, 0, len(overrides)),
	}
	for _, r := range sorted {
		date := r.Date
		doc.Records = append(doc.Records, RecordEntry{
			Date:         utc(&date),
			CheckInTime:  utc(r.CheckInAt),
			CheckOutTime: utc(r.CheckOutAt),
		})
	}
	for _, o := range overrides.List() {
		doc.Workdays = append(doc.Workdays, WorkdayEntry{
			Year:     o.Year,
			Week:     o.Week,
			Workdays: o.Workdays.List(),
		})
	}
	return doc
}

// Encode writes doc as indented JSON.
func Encode(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Decode parses and validates a whole document. Record days are taken in
// loc. Any problem yields *ImportFormatError and no partial snapshot.
func Decode(r io.Reader, loc *time.Location) (Snapshot, error) {
	var doc Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return Snapshot{}, &ImportFormatError{Reason: "malformed JSON", Err: err}
	}
	if dec.More() {
		return Snapshot{}, formatErr("trailing data after document")
	}
	return doc.Snapshot(loc)
}

// Snapshot validates doc and converts it into domain types.
func (doc Document) Snapshot(loc *time.Location) (Snapshot, error) {
	if loc == nil {
		loc = time.Local
	}

	snap := Snapshot{
		Records:   make([]attendance.Record, 0, len(doc.Records)),
		Overrides: workday.Overrides{},
	}

	seenDays := make(map[string]int, len(doc.Records))
	for i, e := range doc.Records {
		if e.Date == nil {
			return Snapshot{}, formatErr("record %d: missing date", i)
		}
		rec := attendance.New(*e.Date, loc)
		key := rec.Date.Format("2006-01-02")
		if j, dup := seenDays[key]; dup {
			return Snapshot{}, formatErr("records %d and %d share the day %s", j, i, key)
		}
		seenDays[key] = i
		rec.CheckInAt = inLoc(e.CheckInTime, loc)
		rec.CheckOutAt = inLoc(e.CheckOutTime, loc)
		snap.Records = append(snap.Records, rec)
	}

	for i, e := range doc.Workdays {
		k := workday.Key{Year: e.Year, Week: e.Week}
		if err := k.Validate(); err != nil {
			return Snapshot{}, &ImportFormatError{Reason: fmt.Sprintf("workdays %d", i), Err: err}
		}
		set, err := workday.FromList(e.Workdays)
		if err != nil {
			return Snapshot{}, &ImportFormatError{Reason: fmt.Sprintf("workdays %d", i), Err: err}
		}
		if len(e.Workdays) != set.Len() {
			return Snapshot{}, formatErr("workdays %d: duplicate weekday", i)
		}
		if _, dup := snap.Overrides[k]; dup {
			return Snapshot{}, formatErr("workdays %d: duplicate week %s", i, k)
		}
		snap.Overrides[k] = set
	}

	return snap, nil
}

func inLoc(t *time.Time, loc *time.Location) *time.Time {
	if t == nil {
		return nil
	}
	v := t.In(loc)
	return &v
}
