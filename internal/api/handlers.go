package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lyphol/funnytime/internal/attendance"
	"github.com/lyphol/funnytime/internal/calendar"
	"github.com/lyphol/funnytime/internal/stats"
	"github.com/lyphol/funnytime/internal/store"
	"github.com/lyphol/funnytime/internal/timeparse"
	"github.com/lyphol/funnytime/internal/transfer"
	"github.com/lyphol/funnytime/internal/workday"
)

// maxImportBytes caps the size of an uploaded transfer document.
const maxImportBytes = 10 << 20

func (s *Server) periodQuery(r *http.Request) (stats.Period, time.Time, error) {
	q := r.URL.Query()
	p := stats.Week
	if v := q.Get("period"); v != "" {
		var err error
		if p, err = stats.ParsePeriod(v); err != nil {
			return p, time.Time{}, invalid(err)
		}
	}

	anchor := s.now()
	if v := q.Get("date"); v != "" {
		day, err := timeparse.ParseDay(v, anchor)
		if err != nil {
			return p, time.Time{}, invalid(err)
		}
		anchor = day
	}
	return p, s.navigator().Clamp(p, anchor), nil
}

func (s *Server) pathDay(r *http.Request) (time.Time, error) {
	now := s.now()
	day, err := timeparse.ParseDay(chi.URLParam(r, "day"), now)
	if err != nil {
		return time.Time{}, invalid(err)
	}
	if day.After(now) {
		return time.Time{}, invalid(fmt.Errorf("%s is in the future", day.Format(dayLayout)))
	}
	return day, nil
}

// punchTime reads the optional {"time": ...} body. Without one the current
// time is used.
func (s *Server) punchTime(r *http.Request, day time.Time) (time.Time, error) {
	now := s.now()
	var req punchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return time.Time{}, invalid(fmt.Errorf("invalid request body: %w", err))
	}
	if req.Time == nil {
		if !calendar.SameDay(day, now) {
			return time.Time{}, invalid(fmt.Errorf("time is required for %s", day.Format(dayLayout)))
		}
		return now.Truncate(time.Second), nil
	}

	t := req.Time.In(s.loc)
	if !calendar.SameDay(t, day) {
		return time.Time{}, invalid(fmt.Errorf("%s does not fall on %s", t.Format(time.RFC3339), day.Format(dayLayout)))
	}
	if t.After(now) {
		return time.Time{}, invalid(fmt.Errorf("%s is in the future", t.Format(time.RFC3339)))
	}
	return t, nil
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	p, anchor, err := s.periodQuery(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	records, err := s.store.Records(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	overrides, err := s.store.Overrides(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	success(w, newStatsResponse(stats.BuildReport(p, anchor, records, overrides, s.navigator())))
}

func (s *Server) listRecords(w http.ResponseWriter, r *http.Request) {
	p, anchor, err := s.periodQuery(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	all, err := s.store.Records(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	start, end := stats.ComputeRange(p, anchor)
	records := attendance.InRange(all, start, end)
	out := make([]RecordResponse, len(records))
	for i, rec := range records {
		out[i] = newRecordResponse(rec)
	}
	success(w, out)
}

func (s *Server) getRecord(w http.ResponseWriter, r *http.Request) {
	day, err := s.pathDay(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	rec, err := s.store.Record(r.Context(), day)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	success(w, newRecordResponse(rec))
}

func (s *Server) deleteRecord(w http.ResponseWriter, r *http.Request) {
	day, err := s.pathDay(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.store.DeleteRecord(r.Context(), day); err != nil {
		s.handleError(w, r, err)
		return
	}
	successWithMessage(w, "record deleted", nil)
}

// transition applies fn to the day's record and stores the result.
func (s *Server) transition(w http.ResponseWriter, r *http.Request, message string, fn func(rec *attendance.Record, at time.Time) error) {
	day, err := s.pathDay(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	at, err := s.punchTime(r, day)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	rec, err := s.store.Record(r.Context(), day)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.handleError(w, r, err)
			return
		}
		rec = attendance.New(day, s.loc)
	}
	if err := fn(&rec, at); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := s.store.UpsertRecord(r.Context(), rec); err != nil {
		s.handleError(w, r, err)
		return
	}
	successWithMessage(w, message, newRecordResponse(rec))
}

func (s *Server) checkIn(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, "checked in", func(rec *attendance.Record, at time.Time) error {
		return rec.CheckIn(at)
	})
}

func (s *Server) checkOut(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, "checked out", func(rec *attendance.Record, at time.Time) error {
		return rec.CheckOut(at)
	})
}

func (s *Server) punch(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, "punched", func(rec *attendance.Record, at time.Time) error {
		_, err := rec.Punch(at)
		return err
	})
}

func (s *Server) weekKey(r *http.Request) (workday.Key, error) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		return workday.Key{}, invalid(fmt.Errorf("invalid year %q", chi.URLParam(r, "year")))
	}
	week, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil {
		return workday.Key{}, invalid(fmt.Errorf("invalid week %q", chi.URLParam(r, "week")))
	}
	k := workday.Key{Year: year, Week: week}
	if err := k.Validate(); err != nil {
		return workday.Key{}, err
	}
	return k, nil
}

func (s *Server) getWorkdays(w http.ResponseWriter, r *http.Request) {
	k, err := s.weekKey(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	overrides, err := s.store.Overrides(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	resp, err := newWorkdaysResponse(k, overrides, s.loc)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	success(w, resp)
}

func (s *Server) putWorkday(w http.ResponseWriter, r *http.Request) {
	k, err := s.weekKey(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	weekday, err := timeparse.ParseWeekday(chi.URLParam(r, "weekday"))
	if err != nil {
		s.handleError(w, r, invalid(err))
		return
	}
	var req workdayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.On == nil {
		badRequest(w, `request body must be {"on": true|false}`)
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	overrides, err := s.store.Overrides(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	updated, err := workday.SetWorkdayStatus(overrides, k.Year, k.Week, weekday, *req.On)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := s.store.UpsertOverride(r.Context(), workday.Override{Year: k.Year, Week: k.Week, Workdays: updated[k]}); err != nil {
		s.handleError(w, r, err)
		return
	}
	resp, err := newWorkdaysResponse(k, updated, s.loc)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	successWithMessage(w, "workdays updated", resp)
}

// export streams the transfer document as a download.
func (s *Server) export(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.Records(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	overrides, err := s.store.Overrides(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, transfer.DefaultFileName(s.now())))
	if err := transfer.Encode(w, transfer.Serialize(records, overrides)); err != nil {
		s.logger.ErrorContext(r.Context(), "export failed", "error", err)
	}
}

// importData replaces everything with the uploaded transfer document.
func (s *Server) importData(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxImportBytes)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	snap, err := transfer.DeserializeAndReplace(r.Context(), body, s.loc, s.store)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	successWithMessage(w, "data imported", map[string]int{
		"records":  len(snap.Records),
		"workdays": len(snap.Overrides),
	})
}
