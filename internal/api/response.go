package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lyphol/funnytime/internal/attendance"
	"github.com/lyphol/funnytime/internal/store"
	"github.com/lyphol/funnytime/internal/transfer"
	"github.com/lyphol/funnytime/internal/workday"
)

// Response is the envelope of every JSON reply.
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		fallback := Response{
			Error: &ErrorDetail{Code: "ENCODING_ERROR", Message: "Failed to encode response"},
		}
		_ = json.NewEncoder(w).Encode(fallback)
	}
}

func success(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

func successWithMessage(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func fail(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Response{Error: &ErrorDetail{Code: code, Message: message}})
}

func badRequest(w http.ResponseWriter, message string) {
	fail(w, http.StatusBadRequest, "BAD_REQUEST", message)
}

func unauthorized(w http.ResponseWriter, message string) {
	fail(w, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

// requestError marks a request the client got wrong: a bad path segment,
// query value or body.
type requestError struct {
	err error
}

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

func invalid(err error) error {
	return &requestError{err: err}
}

// handleError maps domain errors to HTTP responses.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		reqErr     *requestError
		validation *workday.ValidationError
		ordering   *attendance.TimeOrderingError
		importErr  *transfer.ImportFormatError
	)

	switch {
	case errors.As(err, &importErr):
		fail(w, http.StatusBadRequest, "IMPORT_FORMAT", err.Error())
	case errors.As(err, &reqErr), errors.As(err, &validation):
		badRequest(w, err.Error())
	case errors.As(err, &ordering):
		fail(w, http.StatusBadRequest, "TIME_ORDERING", err.Error())

	case errors.Is(err, store.ErrNotFound):
		fail(w, http.StatusNotFound, "NOT_FOUND", "Record not found")

	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut),
		errors.Is(err, attendance.ErrAlreadyCompleted):
		fail(w, http.StatusConflict, "CONFLICT", err.Error())

	default:
		s.logger.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		fail(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred")
	}
}
