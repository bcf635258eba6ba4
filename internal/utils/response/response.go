// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, we centralise them here.
//
// Consistent response shapes also make life easier for API consumers —
// they always know what error responses look like.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mongolearn/lessons-api/internal/odm"
)

// Response is the standard envelope returned for error cases.
//
// Success responses may return any JSON shape (a lesson, a list, an id…).
// Error responses always look like:
//
//	{ "status": "error", "error": "field Title is required" }
type Response struct {
	Status string `json:"status"` // "ok" or "error"
	Error  string `json:"error"`  // human-readable error detail
}

// Status string constants — a typo in a literal would ship "eroor";
// a typo here is a compile error.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into the standard Response shape.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// WriteError maps err onto the right HTTP status and writes the envelope.
// Handlers call this for anything coming back from the storage layer so
// the sentinel → status mapping lives in exactly one place.
func WriteError(w http.ResponseWriter, err error) error {
	return WriteJSON(w, StatusFromError(err), GeneralError(err))
}

// StatusFromError translates odm sentinel errors into HTTP status codes.
//
//	ErrNotFound             → 404
//	ErrValidation, ErrInvalidID, ErrUnknownVirtual → 400
//	ErrDuplicate            → 409
//	anything else           → 500
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, odm.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, odm.ErrValidation),
		errors.Is(err, odm.ErrInvalidID),
		errors.Is(err, odm.ErrUnknownVirtual):
		return http.StatusBadRequest
	case errors.Is(err, odm.ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
