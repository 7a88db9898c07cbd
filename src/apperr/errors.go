package apperr

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
)

// Error is an application-level failure that maps to a single HTTP status and
// a human-readable message. Storage and handler code return these (possibly
// wrapped); the request boundary translates them with Write.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

var (
	ErrMissingFields      = New(http.StatusBadRequest, "missing fields")
	ErrNothingToUpdate    = New(http.StatusBadRequest, "nothing to update")
	ErrInvalidType        = New(http.StatusBadRequest, "invalid transaction type")
	ErrInvalidAmount      = New(http.StatusBadRequest, "invalid amount")
	ErrCategoryNotFound   = New(http.StatusBadRequest, "invalid categoryId")
	ErrInvalidCredentials = New(http.StatusUnauthorized, "invalid email or password")
	ErrUnauthorized       = New(http.StatusUnauthorized, "unauthorized")
	ErrProtectedCategory  = New(http.StatusBadRequest, "cannot delete a default category")
	ErrMissingDefault     = New(http.StatusInternalServerError, "missing default category")
)

// StatusOf returns the HTTP status an error maps to. Anything that is not an
// application error is an internal failure.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// Write renders err as a JSON {"message": ...} body with the mapped status.
func Write(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	var ae *Error
	if errors.As(err, &ae) {
		status = ae.Status
		message = ae.Message
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
