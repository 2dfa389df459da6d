package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized maps a 401 from the backend. Callers surface a
	// login prompt for it, never a generic error.
	ErrUnauthorized = errors.New("backend: unauthorized")

	// ErrNotFound maps a 404 from the backend.
	ErrNotFound = errors.New("backend: not found")
)

// APIError carries a non-401/404 failure, with the backend's own
// message when one was returned.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend: unexpected status %d", e.Status)
	}
	return fmt.Sprintf("backend: %s (status %d)", e.Message, e.Status)
}
