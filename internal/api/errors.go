package api

import (
	"errors"
	"fmt"
)

// Error is a non-2xx response from the backend.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
}

// UserMessage returns the backend-provided message when there is one,
// falling back to a generic string safe to show in the UI.
func (e *Error) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return "Internal server error"
}

// AsError unwraps an *Error from err, if present.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
