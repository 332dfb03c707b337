package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is returned by every Client operation that did not succeed. Message is
// safe to show to the customer; Body keeps the raw upstream payload.
type Error struct {
	Op         string
	StatusCode int
	Message    string
	Body       string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backend %s: status %d: %s: %v", e.Op, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("backend %s: status %d: %s", e.Op, e.StatusCode, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Message extracts the customer facing message of err, or fallback when err
// did not come from the backend.
func Message(err error, fallback string) string {
	var be *Error
	if errors.As(err, &be) && be.Message != "" {
		return be.Message
	}
	return fallback
}

// Body returns the raw upstream payload carried by err, if any.
func Body(err error) string {
	var be *Error
	if errors.As(err, &be) {
		return be.Body
	}
	return ""
}

// StatusCode returns the status carried by err, defaulting to 500.
func StatusCode(err error) int {
	var be *Error
	if errors.As(err, &be) && be.StatusCode != 0 {
		return be.StatusCode
	}
	return http.StatusInternalServerError
}

func statusOr(status, fallback int) int {
	if status == 0 {
		return fallback
	}
	return status
}
