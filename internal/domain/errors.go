package domain

import (
	"errors"
	"fmt"
)

// ErrNoSession indicates that no session entry is stored locally.
var ErrNoSession = errors.New("no stored session")

// APIError is the typed failure returned by the transport layer.
// Status is zero when no response was received at all (DNS failure,
// connection refused, timeout); otherwise it carries the HTTP status code
// and Message carries the error field from the response body when the
// service supplied one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}
