package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedResponse marks a provider reply the adapter could not
	// decode. It is a contract violation, never retried.
	ErrMalformedResponse = errors.New("gateway: malformed provider response")

	// ErrNotImplemented is returned by providers that are registered but
	// not yet wired to a real API.
	ErrNotImplemented = errors.New("gateway: provider not implemented")
)

// APIError is a remote rejection: the provider answered with a
// non-success status. Status and body are kept for logging; the
// current policy treats these as retryable.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway: provider returned status %d: %s", e.Status, e.Body)
}
