package core

import (
	"errors"
	"fmt"
)

var (
	// ErrBackendUnreachable indicates the inference backend could not be
	// reached at all (connection refused, DNS failure, timeout).
	ErrBackendUnreachable = errors.New("inference backend unreachable")

	// ErrMalformedReply indicates the model reply did not contain the expected
	// reasoning delimiter, so no usable answer segment could be extracted.
	ErrMalformedReply = errors.New("malformed model reply: reasoning delimiter not found")
)

// BackendError is a failure reported by the inference backend itself, as
// opposed to a transport-level failure. Status carries the backend's HTTP
// status code (or provider error code) and Body a truncated error payload.
type BackendError struct {
	Status int
	Body   string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("inference backend error: status %d: %s", e.Status, e.Body)
}
