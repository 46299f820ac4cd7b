package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates resource not found
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidRequest indicates invalid request
	ErrInvalidRequest = errors.New("invalid request")
	// ErrMountPointNotFound indicates the host page has no element to render the widget into
	ErrMountPointNotFound = errors.New("widget mount point not found")
	// ErrMalformedResponse indicates the assistant answered without a usable reply
	ErrMalformedResponse = errors.New("malformed assistant response")
)

// StatusError is returned when the assistant endpoint answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("assistant endpoint returned %s", e.Status)
}
