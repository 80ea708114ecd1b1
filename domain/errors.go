package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURL indicates the request URL could not be built.
	// No network call is attempted.
	ErrInvalidURL = errors.New("invalid url")

	// ErrTransport indicates the request failed in flight or returned a non-2xx status.
	ErrTransport = errors.New("transport error")

	// ErrDecode indicates the response body did not match the listing schema.
	ErrDecode = errors.New("decode error")
)

// FetchError carries the failure kind (one of the sentinels above) and its cause.
type FetchError struct {
	Kind error
	Op   string
	Err  error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Retryable reports whether the user can usefully retry the operation.
func (e *FetchError) Retryable() bool {
	return !errors.Is(e.Kind, ErrInvalidURL)
}
