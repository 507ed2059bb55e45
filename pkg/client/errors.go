package client

import (
	"errors"
	"fmt"
)

// ErrFetchFailed is matched by every *FetchError.
var ErrFetchFailed = errors.New("client: fetch failed")

// FetchError reports a non-2xx response from the service.
type FetchError struct {
	StatusCode int
	Status     string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("client: fetch failed: %d %s", e.StatusCode, e.Status)
}

func (e *FetchError) Unwrap() error {
	return ErrFetchFailed
}
