package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQuery is returned when the submitted query is blank.
	ErrEmptyQuery = errors.New("query cannot be empty")
	// ErrNoResults is returned when the service reports zero hits.
	ErrNoResults = errors.New("no images match the query")
	// ErrNoActiveSearch is returned by LoadMore without a search that has pages left.
	ErrNoActiveSearch = errors.New("no active search with pages left")
	// ErrSessionNotFound is returned for unknown or evicted sessions.
	ErrSessionNotFound = errors.New("session not found")
	// ErrTriggerInFlight is returned when a session is already running a request.
	ErrTriggerInFlight = errors.New("a request for this session is already in flight")
)

// HTTPError is returned when the service answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Status)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// NetworkError is returned when the request could not complete.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
