package services

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidID   = errors.New("id must be a positive integer")
	ErrEmptyQuery  = errors.New("search query cannot be empty")
	ErrRateLimited = errors.New("rate limit exceeded")
)

// HTTPError is returned when Jikan answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("jikan API error: %d %s", e.StatusCode, e.Status)
}

// TransportError is returned when no response was received at all.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to make HTTP request: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError is returned when the body is not a JSON envelope with a data field.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse jikan response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
