package netbilling

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidCommand indicates a command not allowed for the HTTP method.
	ErrInvalidCommand = errors.New("invalid command")
	// ErrParamMismatch indicates username and password lists of different lengths.
	ErrParamMismatch = errors.New("username/password count mismatch")
	// ErrForbidden indicates an unknown site or a wrong access keyword.
	ErrForbidden = errors.New("forbidden")
	// ErrAccessDenied indicates a hosted payment return with a bad proof of purchase.
	ErrAccessDenied = errors.New("access denied")
	// ErrMalformedRow indicates a report row whose width differs from the header.
	ErrMalformedRow = errors.New("malformed report row")
)

// RemoteError is an error reported by NETbilling in a text/plain response body.
type RemoteError struct {
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("netbilling error %s", e.Code)
	}
	return fmt.Sprintf("netbilling error %s: %s", e.Code, e.Message)
}

// RateLimitedError is returned when NETbilling answers with Retry-After.
type RateLimitedError struct {
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("netbilling rate limited, retry after %s: %s", e.RetryAfter, e.Message)
}

// MalformedRowError pinpoints the offending report line.
type MalformedRowError struct {
	Line int
	Want int
	Got  int
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("%s: line %d has %d columns, header has %d", ErrMalformedRow, e.Line, e.Got, e.Want)
}

func (e *MalformedRowError) Unwrap() error {
	return ErrMalformedRow
}
