package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrUnreachable indicates a transport-level failure before any
	// backend-reported response was received.
	ErrUnreachable = errors.New("inference backend unreachable")

	// ErrEmptyResponse indicates the backend answered successfully but
	// produced no extractable text.
	ErrEmptyResponse = errors.New("inference backend returned no text")

	// ErrQuotaExhausted marks quota/rate-limit failures so callers can
	// show a "service temporarily degraded" message instead of a
	// generic one. Matched via errors.Is.
	ErrQuotaExhausted = errors.New("inference backend quota exhausted")

	// ErrNoBackends indicates a chain was configured without any
	// backend ids.
	ErrNoBackends = errors.New("no inference backends configured")

	// ErrInvalidOutput indicates model output that could not be parsed
	// into the expected structured form.
	ErrInvalidOutput = errors.New("invalid model output format")
)

// BackendError is an error the backend itself reported (not-found
// model, quota exhausted, malformed request, server error).
type BackendError struct {
	Backend    string
	StatusCode int
	Status     string // API status token, e.g. "RESOURCE_EXHAUSTED"
	Message    string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend %s returned %d %s: %s", e.Backend, e.StatusCode, e.Status, e.Message)
}

// Is lets errors.Is(err, ErrQuotaExhausted) detect rate-limit failures.
func (e *BackendError) Is(target error) bool {
	return target == ErrQuotaExhausted && e.quota()
}

func (e *BackendError) quota() bool {
	return e.StatusCode == 429 || e.Status == "RESOURCE_EXHAUSTED"
}

// AllBackendsError reports that every backend in a fallback chain
// failed. LastErr carries the most recent failure for diagnostics.
type AllBackendsError struct {
	Attempted int
	LastErr   error
}

func (e *AllBackendsError) Error() string {
	return fmt.Sprintf("all %d backends failed, last error: %v", e.Attempted, e.LastErr)
}

func (e *AllBackendsError) Unwrap() error { return e.LastErr }
