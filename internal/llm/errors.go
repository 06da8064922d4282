package llm

import (
	"fmt"
	"net/http"
)

// HTTPError is a non-2xx response from the completion endpoint. Retryable
// statuses (>=500, 429, 408) are retried up to the configured limit; any
// other status is surfaced immediately with no retry.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("completion API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("completion API error (status %d)", e.StatusCode)
}

// Retryable reports whether the status indicates a transient failure.
func (e *HTTPError) Retryable() bool {
	return retryableStatus(e.StatusCode)
}

func retryableStatus(code int) bool {
	return code >= 500 || code == http.StatusTooManyRequests || code == http.StatusRequestTimeout
}

// TimeoutError is a per-attempt deadline expiry. Retried like a retryable
// status; surfaced distinctly when it hits on the last allowed attempt so
// callers can tell "upstream unreachable" from "upstream rejected".
type TimeoutError struct {
	Attempt   int
	TimeoutMS int
	Cause     error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("completion request timed out after %dms (attempt %d)", e.TimeoutMS, e.Attempt)
}

func (e *TimeoutError) Unwrap() error {
	return e.Cause
}

// RequestFailedError reports retryable failures that exhausted the retry
// budget. The last underlying failure is preserved for diagnostics.
type RequestFailedError struct {
	Attempts int
	Cause    error
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("completion request failed after %d attempts: %v", e.Attempts, e.Cause)
}

func (e *RequestFailedError) Unwrap() error {
	return e.Cause
}
