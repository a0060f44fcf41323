package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNotConfigured is returned before any network call when the provider's
// API key is missing from the environment.
var ErrNotConfigured = errors.New("API key is not configured")

// ErrRateLimit indicates the provider signalled saturation (HTTP 429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	StatusCode int
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.Err == nil {
		return "rate limited"
	}
	return e.Err.Error()
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the LLM returned content that does not
// conform to the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider failed the request.
// StatusCode is the provider's HTTP status, or zero for transport
// failures that never produced a response.
type ErrProviderUnavailable struct {
	StatusCode int
	Err        error
}

// Error returns the provider's own message text so callers can surface
// it unchanged.
func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// Transport reports whether the failure happened before any HTTP response.
func (e *ErrProviderUnavailable) Transport() bool { return e.StatusCode == 0 }
