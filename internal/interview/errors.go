package interview

import (
	"errors"
	"net/http"
)

// Kind classifies a pipeline failure. KindUpstreamRateLimited is assigned
// only to completion failures; an unparseable reply is always
// KindMalformedUpstreamOutput, whatever its text contains.
type Kind int

const (
	KindRateLimited Kind = iota + 1
	KindInvalidInput
	KindMisconfigured
	KindUpstreamRateLimited
	KindUpstreamError
	KindMalformedUpstreamOutput
	KindMalformedRequest
)

func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindInvalidInput:
		return "invalid_input"
	case KindMisconfigured:
		return "misconfigured"
	case KindUpstreamRateLimited:
		return "upstream_rate_limited"
	case KindUpstreamError:
		return "upstream_error"
	case KindMalformedUpstreamOutput:
		return "malformed_upstream_output"
	case KindMalformedRequest:
		return "malformed_request"
	default:
		return "unknown"
	}
}

// Status returns the HTTP status reported for this kind.
func (k Kind) Status() int {
	switch k {
	case KindRateLimited, KindUpstreamRateLimited:
		return http.StatusTooManyRequests
	case KindInvalidInput, KindMalformedRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

const (
	msgRateLimited         = "Too many requests. Please wait a minute before trying again."
	msgInvalidInput        = "Role and level are required."
	msgMisconfigured       = "API key is not configured."
	msgUpstreamRateLimited = "Rate limit reached. Please wait a moment and try again."
	msgMalformedRequest    = "Invalid request body."
	msgGenerateFailed      = "Failed to generate questions: "
)

// Error is a classified pipeline failure.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Message is the caller-facing text for this failure. Only the upstream
// error's message is exposed, never its payload.
func (e *Error) Message() string {
	switch e.Kind {
	case KindRateLimited:
		return msgRateLimited
	case KindInvalidInput:
		return msgInvalidInput
	case KindMisconfigured:
		return msgMisconfigured
	case KindUpstreamRateLimited:
		return msgUpstreamRateLimited
	case KindMalformedRequest:
		return msgMalformedRequest
	default:
		if e.Err == nil {
			return msgGenerateFailed + "unknown error"
		}
		return msgGenerateFailed + e.Err.Error()
	}
}

// KindOf returns the Kind of err, or zero if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
