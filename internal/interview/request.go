package interview

import (
	"errors"
	"strings"
)

// ErrMissingField is returned when role or level is empty after trimming.
var ErrMissingField = errors.New("role and level are required")

// Validate trims the request's strings and resolves its count.
func Validate(req GenerationRequest) (ValidatedRequest, error) {
	role := strings.TrimSpace(req.Role)
	level := strings.TrimSpace(req.Level)
	if role == "" || level == "" {
		return ValidatedRequest{}, ErrMissingField
	}

	return ValidatedRequest{
		Role:  role,
		Level: level,
		Topic: strings.TrimSpace(req.Topic),
		Count: req.Count.Resolve(),
	}, nil
}
