package entity

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// Pipeline errors
	ErrWrongPhase = errors.New("operation not allowed in current phase")
	ErrNoDocument = errors.New("recommendation document not available")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// GenerationFormatError reports that a model reply did not satisfy the
// parsing contract of its phase. It is always recovered locally by
// substituting the phase's fallback payload; it never blocks a transition.
type GenerationFormatError struct {
	Kind   RoundKind
	Reason string
}

func (e *GenerationFormatError) Error() string {
	return fmt.Sprintf("malformed %s generation reply: %s", e.Kind, e.Reason)
}

func NewGenerationFormatError(kind RoundKind, reason string) *GenerationFormatError {
	return &GenerationFormatError{Kind: kind, Reason: reason}
}

// IsGenerationFormatError reports whether err (or anything it wraps)
// is a GenerationFormatError.
func IsGenerationFormatError(err error) bool {
	var target *GenerationFormatError
	return errors.As(err, &target)
}
