// Package apperrors defines the error taxonomy shared by the planner, the
// generation adapter, the store and the HTTP layer.
package apperrors

import (
	"errors"
	"fmt"
)

// Stable error kinds reported to callers.
const (
	KindInvalidCoordinate     = "invalid_coordinate"
	KindValidation            = "validation_error"
	KindGenerationFormat      = "generation_format_error"
	KindGenerationUnavailable = "generation_unavailable"
	KindNotFound              = "not_found"
	KindUnauthorized          = "unauthorized"
	KindConflict              = "conflict"
	KindInternal              = "internal_error"
)

var (
	ErrInvalidCoordinate     = errors.New("coordinate out of range")
	ErrNotFound              = errors.New("not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrConflict              = errors.New("conflict")
	ErrGenerationUnavailable = errors.New("generation service unavailable")
)

// ValidationError names the field that broke an invariant.
type ValidationError struct {
	Field string `json:"field"`
	Msg   string `json:"message"`
}

func (e *ValidationError) Error() string { return fmt.Sprintf("%s: %s", e.Field, e.Msg) }

// Invalid is shorthand for &ValidationError{Field: field, Msg: msg}.
func Invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Msg: msg}
}

// GenerationFormatError reports output from the generation service that
// could not be turned into a valid draft itinerary.
type GenerationFormatError struct {
	Reason string
	Err    error
}

func (e *GenerationFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed generation output: %s: %v", e.Reason, e.Err)
	}
	return "malformed generation output: " + e.Reason
}

func (e *GenerationFormatError) Unwrap() error { return e.Err }

// KindOf classifies err into one of the stable kinds.
func KindOf(err error) string {
	var ve *ValidationError
	var ge *GenerationFormatError
	switch {
	case err == nil:
		return ""
	// Format errors may wrap a ValidationError, so they are checked first.
	case errors.As(err, &ge):
		return KindGenerationFormat
	case errors.Is(err, ErrInvalidCoordinate):
		return KindInvalidCoordinate
	case errors.As(err, &ve):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrGenerationUnavailable):
		return KindGenerationUnavailable
	default:
		return KindInternal
	}
}
