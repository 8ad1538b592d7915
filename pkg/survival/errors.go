package survival

import (
	"errors"
	"fmt"
)

// ValidationError reports a submitted field that violates its declared range
// or enumeration. Always recoverable by the caller.
type ValidationError struct {
	Field  string
	reason error
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.reason)
}

func (e ValidationError) Unwrap() error {
	return e.reason
}

func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// PredictionFailure wraps a scaling or model invocation error for a
// structurally valid record. Fatal for the request, not retried.
type PredictionFailure struct {
	Stage string
	cause error
}

func (e PredictionFailure) Error() string {
	return fmt.Sprintf("prediction failed at %s: %v", e.Stage, e.cause)
}

func (e PredictionFailure) Unwrap() error {
	return e.cause
}

func IsPredictionFailure(err error) bool {
	var pf PredictionFailure
	return errors.As(err, &pf)
}
