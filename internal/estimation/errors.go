package estimation

import (
	"errors"
	"fmt"
)

// ErrInvalidInputDomain reports a SimulatorInput field (or the mode) outside its declared domain.
type ErrInvalidInputDomain struct {
	error
	Field string
}

func NewErrInvalidInputDomain(field string, format string, args ...any) *ErrInvalidInputDomain {
	return &ErrInvalidInputDomain{
		error: fmt.Errorf("invalid %s: %s", field, fmt.Sprintf(format, args...)),
		Field: field,
	}
}

// ErrModelInference reports a predictor failure or a malformed prediction.
type ErrModelInference struct {
	error
}

func NewErrModelInference(err error) *ErrModelInference {
	return &ErrModelInference{fmt.Errorf("model inference failed: %w", err)}
}

func (e *ErrModelInference) Unwrap() error {
	return errors.Unwrap(e.error)
}
