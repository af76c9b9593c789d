package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidRequest is returned when a request payload fails validation.
type ErrInvalidRequest struct {
	error
	Field string
}

func newErrInvalidRequest(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return &ErrInvalidRequest{error: fmt.Errorf("invalid request: %w", err)}
	}

	fe := validationErrors[0]
	return &ErrInvalidRequest{
		error: fmt.Errorf("invalid %s: %s", fe.Field(), describe(fe)),
		Field: fe.Field(),
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "estimation_mode":
		return fmt.Sprintf("unknown mode %q", fmt.Sprint(fe.Value()))
	default:
		return strings.TrimSpace(fmt.Sprintf("failed on %s %s", fe.Tag(), fe.Param()))
	}
}
