package domain

import (
	"errors"
	"fmt"
)

var ErrValidation = errors.New("validation error")

// ValidationError names the offending field; errors.Is(err, ErrValidation) holds.
type ValidationError struct {
	Field string
	Msg   string
}

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Msg: msg}
}

func (e *ValidationError) Error() string {
	switch {
	case e.Field != "" && e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Field != "":
		return fmt.Sprintf("invalid %s", e.Field)
	default:
		return "validation error"
	}
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
