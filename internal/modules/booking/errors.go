package booking

import "errors"

var (
	ErrFromLocationUnresolved = errors.New("agent location cannot be resolved; ask an administrator to assign a valid location")
	ErrLRNumberExhausted      = errors.New("could not assign a unique LR number")
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrForbidden              = errors.New("booking belongs to another agent")
)
