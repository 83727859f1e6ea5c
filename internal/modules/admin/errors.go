package admin

import "errors"

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrLocationLocked     = errors.New("agent location is already assigned")
	ErrInvalidRole        = errors.New("invalid role")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
)
