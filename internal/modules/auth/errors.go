package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAgentInactive      = errors.New("agent is inactive")
)
