package common

import "errors"

// Business logic errors
var (
	// ErrInvalidInput marks validation failures the client can fix
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidTransition marks a backlog status change with no legal source
	ErrInvalidTransition = errors.New("invalid status transition")
)
