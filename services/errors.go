package services

import (
	"errors"
)

var (
	// ErrNotFound is returned when an operation references a report or
	// other row that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState is returned when a state transition is not
	// permitted, e.g. verifying a report that is no longer pending.
	ErrInvalidState = errors.New("invalid state")
)
