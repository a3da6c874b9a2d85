package domain

import "errors"

// ErrInvalidInput is returned when a seed, value or limit is not a positive integer.
var ErrInvalidInput = errors.New("invalid input: expected a positive integer")

// ErrGuardExceeded is returned when the guard rail is reached before the trajectory hits 1.
// Increase the guard if you need longer traces.
var ErrGuardExceeded = errors.New("guard rail reached while iterating")

// ErrOverflow is returned when the next value of a trajectory does not fit in an int64.
var ErrOverflow = errors.New("value out of int64 range")

// ErrStateNotFound is returned when no persisted state document exists.
var ErrStateNotFound = errors.New("state file not found")
