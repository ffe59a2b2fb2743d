package domain

import "errors"

// Domain errors represent calculation failures.
// Call sites wrap them with the offending values so the message alone
// is enough to diagnose the problem.
var (
	// ErrInvalidInput indicates a library value that cannot be used in a formula.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidParameter indicates a pooling parameter outside its allowed range.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrMissingColumn indicates a required field was not supplied.
	ErrMissingColumn = errors.New("missing required column")

	// ErrEmptyPool indicates a synthesised pool with no net volume.
	ErrEmptyPool = errors.New("pool has zero total volume")

	// ErrInvalidPrePool indicates a malformed set of pre-pool definitions.
	ErrInvalidPrePool = errors.New("invalid pre-pool definition")

	// ErrInvalidPlan indicates a plan that breaks its structural invariants.
	ErrInvalidPlan = errors.New("invalid pooling plan")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")
)
