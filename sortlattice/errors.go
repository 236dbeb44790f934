package sortlattice

import "errors"

var (
	// ErrEmptySortName indicates a zero-length sort name was declared.
	ErrEmptySortName = errors.New("sortlattice: sort name is empty")

	// ErrSortRedeclared indicates DeclareSort was called twice for the
	// same name.
	ErrSortRedeclared = errors.New("sortlattice: sort already declared")

	// ErrUnknownSort indicates a subsort edge referenced a name that
	// was never declared.
	ErrUnknownSort = errors.New("sortlattice: unknown sort")

	// ErrAlreadyClosed indicates a mutating call was made after Close.
	ErrAlreadyClosed = errors.New("sortlattice: lattice already closed")

	// ErrNotClosed indicates a query was made before Close.
	ErrNotClosed = errors.New("sortlattice: lattice not yet closed")

	// ErrCycleDetected names the cycle_detected construction error.
	// Close does not return it: Close returns nil for a kind with a
	// subsort cycle, and the cycle is reported only by that kind's
	// ErrorFree() returning false.
	ErrCycleDetected = errors.New("sortlattice: cycle detected in subsort relation")
)
