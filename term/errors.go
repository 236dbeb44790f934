package term

import "errors"

var (
	// ErrArityMismatch indicates New was given the wrong number of
	// children for the symbol's declared arity.
	ErrArityMismatch = errors.New("term: child count does not match symbol arity")

	// ErrNotNormalized indicates StructuralHash or OccursSet was queried
	// before Normalize ran.
	ErrNotNormalized = errors.New("term: not yet normalized")

	// ErrSaveIndexAlreadyAssigned indicates AssignSaveIndex was called
	// twice for the same Term.
	ErrSaveIndexAlreadyAssigned = errors.New("term: save index already assigned")
)
