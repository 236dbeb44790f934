package module

import "errors"

var (
	// ErrUnknownSymbol is returned when a caller names a symbol the
	// module's registry has no record of.
	ErrUnknownSymbol = errors.New("module: unknown symbol")
	// ErrDuplicateName is returned when two sorts or symbols are
	// declared under the same name within one module (spec.md §6:
	// "module items referenced by name ... must be unique within a
	// module").
	ErrDuplicateName = errors.New("module: duplicate name within module")
)
