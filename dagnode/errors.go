package dagnode

import "errors"

var (
	// ErrArgIndexOutOfRange indicates CopyWithReplacement was asked to
	// replace an argument position outside [0, Arity).
	ErrArgIndexOutOfRange = errors.New("dagnode: argument index out of range")

	// ErrArityMismatch indicates the number of arguments passed to New
	// disagreed with the symbol's declared arity.
	ErrArityMismatch = errors.New("dagnode: argument count does not match symbol arity")

	// ErrSortNotComputed indicates CheckSort was called before
	// ComputeBaseSort.
	ErrSortNotComputed = errors.New("dagnode: base sort not yet computed")
)
