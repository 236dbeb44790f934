package substitution

import "errors"

var (
	// ErrIndexOutOfRange indicates Bind or Value was called with an
	// index outside [0, Size).
	ErrIndexOutOfRange = errors.New("substitution: variable index out of range")

	// ErrBindingNotActive names a LocalBindings entry that is not
	// active. No LocalBindings method returns it: RetractAll skips
	// entries it has already retracted.
	ErrBindingNotActive = errors.New("substitution: binding is not active")
)
