package freetheory

import "errors"

var (
	// ErrNoAlienMatcher indicates the compiled pattern contains a
	// non-free-theory subterm but Compile was not given a matcher for
	// its theory tag.
	ErrNoAlienMatcher = errors.New("freetheory: pattern references a theory with no registered alien matcher")

	// ErrEmptyRemainderList indicates ApplyReplace was asked to run an
	// equation table entry with no remainders.
	ErrEmptyRemainderList = errors.New("freetheory: no remainders to try")
)
