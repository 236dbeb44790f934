package stategraph

import "errors"

// ErrNoSuccessor is returned by GetNextState when index i is at or
// beyond the number of successors the search has (so far, or ever)
// produced for that state.
var ErrNoSuccessor = errors.New("stategraph: no successor at requested index")
