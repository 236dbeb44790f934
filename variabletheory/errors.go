package variabletheory

import "errors"

// ErrVariableUnbound is returned by RHSAutomaton.Construct/Replace
// when asked to build from a variable slot that has no binding —
// a pattern compilation error (an RHS may only reference variables
// that are guaranteed bound by the LHS match), not a runtime match
// failure.
var ErrVariableUnbound = errors.New("variabletheory: referenced variable is unbound")
