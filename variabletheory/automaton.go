package variabletheory

import (
	"github.com/rljacobson/mod2/dagnode"
	"github.com/rljacobson/mod2/sortlattice"
	"github.com/rljacobson/mod2/subproblem"
	"github.com/rljacobson/mod2/substitution"
)

// LHSAutomaton is the one-node automaton for a variable pattern: it
// runs substitution.MatchVariable and never produces a Subproblem,
// since a variable match is always final (spec.md §4.5's
// match_variable is the entire automaton for this theory).
type LHSAutomaton struct {
	VarIndex int
	VarSort  *sortlattice.Sort
}

// Match implements the subproblem.Matcher signature, so an
// LHSAutomaton can be registered directly as another theory's alien
// matcher for variable subterms.
func (a *LHSAutomaton) Match(subject *dagnode.DagNode, sub *substitution.Substitution) (bool, subproblem.Subproblem, error) {
	ok, err := substitution.MatchVariable(a.VarIndex, a.VarSort, subject, sub)
	return ok, nil, err
}

// RHSAutomaton builds nothing: it returns the variable's current
// binding verbatim, matching the reference implementation's
// single-instruction "copy" RHS automaton for a bare variable
// template.
type RHSAutomaton struct {
	VarIndex int
}

// Construct returns the current binding of VarIndex. Returns
// ErrVariableUnbound if the variable has no binding.
func (a *RHSAutomaton) Construct(sub *substitution.Substitution) (*dagnode.DagNode, error) {
	v, err := sub.Value(a.VarIndex)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrVariableUnbound
	}
	return v, nil
}

// Replace is identical to Construct for the variable theory: there is
// no existing root to overwrite in place, since the variable's
// binding simply becomes (is) the result the caller substitutes at
// that position.
func (a *RHSAutomaton) Replace(_ *dagnode.DagNode, sub *substitution.Substitution) (*dagnode.DagNode, error) {
	return a.Construct(sub)
}
