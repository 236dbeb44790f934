package substitution

import (
	"github.com/rljacobson/mod2/dagnode"
	"github.com/rljacobson/mod2/sortlattice"
)

// MatchVariable implements the rule every theory's LHS automaton
// shares for an unbound-or-bound pattern variable (spec.md §4.5): if
// the variable at index is already bound, the subject must be
// structurally equal to the existing binding; otherwise the subject
// must pass the variable's sort check, and if so it is bound.
func MatchVariable(index int, varSort *sortlattice.Sort, subject *dagnode.DagNode, sub *Substitution) (bool, error) {
	bound, err := sub.Value(index)
	if err != nil {
		return false, err
	}
	if bound != nil {
		return bound.Equal(subject), nil
	}

	base, err := subject.BaseSort()
	if err != nil {
		return false, err
	}
	if !sortlattice.IndexLeqSort(base.IndexWithinKind(), varSort) {
		return false, nil
	}
	if err := sub.Bind(index, subject); err != nil {
		return false, err
	}
	return true, nil
}
