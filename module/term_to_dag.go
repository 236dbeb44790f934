package module

import (
	"github.com/rljacobson/mod2/dagnode"
	"github.com/rljacobson/mod2/term"
)

// TermToDag converts a compiled Term into its DAG form (spec.md §6:
// "term_to_dag(term, set_sort_info): convert a term to a DAG with
// optional sort caching"). A variable leaf becomes a zero-arity
// DagNode for the variable's own symbol, the same representation used
// wherever else this package needs to hand a bare variable to DAG-level
// code.
//
// TermToDag normalizes t first, so both t and the returned DagNode use
// the identical FNV-1a scheme (symbol ID folded with each child's hash,
// depth-first) over identical symbol IDs and identical tree shape — the
// hash-consistency invariant term_to_dag(T).structural_hash() ==
// T.structural_hash() holds by construction, not by coincidence.
func TermToDag(t *term.Term, setSortInfo bool) (*dagnode.DagNode, error) {
	t.Normalize()

	args := make([]*dagnode.DagNode, len(t.Children))
	for i, child := range t.Children {
		d, err := TermToDag(child, setSortInfo)
		if err != nil {
			return nil, err
		}
		args[i] = d
	}

	n, err := dagnode.New(t.Symbol, args...)
	if err != nil {
		return nil, err
	}
	if setSortInfo {
		if _, err := n.ComputeBaseSort(); err != nil {
			return nil, err
		}
	}
	return n, nil
}
