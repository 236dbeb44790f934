package dagnode

import "github.com/rljacobson/mod2/sortlattice"

// ComputeBaseSort computes and caches this node's sort from its
// symbol's compiled sort table and its arguments' already-computed
// sorts (spec.md §4.4). Arguments must have had ComputeBaseSort run
// on them first; computing bottom-up over a DAG visits each distinct
// node once regardless of how many parents share it, since a second
// call is a cache hit.
func (n *DagNode) ComputeBaseSort() (*sortlattice.Sort, error) {
	if n.SortIndex >= 0 {
		return n.BaseSort()
	}
	argSorts := make([]*sortlattice.Sort, len(n.Args))
	for i, child := range n.Args {
		s, err := child.BaseSort()
		if err != nil {
			return nil, err
		}
		argSorts[i] = s
	}
	table := n.Symbol.SortTable()
	if table == nil {
		return nil, ErrSortNotComputed
	}
	result, err := table.ComputeBaseSort(argSorts)
	if err != nil {
		return nil, err
	}
	n.SortIndex = result.IndexWithinKind()
	return result, nil
}

// Outcome is the three-valued result of a sort-bound check, matching
// the reference implementation's Outcome (Success/Failure/Undecided
// pending a subproblem).
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeFailure
	OutcomeUndecided
)

// CheckSort reports whether this node's base sort is a subsort of
// boundSort. It never needs a Subproblem for a node with no variables
// below it (GroundFlag set) or once the base sort has been computed:
// the undecided case only arises higher up the stack, once variables
// and conditions are involved (see package subproblem).
func (n *DagNode) CheckSort(boundSort *sortlattice.Sort) (Outcome, error) {
	base, err := n.BaseSort()
	if err != nil {
		return OutcomeFailure, err
	}
	if sortlattice.IndexLeqSort(base.IndexWithinKind(), boundSort) {
		return OutcomeSuccess, nil
	}
	return OutcomeFailure, nil
}
