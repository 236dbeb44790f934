package module

import (
	"github.com/rljacobson/mod2/dagnode"
	"github.com/rljacobson/mod2/sortlattice"
	"github.com/rljacobson/mod2/substitution"
	"github.com/rljacobson/mod2/symbol"
)

// fastComputeTrueSort computes root's sort, matching the reference
// implementation's fast_compute_true_sort: the sort diagram's answer
// is final for any symbol classified SortIndexFast or SortIndexExplicit,
// and only a SortIndexSlow symbol — one with registered membership
// axioms that could possibly narrow that answer — falls through to
// constrainToSmallerSort (spec.md §4.3).
func (m *Module) fastComputeTrueSort(root *dagnode.DagNode, ctx *RewritingContext) (*sortlattice.Sort, error) {
	base, err := root.ComputeBaseSort()
	if err != nil {
		return nil, err
	}
	if root.Symbol.UniqueSortIndex() != symbol.SortIndexSlow {
		return base, nil
	}
	return m.constrainToSmallerSort(root, base, ctx)
}

// constrainToSmallerSort is constrain_to_smaller_sort: it repeatedly
// scans root.Symbol's sort-constraint table for a membership axiom
// whose pattern (and condition) match root and whose target sort is a
// strict subsort of the current best answer, narrowing to the first
// one found and restarting the scan against the narrower sort. The
// loop terminates because each successful narrowing strictly shrinks
// the candidate set Candidates can return next time. The final answer
// is cached back onto root so a later BaseSort call sees it without
// re-walking the constraint table.
func (m *Module) constrainToSmallerSort(root *dagnode.DagNode, base *sortlattice.Sort, ctx *RewritingContext) (*sortlattice.Sort, error) {
	current := base
	table := root.Symbol.Constraints()
	for {
		narrowed := false
		for _, ref := range table.Candidates(current) {
			axiom, ok := ref.(*Membership)
			if !ok {
				continue
			}
			sub := substitution.New(axiom.subSize)
			matched, err := axiom.matches(root, sub, ctx)
			if err != nil {
				return nil, err
			}
			if matched {
				current = axiom.targetSort
				narrowed = true
				break
			}
		}
		if !narrowed {
			break
		}
	}
	if current != base {
		root.SortIndex = current.IndexWithinKind()
	}
	return current, nil
}
