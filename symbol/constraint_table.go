package symbol

import (
	"sort"

	"github.com/rljacobson/mod2/sortlattice"
)

// SortConstraintTable holds one symbol's sort-membership axioms,
// ordered from most specific (smallest) target sort to least. This is
// the "slow" companion to SortTable's sort diagram: fastComputeTrueSort
// in package module walks Candidates to see whether any membership
// axiom could narrow a base sort the diagram alone already computed
// (spec.md §4.3's constrain_to_smaller_sort).
type SortConstraintTable struct {
	entries []MembershipRef
	sorted  bool
}

// Add appends a membership axiom, invalidating the cached order.
func (t *SortConstraintTable) Add(m MembershipRef) {
	t.entries = append(t.entries, m)
	t.sorted = false
}

// Len reports how many membership axioms are registered.
func (t *SortConstraintTable) Len() int { return len(t.entries) }

func (t *SortConstraintTable) ensureSorted() {
	if t.sorted {
		return
	}
	sort.SliceStable(t.entries, func(i, j int) bool {
		return t.entries[i].TargetSort().IndexWithinKind() > t.entries[j].TargetSort().IndexWithinKind()
	})
	t.sorted = true
}

// Candidates returns the membership axioms whose target sort is a
// strict subsort of base — the only ones that could possibly narrow
// it — most specific first. An axiom whose target sort is unrelated to
// or broader than base can never narrow it and is excluded.
func (t *SortConstraintTable) Candidates(base *sortlattice.Sort) []MembershipRef {
	t.ensureSorted()
	out := make([]MembershipRef, 0, len(t.entries))
	for _, m := range t.entries {
		target := m.TargetSort()
		if target == base {
			continue
		}
		if sortlattice.IndexLeqSort(target.IndexWithinKind(), base) {
			out = append(out, m)
		}
	}
	return out
}
