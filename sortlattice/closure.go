package sortlattice

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
)

// dsu is the disjoint-set union used to partition declared sorts into
// kinds, grounded on the teacher repo's prim_kruskal.Kruskal, which
// uses exactly this union-by-rank-with-path-compression structure to
// group vertices. Here the "edges" being unioned are subsort
// declarations rather than MST candidate edges.
type dsu struct {
	parent map[string]string
	rank   map[string]int
}

func newDSU(names []string) *dsu {
	d := &dsu{parent: make(map[string]string, len(names)), rank: make(map[string]int, len(names))}
	for _, n := range names {
		d.parent[n] = n
	}
	return d
}

func (d *dsu) find(x string) string {
	for d.parent[x] != x {
		d.parent[x] = d.parent[d.parent[x]] // path halving
		x = d.parent[x]
	}
	return x
}

func (d *dsu) union(a, b string) {
	ra, rb := d.find(a), d.find(b)
	if ra == rb {
		return
	}
	if d.rank[ra] < d.rank[rb] {
		ra, rb = rb, ra
	}
	d.parent[rb] = ra
	if d.rank[ra] == d.rank[rb] {
		d.rank[ra]++
	}
}

// Close partitions every declared sort into kinds, assigns each kind a
// topological index order (error sort first, subsorts at strictly
// greater indices than their supersorts), and computes leq_sorts and
// fast_compare_index for every sort. Close is idempotent-unsafe: it
// may only be called once. Returns ErrAlreadyClosed on a second call.
func (l *Lattice) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrAlreadyClosed
	}

	names := make([]string, 0, len(l.byName))
	for n := range l.byName {
		names = append(names, n)
	}
	sort.Strings(names)

	d := newDSU(names)
	for sub, supers := range l.edgesUp {
		for _, super := range supers {
			d.union(sub, super)
			l.byName[sub].supersorts = append(l.byName[sub].supersorts, l.byName[super])
			l.byName[super].subsorts = append(l.byName[super].subsorts, l.byName[sub])
		}
	}

	components := make(map[string][]string)
	for _, n := range names {
		root := d.find(n)
		components[root] = append(components[root], n)
	}

	roots := make([]string, 0, len(components))
	for r := range components {
		roots = append(roots, r)
	}
	sort.Strings(roots)

	for _, r := range roots {
		k := buildKind(l, components[r])
		l.kinds = append(l.kinds, k)
	}

	l.closed = true
	return nil
}

// buildKind constructs one Kind from the set of sort names in a
// connected component: synthesizes the error sort, runs the
// topological DFS, and computes leq_sorts/fast_compare_index.
func buildKind(l *Lattice, names []string) *Kind {
	members := make([]*Sort, len(names))
	maximal := 0
	for i, n := range names {
		members[i] = l.byName[n]
		if len(members[i].supersorts) == 0 {
			maximal++
		}
	}

	errSort := &Sort{name: "", isError: true}
	k := &Kind{maximalSortCount: maximal}

	order, errorFree := topologicalOrder(members, errSort)
	k.errorFree = errorFree
	k.sorts = order
	for idx, s := range order {
		s.kind = k
		s.indexWithinKind = idx
	}

	computeLeqSorts(order)
	computeFastCompareIndex(order)

	return k
}

// Three-color DFS state, as in the teacher's dfs.TopologicalSort.
const (
	white = 0
	gray  = 1
	black = 2
)

// topologicalOrder returns the kind's sorts ordered so that every
// sort's direct subsorts occupy strictly greater indices (error sort
// first), via post-order DFS + reverse over the "supersort -> direct
// subsort" edge direction — the same algorithm the teacher's
// dfs.TopologicalSort runs over core.Graph edges, just with the
// natural subsort direction swapped so maximal sorts finish last.
//
// Cycle detection follows spec.md §4.2's pigeonhole invariant: a
// counter of DFS entries is compared against the kind's total sort
// count (including the synthetic error sort) as entries accumulate;
// on a first pass this is provably redundant with the gray-node
// back-edge check below (a real DAG can never need more entries than
// nodes), but we keep both because spec.md treats the counter as the
// authoritative detector and the gray check as the mechanism that
// keeps a broken module from recursing forever.
func topologicalOrder(members []*Sort, errSort *Sort) (order []*Sort, errorFree bool) {
	total := len(members) + 1
	color := make(map[*Sort]int, total)
	visitedEntries := 0
	errorFree = true

	color[errSort] = white
	for _, m := range members {
		color[m] = white
		if len(m.supersorts) == 0 {
			m.supersorts = append(m.supersorts, errSort)
			errSort.subsorts = append(errSort.subsorts, m)
		}
	}

	var postorder []*Sort
	var visit func(s *Sort) bool // returns false on cycle
	visit = func(s *Sort) bool {
		visitedEntries++
		if visitedEntries > total {
			return false
		}
		color[s] = gray
		for _, child := range s.subsorts {
			switch color[child] {
			case gray:
				return false // back edge: direct cycle
			case white:
				if !visit(child) {
					return false
				}
			}
		}
		color[s] = black
		postorder = append(postorder, s)
		return true
	}

	if !visit(errSort) {
		errorFree = false
	}
	// Any sort unreached from the error sort (possible if a cycle
	// walled it off) is still assigned an index so the kind remains
	// usable for diagnostics, per spec.md §7's "preserve the partial
	// kind" requirement.
	for _, m := range members {
		if color[m] == white {
			if !visit(m) {
				errorFree = false
			}
		}
	}

	order = make([]*Sort, len(postorder))
	for i, s := range postorder {
		order[len(postorder)-1-i] = s
	}

	// Sorts caught mid-cycle never reach color black and so never make
	// it into postorder; append them (in deterministic name order) so
	// the kind still carries every declared member for diagnostics,
	// per spec.md §7's "preserve the partial kind" requirement. Their
	// relative index no longer satisfies the topological invariant,
	// which is exactly what ErrorFree=false signals to callers.
	included := make(map[*Sort]bool, len(order))
	for _, s := range order {
		included[s] = true
	}
	var leftover []*Sort
	for _, m := range members {
		if !included[m] {
			leftover = append(leftover, m)
		}
	}
	sort.Slice(leftover, func(i, j int) bool { return leftover[i].name < leftover[j].name })
	order = append(order, leftover...)

	return order, errorFree
}

// computeLeqSorts fills leqSorts for every sort in reverse index
// order, so that a sort's subsorts (which occupy strictly greater
// indices) have already been computed. On a cyclic (non-ErrorFree)
// kind this ordering invariant can be violated; a subsort whose own
// leqSorts has not been computed yet contributes nothing rather than
// panicking, since such a kind is already flagged malformed to callers.
func computeLeqSorts(order []*Sort) {
	for i := len(order) - 1; i >= 0; i-- {
		s := order[i]
		bm := roaring.New()
		bm.Add(uint32(s.indexWithinKind))
		for _, sub := range s.subsorts {
			if sub.leqSorts == nil {
				continue
			}
			bm.Or(sub.leqSorts)
		}
		s.leqSorts = bm
	}
}

// computeFastCompareIndex sets fastCompareIndex to the smallest i such
// that leqSorts contains every index in [i, len(order)).
func computeFastCompareIndex(order []*Sort) {
	n := len(order)
	for _, s := range order {
		boundary := n
		for i := n - 1; i >= 0; i-- {
			if !s.leqSorts.Contains(uint32(i)) {
				break
			}
			boundary = i
		}
		s.fastCompareIndex = boundary
	}
}
