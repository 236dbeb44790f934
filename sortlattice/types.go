package sortlattice

import (
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

// Sort is a named type in the lattice. See spec.md §3: IndexWithinKind
// is the sort's ordinal within its Kind (0 is reserved for the
// synthetic error sort at the top); FastCompareIndex and LeqSorts back
// the constant-time subsort test in IndexLeqSort.
type Sort struct {
	name             string
	kind             *Kind
	indexWithinKind  int
	fastCompareIndex int
	subsorts         []*Sort
	supersorts       []*Sort
	leqSorts         *roaring.Bitmap
	isError          bool
}

// Name returns the sort's declared name ("" for the synthetic error sort).
func (s *Sort) Name() string { return s.name }

// Kind returns the connected component this sort belongs to.
func (s *Sort) Kind() *Kind { return s.kind }

// IndexWithinKind returns the sort's ordinal position in its kind's
// topological order (0 = error sort).
func (s *Sort) IndexWithinKind() int { return s.indexWithinKind }

// FastCompareIndex returns the smallest index i such that every sort
// with index >= i is a subsort of s.
func (s *Sort) FastCompareIndex() int { return s.fastCompareIndex }

// Subsorts returns the sorts declared as direct subsorts of s.
func (s *Sort) Subsorts() []*Sort { return append([]*Sort(nil), s.subsorts...) }

// Supersorts returns the sorts declared as direct supersorts of s.
func (s *Sort) Supersorts() []*Sort { return append([]*Sort(nil), s.supersorts...) }

// IsError reports whether s is the synthetic error sort of its kind.
func (s *Sort) IsError() bool { return s.isError }

// LeqSorts reports the index-within-kind values of every sort that is
// a subsort of s (reflexive, transitive; includes s itself).
func (s *Sort) LeqSorts() []int {
	out := make([]int, 0, s.leqSorts.GetCardinality())
	it := s.leqSorts.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

// IndexLeqSort reports whether the sort with ordinal indexWithinKind is
// a subsort of (less-than-or-equal-to) s, in constant time for the
// common case (index >= s.FastCompareIndex) and a bitmap lookup
// otherwise. This is the fast subsort test of spec.md §4.2.
func IndexLeqSort(indexWithinKind int, s *Sort) bool {
	if indexWithinKind >= s.fastCompareIndex {
		return true
	}
	return s.leqSorts.Contains(uint32(indexWithinKind))
}

// Kind is a connected component of the sort graph under the subsort
// relation (spec.md §3). Sorts is in topological order: index 0 is the
// synthetic error sort, and every sort's direct subsorts occupy
// strictly greater indices than the sort itself.
type Kind struct {
	sorts            []*Sort
	errorFree        bool
	maximalSortCount int
}

// Sorts returns the kind's sorts in topological order (index 0 = error sort).
func (k *Kind) Sorts() []*Sort { return append([]*Sort(nil), k.sorts...) }

// ErrorSort returns the synthetic maximal sort at index 0.
func (k *Kind) ErrorSort() *Sort { return k.sorts[0] }

// ErrorFree reports whether construction detected no cycle in this
// kind's subsort relation.
func (k *Kind) ErrorFree() bool { return k.errorFree }

// MaximalSortCount returns the number of sorts with no declared
// supersort other than the synthetic error sort.
func (k *Kind) MaximalSortCount() int { return k.maximalSortCount }

// Lattice is the mutable builder for a module's sort graph. Declare
// sorts and subsort edges, then call Close exactly once; after Close,
// the lattice is read-only and safe for concurrent use, mirroring the
// teacher repo's build-then-query split.
type Lattice struct {
	mu sync.RWMutex

	byName  map[string]*Sort
	edgesUp map[string][]string // sub -> declared direct supersorts

	kinds  []*Kind
	closed bool
}

// NewLattice returns an empty, open Lattice.
func NewLattice() *Lattice {
	return &Lattice{
		byName:  make(map[string]*Sort),
		edgesUp: make(map[string][]string),
	}
}

// DeclareSort registers a new sort name. Returns ErrEmptySortName,
// ErrSortRedeclared, or ErrAlreadyClosed.
func (l *Lattice) DeclareSort(name string) (*Sort, error) {
	if name == "" {
		return nil, ErrEmptySortName
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil, ErrAlreadyClosed
	}
	if _, exists := l.byName[name]; exists {
		return nil, ErrSortRedeclared
	}
	s := &Sort{name: name}
	l.byName[name] = s
	return s, nil
}

// DeclareSubsort records that sub is a direct subsort of super. Both
// names must already be declared. Returns ErrUnknownSort or
// ErrAlreadyClosed.
func (l *Lattice) DeclareSubsort(sub, super string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrAlreadyClosed
	}
	if _, ok := l.byName[sub]; !ok {
		return ErrUnknownSort
	}
	if _, ok := l.byName[super]; !ok {
		return ErrUnknownSort
	}
	l.edgesUp[sub] = append(l.edgesUp[sub], super)
	return nil
}

// Sort looks up a previously declared sort by name.
func (l *Lattice) Sort(name string) (*Sort, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.byName[name]
	return s, ok
}

// Kinds returns every connected component assigned by Close.
func (l *Lattice) Kinds() []*Kind {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]*Kind(nil), l.kinds...)
}

// Closed reports whether Close has run.
func (l *Lattice) Closed() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.closed
}
