package symbol

import (
	"sort"

	"github.com/rljacobson/mod2/sortlattice"
)

// diagramState is one node of the compiled sort (or constructor)
// diagram: given the sort of the next argument, Transitions gives the
// next state. spec.md describes the diagram as a flat array indexed
// by (state, arg-sort-index); a trie of diagramState nodes is the
// functionally equivalent representation used here — it avoids
// pre-sizing a dense array to the full kind, at the cost of one map
// lookup per transition instead of one slice index. After the last
// argument is consumed the arriving state's SortResult (or
// ConstructorResult) IS the answer; there is no separate "final
// state" table.
type diagramState struct {
	transitions       map[int]int // actual arg sort's IndexWithinKind -> next state id
	sortResult        *sortlattice.Sort
	constructorResult ConstructorStatus
}

// SortTable holds one symbol's compiled operator declarations: the
// raw overload list plus the two diagrams derived from it (spec.md
// §4.3).
type SortTable struct {
	arity        int
	declarations []OperatorDeclaration
	argKinds     []*sortlattice.Kind

	states   []diagramState
	compiled bool
}

// Declarations returns the raw overload list, in declaration order.
func (t *SortTable) Declarations() []OperatorDeclaration {
	return append([]OperatorDeclaration(nil), t.declarations...)
}

// ArgKind returns the kind every declaration's i'th argument sort
// belongs to. Compile requires all declarations to agree on this
// kind per position — an operator cannot be overloaded across kinds,
// only across sorts within a kind — and returns ErrArityMismatch if
// they disagree.
func (t *SortTable) ArgKind(i int) *sortlattice.Kind { return t.argKinds[i] }

// ComputeBaseSort walks the compiled sort diagram leftmost-first:
// starting from state 0, each actual argument sort's IndexWithinKind
// selects the next state, and the final state's sortResult is the
// operator's output sort for that argument tuple. Returns
// ErrNotCompiled or ErrArgCountMismatch.
func (t *SortTable) ComputeBaseSort(argSorts []*sortlattice.Sort) (*sortlattice.Sort, error) {
	if !t.compiled {
		return nil, ErrNotCompiled
	}
	if len(argSorts) != t.arity {
		return nil, ErrArgCountMismatch
	}
	state := 0
	for i, s := range argSorts {
		next, ok := t.states[state].transitions[s.IndexWithinKind()]
		if !ok {
			// No declaration admits this actual sort at this depth
			// from this state: fall back to the kind's error sort,
			// the standard order-sorted "no applicable declaration"
			// result.
			return t.argKinds[i].ErrorSort(), nil
		}
		state = next
	}
	return t.states[state].sortResult, nil
}

// ConstructorStatusFor walks the constructor diagram the same way
// ComputeBaseSort walks the sort diagram, returning the ConstructorStatus
// compile resolved for the given argument sorts: that of the unique
// most specific applicable declaration, or Complex on an ambiguity.
// Returns Unspecified when no declaration applies.
func (t *SortTable) ConstructorStatusFor(argSorts []*sortlattice.Sort) (ConstructorStatus, error) {
	if !t.compiled {
		return Unspecified, ErrNotCompiled
	}
	if len(argSorts) != t.arity {
		return Unspecified, ErrArgCountMismatch
	}
	state := 0
	for _, s := range argSorts {
		next, ok := t.states[state].transitions[s.IndexWithinKind()]
		if !ok {
			return Unspecified, nil
		}
		state = next
	}
	return t.states[state].constructorResult, nil
}

// candidateSet is a canonicalized, hashable set of declaration
// indices, used to memoize diagram states during compile the way a
// subset-construction DFA build memoizes NFA-state-sets.
type candidateSet struct{ indices []int }

func (c candidateSet) key() string {
	b := make([]byte, 0, len(c.indices)*2)
	for _, i := range c.indices {
		b = append(b, byte(i), ',')
	}
	return string(b)
}

// compile builds the sort and constructor diagrams by subset
// construction over the accumulated declarations: each state is the
// set of declarations still consistent with the argument sorts seen
// so far on the path from the root, and a transition on an actual
// sort keeps only the declarations whose sort at that position is a
// supersort of (admits) the actual sort.
//
// Once all arguments are consumed, the admissible declarations for
// that state are reduced to their minimal (most specific) elements by
// OperatorDeclaration.dominates; a unique minimal element's result
// sort and constructor status become the state's answer. Several
// incomparable minimal elements is a genuinely ambiguous overload set
// — compile resolves it to the kind's error sort and Complex status,
// rather than picking arbitrarily.
func (t *SortTable) compile() error {
	if err := t.resolveArgKinds(); err != nil {
		return err
	}

	root := make([]int, len(t.declarations))
	for i := range t.declarations {
		root[i] = i
	}

	memo := make(map[string]int)
	t.states = nil

	var build func(cands []int, depth int) int
	build = func(cands []int, depth int) int {
		cs := candidateSet{indices: cands}
		key := cs.key()
		if id, ok := memo[key]; ok {
			return id
		}
		id := len(t.states)
		t.states = append(t.states, diagramState{transitions: make(map[int]int)})
		memo[key] = id

		if depth == t.arity {
			sortRes, ctorRes := t.resolve(cands)
			t.states[id] = diagramState{
				transitions:       map[int]int{},
				sortResult:        sortRes,
				constructorResult: ctorRes,
			}
			return id
		}

		kind := t.argKinds[depth]
		for _, actual := range kind.Sorts() {
			var next []int
			for _, d := range cands {
				if sortlattice.IndexLeqSort(actual.IndexWithinKind(), t.declarations[d].ArgSorts[depth]) {
					next = append(next, d)
				}
			}
			if len(next) == 0 {
				continue // no admissible declaration: ComputeBaseSort falls back to error sort
			}
			childID := build(next, depth+1)
			t.states[id].transitions[actual.IndexWithinKind()] = childID
		}
		return id
	}

	build(root, 0)
	t.compiled = true
	return nil
}

// resolveArgKinds checks that every declaration agrees on the kind of
// each argument position and records it.
func (t *SortTable) resolveArgKinds() error {
	t.argKinds = make([]*sortlattice.Kind, t.arity)
	for pos := 0; pos < t.arity; pos++ {
		k := t.declarations[0].ArgSorts[pos].Kind()
		for _, d := range t.declarations[1:] {
			if d.ArgSorts[pos].Kind() != k {
				return ErrArityMismatch
			}
		}
		t.argKinds[pos] = k
	}
	return nil
}

// resolve reduces a candidate declaration set to its minimal elements
// under dominates, returning the unique winner's sort and
// constructor-status combination, or the error sort and Complex on a
// genuine (incomparable) ambiguity.
func (t *SortTable) resolve(cands []int) (*sortlattice.Sort, ConstructorStatus) {
	var minimal []int
	for _, i := range cands {
		dominated := false
		for _, j := range cands {
			if i == j {
				continue
			}
			if t.declarations[j].dominates(t.declarations[i]) {
				dominated = true
				break
			}
		}
		if !dominated {
			minimal = append(minimal, i)
		}
	}
	sort.Ints(minimal)

	if len(minimal) == 1 {
		d := t.declarations[minimal[0]]
		return d.ResultSort, d.Constructor
	}

	var status ConstructorStatus
	var kind *sortlattice.Kind
	for _, i := range minimal {
		d := t.declarations[i]
		status = status.Or(d.Constructor)
		kind = d.ResultSort.Kind()
	}
	if kind == nil && len(cands) > 0 {
		kind = t.declarations[cands[0]].ResultSort.Kind()
	}
	return kind.ErrorSort(), status.Or(Complex)
}
