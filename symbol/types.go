package symbol

import (
	"sync"

	"github.com/rljacobson/mod2/sortlattice"
)

// SymbolType distinguishes the handful of symbol roles the matching
// core treats specially, beyond the generic free-theory case.
type SymbolType uint8

const (
	// Standard is an ordinary free-theory (or other-theory) operator.
	Standard SymbolType = iota
	// Variable marks a symbol as standing for a pattern variable.
	Variable
	// BuiltinTrue and BuiltinFalse are the nullary symbols the
	// rewriting core treats as the canonical boolean results of a
	// sort-membership test or built-in predicate.
	BuiltinTrue
	BuiltinFalse
	// BuiltinData marks a symbol representing an opaque built-in
	// datum (an integer, string, float literal, ...) carried on the
	// DagNode rather than reconstructed from children.
	BuiltinData
)

// TheoryTag names the equational theory a symbol's arguments obey.
// Only Free and Variable are implemented in full (spec.md §1); the
// others are recorded so a Module can reject or special-case
// declarations it does not yet support.
type TheoryTag uint8

const (
	TheoryFree TheoryTag = iota
	TheoryVariable
	TheoryAssociativeCommutative
	TheoryCommutative
)

// Attributes is a bitmask of the boolean operator attributes a
// declaration can carry. A plain bitmask is used rather than a
// bits-and-blooms/bitset (used in this codebase for term.Term's
// dynamically-sized variable occurs-set):
// there are fewer than sixty attributes total and the set never
// changes size after construction, so a fixed uint64 is both the
// simplest and the fastest representation.
type Attributes uint64

const (
	Associative Attributes = 1 << iota
	Commutative
	Idempotent
	LeftIdentity
	RightIdentity
	Memoized
	Frozen
	Poly
	Ditto
)

// Has reports whether every bit set in want is also set in a.
func (a Attributes) Has(want Attributes) bool { return a&want == want }

// SortIndexKind classifies how expensive it is to find a symbol's true
// (most specific) sort for a given argument tuple, mirroring the
// reference implementation's uniqueSortIndex tri-state (spec.md §3,
// §4.3).
type SortIndexKind uint8

const (
	// SortIndexFast means the sort diagram's answer is already the
	// true sort: the symbol has no registered membership axioms that
	// could possibly narrow it further, so fast_compute_true_sort never
	// needs to consult the constraint table.
	SortIndexFast SortIndexKind = iota
	// SortIndexSlow means one or more membership axioms target a
	// subsort of some sort diagram answer; fast_compute_true_sort must
	// walk the constraint table's Candidates and try to match each one.
	SortIndexSlow
	// SortIndexExplicit means the symbol's sort is never computed from
	// a diagram at all (built-in booleans and data symbols carry their
	// sort directly on construction).
	SortIndexExplicit
)

// Symbol is the process-unique identity of an operator, variable, or
// built-in constant. Its id is assigned once by a Registry at intern
// time and never reused, mirroring the teacher repo's monotonically
// increasing edge-ID counter (core.Graph) used as a stable identity
// independent of name.
type Symbol struct {
	mu sync.RWMutex

	id         int
	name       string
	arity      int
	attributes Attributes
	symbolType SymbolType
	theory     TheoryTag

	sortTable   *SortTable
	constraints SortConstraintTable

	equations   []EquationRef
	memberships []MembershipRef
}

// ID returns the symbol's process-unique identity.
func (s *Symbol) ID() int { return s.id }

// Name returns the symbol's declared name. Names are not required to
// be unique across theories; ID is the only true identity.
func (s *Symbol) Name() string { return s.name }

// Arity returns the symbol's fixed argument count.
func (s *Symbol) Arity() int { return s.arity }

// Attributes returns the symbol's declared attribute bitmask.
func (s *Symbol) Attributes() Attributes { return s.attributes }

// Type returns the symbol's SymbolType.
func (s *Symbol) Type() SymbolType { return s.symbolType }

// Theory returns the equational theory the symbol's arguments obey.
func (s *Symbol) Theory() TheoryTag { return s.theory }

// SortTable returns the symbol's compiled sort/constructor diagram, or
// nil if Compile has not yet run.
func (s *Symbol) SortTable() *SortTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortTable
}

// AddEquation registers an equation this symbol is the top symbol of.
// Concrete Equation types live above this package (in freetheory and
// module); Symbol only ever sees them through the EquationRef
// interface, keeping the dependency order of spec.md §2 intact.
func (s *Symbol) AddEquation(e EquationRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.equations = append(s.equations, e)
}

// Equations returns the equations registered against this symbol, in
// declaration order.
func (s *Symbol) Equations() []EquationRef {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]EquationRef(nil), s.equations...)
}

// AddMembership registers a sort-membership axiom this symbol is the
// top symbol of, and adds it to the symbol's sort-constraint table.
func (s *Symbol) AddMembership(m MembershipRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memberships = append(s.memberships, m)
	s.constraints.Add(m)
}

// Memberships returns the sort-membership axioms registered against
// this symbol, in declaration order.
func (s *Symbol) Memberships() []MembershipRef {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]MembershipRef(nil), s.memberships...)
}

// Constraints returns the symbol's sort-constraint table, populated by
// every AddMembership call so far.
func (s *Symbol) Constraints() *SortConstraintTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &s.constraints
}

// UniqueSortIndex classifies how fast_compute_true_sort must treat
// this symbol: Explicit for the built-in boolean/data symbols whose
// sort is never diagram-computed, Fast for any symbol with no
// registered membership axioms (the sort diagram's answer is already
// final), and Slow otherwise (the constraint table must be consulted).
func (s *Symbol) UniqueSortIndex() SortIndexKind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch s.symbolType {
	case BuiltinTrue, BuiltinFalse, BuiltinData:
		return SortIndexExplicit
	}
	if s.constraints.Len() == 0 {
		return SortIndexFast
	}
	return SortIndexSlow
}

// AddDeclaration appends one operator overload to the not yet compiled
// sort table. Returns ErrArityMismatch if decl's
// argument count disagrees with the symbol's arity, or
// ErrAlreadyCompiled if Compile has already run.
func (s *Symbol) AddDeclaration(decl OperatorDeclaration) error {
	if len(decl.ArgSorts) != s.arity {
		return ErrArityMismatch
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sortTable != nil && s.sortTable.compiled {
		return ErrAlreadyCompiled
	}
	if s.sortTable == nil {
		s.sortTable = &SortTable{arity: s.arity}
	}
	s.sortTable.declarations = append(s.sortTable.declarations, decl)
	return nil
}

// Compile builds the symbol's sort diagram and constructor diagram
// from its accumulated declarations. See SortTable.compile for the
// algorithm. Returns ErrNoDeclarations if no declaration was ever
// added.
func (s *Symbol) Compile() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sortTable == nil || len(s.sortTable.declarations) == 0 {
		return ErrNoDeclarations
	}
	return s.sortTable.compile()
}

// EquationRef is the minimal view of an equation that a Symbol's
// equation table needs: enough to drive dispatch and logging without
// importing the term/module layer that defines the concrete type.
type EquationRef interface {
	EquationID() int
	IsFast() bool // eligible for the fast-match path (no extension, no condition)
}

// MembershipRef is the analogous minimal view of a sort-membership
// axiom.
type MembershipRef interface {
	MembershipID() int
	TargetSort() *sortlattice.Sort
}
