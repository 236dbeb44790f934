package term

import (
	"hash/fnv"

	"github.com/bits-and-blooms/bitset"

	"github.com/rljacobson/mod2/symbol"
)

// Attributes is the bitset of per-term pattern-compilation properties
// (spec.md §3).
type Attributes uint8

const (
	// Stable marks a term whose top symbol cannot be further rewritten
	// by variant equations once matched — e.g. a variable or a
	// constructor applied to stable arguments.
	Stable Attributes = 1 << iota
	// EagerContext marks a term that sits in an eager evaluation
	// context: its match must be fully resolved (no outstanding
	// subproblem) before sibling terms are considered.
	EagerContext
	// HonorsGroundOutMatch marks a term whose matching algorithm
	// guarantees to bind every variable below it when it succeeds with
	// no remaining subproblem.
	HonorsGroundOutMatch
)

// Has reports whether every bit in want is set in a.
func (a Attributes) Has(want Attributes) bool { return a&want == want }

// noVarIndex is the VarIndex of a non-variable term; IsVariable tests
// VarIndex against it.
const noVarIndex = -1

// Term is one node of the pattern/RHS-template AST. Unlike DagNode,
// Term is never shared across distinct patterns and is never
// garbage-collected; its lifetime is the owning module's.
type Term struct {
	Symbol     *symbol.Symbol
	Children   []*Term
	Attributes Attributes

	// VarIndex is the variable's substitution slot if Symbol.Type() ==
	// symbol.Variable, and noVarIndex otherwise.
	VarIndex int

	sortIndex  int // -1 until computed
	saveIndex  int // -1 until AssignSaveIndex runs
	normalized bool
	hash       uint32
	occursSet  *bitset.BitSet
}

// New constructs a Term for sym with the given children. Returns
// ErrArityMismatch if len(children) disagrees with sym.Arity().
func New(sym *symbol.Symbol, children ...*Term) (*Term, error) {
	if len(children) != sym.Arity() {
		return nil, ErrArityMismatch
	}
	return &Term{
		Symbol:    sym,
		Children:  children,
		VarIndex:  noVarIndex,
		sortIndex: -1,
		saveIndex: -1,
	}, nil
}

// NewVariable constructs a variable Term bound to substitution slot
// index.
func NewVariable(sym *symbol.Symbol, index int) *Term {
	return &Term{
		Symbol:    sym,
		VarIndex:  index,
		sortIndex: -1,
		saveIndex: -1,
	}
}

// IsVariable reports whether this term is a pattern variable.
func (t *Term) IsVariable() bool { return t.VarIndex != noVarIndex }

// SortIndex returns the term's cached sort index, or -1 if not yet computed.
func (t *Term) SortIndex() int { return t.sortIndex }

// SetSortIndex records the term's computed sort index.
func (t *Term) SetSortIndex(idx int) { t.sortIndex = idx }

// SaveIndex returns the slot this term was assigned when compiled
// into an RHS construction instruction, or -1 if unassigned.
func (t *Term) SaveIndex() int { return t.saveIndex }

// AssignSaveIndex records the RHS-construction slot for this term.
// Returns ErrSaveIndexAlreadyAssigned on a second call.
func (t *Term) AssignSaveIndex(idx int) error {
	if t.saveIndex != -1 {
		return ErrSaveIndexAlreadyAssigned
	}
	t.saveIndex = idx
	return nil
}

// Normalize computes and caches this term's structural hash and
// occurs set bottom-up. Safe to call more than once; later calls are
// no-ops.
func (t *Term) Normalize() {
	if t.normalized {
		return
	}
	occurs := bitset.New(0)
	h := fnv.New32a()
	writeUint32(h, uint32(t.Symbol.ID()))
	if t.IsVariable() {
		occurs.Set(uint(t.VarIndex))
	}
	for _, child := range t.Children {
		child.Normalize()
		writeUint32(h, child.hash)
		occurs.InPlaceUnion(child.occursSet)
	}
	t.hash = h.Sum32()
	t.occursSet = occurs
	t.normalized = true
}

func writeUint32(h interface{ Write([]byte) (int, error) }, v uint32) {
	_, _ = h.Write([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
}

// StructuralHash returns the cached hash computed by Normalize.
// Returns ErrNotNormalized if Normalize has not run.
func (t *Term) StructuralHash() (uint32, error) {
	if !t.normalized {
		return 0, ErrNotNormalized
	}
	return t.hash, nil
}

// OccursSet returns the set of variable indices occurring anywhere
// below this term (reflexive). Returns ErrNotNormalized if Normalize
// has not run.
func (t *Term) OccursSet() (*bitset.BitSet, error) {
	if !t.normalized {
		return nil, ErrNotNormalized
	}
	return t.occursSet.Clone(), nil
}
