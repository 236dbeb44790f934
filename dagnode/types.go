package dagnode

import (
	"github.com/rljacobson/mod2/gc"
	"github.com/rljacobson/mod2/sortlattice"
	"github.com/rljacobson/mod2/symbol"
)

// Flags mirrors the reference implementation's DagNodeFlag bitset.
type Flags uint8

const (
	Marked Flags = 1 << iota
	NeedsDestructionFlag
	Reduced
	Copied
	Unrewritable
	Unstackable
	GroundFlag
	HashValid
)

// RewritingFlags is the conjunction of flags a rewrite step must
// inspect together, matching the reference implementation's named
// constant of the same purpose.
const RewritingFlags = Reduced | Unrewritable | Unstackable | GroundFlag

// Has reports whether every bit set in want is set in f.
func (f Flags) Has(want Flags) bool { return f&want == want }

// DagNode is one node of the shared, hash-consable term DAG. Unlike
// the reference implementation's DagNodeCore, which stores args as an
// untyped pointer distinguishing null/inline/vector at the byte
// level, DagNode stores Args as a plain slice: Go already gives a
// nil slice the same footprint as the "null" case and reuses the same
// field for one or a thousand arguments.
type DagNode struct {
	Symbol    *symbol.Symbol
	Args      []*DagNode
	SortIndex int // index within Symbol's result kind; -1 until ComputeBaseSort runs
	Theory    symbol.TheoryTag
	Flags     Flags

	// copyPointer is valid only while Flags.Has(Copied); it is the
	// in-progress copy of this node during a MakeClone/MakeCanonicalCopy
	// traversal, letting shared substructure in the DAG be copied once
	// rather than once per incoming edge.
	copyPointer *DagNode

	hash      uint32 // valid only while Flags.Has(HashValid)
	extraData any    // theory- or built-in-specific payload (e.g. an integer literal)
}

// New constructs a DagNode for sym with the given arguments. Returns
// ErrArityMismatch if len(args) disagrees with sym.Arity().
func New(sym *symbol.Symbol, args ...*DagNode) (*DagNode, error) {
	if len(args) != sym.Arity() {
		return nil, ErrArityMismatch
	}
	n := allocate()
	n.Symbol = sym
	n.Args = args
	n.SortIndex = -1
	n.Theory = sym.Theory()
	if len(args) > 0 {
		n.Flags |= NeedsDestructionFlag
	}
	return n, nil
}

// Arity returns the node's declared argument count.
func (n *DagNode) Arity() int { return n.Symbol.Arity() }

// ExtraData returns the theory- or built-in-specific payload attached
// to this node (e.g. the boxed value of an integer or string literal),
// or nil if none was set.
func (n *DagNode) ExtraData() any { return n.extraData }

// SetExtraData attaches a theory- or built-in-specific payload.
func (n *DagNode) SetExtraData(v any) { n.extraData = v }

// BaseSort returns the cached sort this node was last computed to
// have, looked up against sym's kind. Returns ErrSortNotComputed if
// ComputeBaseSort has not run.
func (n *DagNode) BaseSort() (*sortlattice.Sort, error) {
	if n.SortIndex < 0 {
		return nil, ErrSortNotComputed
	}
	table := n.Symbol.SortTable()
	if table == nil {
		return nil, ErrSortNotComputed
	}
	decls := table.Declarations()
	if len(decls) == 0 {
		return nil, ErrSortNotComputed
	}
	kind := decls[0].ResultSort.Kind()
	for _, s := range kind.Sorts() {
		if s.IndexWithinKind() == n.SortIndex {
			return s, nil
		}
	}
	return nil, ErrSortNotComputed
}

// --- gc.Markable[DagNode] implementation ---

// IsMarked reports the node's GC mark bit.
func (n *DagNode) IsMarked() bool { return n.Flags.Has(Marked) }

// SetMarked sets or clears the node's GC mark bit.
func (n *DagNode) SetMarked(v bool) {
	if v {
		n.Flags |= Marked
	} else {
		n.Flags &^= Marked
	}
}

// NeedsDestruction reports whether Finalize must run before reuse.
func (n *DagNode) NeedsDestruction() bool { return n.Flags.Has(NeedsDestructionFlag) }

// Finalize releases resources owned by the node's inline storage
// before its slot is reused by the allocator.
func (n *DagNode) Finalize() {
	n.Args = nil
	n.extraData = nil
	n.copyPointer = nil
}

// EachChild visits every argument, in order, stopping early if fn
// returns false.
func (n *DagNode) EachChild(fn func(*DagNode) bool) {
	for _, child := range n.Args {
		if !fn(child) {
			return
		}
	}
}

// CompactArgs copy-allocates n's argument vector into pool, giving the
// bucket allocator's flip-and-copy compaction something real to move.
// It runs once per surviving node per collection because markLocked
// calls it only when it first marks a node; it does not itself check
// whether Args was already compacted. A childless node is left alone;
// EachChild afterwards walks the same child pointers, now held in the
// fresh vector.
func (n *DagNode) CompactArgs(pool *gc.BucketAllocator[*DagNode]) {
	if len(n.Args) == 0 {
		return
	}
	fresh, err := pool.Alloc(len(n.Args))
	if err != nil {
		// Argument vector wider than one bucket: leave it where it is
		// rather than fail the collection outright.
		return
	}
	copy(fresh, n.Args)
	n.Args = fresh
}

// ResetForAllocation clears per-allocation state so a reused slot
// looks freshly allocated.
func (n *DagNode) ResetForAllocation() {
	n.Symbol = nil
	n.Args = nil
	n.SortIndex = -1
	n.Theory = symbol.TheoryFree
	n.Flags = 0
	n.copyPointer = nil
	n.hash = 0
	n.extraData = nil
}
