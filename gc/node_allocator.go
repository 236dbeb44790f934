package gc

import (
	"sync"

	"go.uber.org/zap"
)

// Tunable allocator parameters, mirroring the reference implementation's
// arena sizing: ~5460 node slots per arena (sized so a full arena of
// 3-word, 24-byte nodes, 131,040 bytes, stays just under 128 KiB),
// a 256-slot reserve that pre-triggers collection before an arena
// actually fills, and slop-factor bounds that keep GC frequency low for
// small heaps without over-reserving for large ones.
const (
	ArenaSize   = 5460
	ReserveSize = 256

	smallModelSlop = 8.0
	bigModelSlop   = 2.0
	lowerBound     = 4 * 1024 * 1024
	upperBound     = 32 * 1024 * 1024
)

// Markable is the contract a node type must satisfy to be managed by a
// NodeAllocator. T is the concrete node struct (e.g. dagnode.DagNode);
// N is constrained to exactly *T, which is what the allocator actually
// hands back from Allocate. This split is what lets gc sit below the
// sort lattice, symbol, and DAG-node layers in the dependency order
// spec.md §2 describes: gc never imports the node type it manages.
type Markable[T any] interface {
	*T

	// IsMarked reports the current state of the node's Marked flag.
	IsMarked() bool
	// SetMarked sets or clears the node's Marked flag.
	SetMarked(bool)
	// NeedsDestruction reports whether Finalize must run before reuse
	// (set on nodes whose inline storage owns a heap allocation, e.g.
	// interned strings).
	NeedsDestruction() bool
	// Finalize releases any resources owned by the node's inline
	// storage. Called once, immediately before the slot is reused.
	Finalize()
	// EachChild calls fn for every child reachable directly from this
	// node, in argument order, stopping early if fn returns false.
	EachChild(fn func(*T) bool)
	// ResetForAllocation clears per-allocation state (args pointer,
	// flags) so a reused slot looks freshly allocated.
	ResetForAllocation()
	// CompactArgs copy-allocates the node's variable-sized child-vector
	// storage into pool and repoints the node at the copy. Called once
	// per surviving node during mark, after the node itself has been
	// marked, so the vector ends up in a bucket drawn from the pool's
	// post-flip unused side regardless of which bucket it started in.
	CompactArgs(pool *BucketAllocator[*T])
}

// Stats is a snapshot of allocator state, surfaced to clients that set
// InterpreterPolicy.GCStats (see package module).
type Stats struct {
	ActiveNodes int
	Capacity    int
	Arenas      int
	Collections int
}

type arena[T any] struct {
	slots [ArenaSize]T
}

// NodeAllocator is the fixed-node-size mark-sweep arena allocator
// described in spec.md §4.1. It is safe for concurrent use: a single
// mutex guards the cursor and arena list, matching the reference
// implementation's global-mutex-guarded allocator (and the teacher
// repo's practice of a dedicated lock per logically independent piece
// of state).
type NodeAllocator[T any, N Markable[T]] struct {
	mu sync.Mutex

	arenas []*arena[T]

	cursorArena int // index of the arena currently being scanned
	cursorSlot  int // next slot to examine within cursorArena

	needToCollect bool
	activeNodes   int
	collections   int

	buckets *BucketAllocator[N]
	roots   *rootRegistry[T, N]

	logger     *zap.Logger
	statsWatch bool
}

// NewNodeAllocator constructs an allocator with no arenas; the first
// allocation lazily grows one. buckets is the companion storage
// allocator used to compact vector-backed argument storage during mark
// (see BucketAllocator). logger may be nil to disable GC logging.
func NewNodeAllocator[T any, N Markable[T]](buckets *BucketAllocator[N], logger *zap.Logger) *NodeAllocator[T, N] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NodeAllocator[T, N]{
		buckets: buckets,
		roots:   newRootRegistry[T, N](),
		logger:  logger,
	}
}

// SetLogger redirects collection/arena-growth logging to logger,
// replacing whatever was passed to NewNodeAllocator. Pass nil to
// silence logging.
func (a *NodeAllocator[T, N]) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.logger = logger
}

// EnableStats records InterpreterPolicy's "GC stats on/off" knob from
// spec.md §6. The allocator itself never reads the flag: Stats()
// returns the same O(1) snapshot whether or not it is enabled.
func (a *NodeAllocator[T, N]) EnableStats(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.statsWatch = enabled
}

// Stats returns a snapshot of allocator state.
func (a *NodeAllocator[T, N]) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Stats{
		ActiveNodes: a.activeNodes,
		Capacity:    len(a.arenas) * ArenaSize,
		Arenas:      len(a.arenas),
		Collections: a.collections,
	}
}

// Allocate returns a fresh node slot, running the lazy sweep over any
// already-marked nodes it walks past and finalizing any node that
// needed destruction. It never triggers collection itself; call
// OkToCollectGarbage at a safe point instead.
func (a *NodeAllocator[T, N]) Allocate() N {
	a.mu.Lock()
	defer a.mu.Unlock()

	for {
		if a.cursorArena >= len(a.arenas) {
			a.allocateArenaLocked()
		}
		ar := a.arenas[a.cursorArena]
		if a.cursorSlot >= ArenaSize {
			a.cursorArena++
			a.cursorSlot = 0
			continue
		}

		slot := N(&ar.slots[a.cursorSlot])
		if slot.IsMarked() {
			// Lazy sweep: this node survived the last collection's
			// mark phase and is still live-looking from a prior pass;
			// clear the flag and move on.
			slot.SetMarked(false)
			a.cursorSlot++
			continue
		}

		if slot.NeedsDestruction() {
			slot.Finalize()
		}
		slot.ResetForAllocation()
		a.cursorSlot++
		a.activeNodes++

		if a.cursorArena == len(a.arenas)-1 && ArenaSize-a.cursorSlot <= ReserveSize {
			a.needToCollect = true
		}
		return slot
	}
}

func (a *NodeAllocator[T, N]) allocateArenaLocked() {
	a.arenas = append(a.arenas, &arena[T]{})
	a.logger.Debug("gc: allocated arena", zap.Int("arena_count", len(a.arenas)))
}

// WantToCollectGarbage reports whether the allocator has crossed its
// reserve boundary and is due for a collection at the next safe point.
func (a *NodeAllocator[T, N]) WantToCollectGarbage() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.needToCollect
}

// OkToCollectGarbage runs a collection if one is pending. Call this at
// well-defined safe points (between equation applications, between
// rewrite steps); it is a no-op otherwise.
func (a *NodeAllocator[T, N]) OkToCollectGarbage() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.needToCollect {
		return
	}
	a.collectLocked()
}

// ForceCollectGarbage runs a collection unconditionally; exposed for
// the GC-stress testable property in spec.md §8 and for tests.
func (a *NodeAllocator[T, N]) ForceCollectGarbage() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.collectLocked()
}

func (a *NodeAllocator[T, N]) collectLocked() {
	a.eagerSweepLocked()
	a.buckets.flipForMark()

	a.activeNodes = 0
	a.roots.markAll(func(n N) {
		a.markLocked(n)
	})

	a.buckets.flipAfterMark()
	a.growLocked()

	a.needToCollect = false
	a.collections++
	a.logger.Debug("gc: collection complete",
		zap.Int("active_nodes", a.activeNodes),
		zap.Int("capacity", len(a.arenas)*ArenaSize),
	)
}

// markLocked sets n's Marked flag (if unset) and recurses into its
// children, counting every newly-marked node toward activeNodes. A
// node already marked this cycle is not re-descended into, which is
// what keeps mark-of-a-DAG (as opposed to mark-of-a-tree) linear in
// the number of distinct reachable nodes rather than the number of
// paths to them.
func (a *NodeAllocator[T, N]) markLocked(n N) {
	if n == nil || n.IsMarked() {
		return
	}
	n.SetMarked(true)
	a.activeNodes++
	n.CompactArgs(a.buckets)
	n.EachChild(func(child *T) bool {
		a.markLocked(N(child))
		return true
	})
}

// eagerSweepLocked finishes clearing marks on the unswept tail of the
// arena currently under the cursor, so that the upcoming mark phase
// starts from a clean slate even for nodes the lazy sweep hasn't
// reached yet this cycle.
func (a *NodeAllocator[T, N]) eagerSweepLocked() {
	for ai := a.cursorArena; ai < len(a.arenas); ai++ {
		start := 0
		if ai == a.cursorArena {
			start = a.cursorSlot
		}
		ar := a.arenas[ai]
		for si := start; si < ArenaSize; si++ {
			slot := N(&ar.slots[si])
			slot.SetMarked(false)
		}
	}
}

// growLocked compares active nodes to current capacity and allocates
// enough new arenas to keep capacity at slopFactor(active)×active,
// then resets the cursor to the first arena.
func (a *NodeAllocator[T, N]) growLocked() {
	capacity := len(a.arenas) * ArenaSize
	target := int(slopFactor(a.activeNodes) * float64(a.activeNodes))
	for capacity < target {
		a.arenas = append(a.arenas, &arena[T]{})
		capacity += ArenaSize
	}
	a.cursorArena = 0
	a.cursorSlot = 0
}

// slopFactor linearly interpolates between the small- and big-model
// slop factors across [lowerBound, upperBound] active nodes, per
// spec.md §4.1.
func slopFactor(activeNodes int) float64 {
	if activeNodes <= lowerBound {
		return smallModelSlop
	}
	if activeNodes >= upperBound {
		return bigModelSlop
	}
	t := float64(activeNodes-lowerBound) / float64(upperBound-lowerBound)
	return smallModelSlop + t*(bigModelSlop-smallModelSlop)
}
