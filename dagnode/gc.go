package dagnode

import (
	"go.uber.org/zap"

	"github.com/rljacobson/mod2/gc"
)

// RootVec and RootSet are this package's instantiation of gc's generic
// root containers, so callers outside dagnode (module, stategraph) can
// hold DagNode pointers across a safe point without importing gc
// directly, matching the layering every other theory-agnostic package
// in this module already follows.
type RootVec = gc.RootVec[DagNode, *DagNode]
type RootSet = gc.RootSet[DagNode, *DagNode]

// nodeAllocator is the arena allocator backing every DagNode this
// package hands out, shared process-wide the same way the reference
// implementation's garbage collector manages a single heap regardless
// of how many modules are loaded into it.
var (
	nodeBuckets   = gc.NewBucketAllocator[*DagNode]()
	nodeAllocator = gc.NewNodeAllocator[DagNode, *DagNode](nodeBuckets, nil)
)

// allocate returns a freshly zeroed node slot, ready for the caller to
// populate. Every DagNode constructor in this package goes through
// this one entry point.
func allocate() *DagNode {
	return nodeAllocator.Allocate()
}

// SetGCLogger directs the shared node allocator's collection and
// arena-growth log messages to l. Pass nil to silence them.
func SetGCLogger(l *zap.Logger) { nodeAllocator.SetLogger(l) }

// EnableGCStats sets the shared node allocator's stats flag (spec.md
// §6's GCStats interpreter-policy knob); GCStats returns a snapshot
// whether or not it is set.
func EnableGCStats(enabled bool) { nodeAllocator.EnableStats(enabled) }

// GCStats returns a snapshot of the shared node allocator's state.
func GCStats() gc.Stats { return nodeAllocator.Stats() }

// CollectGarbageIfNeeded runs a collection if the allocator has
// crossed its reserve boundary since the last one; a no-op otherwise.
// Called from a rewriting safe point (spec.md §4.1, §5).
func CollectGarbageIfNeeded() { nodeAllocator.OkToCollectGarbage() }

// ForceCollectGarbage runs a collection unconditionally, for the
// GC-stress testable property of spec.md §8.
func ForceCollectGarbage() { nodeAllocator.ForceCollectGarbage() }

// NewRoot registers a new single-slot root container against the
// shared node allocator.
func NewRoot() *RootVec { return nodeAllocator.NewRootVec() }

// NewRootSet registers a new root-set container against the shared
// node allocator, for callers (such as the state-transition graph)
// that retain an open-ended collection of nodes rather than a single
// in-flight term.
func NewRootSet() *RootSet { return nodeAllocator.NewRootSet() }
