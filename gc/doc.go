// Package gc implements the arena-based mark-sweep allocator that backs
// every DagNode in this module (see package dagnode). It mirrors the
// architecture of the reference mod2-lib garbage collector: a fixed-size
// node allocator organized into arenas of node "slots", plus a companion
// bucket allocator for the variable-sized argument vectors those nodes
// reference.
//
// Two allocators cooperate:
//
//   - NodeAllocator hands out fixed-size node slots from a list of arenas.
//     Allocation is a linear cursor walk that lazily clears the Marked
//     flag on nodes it passes over (the "lazy sweep") and runs a
//     finalizer on nodes that need one. When the cursor nears the end of
//     the last arena's reserve region, the allocator's needToCollect flag
//     is set (see WantToCollectGarbage) so the next safe point runs a
//     collection.
//   - BucketAllocator hands out variable-sized buckets of child-node
//     pointers for argument-vector storage. During mark, in-use
//     buckets flip to "being marked", NodeAllocator.markLocked
//     copy-allocates each surviving node's argument vector from the
//     unused pool via DagNode.CompactArgs, and the old buckets are
//     recycled wholesale once mark finishes — compaction with zero
//     fragmentation.
//
// Root containers (RootVec, RootSet, RootMap) are the only things a
// client may hold a node pointer in across a safe point; see
// root_container.go. A collection walks every registered root container to
// mark reachable nodes before sweeping. This package only supplies the
// containers — registering the right DagNode at the right time is each
// client's job: package dagnode allocates every DagNode through the
// shared NodeAllocator instantiated in dagnode/gc.go, package module
// roots the in-flight reduction root for the duration of Reduce, and
// package stategraph roots every canonicalized state's DAG for the
// life of its Graph.
//
// Safe points. Collection never runs implicitly; client code calls
// OkToCollectGarbage() at well-defined points (between equation
// applications, between rewrite steps). Between safe points, bare node
// pointers may be held freely.
package gc
