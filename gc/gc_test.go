package gc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rljacobson/mod2/gc"
)

// testNode is a minimal Markable implementation used only to exercise
// the allocator in isolation from the real DagNode type (see package
// dagnode), the way the teacher's core package tests its Graph against
// plain string IDs rather than a downstream consumer's types.
type testNode struct {
	marked  bool
	destroy bool
	kids    []*testNode
}

func (n *testNode) IsMarked() bool        { return n.marked }
func (n *testNode) SetMarked(v bool)      { n.marked = v }
func (n *testNode) NeedsDestruction() bool { return n.destroy }
func (n *testNode) Finalize()             { n.destroy = false }
func (n *testNode) ResetForAllocation() {
	n.kids = nil
	n.destroy = false
}
func (n *testNode) EachChild(fn func(*testNode) bool) {
	for _, k := range n.kids {
		if !fn(k) {
			return
		}
	}
}
func (n *testNode) CompactArgs(pool *gc.BucketAllocator[*testNode]) {
	if len(n.kids) == 0 {
		return
	}
	fresh, err := pool.Alloc(len(n.kids))
	if err != nil {
		return
	}
	copy(fresh, n.kids)
	n.kids = fresh
}

func newAllocator() *gc.NodeAllocator[testNode, *testNode] {
	return gc.NewNodeAllocator[testNode, *testNode](gc.NewBucketAllocator[*testNode](), nil)
}

func TestAllocateDistinctSlots(t *testing.T) {
	a := newAllocator()
	n1 := a.Allocate()
	n2 := a.Allocate()
	assert.NotEqual(t, n1, n2)
	assert.False(t, n1.IsMarked())
}

func TestCollectReclaimsUnreachableNodes(t *testing.T) {
	a := newAllocator()
	root := a.NewRootVec()
	defer root.Close()

	survivor := a.Allocate()
	root.Set(survivor)

	// Allocate 10,000 further single nodes, none held by a root
	// container; only the survivor is rooted. A scaled-down form of the
	// GC stress scenario in spec.md §8.
	for i := 0; i < 10000; i++ {
		_ = a.Allocate()
	}

	a.ForceCollectGarbage()
	stats := a.Stats()
	assert.Equal(t, 1, stats.ActiveNodes, "only the rooted survivor should remain marked live")

	// Subsequent allocation must succeed without panicking.
	require.NotPanics(t, func() {
		next := a.Allocate()
		assert.False(t, next.IsMarked())
	})
}

func TestMarkFollowsChildrenAcrossCollections(t *testing.T) {
	a := newAllocator()
	root := a.NewRootVec()
	defer root.Close()

	parent := a.Allocate()
	child := a.Allocate()
	parent.kids = []*testNode{child}
	root.Set(parent)

	a.ForceCollectGarbage()
	assert.Equal(t, 2, a.Stats().ActiveNodes, "parent and reachable child both survive")
	assert.Equal(t, []*testNode{child}, parent.kids, "CompactArgs must preserve child identity and order")
}

func TestOkToCollectGarbageIsNoopUntilReserveCrossed(t *testing.T) {
	a := newAllocator()
	assert.False(t, a.WantToCollectGarbage())
	a.OkToCollectGarbage() // no-op, must not panic
	assert.Equal(t, 0, a.Stats().Collections)
}

func TestRootSetMembership(t *testing.T) {
	a := newAllocator()
	set := a.NewRootSet()
	defer set.Close()

	n := a.Allocate()
	assert.False(t, set.Contains(n))
	set.Add(n)
	assert.True(t, set.Contains(n))
	set.Remove(n)
	assert.False(t, set.Contains(n))
}

func TestRootMapBinding(t *testing.T) {
	a := newAllocator()
	m := gc.NewRootMap[int, testNode, *testNode](a)
	defer m.Close()

	n := a.Allocate()
	m.Set(7, n)
	got, ok := m.Get(7)
	assert.True(t, ok)
	assert.Equal(t, n, got)

	m.Delete(7)
	_, ok = m.Get(7)
	assert.False(t, ok)
}

func TestClosedRootContainerReportsError(t *testing.T) {
	a := newAllocator()
	v := a.NewRootVec()
	require.NoError(t, v.Close())
	assert.ErrorIs(t, v.Close(), gc.ErrRootContainerClosed)
}

func TestBucketAllocatorRejectsOversizeAllocation(t *testing.T) {
	b := gc.NewBucketAllocator[*testNode]()
	_, err := b.Alloc(gc.BucketCapacity + 1)
	assert.ErrorIs(t, err, gc.ErrBucketTooLarge)
}

func TestBucketAllocatorBumpsWithinCapacity(t *testing.T) {
	b := gc.NewBucketAllocator[*testNode]()
	first, err := b.Alloc(64)
	require.NoError(t, err)
	second, err := b.Alloc(64)
	require.NoError(t, err)
	assert.Len(t, first, 64)
	assert.Len(t, second, 64)
}
