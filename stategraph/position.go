package stategraph

import "github.com/rljacobson/mod2/dagnode"

// Position is a path from a DAG's root to one of its subterms: an
// empty Position names the root itself, and Position{i, j} names
// root.Args[i].Args[j].
type Position []int

// nodeAt walks root down the given path.
func nodeAt(root *dagnode.DagNode, pos Position) *dagnode.DagNode {
	n := root
	for _, i := range pos {
		n = n.Args[i]
	}
	return n
}

// PositionState enumerates a DAG's positions breadth-first, up to
// maxDepth argument steps below the root (spec.md §4.8's "PositionState
// (breadth-first traversal of argument positions up to a configured
// depth)"). A depth of zero visits only the root.
type PositionState struct {
	root     *dagnode.DagNode
	maxDepth int
	queue    []Position
	next     int
}

// NewPositionState starts a fresh breadth-first walk of root.
func NewPositionState(root *dagnode.DagNode, maxDepth int) *PositionState {
	return &PositionState{root: root, maxDepth: maxDepth, queue: []Position{{}}}
}

// Next returns the next position in breadth-first order, expanding its
// children into the queue (if within maxDepth) before returning it.
// ok is false once every position up to maxDepth has been visited.
func (p *PositionState) Next() (pos Position, ok bool) {
	if p.next >= len(p.queue) {
		return nil, false
	}
	pos = p.queue[p.next]
	p.next++
	if len(pos) < p.maxDepth {
		node := nodeAt(p.root, pos)
		for i := range node.Args {
			child := make(Position, len(pos)+1)
			copy(child, pos)
			child[len(pos)] = i
			p.queue = append(p.queue, child)
		}
	}
	return pos, true
}
