package dagnode

import (
	"hash"
	"hash/fnv"
)

// StructuralHash returns a hash over this node's symbol identity and
// its arguments' structural hashes, caching the result under
// HashValid. The in-place rewrite freetheory.RHSAutomaton.Replace
// clears HashValid on the node it overwrites. This is the key
// MakeCanonical's hash-cons set dedups on.
func (n *DagNode) StructuralHash() uint32 {
	if n.Flags.Has(HashValid) {
		return n.hash
	}
	h := fnv.New32a()
	writeUint32(h, uint32(n.Symbol.ID()))
	for _, child := range n.Args {
		writeUint32(h, child.StructuralHash())
	}
	n.hash = h.Sum32()
	n.Flags |= HashValid
	return n.hash
}

func writeUint32(h hash.Hash32, v uint32) {
	_, _ = h.Write([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
}

// Compare imposes a total order over DagNodes: first by symbol id,
// then (for equal symbols) lexicographically over arguments via
// CompareArguments. Matches the reference implementation's compare,
// used to keep discrimination-net candidate sets and AC argument
// lists in a canonical order.
func (n *DagNode) Compare(other *DagNode) int {
	if n == other {
		return 0
	}
	if n.Symbol.ID() != other.Symbol.ID() {
		return n.Symbol.ID() - other.Symbol.ID()
	}
	return n.CompareArguments(other)
}

// CompareArguments lexicographically compares n's and other's
// argument lists, assuming their symbols already compare equal.
func (n *DagNode) CompareArguments(other *DagNode) int {
	for i := 0; i < len(n.Args) && i < len(other.Args); i++ {
		if c := n.Args[i].Compare(other.Args[i]); c != 0 {
			return c
		}
	}
	return len(n.Args) - len(other.Args)
}

// Equal reports structural equality: equal symbol and pairwise equal
// arguments. Two canonicalized nodes are Equal iff they are the same
// pointer; Equal is provided for nodes that have not gone through
// MakeCanonical yet.
func (n *DagNode) Equal(other *DagNode) bool {
	if n == other {
		return true
	}
	if other == nil || n.Symbol.ID() != other.Symbol.ID() || len(n.Args) != len(other.Args) {
		return false
	}
	for i, child := range n.Args {
		if !child.Equal(other.Args[i]) {
			return false
		}
	}
	return true
}
