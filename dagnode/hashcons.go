package dagnode

import lru "github.com/hashicorp/golang-lru/v2"

// HashConsSet canonicalizes DagNodes by structural hash, so that
// structurally-equal subterms anywhere in the system collapse to the
// same pointer. It is backed by a bounded LRU rather than an
// unbounded map: spec.md §4.4 requires canonicalization to converge
// under steady rewriting, not to retain every term ever built, and an
// LRU is the teacher-repo-adjacent library this corpus reaches for
// whenever a working set needs an eviction policy (see
// stategraph.Graph, which hash-conses states the same way).
//
// Entries are keyed purely by structural hash, not by hash plus
// structural equality: once a hash has an occupant, any later node
// that hashes the same is discarded and the existing occupant is
// returned as-is, whether or not the two are actually structurally
// equal. This first-write-wins-on-collision rule matches the
// reference implementation's IndexSet (index_set.rs's
// `Entry::Occupied` arm returns the existing entry unconditionally —
// "neither replaces the value nor stores the given value if the hash
// exists"), so a true hash collision between distinct terms loses the
// later term rather than retaining both.
type HashConsSet struct {
	cache *lru.Cache[uint32, *DagNode]
}

// NewHashConsSet returns a HashConsSet retaining up to capacity
// distinct structural hashes.
func NewHashConsSet(capacity int) (*HashConsSet, error) {
	cache, err := lru.New[uint32, *DagNode](capacity)
	if err != nil {
		return nil, err
	}
	return &HashConsSet{cache: cache}, nil
}

// MakeCanonical returns the canonical representative for n's
// structural hash, storing n itself as that representative the first
// time the hash is seen. On any later call with the same hash — true
// structural equality or a true collision alike — the original
// occupant is returned unchanged and n is discarded.
func (h *HashConsSet) MakeCanonical(n *DagNode) *DagNode {
	key := n.StructuralHash()
	if existing, ok := h.cache.Get(key); ok {
		return existing
	}
	h.cache.Add(key, n)
	return n
}

// MakeCanonicalCopy is MakeCanonical applied to a fresh MakeClone of
// n, used when the caller must not mutate n's own flags (structural
// hash computation sets HashValid) but still wants a canonical
// result — matching the reference implementation's split between
// make_canonical and make_canonical_copy.
func (h *HashConsSet) MakeCanonicalCopy(n *DagNode) *DagNode {
	return h.MakeCanonical(n.MakeClone())
}
