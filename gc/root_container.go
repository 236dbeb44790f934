package gc

import "sync"

// rootRegistry is the process-global (per-allocator) doubly-linked
// list of root containers described in spec.md §4.1. Go's GC makes a
// literal intrusive linked list unnecessary for memory-safety reasons,
// but the contract is identical: any container registered here is
// walked during mark, and only containers registered here may hold a
// DagNode pointer across a safe point.
type rootRegistry[T any, N Markable[T]] struct {
	mu       sync.Mutex
	nextID   int
	vecs     map[int]*RootVec[T, N]
	sets     map[int]*RootSet[T, N]
	maps     map[int]any // *RootMap[K, T, N] for whatever K the caller chose
	mapMarks map[int]func(func(N))
}

func newRootRegistry[T any, N Markable[T]]() *rootRegistry[T, N] {
	return &rootRegistry[T, N]{
		vecs:     make(map[int]*RootVec[T, N]),
		sets:     make(map[int]*RootSet[T, N]),
		maps:     make(map[int]any),
		mapMarks: make(map[int]func(func(N))),
	}
}

func (r *rootRegistry[T, N]) markAll(mark func(N)) {
	r.mu.Lock()
	vecs := make([]*RootVec[T, N], 0, len(r.vecs))
	for _, v := range r.vecs {
		vecs = append(vecs, v)
	}
	sets := make([]*RootSet[T, N], 0, len(r.sets))
	for _, s := range r.sets {
		sets = append(sets, s)
	}
	markFns := make([]func(func(N)), 0, len(r.mapMarks))
	for _, fn := range r.mapMarks {
		markFns = append(markFns, fn)
	}
	r.mu.Unlock()

	for _, v := range vecs {
		v.mu.Lock()
		for _, n := range v.items {
			mark(n)
		}
		v.mu.Unlock()
	}
	for _, s := range sets {
		s.mu.Lock()
		for n := range s.items {
			mark(n)
		}
		s.mu.Unlock()
	}
	for _, fn := range markFns {
		fn(mark)
	}
}

// RootVec is an inline-vector root container, the common case of
// keeping a single node (or a short, ordered list of nodes) alive
// across safe points — e.g. the root of the term currently being
// reduced.
type RootVec[T any, N Markable[T]] struct {
	mu       sync.Mutex
	items    []N
	registry *rootRegistry[T, N]
	id       int
	closed   bool
}

// NewRootVec registers and returns an empty RootVec. Call Close when
// the container is no longer needed so it stops being walked on mark.
func (a *NodeAllocator[T, N]) NewRootVec() *RootVec[T, N] {
	a.mu.Lock()
	defer a.mu.Unlock()
	r := &RootVec[T, N]{registry: a.roots}
	a.roots.mu.Lock()
	r.id = a.roots.nextID
	a.roots.nextID++
	a.roots.vecs[r.id] = r
	a.roots.mu.Unlock()
	return r
}

// Set replaces the container's contents with a single node.
func (r *RootVec[T, N]) Set(n N) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items[:0], n)
}

// Push appends a node to the container.
func (r *RootVec[T, N]) Push(n N) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

// Get returns the i-th held node.
func (r *RootVec[T, N]) Get(i int) N {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[i]
}

// Len returns the number of nodes currently held.
func (r *RootVec[T, N]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Close unlinks the container from the allocator's root registry.
func (r *RootVec[T, N]) Close() error {
	r.registry.mu.Lock()
	defer r.registry.mu.Unlock()
	if r.closed {
		return ErrRootContainerClosed
	}
	delete(r.registry.vecs, r.id)
	r.closed = true
	return nil
}

// RootSet is a hash-set root container, used when the set of live
// roots is unordered and membership-tested rather than indexed (e.g.
// the working set of a parallel search).
type RootSet[T any, N Markable[T]] struct {
	mu       sync.Mutex
	items    map[N]struct{}
	registry *rootRegistry[T, N]
	id       int
	closed   bool
}

// NewRootSet registers and returns an empty RootSet.
func (a *NodeAllocator[T, N]) NewRootSet() *RootSet[T, N] {
	a.mu.Lock()
	defer a.mu.Unlock()
	r := &RootSet[T, N]{registry: a.roots, items: make(map[N]struct{})}
	a.roots.mu.Lock()
	r.id = a.roots.nextID
	a.roots.nextID++
	a.roots.sets[r.id] = r
	a.roots.mu.Unlock()
	return r
}

// Add inserts a node into the set.
func (r *RootSet[T, N]) Add(n N) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[n] = struct{}{}
}

// Remove deletes a node from the set.
func (r *RootSet[T, N]) Remove(n N) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, n)
}

// Contains reports whether n is currently held.
func (r *RootSet[T, N]) Contains(n N) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.items[n]
	return ok
}

// Close unlinks the container from the allocator's root registry.
func (r *RootSet[T, N]) Close() error {
	r.registry.mu.Lock()
	defer r.registry.mu.Unlock()
	if r.closed {
		return ErrRootContainerClosed
	}
	delete(r.registry.sets, r.id)
	r.closed = true
	return nil
}

// RootMap is a hash-map root container keyed by an arbitrary
// comparable key (e.g. variable index for a live substitution, or
// structural hash for a hash-cons table). Because its key type varies
// per use site, it is registered with a caller-supplied mark callback
// rather than being walked generically like RootVec/RootSet.
type RootMap[K comparable, T any, N Markable[T]] struct {
	mu       sync.Mutex
	items    map[K]N
	registry *rootRegistry[T, N]
	id       int
	closed   bool
}

// NewRootMap registers and returns an empty RootMap.
func NewRootMap[K comparable, T any, N Markable[T]](a *NodeAllocator[T, N]) *RootMap[K, T, N] {
	a.mu.Lock()
	defer a.mu.Unlock()
	r := &RootMap[K, T, N]{registry: a.roots, items: make(map[K]N)}
	a.roots.mu.Lock()
	r.id = a.roots.nextID
	a.roots.nextID++
	a.roots.maps[r.id] = r
	a.roots.mapMarks[r.id] = func(mark func(N)) {
		r.mu.Lock()
		defer r.mu.Unlock()
		for _, n := range r.items {
			mark(n)
		}
	}
	a.roots.mu.Unlock()
	return r
}

// Set binds key to node n, replacing any previous binding.
func (r *RootMap[K, T, N]) Set(key K, n N) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[key] = n
}

// Get returns the node bound to key, if any.
func (r *RootMap[K, T, N]) Get(key K) (N, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.items[key]
	return n, ok
}

// Delete removes the binding for key.
func (r *RootMap[K, T, N]) Delete(key K) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, key)
}

// Close unlinks the container from the allocator's root registry.
func (r *RootMap[K, T, N]) Close() error {
	r.registry.mu.Lock()
	defer r.registry.mu.Unlock()
	if r.closed {
		return ErrRootContainerClosed
	}
	delete(r.registry.maps, r.id)
	delete(r.registry.mapMarks, r.id)
	r.closed = true
	return nil
}
