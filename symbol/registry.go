package symbol

import "sync"

// Registry assigns process-unique Symbol identities and is the only
// way to construct a Symbol, mirroring the teacher repo's pattern of
// handing out monotonically increasing integer IDs from one
// mutex-guarded counter (core.Graph's edge-ID allocator) rather than
// letting callers fabricate their own.
type Registry struct {
	mu     sync.Mutex
	next   int
	byID   map[int]*Symbol
	byName map[string][]*Symbol // a name may be shared by symbols in different theories
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[int]*Symbol),
		byName: make(map[string][]*Symbol),
	}
}

// Intern creates and registers a new Symbol with the given name,
// arity, type, and theory. The returned Symbol has no operator
// declarations yet; call AddDeclaration then Compile before using it
// for sort computation. Returns ErrEmptySymbolName if name is empty.
func (r *Registry) Intern(name string, arity int, symbolType SymbolType, theory TheoryTag) (*Symbol, error) {
	if name == "" {
		return nil, ErrEmptySymbolName
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	s := &Symbol{
		id:         r.next,
		name:       name,
		arity:      arity,
		symbolType: symbolType,
		theory:     theory,
	}
	r.next++
	r.byID[s.id] = s
	r.byName[name] = append(r.byName[name], s)
	return s, nil
}

// Lookup returns a previously interned Symbol by its process-unique id.
func (r *Registry) Lookup(id int) (*Symbol, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	return s, ok
}

// ByName returns every Symbol interned under the given name, in
// intern order.
func (r *Registry) ByName(name string) []*Symbol {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*Symbol(nil), r.byName[name]...)
}

// Len returns the number of symbols interned so far.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}
