package substitution

import "github.com/rljacobson/mod2/dagnode"

// Substitution is a fixed-length array of optional DagNode bindings
// indexed by variable slot, reused across matching activations rather
// than reallocated (spec.md §3, §4.5). CopySize tracks the logical
// "live" prefix; slots at or beyond CopySize are scratch and are not
// cleared by ClearFirstN, matching the reference implementation's
// reuse-without-shrink discipline.
type Substitution struct {
	slots    []*dagnode.DagNode
	copySize int
}

// New returns a Substitution with size slots, all unbound.
func New(size int) *Substitution {
	return &Substitution{slots: make([]*dagnode.DagNode, size)}
}

// Size returns the substitution's fixed slot count.
func (s *Substitution) Size() int { return len(s.slots) }

// CopySize returns the logical live-prefix length.
func (s *Substitution) CopySize() int { return s.copySize }

// SetCopySize records the logical live-prefix length. Callers use
// this after binding a known-size prefix of variables, so that a
// later ClearFirstN(CopySize()) resets exactly the variables that
// matter for this activation.
func (s *Substitution) SetCopySize(n int) { s.copySize = n }

// Bind records v as the value of variable index i. Returns
// ErrIndexOutOfRange if i is out of bounds.
func (s *Substitution) Bind(i int, v *dagnode.DagNode) error {
	if i < 0 || i >= len(s.slots) {
		return ErrIndexOutOfRange
	}
	s.slots[i] = v
	return nil
}

// Value returns the current binding of variable index i, or nil if
// unbound. Returns ErrIndexOutOfRange if i is out of bounds.
func (s *Substitution) Value(i int) (*dagnode.DagNode, error) {
	if i < 0 || i >= len(s.slots) {
		return nil, ErrIndexOutOfRange
	}
	return s.slots[i], nil
}

// IsBound reports whether variable index i currently has a binding.
func (s *Substitution) IsBound(i int) bool {
	v, err := s.Value(i)
	return err == nil && v != nil
}

// ClearFirstN zeroes the first n slots without shrinking the backing
// array, so tail scratch slots from a previous activation survive.
// Returns ErrIndexOutOfRange if n is out of bounds.
func (s *Substitution) ClearFirstN(n int) error {
	if n < 0 || n > len(s.slots) {
		return ErrIndexOutOfRange
	}
	for i := 0; i < n; i++ {
		s.slots[i] = nil
	}
	return nil
}

// CopyFromSubstitution overwrites s's first n slots with other's,
// used to save or restore state around backtracking. Returns
// ErrIndexOutOfRange if n exceeds either substitution's size.
func (s *Substitution) CopyFromSubstitution(other *Substitution, n int) error {
	if n < 0 || n > len(s.slots) || n > len(other.slots) {
		return ErrIndexOutOfRange
	}
	copy(s.slots[:n], other.slots[:n])
	return nil
}

// Clone returns a deep copy of s (a fresh backing array with the same
// bindings), used when a subproblem needs to explore an alternative
// without disturbing the caller's working substitution.
func (s *Substitution) Clone() *Substitution {
	clone := &Substitution{
		slots:    make([]*dagnode.DagNode, len(s.slots)),
		copySize: s.copySize,
	}
	copy(clone.slots, s.slots)
	return clone
}

// binding is one entry of a LocalBindings speculative-binding list.
type binding struct {
	index  int
	value  *dagnode.DagNode
	active bool
}

// LocalBindings speculatively extends a Substitution during condition
// evaluation: each Bind call records both the target substitution's
// prior value (so it can be restored) and the new value, without
// committing either until RetractAll or the caller simply leaves the
// bindings in place (spec.md §4.5).
type LocalBindings struct {
	target   *Substitution
	bindings []binding
	prior    []*dagnode.DagNode
}

// NewLocalBindings returns a LocalBindings that will speculatively
// extend target.
func NewLocalBindings(target *Substitution) *LocalBindings {
	return &LocalBindings{target: target}
}

// Bind speculatively sets target's slot i to v, recording the prior
// value so RetractAll can undo it. Returns ErrIndexOutOfRange if i is
// out of bounds.
func (lb *LocalBindings) Bind(i int, v *dagnode.DagNode) error {
	prior, err := lb.target.Value(i)
	if err != nil {
		return err
	}
	if err := lb.target.Bind(i, v); err != nil {
		return err
	}
	lb.bindings = append(lb.bindings, binding{index: i, value: v, active: true})
	lb.prior = append(lb.prior, prior)
	return nil
}

// RetractAll undoes every active binding made through this
// LocalBindings, in reverse order, restoring each slot's prior value.
func (lb *LocalBindings) RetractAll() {
	for i := len(lb.bindings) - 1; i >= 0; i-- {
		if !lb.bindings[i].active {
			continue
		}
		_ = lb.target.Bind(lb.bindings[i].index, lb.prior[i])
		lb.bindings[i].active = false
	}
}

// Len returns the number of bindings recorded (active or retracted).
func (lb *LocalBindings) Len() int { return len(lb.bindings) }
