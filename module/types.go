package module

import (
	"sync"

	"go.uber.org/zap"

	"github.com/rljacobson/mod2/dagnode"
	"github.com/rljacobson/mod2/discnet"
	"github.com/rljacobson/mod2/sortlattice"
	"github.com/rljacobson/mod2/stategraph"
	"github.com/rljacobson/mod2/symbol"
)

// InterpreterPolicy carries the boolean knobs spec.md §6 says the
// driver consumes (trace on/off, GC stats on/off, exception flags),
// plus an optional structured logger those knobs are reported through.
type InterpreterPolicy struct {
	Trace           bool
	GCStats         bool
	ExceptionsFatal bool
	Logger          *zap.Logger
}

// RewritingContext is the concrete subproblem.Context (and
// discnet/stategraph equivalent) every reduction and search runs
// against: a sticky abort flag, counters for the testable properties
// of spec.md §8 ("equation counter increments by exactly 1"), and a
// reference to the owning module's policy for safe-point logging.
type RewritingContext struct {
	mu            sync.Mutex
	aborted       bool
	EquationCount int
	RuleCount     int
	Policy        *InterpreterPolicy
}

// NewRewritingContext returns a fresh, non-aborted context.
func NewRewritingContext(policy *InterpreterPolicy) *RewritingContext {
	return &RewritingContext{Policy: policy}
}

// SafePoint is polled by subproblem.Solve and by the reduction and
// search drivers between steps; it is the only point at which a
// collection of the shared dagnode arena may run (spec.md §5's
// "garbage collection safe points run after each rewrite"), and — if
// Policy asks for it — where GC-stats logging happens, matching the
// teacher's practice of keeping algorithm code free of incidental I/O.
func (c *RewritingContext) SafePoint() {
	dagnode.CollectGarbageIfNeeded()
	if c.Policy != nil && c.Policy.GCStats && c.Policy.Logger != nil {
		c.Policy.Logger.Debug("rewriting safe point",
			zap.Int("equations_applied", c.EquationCount),
			zap.Int("rules_applied", c.RuleCount))
	}
}

// Aborted reports whether Abort has been called.
func (c *RewritingContext) Aborted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aborted
}

// Abort sets the sticky abort flag (spec.md §5's cancellation model).
func (c *RewritingContext) Abort() {
	c.mu.Lock()
	c.aborted = true
	c.mu.Unlock()
}

// Module is a compiled rewrite theory: its sort lattice, symbol
// registry, equations, rules, memberships, and a designated root term
// (spec.md §6's "a built module"). Construction accumulates items via
// AddEquation/AddRule/AddMembership; discrimination nets are compiled
// lazily and cached per top symbol the first time Reduce needs one.
type Module struct {
	mu sync.Mutex

	Name    string
	Lattice *sortlattice.Lattice
	Symbols *symbol.Registry
	Policy  *InterpreterPolicy

	Equations   []*Equation
	Rules       []*Rule
	Memberships []*Membership

	Root *dagnode.DagNode

	nets map[int]*discnet.Net // symbol ID -> compiled net; present-but-nil means "no equations"

	// gcRoots pins every DagNode currently being reduced (Reduce adds
	// it on entry, removes it on return) against the shared arena
	// allocator's collector, so a collection triggered by a safe point
	// mid-reduction can never reclaim the node rewriting is working on
	// or anything already spliced into it. A RootSet rather than a
	// single-slot root is required because concurrent successor
	// reductions (stategraph.Graph.GetNextStates' errgroup fan-out)
	// each reduce a distinct root in their own goroutine.
	gcRoots *dagnode.RootSet

	malformed bool // set only by MarkMalformed
}

// New returns an empty Module over a fresh sort lattice and symbol
// registry. If policy carries a Logger, the shared dagnode arena
// allocator's collection/arena-growth logging and stats tracking are
// pointed at it too — the allocator is one heap shared by every
// Module in the process, the same way the reference implementation
// runs one collector regardless of how many modules are loaded.
func New(name string, policy *InterpreterPolicy) *Module {
	if policy != nil {
		if policy.Logger != nil {
			dagnode.SetGCLogger(policy.Logger)
		}
		dagnode.EnableGCStats(policy.GCStats)
	}
	return &Module{
		Name:    name,
		Lattice: sortlattice.NewLattice(),
		Symbols: symbol.NewRegistry(),
		Policy:  policy,
		nets:    make(map[int]*discnet.Net),
		gcRoots: dagnode.NewRootSet(),
	}
}

// Malformed reports whether MarkMalformed has been called on the
// module. Closing m.Lattice does not set it: a subsort cycle shows up
// only as Kind.ErrorFree() returning false.
func (m *Module) Malformed() bool { return m.malformed }

// MarkMalformed flags the module, logging at Warn level if a logger is
// configured.
func (m *Module) MarkMalformed(reason string) {
	m.malformed = true
	if m.Policy != nil && m.Policy.Logger != nil {
		m.Policy.Logger.Warn("module marked malformed", zap.String("reason", reason))
	}
}

// netFor returns (building and caching on first use) the compiled
// discrimination net for sym's equation table, or nil if sym has no
// equations.
func (m *Module) netFor(sym *symbol.Symbol) *discnet.Net {
	m.mu.Lock()
	defer m.mu.Unlock()

	if n, ok := m.nets[sym.ID()]; ok {
		return n
	}

	var entries []discnet.Entry
	for _, eq := range m.Equations {
		if eq.topSymbol != sym {
			continue
		}
		entries = append(entries, discnet.Entry{
			Remainder:        eq.remainder,
			Owise:            eq.owise,
			SubstitutionSize: eq.subSize,
		})
	}
	if len(entries) == 0 {
		m.nets[sym.ID()] = nil
		return nil
	}
	net, err := discnet.Build(entries)
	if err != nil {
		// discnet.Build only ever fails on an empty entry list, which is
		// excluded above.
		m.nets[sym.ID()] = nil
		return nil
	}
	m.nets[sym.ID()] = net
	return net
}

// invalidateNet drops any cached net for sym, so the next Reduce call
// rebuilds it from the module's current equation list. Called whenever
// a new equation is added against an already-compiled symbol.
func (m *Module) invalidateNet(sym *symbol.Symbol) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.nets, sym.ID())
}

// stategraphRules returns the module's rules as the generic
// stategraph.Rule slice NewStateTransitionGraph needs, in source order.
func (m *Module) stategraphRules() []stategraph.Rule {
	out := make([]stategraph.Rule, len(m.Rules))
	for i, r := range m.Rules {
		out[i] = r
	}
	return out
}
