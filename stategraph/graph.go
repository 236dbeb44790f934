package stategraph

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/rljacobson/mod2/dagnode"
	"github.com/rljacobson/mod2/subproblem"
)

// Reducer reduces a freshly rebuilt DAG to normal form in its own
// rewriting context, exactly as DagNode::reduce does (spec.md §4.8:
// "reduce the result (in a fresh rewriting context)"). The module
// layer supplies this as a closure over Module.Reduce, which runs the
// reduction loop over its own symbol-to-net lookup, so stategraph never
// needs to import discnet.
type Reducer func(root *dagnode.DagNode, ctx subproblem.Context) (*dagnode.DagNode, error)

// Transition records one successor reached from a State: the rule that
// applied and the canonical target State.
type Transition struct {
	Rule   Rule
	Target *State
}

// State is one node of the graph: a canonical, reduced DAG plus the
// successors discovered so far. Successors are generated lazily and
// cached in discovery order.
type State struct {
	ID     int
	DAG    *dagnode.DagNode
	Parent *State // first-discovered predecessor; nil for the root state

	mu            sync.Mutex
	search        *RewriteSearchState
	nexts         []Transition
	FullyExplored bool // true once every rule/position beneath this state has been tried
}

// bucket is the hash-cons entry stored per structural hash. Unlike
// dagnode.HashConsSet (which keys purely by hash and keeps only the
// first occupant), a graph needs every distinct State reachable under
// a colliding hash, so canonicalize keeps the bucket as a list and
// disambiguates collisions with DagNode.Equal.
type bucket struct {
	states []*State
}

// Graph is the lazily-expanded state-transition graph rooted at one
// starting DAG (spec.md §4.8). It is safe for concurrent read access
// to already-computed transitions; GetNextState/GetNextStates serialize
// generation of new ones per State via that State's own mutex, and
// serialize canonical-state bookkeeping via Graph.mu, mirroring
// core.Graph's muVert/muEdgeAdj split (here: one mutex for the
// hash-cons table, one per State for successor generation).
type Graph struct {
	mu       sync.Mutex
	buckets  *lru.Cache[uint32, *bucket]
	rules    []Rule
	maxDepth int
	reduce   Reducer
	nextID   int
	root     *State

	// gcRoots holds every canonical State.DAG the graph has ever handed
	// out, for the lifetime of the Graph. Unlike module.Reduce's gcRoots
	// (which unroots the instant a single reduction finishes), these
	// DagNodes must stay reachable to the shared arena collector for as
	// long as the graph itself can still return them from GetNextState,
	// which callers may do arbitrarily long after they were produced.
	// This is deliberately never shrunk to track LRU bucket eviction: a
	// state evicted from buckets can no longer be reached by
	// canonicalize, but it may still be held by a caller through an
	// already-returned *State, so removing its root the moment it drops
	// out of the LRU cache would be unsound.
	gcRoots *dagnode.RootSet
}

// NewGraph builds a graph rooted at root (assumed already reduced),
// exploring rule applications up to maxDepth positions deep and
// caching up to cacheSize distinct structural hashes of canonical
// states.
func NewGraph(root *dagnode.DagNode, rules []Rule, reduce Reducer, maxDepth, cacheSize int) (*Graph, error) {
	buckets, err := lru.New[uint32, *bucket](cacheSize)
	if err != nil {
		return nil, err
	}
	g := &Graph{buckets: buckets, rules: rules, maxDepth: maxDepth, reduce: reduce, gcRoots: dagnode.NewRootSet()}
	g.root = g.canonicalize(root, nil)
	return g, nil
}

// Root returns the graph's starting state.
func (g *Graph) Root() *State { return g.root }

// canonicalize hash-conses dag against the graph's bucket table,
// allocating a fresh State (and ID) only the first time a structurally
// distinct DAG is seen. parent records the predecessor this
// canonicalize call was reached from (nil for the root); it is only
// ever attached the first time dag's canonical State is created, since
// a DAG reachable from several predecessors keeps the one it was first
// discovered through.
func (g *Graph) canonicalize(dag *dagnode.DagNode, parent *State) *State {
	h := dag.StructuralHash()

	g.mu.Lock()
	defer g.mu.Unlock()

	b, ok := g.buckets.Get(h)
	if !ok {
		b = &bucket{}
	}
	for _, s := range b.states {
		if s.DAG.Equal(dag) {
			return s
		}
	}
	s := &State{ID: g.nextID, DAG: dag, Parent: parent}
	g.nextID++
	b.states = append(b.states, s)
	g.buckets.Add(h, b)
	g.gcRoots.Add(dag)
	return s
}

// GetNextState returns the i-th successor of s (in discovery order),
// generating and reducing it (and any earlier-indexed successor not
// yet generated) on demand. Returns ErrNoSuccessor once the rule/position
// search beneath s is exhausted before reaching index i.
func (g *Graph) GetNextState(s *State, i int, ctx subproblem.Context) (*State, Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.nexts) <= i {
		if s.search == nil {
			s.search = NewRewriteSearchState(s.DAG, g.maxDepth, g.rules)
		}
		built, rule, ok, err := s.search.Next(s.DAG, ctx)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			s.FullyExplored = true
			return nil, nil, ErrNoSuccessor
		}
		reduced, err := g.reduce(built, ctx)
		if err != nil {
			return nil, nil, err
		}
		target := g.canonicalize(reduced, s)
		s.nexts = append(s.nexts, Transition{Rule: rule, Target: target})
		ctx.SafePoint()
	}
	t := s.nexts[i]
	return t.Target, t.Rule, nil
}

// GetNextStates eagerly generates the first n successors of s (or as
// many as exist, if fewer), reducing each one concurrently via
// errgroup.Group — rebuilding is inherently sequential (it shares
// s.search's position/rule cursor) but each rebuilt DAG's reduction is
// independent of the others, so the expensive part parallelizes safely
// without two DAG operations ever touching the same node (spec.md §5's
// single-threaded-cooperative rule binds one reduction, not a batch of
// independent ones).
func (g *Graph) GetNextStates(s *State, n int, ctx subproblem.Context) ([]*State, []Rule, error) {
	s.mu.Lock()
	if s.search == nil {
		s.search = NewRewriteSearchState(s.DAG, g.maxDepth, g.rules)
	}

	type raw struct {
		built *dagnode.DagNode
		rule  Rule
	}
	var batch []raw
	for len(batch) < n {
		built, rule, ok, err := s.search.Next(s.DAG, ctx)
		if err != nil {
			s.mu.Unlock()
			return nil, nil, err
		}
		if !ok {
			s.FullyExplored = true
			break
		}
		batch = append(batch, raw{built: built, rule: rule})
	}
	s.mu.Unlock()

	reduced := make([]*dagnode.DagNode, len(batch))
	var eg errgroup.Group
	for i, r := range batch {
		i, r := i, r
		eg.Go(func() error {
			out, err := g.reduce(r.built, ctx)
			if err != nil {
				return err
			}
			reduced[i] = out
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	states := make([]*State, len(batch))
	rules := make([]Rule, len(batch))
	s.mu.Lock()
	for i, r := range batch {
		target := g.canonicalize(reduced[i], s)
		s.nexts = append(s.nexts, Transition{Rule: r.rule, Target: target})
		states[i] = target
		rules[i] = r.rule
	}
	s.mu.Unlock()
	ctx.SafePoint()
	return states, rules, nil
}
