package freetheory

import (
	"github.com/rljacobson/mod2/dagnode"
	"github.com/rljacobson/mod2/subproblem"
	"github.com/rljacobson/mod2/substitution"
	"github.com/rljacobson/mod2/symbol"
	"github.com/rljacobson/mod2/term"
)

// LHSAutomaton matches a compiled free-theory pattern against subject
// DagNodes. See the package doc for how this collapses the reference
// implementation's slot-array compilation into a direct tree walk.
type LHSAutomaton struct {
	pattern *term.Term
	aliens  map[symbol.TheoryTag]subproblem.Matcher

	// groundDags caches the DagNode built from every ground (no
	// variables below it) alien subterm of pattern, keyed by the Term
	// node itself. Building this once at Compile time rather than
	// lazily during Match means concurrent matchers sharing one
	// compiled automaton (stategraph.Graph.GetNextStates' errgroup
	// fan-out reduces several successors concurrently against the same
	// Rule) never race on populating it.
	groundDags map[*term.Term]*dagnode.DagNode
}

// Compile builds an LHSAutomaton from pattern. aliens supplies the
// sub-automaton to run for any non-ground subterm whose symbol's
// theory is not TheoryFree; a pattern containing a theory with no
// entry in aliens fails Match with ErrNoAlienMatcher the first time
// that subterm is reached (Compile itself does not walk the tree
// looking for them, since a pattern branch under an unmatched subject
// is simply never visited). A ground alien subterm never consults
// aliens at all: Compile precomputes its DagNode once, and Match
// compares it to the subject by DAG equality (spec.md §4.6's
// ground/non-ground alien distinction).
func Compile(pattern *term.Term, aliens map[symbol.TheoryTag]subproblem.Matcher) *LHSAutomaton {
	pattern.Normalize()
	a := &LHSAutomaton{
		pattern:    pattern,
		aliens:     aliens,
		groundDags: make(map[*term.Term]*dagnode.DagNode),
	}
	a.precomputeGroundAliens(pattern)
	return a
}

// Pattern returns the compiled pattern, so a discrimination net builder
// can inspect a remainder's top-level children when choosing discriminating
// test positions without re-deriving them from the original equation.
func (a *LHSAutomaton) Pattern() *term.Term { return a.pattern }

// Match runs the automaton against subject, extending sub with any
// variable bindings made along the way. See spec.md §4.6 steps 1-6;
// this implementation performs them in one recursive descent rather
// than as separate precompiled passes.
func (a *LHSAutomaton) Match(subject *dagnode.DagNode, sub *substitution.Substitution) (bool, subproblem.Subproblem, error) {
	return a.matchTerm(a.pattern, subject, sub)
}

func (a *LHSAutomaton) matchTerm(pat *term.Term, subject *dagnode.DagNode, sub *substitution.Substitution) (bool, subproblem.Subproblem, error) {
	if pat.IsVariable() {
		decls := pat.Symbol.SortTable().Declarations()
		ok, err := substitution.MatchVariable(pat.VarIndex, decls[0].ResultSort, subject, sub)
		return ok, nil, err
	}

	if pat.Symbol.Theory() != symbol.TheoryFree {
		return a.matchAlien(pat, subject, sub)
	}

	if pat.Symbol.ID() != subject.Symbol.ID() {
		return false, nil, nil
	}
	if len(pat.Children) == 0 {
		return true, nil, nil
	}
	if len(pat.Children) != len(subject.Args) {
		return false, nil, nil
	}
	return a.matchChildren(pat.Children, subject.Args, sub)
}

// childSlot pairs a non-ground alien child pattern with its position
// in the parent's argument list, so matchChildren can reorder the
// search over these children without losing track of which subject
// argument each one matches against.
type childSlot struct {
	index int
	pat   *term.Term
}

// matchChildren matches a free symbol's children against subject's
// arguments in two passes. Pass one matches every child that settles
// deterministically and cheaply — variables and ground aliens — in
// source order, establishing the substitution's initial bindings.
// Pass two runs the constraint-propagation ordering search over what
// remains (non-ground aliens): at each step it picks whichever
// remaining child's pattern already has the most variables bound by
// the substitution built up so far, on the grounds that the most
// constrained alien match is both the cheapest to attempt and the
// least likely to need backtracking (spec.md §4.6).
func (a *LHSAutomaton) matchChildren(pats []*term.Term, args []*dagnode.DagNode, sub *substitution.Substitution) (bool, subproblem.Subproblem, error) {
	var nonGround []childSlot
	var deferred []subproblem.Subproblem

	for i, p := range pats {
		if a.isNonGroundAlien(p) {
			nonGround = append(nonGround, childSlot{index: i, pat: p})
			continue
		}
		ok, sp, err := a.matchTerm(p, args[i], sub)
		if err != nil || !ok {
			return false, nil, err
		}
		if sp != nil {
			deferred = append(deferred, sp)
		}
	}

	for len(nonGround) > 0 {
		best := 0
		bestCount := -1
		for i, slot := range nonGround {
			if c := countBoundVariables(slot.pat, sub); c > bestCount {
				bestCount = c
				best = i
			}
		}
		slot := nonGround[best]
		nonGround = append(nonGround[:best], nonGround[best+1:]...)

		ok, sp, err := a.matchAlien(slot.pat, args[slot.index], sub)
		if err != nil || !ok {
			return false, nil, err
		}
		if sp != nil {
			deferred = append(deferred, sp)
		}
	}

	switch len(deferred) {
	case 0:
		return true, nil, nil
	case 1:
		return true, deferred[0], nil
	default:
		return true, subproblem.NewSubproblemSequence(deferred...), nil
	}
}

// matchAlien matches pat (a subterm whose top symbol's theory is not
// TheoryFree) against subject. A ground pat was precomputed into a
// DagNode at Compile time and is matched by DAG equality alone — no
// variables means no bindings to make and no aliens lookup needed. A
// non-ground pat still delegates to the registered alien matcher for
// its theory.
func (a *LHSAutomaton) matchAlien(pat *term.Term, subject *dagnode.DagNode, sub *substitution.Substitution) (bool, subproblem.Subproblem, error) {
	if dag, ok := a.groundDags[pat]; ok {
		return dag.Equal(subject), nil, nil
	}
	matcher, ok := a.aliens[pat.Symbol.Theory()]
	if !ok {
		return false, nil, ErrNoAlienMatcher
	}
	return matcher(subject, sub)
}

// isNonGroundAlien reports whether pat is a non-variable subterm whose
// theory is not TheoryFree and which has at least one variable
// occurring below it — the case matchChildren's ordering search
// applies to.
func (a *LHSAutomaton) isNonGroundAlien(pat *term.Term) bool {
	if pat.IsVariable() || pat.Symbol.Theory() == symbol.TheoryFree {
		return false
	}
	return !isGround(pat)
}

// precomputeGroundAliens walks pattern looking for ground alien
// subterms and builds each one's DagNode once, up front. It does not
// descend below an alien subterm (ground or not): that subterm's
// internal structure belongs to its own theory, which owns whatever
// matching machinery it needs, not this free-theory automaton.
func (a *LHSAutomaton) precomputeGroundAliens(pat *term.Term) {
	if pat.IsVariable() {
		return
	}
	if pat.Symbol.Theory() != symbol.TheoryFree {
		if isGround(pat) {
			if dag, err := buildGroundDag(pat); err == nil {
				a.groundDags[pat] = dag
			}
		}
		return
	}
	for _, child := range pat.Children {
		a.precomputeGroundAliens(child)
	}
}

// isGround reports whether pat has no variables occurring below it.
// pat must already be normalized (Compile normalizes the whole pattern
// up front, so every subterm reached while walking it is too).
func isGround(pat *term.Term) bool {
	occurs, err := pat.OccursSet()
	if err != nil {
		return false
	}
	return occurs.None()
}

// countBoundVariables counts how many of pat's occurring variables are
// already bound in sub, the constraint-propagation ordering search's
// cost metric.
func countBoundVariables(pat *term.Term, sub *substitution.Substitution) int {
	occurs, err := pat.OccursSet()
	if err != nil {
		return 0
	}
	count := 0
	for i, ok := occurs.NextSet(0); ok; i, ok = occurs.NextSet(i + 1) {
		if sub.IsBound(int(i)) {
			count++
		}
	}
	return count
}

// buildGroundDag constructs the DagNode a ground pattern term denotes,
// recursively, with no sort information attached — the caller only
// ever uses the result for DAG-equality comparison against a subject,
// never splices it into a live term.
func buildGroundDag(pat *term.Term) (*dagnode.DagNode, error) {
	children := make([]*dagnode.DagNode, len(pat.Children))
	for i, c := range pat.Children {
		child, err := buildGroundDag(c)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	return dagnode.New(pat.Symbol, children...)
}
