package subproblem

import (
	"github.com/rljacobson/mod2/dagnode"
	"github.com/rljacobson/mod2/sortlattice"
	"github.com/rljacobson/mod2/substitution"
)

// Context is the minimal view of a rewriting context a Subproblem
// needs: a safe point to poll for collection and cancellation between
// solutions. The concrete RewritingContext (package module)
// implements this; defining it here rather than importing module
// keeps subproblem below module in the dependency order.
type Context interface {
	SafePoint()
	Aborted() bool
}

// Subproblem is the shared interface of every deferred-match
// continuation. Solve's contract is a coroutine resume: findFirst
// true starts a fresh search; findFirst false asks for the next
// solution. Returns (true, nil) on a solution found (already reflected
// in the substitution), (false, nil) when no (further) solution exists
// or the context was aborted, or a non-nil error on a hard failure
// (e.g. a substitution index out of range).
type Subproblem interface {
	Solve(findFirst bool, ctx Context) (bool, error)
}

// Matcher is the sub-automaton callback a VariableAbstractionSubproblem
// resumes against once its surrogate variable is bound: the same
// signature every LHS automaton's Match method has (spec.md §4.5).
type Matcher func(subject *dagnode.DagNode, sub *substitution.Substitution) (bool, Subproblem, error)

// VariableAbstractionSubproblem re-runs an inner pattern's matcher
// against the subject now bound to a surrogate variable, once that
// variable has been bound by an outer automaton pass. This is how a
// non-free alien subterm nested below a point the outer automaton
// abstracted into "just match some variable" gets its real pattern
// checked.
type VariableAbstractionSubproblem struct {
	SurrogateIndex int
	Match          Matcher
	Substitution   *substitution.Substitution

	inner Subproblem // set once the first Match call returns one
}

// Solve runs Match against the subject bound to SurrogateIndex on the
// first call, then delegates to any Subproblem it returned for
// subsequent resumes.
func (v *VariableAbstractionSubproblem) Solve(findFirst bool, ctx Context) (bool, error) {
	if findFirst {
		subject, err := v.Substitution.Value(v.SurrogateIndex)
		if err != nil {
			return false, err
		}
		ok, inner, err := v.Match(subject, v.Substitution)
		if err != nil || !ok {
			return false, err
		}
		v.inner = inner
		if v.inner == nil {
			return true, nil
		}
		return v.inner.Solve(true, ctx)
	}
	if v.inner == nil {
		return false, nil
	}
	return v.inner.Solve(false, ctx)
}

// SubproblemSequence is a conjunction of Subproblems solved with
// backtracking: the index of "currently being resumed" advances
// forward on success and backward (re-resuming the previous member
// for its next solution) on failure, the standard chronological
// backtracking search (spec.md §4.5).
type SubproblemSequence struct {
	members []Subproblem
	cursor  int
	started bool
}

// NewSubproblemSequence returns a SubproblemSequence over members, in
// the order they must all jointly succeed.
func NewSubproblemSequence(members ...Subproblem) *SubproblemSequence {
	return &SubproblemSequence{members: members}
}

// Solve finds a joint solution across every member, backtracking into
// earlier members when a later one is exhausted.
func (s *SubproblemSequence) Solve(findFirst bool, ctx Context) (bool, error) {
	if len(s.members) == 0 {
		// A sequence of zero members is trivially satisfied exactly once.
		if findFirst {
			s.started = true
			return true, nil
		}
		return false, nil
	}

	if findFirst {
		s.cursor = 0
		s.started = true
	} else if !s.started {
		return false, nil
	}

	findFirstAt := findFirst
	for s.cursor >= 0 && s.cursor < len(s.members) {
		if ctx.Aborted() {
			return false, nil
		}
		ok, err := s.members[s.cursor].Solve(findFirstAt, ctx)
		if err != nil {
			return false, err
		}
		if ok {
			if s.cursor == len(s.members)-1 {
				return true, nil
			}
			s.cursor++
			findFirstAt = true
			continue
		}
		s.cursor--
		findFirstAt = false
	}
	return false, nil
}

// SortCheckSubproblem is a one-shot deferred sort check: it has
// exactly one solution (success) or none (failure), and never yields
// more than one.
type SortCheckSubproblem struct {
	Node   *dagnode.DagNode
	Bound  *sortlattice.Sort
	solved bool
}

// Solve checks Node's base sort against Bound. findFirst=false always
// fails, since a sort check has no second solution.
func (s *SortCheckSubproblem) Solve(findFirst bool, ctx Context) (bool, error) {
	if !findFirst {
		return false, nil
	}
	base, err := s.Node.BaseSort()
	if err != nil {
		return false, err
	}
	s.solved = sortlattice.IndexLeqSort(base.IndexWithinKind(), s.Bound)
	return s.solved, nil
}
