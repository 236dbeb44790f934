package freetheory

import (
	"github.com/rljacobson/mod2/dagnode"
	"github.com/rljacobson/mod2/subproblem"
	"github.com/rljacobson/mod2/substitution"
	"github.com/rljacobson/mod2/symbol"
)

// SpeedTag classifies how much work a Remainder's match-and-replace
// needs: SuperFast and Fast entries skip the defensive clear-and-recheck
// SlowMatchReplace performs, Slow always takes it (spec.md §4.6).
type SpeedTag int

const (
	SuperFast SpeedTag = iota
	Fast
	Slow
)

// Condition evaluates an equation's condition fragment against the
// substitution a match has produced so far, returning false if the
// condition fails (no further solutions from this match attempt) and
// an error only on a hard failure.
type Condition func(sub *substitution.Substitution, ctx subproblem.Context) (bool, error)

// Remainder is everything left to check and build once a free
// skeleton has matched: the automaton for the free subterms not yet
// consumed by the discrimination net, the RHS builder, a reference to
// the owning equation, and the dispatch speed tag.
type Remainder struct {
	LHS      *LHSAutomaton
	RHS      *RHSAutomaton
	Speed    SpeedTag
	Equation symbol.EquationRef
	Cond     Condition // nil for an unconditional equation
}

// FastMatchReplace runs the SuperFast/Fast path inline: match, solve
// any deferred subproblem once, check the condition once, and replace
// on success. A Slow remainder is routed to SlowMatchReplace, since
// the fast path assumes (per spec.md §4.6) that variables pass the
// fast sort check and carry error-free maximal sort — an assumption
// this implementation does not independently re-verify here, trusting
// the caller (the discrimination net) to have classified Speed
// correctly at compile time.
func (r *Remainder) FastMatchReplace(subject *dagnode.DagNode, sub *substitution.Substitution, ctx subproblem.Context) (bool, error) {
	if r.Speed == Slow {
		return r.SlowMatchReplace(subject, sub, ctx)
	}

	ok, sp, err := r.LHS.Match(subject, sub)
	if err != nil || !ok {
		return false, err
	}
	if sp != nil {
		ok, err = sp.Solve(true, ctx)
		if err != nil || !ok {
			return false, err
		}
	}
	if r.Cond != nil {
		ok, err = r.Cond(sub, ctx)
		if err != nil || !ok {
			return false, err
		}
	}
	if _, err := r.RHS.Replace(subject, sub); err != nil {
		return false, err
	}
	ctx.SafePoint()
	return true, nil
}

// SlowMatchReplace clears the substitution's live prefix, matches,
// then backtracks across the deferred subproblem's solutions (if any)
// until the condition succeeds or every solution is exhausted
// (spec.md §4.6).
func (r *Remainder) SlowMatchReplace(subject *dagnode.DagNode, sub *substitution.Substitution, ctx subproblem.Context) (bool, error) {
	if err := sub.ClearFirstN(sub.CopySize()); err != nil {
		return false, err
	}

	ok, sp, err := r.LHS.Match(subject, sub)
	if err != nil || !ok {
		return false, err
	}

	findFirst := true
	for {
		if sp != nil {
			solved, err := sp.Solve(findFirst, ctx)
			if err != nil {
				return false, err
			}
			if !solved {
				return false, nil
			}
		} else if !findFirst {
			return false, nil
		}

		if r.Cond == nil {
			break
		}
		passed, err := r.Cond(sub, ctx)
		if err != nil {
			return false, err
		}
		if passed {
			break
		}
		if sp == nil {
			return false, nil
		}
		findFirst = false
	}

	if _, err := r.RHS.Replace(subject, sub); err != nil {
		return false, err
	}
	ctx.SafePoint()
	return true, nil
}
