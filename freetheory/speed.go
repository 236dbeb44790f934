package freetheory

import (
	"github.com/rljacobson/mod2/sortlattice"
	"github.com/rljacobson/mod2/symbol"
	"github.com/rljacobson/mod2/term"
)

// ClassifySpeed computes the dispatch speed tag for a remainder whose
// left-hand side is pattern (spec.md §4.3's fast/super-fast/slow
// classification). It is a direct port of the reference
// implementation's FreeRemainder construction (remainder.rs): starts
// super-fast for an unconditional equation and downgrades on the
// first disqualifying feature it finds walking the pattern:
//
//   - an alien subterm (any symbol whose theory is not TheoryFree) —
//     the reference downgrades separately for ground and non-ground
//     aliens, but both always land on Slow, so one check covers both.
//     This also subsumes the reference's separate "problem variable"
//     criterion: a binding can only need the eager/lazy-boundary deep
//     copy the reference describes when it crosses into an alien
//     subterm's own matcher, which this port already forces to Slow
//     outright — there is no free-theory-only pattern position where
//     a variable's binding needs that protection but an alien wasn't
//     already involved.
//   - the same variable bound more than once (non-linearity)
//   - a variable whose declared sort is not amenable to the fast
//     subsort test (here: its kind's closure is error-free, i.e. no
//     subsort cycle was detected, so IndexLeqSort's bitmap fallback is
//     answering a question that is actually well-founded)
//
// and otherwise downgrades super-fast to fast the first time a
// variable's sort is not the unique, error-free maximal sort of its
// kind (the reference's "error_free_maximal" check).
func ClassifySpeed(pattern *term.Term, hasCondition bool) SpeedTag {
	speed := SuperFast
	if hasCondition {
		speed = Slow
	}
	seen := make(map[int]bool)
	classifyWalk(pattern, &speed, seen)
	return speed
}

func classifyWalk(t *term.Term, speed *SpeedTag, seen map[int]bool) {
	if *speed == Slow {
		return
	}
	if t.IsVariable() {
		if seen[t.VarIndex] {
			*speed = Slow
			return
		}
		seen[t.VarIndex] = true

		decls := t.Symbol.SortTable().Declarations()
		if len(decls) == 0 {
			*speed = Slow
			return
		}
		sort := decls[0].ResultSort
		if !fastSubsortAmenable(sort) {
			*speed = Slow
			return
		}
		if *speed == SuperFast && !isUniqueErrorFreeMaximal(sort) {
			*speed = Fast
		}
		return
	}

	if t.Symbol.Theory() != symbol.TheoryFree {
		*speed = Slow
		return
	}
	for _, child := range t.Children {
		classifyWalk(child, speed, seen)
		if *speed == Slow {
			return
		}
	}
}

// fastSubsortAmenable reports whether s's kind closed without
// detecting a subsort cycle, matching the reference's
// fast_geq_sufficient check: IndexLeqSort is only a meaningful
// constant-or-bitmap subsort test when the kind it was computed over
// is actually a valid partial order.
func fastSubsortAmenable(s *sortlattice.Sort) bool {
	return s.Kind().ErrorFree()
}

// isUniqueErrorFreeMaximal reports whether s is the sole maximal sort
// of an error-free kind, with no declared supersort but the synthetic
// error sort — the reference's error_free_maximal check.
func isUniqueErrorFreeMaximal(s *sortlattice.Sort) bool {
	k := s.Kind()
	if !k.ErrorFree() || k.MaximalSortCount() != 1 {
		return false
	}
	for _, sup := range s.Supersorts() {
		if !sup.IsError() {
			return false
		}
	}
	return true
}
