package module

import (
	"github.com/rljacobson/mod2/dagnode"
	"github.com/rljacobson/mod2/freetheory"
	"github.com/rljacobson/mod2/sortlattice"
	"github.com/rljacobson/mod2/subproblem"
	"github.com/rljacobson/mod2/substitution"
	"github.com/rljacobson/mod2/symbol"
)

// Membership is a module's concrete sort-membership axiom: a subject
// pattern plus the sort it assigns on a successful (possibly
// conditional) match. It implements symbol.MembershipRef, and is the
// unit symbol.SortConstraintTable.Candidates hands back to
// fastComputeTrueSort's slow case.
type Membership struct {
	id         int
	topSymbol  *symbol.Symbol
	targetSort *sortlattice.Sort
	pattern    *freetheory.LHSAutomaton
	cond       freetheory.Condition // nil for an unconditional membership
	subSize    int
}

// MembershipID implements symbol.MembershipRef.
func (m *Membership) MembershipID() int { return m.id }

// TargetSort implements symbol.MembershipRef.
func (m *Membership) TargetSort() *sortlattice.Sort { return m.targetSort }

// matches reports whether subject satisfies this axiom's pattern and
// (if present) condition, binding sub as a side effect the same way
// Remainder.FastMatchReplace does for an equation.
func (m *Membership) matches(subject *dagnode.DagNode, sub *substitution.Substitution, ctx subproblem.Context) (bool, error) {
	ok, sp, err := m.pattern.Match(subject, sub)
	if err != nil || !ok {
		return false, err
	}
	if sp != nil {
		ok, err = sp.Solve(true, ctx)
		if err != nil || !ok {
			return false, err
		}
	}
	if m.cond != nil {
		return m.cond(sub, ctx)
	}
	return true, nil
}

// AddMembership registers a new sort-membership axiom against
// topSymbol: subject matches pattern (and, if cond is non-nil, cond
// holds against the resulting substitution) implies subject has sort
// targetSort. subSize is the substitution size pattern was compiled
// against, mirroring AddEquation's bookkeeping.
func (m *Module) AddMembership(topSymbol *symbol.Symbol, pattern *freetheory.LHSAutomaton, targetSort *sortlattice.Sort, cond freetheory.Condition, subSize int) *Membership {
	m.mu.Lock()
	defer m.mu.Unlock()
	axiom := &Membership{
		id:         len(m.Memberships),
		topSymbol:  topSymbol,
		targetSort: targetSort,
		pattern:    pattern,
		cond:       cond,
		subSize:    subSize,
	}
	m.Memberships = append(m.Memberships, axiom)
	topSymbol.AddMembership(axiom)
	return axiom
}
