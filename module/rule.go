package module

import (
	"github.com/rljacobson/mod2/dagnode"
	"github.com/rljacobson/mod2/freetheory"
	"github.com/rljacobson/mod2/subproblem"
	"github.com/rljacobson/mod2/substitution"
)

// Rule is a module's concrete rewrite rule: a non-extension LHS
// automaton and an RHS builder, tried by the state-transition graph at
// every breadth-first position (spec.md §4.8). It implements
// stategraph.Rule.
type Rule struct {
	id      int
	lhs     *freetheory.LHSAutomaton
	rhs     *freetheory.RHSAutomaton
	subSize int
}

// RuleID implements stategraph.Rule.
func (r *Rule) RuleID() int { return r.id }

// SubstitutionSize implements stategraph.Rule.
func (r *Rule) SubstitutionSize() int { return r.subSize }

// Match implements stategraph.Rule by delegating to the compiled LHS
// automaton.
func (r *Rule) Match(subject *dagnode.DagNode, sub *substitution.Substitution) (bool, subproblem.Subproblem, error) {
	return r.lhs.Match(subject, sub)
}

// Build implements stategraph.Rule: rules never overwrite their
// subject in place (stategraph.rebuildPath reconstructs every ancestor
// on the path back to the root instead), so Build always runs the
// fresh-node Construct path rather than Replace.
func (r *Rule) Build(sub *substitution.Substitution) (*dagnode.DagNode, error) {
	return r.rhs.Construct(sub)
}

// AddRule registers a new rule, appended in source order (spec.md
// §4.8/§5: "rules in a state-transition exploration are tried in
// source order at each position").
func (m *Module) AddRule(lhs *freetheory.LHSAutomaton, rhs *freetheory.RHSAutomaton, subSize int) *Rule {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := &Rule{id: len(m.Rules), lhs: lhs, rhs: rhs, subSize: subSize}
	m.Rules = append(m.Rules, r)
	return r
}
