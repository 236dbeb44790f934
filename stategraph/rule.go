package stategraph

import (
	"github.com/rljacobson/mod2/dagnode"
	"github.com/rljacobson/mod2/subproblem"
	"github.com/rljacobson/mod2/substitution"
)

// Rule is the minimal view of a rewrite rule the search needs: its
// non-extension LHS automaton (Match), a substitution-size hint, and a
// way to build the replacement term once a match succeeds (Build).
// Concrete rules (compiled the same way equations are, via freetheory
// or variabletheory) implement this without stategraph importing
// either theory package, mirroring symbol.EquationRef's layering.
type Rule interface {
	RuleID() int
	SubstitutionSize() int
	Match(subject *dagnode.DagNode, sub *substitution.Substitution) (bool, subproblem.Subproblem, error)
	Build(sub *substitution.Substitution) (*dagnode.DagNode, error)
}

// RewriteSearchState generates successors of root by trying each rule,
// in source order, at each position of a breadth-first PositionState
// walk (spec.md §4.8). Next is called repeatedly to pull one successor
// at a time; it resumes from wherever the previous call left off.
type RewriteSearchState struct {
	positions *PositionState
	rules     []Rule
	pos       Position
	havePos   bool
	ruleIdx   int
}

// NewRewriteSearchState builds a search state over root's positions up
// to maxDepth, trying rules in the given (source) order at each.
func NewRewriteSearchState(root *dagnode.DagNode, maxDepth int, rules []Rule) *RewriteSearchState {
	return &RewriteSearchState{positions: NewPositionState(root, maxDepth), rules: rules}
}

// Next tries to produce one more raw successor of root: the rebuilt
// (unreduced) DAG and the rule that applied. ok is false once every
// (position, rule) combination has been exhausted.
func (s *RewriteSearchState) Next(root *dagnode.DagNode, ctx subproblem.Context) (built *dagnode.DagNode, applied Rule, ok bool, err error) {
	for {
		if !s.havePos {
			pos, more := s.positions.Next()
			if !more {
				return nil, nil, false, nil
			}
			s.pos = pos
			s.havePos = true
			s.ruleIdx = 0
		}
		for s.ruleIdx < len(s.rules) {
			rule := s.rules[s.ruleIdx]
			s.ruleIdx++

			subject := nodeAt(root, s.pos)
			sub := substitution.New(rule.SubstitutionSize())
			matched, sp, matchErr := rule.Match(subject, sub)
			if matchErr != nil {
				return nil, nil, false, matchErr
			}
			if matched && sp != nil {
				matched, matchErr = sp.Solve(true, ctx)
				if matchErr != nil {
					return nil, nil, false, matchErr
				}
			}
			if !matched {
				continue
			}
			replacement, buildErr := rule.Build(sub)
			if buildErr != nil {
				return nil, nil, false, buildErr
			}
			rebuilt, rebuildErr := rebuildPath(root, s.pos, replacement)
			if rebuildErr != nil {
				return nil, nil, false, rebuildErr
			}
			return rebuilt, rule, true, nil
		}
		s.havePos = false
	}
}

// rebuildPath walks from pos back up to the root, applying
// CopyWithReplacement at each ancestor so that every node on the path
// from root to the rewritten position is a fresh copy while everything
// off that path is shared (spec.md §4.8: "rebuild the DAG by walking
// up the position stack applying copy_with_replacement at each
// ancestor").
func rebuildPath(root *dagnode.DagNode, pos Position, replacement *dagnode.DagNode) (*dagnode.DagNode, error) {
	if len(pos) == 0 {
		return replacement, nil
	}
	parentPos := pos[:len(pos)-1]
	parent := nodeAt(root, parentPos)
	newParent, err := parent.CopyWithReplacement(pos[len(pos)-1], replacement)
	if err != nil {
		return nil, err
	}
	return rebuildPath(root, parentPos, newParent)
}
