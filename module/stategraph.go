package module

import (
	"github.com/rljacobson/mod2/dagnode"
	"github.com/rljacobson/mod2/stategraph"
	"github.com/rljacobson/mod2/subproblem"
)

// NewStateTransitionGraph is StateTransitionGraph::new(initial_ctx)
// (spec.md §6/§4.8): a rule-driven search graph rooted at m.Root,
// exploring rewrite positions up to maxDepth deep and hash-consing
// successor states in a table of up to cacheSize distinct hashes.
//
// Each successor's reduction runs in its own fresh RewritingContext
// rather than the context the search itself was driven with (spec.md
// §4.8: "reduce the result (in a fresh rewriting context)"), so the
// Reducer passed to stategraph.NewGraph ignores the subproblem.Context
// the graph hands it and constructs a new one from m.Policy instead.
func (m *Module) NewStateTransitionGraph(initialCtx *RewritingContext, maxDepth, cacheSize int) (*stategraph.Graph, error) {
	if initialCtx.Aborted() {
		return nil, nil
	}
	reduce := func(root *dagnode.DagNode, _ subproblem.Context) (*dagnode.DagNode, error) {
		fresh := NewRewritingContext(m.Policy)
		return m.Reduce(root, fresh)
	}
	return stategraph.NewGraph(m.Root, m.stategraphRules(), reduce, maxDepth, cacheSize)
}
