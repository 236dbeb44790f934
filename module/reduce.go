package module

import (
	"github.com/rljacobson/mod2/dagnode"
	"github.com/rljacobson/mod2/discnet"
)

// Reduce is the package-level reduce(root, ctx) entry point (spec.md
// §4.7's reduction loop / §6's "reduce(root_dag, ctx): apply equations
// exhaustively; root is mutated in place"). It mirrors discnet.Reduce's
// loop directly rather than calling it, since only here — where the
// module's own Equation bookkeeping is in scope — can every successful
// rewrite increment ctx.EquationCount (spec.md §8 scenario 3: "equation
// counter increments by exactly 1").
func (m *Module) Reduce(root *dagnode.DagNode, ctx *RewritingContext) (*dagnode.DagNode, error) {
	// root (and, transitively through EachChild, everything already
	// spliced into it) must stay reachable from the shared arena
	// allocator's collector for the whole reduction, since ctx.SafePoint
	// may trigger a collection after any individual rewrite.
	m.gcRoots.Add(root)
	defer m.gcRoots.Remove(root)

	for !root.Flags.Has(dagnode.Reduced) {
		if ctx.Aborted() {
			return root, nil
		}
		net := m.netFor(root.Symbol)
		var applied bool
		var err error
		if net != nil {
			applied, err = discnet.ApplyReplace(net, root, ctx)
			if err != nil {
				return root, err
			}
		}
		if !applied {
			root.Flags |= dagnode.Reduced
			if _, err := m.fastComputeTrueSort(root, ctx); err != nil {
				return root, err
			}
			return root, nil
		}
		ctx.EquationCount++
	}
	return root, nil
}
