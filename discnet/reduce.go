package discnet

import (
	"github.com/rljacobson/mod2/dagnode"
	"github.com/rljacobson/mod2/subproblem"
	"github.com/rljacobson/mod2/substitution"
	"github.com/rljacobson/mod2/symbol"
)

// candidateIndices returns the entry indices worth trying against
// subject: every universal entry, plus every entry whose depth-1
// constraint at some position matches subject's actual child symbol
// there, in source (declaration) order.
func candidateIndices(n *Net, subject *dagnode.DagNode) []int {
	included := make([]bool, len(n.entries))
	for _, i := range n.universal {
		included[i] = true
	}
	for pos, tree := range n.positions {
		if pos >= len(subject.Args) {
			continue
		}
		p, ok := tree.Get(posting{symbolID: subject.Args[pos].Symbol.ID()})
		if !ok {
			continue
		}
		for _, i := range p.indices {
			included[i] = true
		}
	}
	out := make([]int, 0, len(n.entries))
	for i, want := range included {
		if want {
			out = append(out, i)
		}
	}
	return out
}

// ApplyReplace is apply_replace (spec.md §4.7): narrow to the
// candidate remainders the net selects for subject (or all of them, if
// the net is empty), then try fast_match_replace on each in source
// order, stopping at the first success. Each attempted entry gets a
// fresh Substitution sized for its own pattern.
func ApplyReplace(n *Net, subject *dagnode.DagNode, ctx subproblem.Context) (bool, error) {
	return applyReplace(n, subject, ctx, false)
}

// ApplyReplaceNoOwise is apply_replace_no_owise: identical, but never
// tries a remainder tagged Owise.
func ApplyReplaceNoOwise(n *Net, subject *dagnode.DagNode, ctx subproblem.Context) (bool, error) {
	return applyReplace(n, subject, ctx, true)
}

// ApplyReplaceFast is apply_replace_fast: bypasses the discrimination
// net's position filtering entirely and tries every remainder in
// source order, as if subject's arguments unconditionally filled slot
// zero.
func ApplyReplaceFast(n *Net, subject *dagnode.DagNode, ctx subproblem.Context) (bool, error) {
	for _, e := range n.entries {
		sub := substitution.New(e.SubstitutionSize)
		ok, err := e.Remainder.FastMatchReplace(subject, sub, ctx)
		if err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}

func applyReplace(n *Net, subject *dagnode.DagNode, ctx subproblem.Context, skipOwise bool) (bool, error) {
	if n == nil || n.IsEmpty() {
		return false, nil
	}
	var indices []int
	if len(n.positions) == 0 {
		indices = n.universal
	} else {
		indices = candidateIndices(n, subject)
	}
	for _, i := range indices {
		e := n.entries[i]
		if skipOwise && e.Owise {
			continue
		}
		sub := substitution.New(e.SubstitutionSize)
		ok, err := e.Remainder.FastMatchReplace(subject, sub, ctx)
		if err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}

// NetProvider looks up the compiled net for a symbol's equation table,
// returning nil for a symbol with no equations. Concrete module types
// implement this over their symbol-to-net table (built once when the
// module is compiled); discnet itself has no notion of a module.
type NetProvider func(sym *symbol.Symbol) *Net

// Reduce is DagNode::reduce(ctx) (spec.md §4.7): repeatedly rewrite
// root at the top until no equation applies, then mark it Reduced and
// cache its sort. The net is re-fetched by root's current symbol on
// every iteration, since a successful free-theory replace can change
// root.Symbol in place (freetheory.RHSAutomaton.Replace). Returns the
// (possibly mutated in place) root.
//
// fast_compute_true_sort's slowest case — consulting the
// sort-constraint (membership) table when the base sort alone is not
// already exact — is left to the module layer, which owns the
// membership axioms' match automata and conditions; this driver only
// ever calls the always-safe, unconditional ComputeBaseSort.
func Reduce(root *dagnode.DagNode, ctx subproblem.Context, nets NetProvider) (*dagnode.DagNode, error) {
	for !root.Flags.Has(dagnode.Reduced) {
		if ctx.Aborted() {
			return root, nil
		}
		net := nets(root.Symbol)
		var applied bool
		var err error
		if net != nil {
			applied, err = ApplyReplace(net, root, ctx)
			if err != nil {
				return root, err
			}
		}
		if !applied {
			root.Flags |= dagnode.Reduced
			if _, err := root.ComputeBaseSort(); err != nil {
				return root, err
			}
			return root, nil
		}
	}
	return root, nil
}
