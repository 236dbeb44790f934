package discnet

import (
	"github.com/google/btree"

	"github.com/rljacobson/mod2/freetheory"
	"github.com/rljacobson/mod2/symbol"
	"github.com/rljacobson/mod2/term"
)

const btreeDegree = 8

// Build compiles a Net from entries in declaration order. Returns
// ErrEmptyNet if entries is empty; callers with no equations at all
// do not build a net (Module.netFor then returns nil and Module.Reduce
// marks the node reduced without trying any equation).
func Build(entries []Entry) (*Net, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyNet
	}

	n := &Net{
		entries:   append([]Entry(nil), entries...),
		positions: make(map[int]*btree.BTreeG[posting]),
	}

	raw := make(map[int]map[int][]int) // position -> symbolID -> entry indices
	for i, e := range n.entries {
		if e.Remainder.Speed == freetheory.Slow {
			n.slow = true
		}
		constraints := depth1Constraints(e.Remainder.LHS.Pattern())
		if len(constraints) == 0 {
			n.universal = append(n.universal, i)
			continue
		}
		for _, c := range constraints {
			bySymbol, ok := raw[c.position]
			if !ok {
				bySymbol = make(map[int][]int)
				raw[c.position] = bySymbol
			}
			bySymbol[c.symbolID] = append(bySymbol[c.symbolID], i)
		}
	}

	for pos, bySymbol := range raw {
		tree := btree.NewG(btreeDegree, lessPosting)
		for symID, indices := range bySymbol {
			tree.ReplaceOrInsert(posting{symbolID: symID, indices: indices})
		}
		n.positions[pos] = tree
	}

	return n, nil
}

type constraint struct {
	position int
	symbolID int
}

// depth1Constraints returns, in argument-position order, the
// discriminating (position, symbolID) pair for each of a free
// pattern's immediate children that pins a concrete free-theory
// symbol. The children are not sorted or ranked: no free-over-alien or
// higher-arity preference is applied. (Variables and alien-theory
// subterms never discriminate at
// this level; the remainder always runs, gated only by the sub-automaton
// the discrimination net hands off to, as in freetheory.LHSAutomaton).
func depth1Constraints(pattern *term.Term) []constraint {
	var out []constraint
	for i, child := range pattern.Children {
		if child.IsVariable() {
			continue
		}
		if child.Symbol.Theory() != symbol.TheoryFree {
			continue
		}
		out = append(out, constraint{position: i, symbolID: child.Symbol.ID()})
	}
	return out
}
