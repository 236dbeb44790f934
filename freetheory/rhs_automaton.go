package freetheory

import (
	"github.com/rljacobson/mod2/dagnode"
	"github.com/rljacobson/mod2/substitution"
	"github.com/rljacobson/mod2/symbol"
)

// Instruction builds one free DagNode from already-bound substitution
// slots and binds the result to Dest, matching the reference
// implementation's RHS automaton instruction (spec.md §4.6).
type Instruction struct {
	Symbol  *symbol.Symbol
	Dest    int
	Sources []int
}

// RHSAutomaton is a sequence of Instructions executed in order; the
// last instruction's destination is the automaton's overall result.
type RHSAutomaton struct {
	Program []Instruction
}

// Construct runs every instruction against sub, building fresh nodes,
// and returns the final instruction's result.
func (a *RHSAutomaton) Construct(sub *substitution.Substitution) (*dagnode.DagNode, error) {
	var result *dagnode.DagNode
	for _, instr := range a.Program {
		args := make([]*dagnode.DagNode, len(instr.Sources))
		for i, src := range instr.Sources {
			v, err := sub.Value(src)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		node, err := dagnode.New(instr.Symbol, args...)
		if err != nil {
			return nil, err
		}
		if err := sub.Bind(instr.Dest, node); err != nil {
			return nil, err
		}
		result = node
	}
	return result, nil
}

// Replace behaves like Construct for every instruction except the
// last, which instead overwrites old's symbol, arguments, and flags
// in place, so that existing references to old observe the rewrite
// (spec.md §4.6).
func (a *RHSAutomaton) Replace(old *dagnode.DagNode, sub *substitution.Substitution) (*dagnode.DagNode, error) {
	if len(a.Program) == 0 {
		return old, nil
	}
	for _, instr := range a.Program[:len(a.Program)-1] {
		args := make([]*dagnode.DagNode, len(instr.Sources))
		for i, src := range instr.Sources {
			v, err := sub.Value(src)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		node, err := dagnode.New(instr.Symbol, args...)
		if err != nil {
			return nil, err
		}
		if err := sub.Bind(instr.Dest, node); err != nil {
			return nil, err
		}
	}

	last := a.Program[len(a.Program)-1]
	args := make([]*dagnode.DagNode, len(last.Sources))
	for i, src := range last.Sources {
		v, err := sub.Value(src)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	old.Symbol = last.Symbol
	old.Args = args
	old.Theory = last.Symbol.Theory()
	old.SortIndex = -1
	old.Flags &^= dagnode.RewritingFlags | dagnode.HashValid
	if len(args) > 0 {
		old.Flags |= dagnode.NeedsDestructionFlag
	} else {
		old.Flags &^= dagnode.NeedsDestructionFlag
	}
	if err := sub.Bind(last.Dest, old); err != nil {
		return nil, err
	}
	return old, nil
}
