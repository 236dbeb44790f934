package module

import (
	"github.com/rljacobson/mod2/freetheory"
	"github.com/rljacobson/mod2/symbol"
)

// Equation is a module's concrete equation: the compiled free-theory
// remainder (spec.md §4.6), the top symbol it dispatches under, and
// the "owise" tag used by apply_replace_no_owise. It implements
// symbol.EquationRef so a Symbol's equation table can hold it without
// importing this package (spec.md §2's layering).
type Equation struct {
	id        int
	topSymbol *symbol.Symbol
	remainder *freetheory.Remainder
	owise     bool
	subSize   int
}

// EquationID implements symbol.EquationRef.
func (e *Equation) EquationID() int { return e.id }

// IsFast implements symbol.EquationRef: true when the remainder's
// speed tag is SuperFast or Fast rather than Slow.
func (e *Equation) IsFast() bool { return e.remainder.Speed != freetheory.Slow }

// Owise reports whether this equation is tagged "otherwise".
func (e *Equation) Owise() bool { return e.owise }

// AddEquation registers a new equation with top symbol topSymbol,
// invalidating any cached discrimination net for that symbol so the
// next Reduce rebuilds it. subSize is the substitution size the
// equation's LHS/RHS pair was compiled against.
func (m *Module) AddEquation(topSymbol *symbol.Symbol, remainder *freetheory.Remainder, owise bool, subSize int) *Equation {
	// The caller supplies LHS/RHS but Speed is derived, not chosen: compute
	// it here so it can never drift from the actual compiled pattern and
	// condition (spec.md §4.3's fast/super-fast/slow classification).
	remainder.Speed = freetheory.ClassifySpeed(remainder.LHS.Pattern(), remainder.Cond != nil)

	m.mu.Lock()
	eq := &Equation{id: len(m.Equations), topSymbol: topSymbol, remainder: remainder, owise: owise, subSize: subSize}
	m.Equations = append(m.Equations, eq)
	m.mu.Unlock()

	topSymbol.AddEquation(eq)
	m.invalidateNet(topSymbol)
	return eq
}
