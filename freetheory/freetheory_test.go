package freetheory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rljacobson/mod2/dagnode"
	"github.com/rljacobson/mod2/freetheory"
	"github.com/rljacobson/mod2/sortlattice"
	"github.com/rljacobson/mod2/subproblem"
	"github.com/rljacobson/mod2/substitution"
	"github.com/rljacobson/mod2/symbol"
	"github.com/rljacobson/mod2/term"
)

type fakeContext struct{}

func (fakeContext) SafePoint()     {}
func (fakeContext) Aborted() bool { return false }

// buildFixture declares sort A, symbol f:A A->A (constructor) and p:A
// (constant), plus a variable symbol X:A.
func buildFixture(t *testing.T) (f, p, x *symbol.Symbol) {
	t.Helper()
	l := sortlattice.NewLattice()
	_, err := l.DeclareSort("A")
	require.NoError(t, err)
	require.NoError(t, l.Close())
	a, _ := l.Sort("A")

	reg := symbol.NewRegistry()
	f, err = reg.Intern("f", 2, symbol.Standard, symbol.TheoryFree)
	require.NoError(t, err)
	require.NoError(t, f.AddDeclaration(symbol.OperatorDeclaration{
		ArgSorts: []*sortlattice.Sort{a, a}, ResultSort: a, Constructor: symbol.Constructor,
	}))
	require.NoError(t, f.Compile())

	p, err = reg.Intern("p", 0, symbol.Standard, symbol.TheoryFree)
	require.NoError(t, err)
	require.NoError(t, p.AddDeclaration(symbol.OperatorDeclaration{ResultSort: a, Constructor: symbol.Constructor}))
	require.NoError(t, p.Compile())

	x, err = reg.Intern("X", 0, symbol.Variable, symbol.TheoryVariable)
	require.NoError(t, err)
	require.NoError(t, x.AddDeclaration(symbol.OperatorDeclaration{ResultSort: a}))
	require.NoError(t, x.Compile())

	return f, p, x
}

// TestMatchBindsVariableAndReplaces reproduces f(X, p) -> f(X, X)
// applied to f(p, p): the match binds X to the left p, and replace
// overwrites the root node in place with f built from X's binding twice.
func TestMatchBindsVariableAndReplaces(t *testing.T) {
	f, p, x := buildFixture(t)

	pConst, err := term.New(p)
	require.NoError(t, err)
	pattern, err := term.New(f, term.NewVariable(x, 0), pConst)
	require.NoError(t, err)
	automaton := freetheory.Compile(pattern, nil)

	left, _ := dagnode.New(p)
	right, _ := dagnode.New(p)
	_, err = left.ComputeBaseSort()
	require.NoError(t, err)
	_, err = right.ComputeBaseSort()
	require.NoError(t, err)
	subject, err := dagnode.New(f, left, right)
	require.NoError(t, err)

	sub := substitution.New(1)
	ok, sp, err := automaton.Match(subject, sub)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Nil(t, sp)

	bound, err := sub.Value(0)
	require.NoError(t, err)
	assert.Same(t, left, bound)

	// RHS template f(X, X): one instruction building a fresh f node
	// from the bound variable twice, which is also the last (and only)
	// instruction, so Replace overwrites the subject root in place.
	remainder := &freetheory.Remainder{
		LHS: automaton,
		RHS: &freetheory.RHSAutomaton{Program: []freetheory.Instruction{
			{Symbol: f, Dest: 1, Sources: []int{0, 0}},
		}},
		Speed: freetheory.ClassifySpeed(pattern, false),
	}
	subject2, _ := dagnode.New(f, left, right)
	sub2 := substitution.New(2)
	applied, err := remainder.FastMatchReplace(subject2, sub2, fakeContext{})
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Same(t, left, subject2.Args[0])
	assert.Same(t, left, subject2.Args[1])
}

func TestMatchFailsOnSymbolMismatch(t *testing.T) {
	f, p, _ := buildFixture(t)
	pattern, err := term.New(p)
	require.NoError(t, err)
	automaton := freetheory.Compile(pattern, nil)

	left, _ := dagnode.New(p)
	right, _ := dagnode.New(p)
	subject, _ := dagnode.New(f, left, right)

	ok, sp, err := automaton.Match(subject, substitution.New(1))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, sp)
}

// buildAlienFixture declares sort A, a 3-ary free constructor g, a
// nullary free constant p, a 1-ary symbol w tagged with a non-Free
// theory (standing in for whichever of
// TheoryAssociativeCommutative/TheoryCommutative a real alien matcher
// would be registered for), and two variables Y, Z.
func buildAlienFixture(t *testing.T) (g, p, w, y, z *symbol.Symbol) {
	t.Helper()
	l := sortlattice.NewLattice()
	_, err := l.DeclareSort("A")
	require.NoError(t, err)
	require.NoError(t, l.Close())
	a, _ := l.Sort("A")

	reg := symbol.NewRegistry()
	g, err = reg.Intern("g", 3, symbol.Standard, symbol.TheoryFree)
	require.NoError(t, err)
	require.NoError(t, g.AddDeclaration(symbol.OperatorDeclaration{
		ArgSorts: []*sortlattice.Sort{a, a, a}, ResultSort: a, Constructor: symbol.Constructor,
	}))
	require.NoError(t, g.Compile())

	p, err = reg.Intern("p", 0, symbol.Standard, symbol.TheoryFree)
	require.NoError(t, err)
	require.NoError(t, p.AddDeclaration(symbol.OperatorDeclaration{ResultSort: a, Constructor: symbol.Constructor}))
	require.NoError(t, p.Compile())

	w, err = reg.Intern("w", 1, symbol.Standard, symbol.TheoryAssociativeCommutative)
	require.NoError(t, err)
	require.NoError(t, w.AddDeclaration(symbol.OperatorDeclaration{
		ArgSorts: []*sortlattice.Sort{a}, ResultSort: a, Constructor: symbol.Constructor,
	}))
	require.NoError(t, w.Compile())

	y, err = reg.Intern("Y", 0, symbol.Variable, symbol.TheoryVariable)
	require.NoError(t, err)
	require.NoError(t, y.AddDeclaration(symbol.OperatorDeclaration{ResultSort: a}))
	require.NoError(t, y.Compile())

	z, err = reg.Intern("Z", 0, symbol.Variable, symbol.TheoryVariable)
	require.NoError(t, err)
	require.NoError(t, z.AddDeclaration(symbol.OperatorDeclaration{ResultSort: a}))
	require.NoError(t, z.Compile())

	return g, p, w, y, z
}

// TestGroundAlienMatchedByDagEquality exercises a ground subterm (no
// variables) whose top symbol's theory is not TheoryFree: Compile
// precomputes its DagNode once, so Match never consults the aliens
// map at all for it.
func TestGroundAlienMatchedByDagEquality(t *testing.T) {
	_, p, w, _, _ := buildAlienFixture(t)

	pTerm, err := term.New(p)
	require.NoError(t, err)
	pattern, err := term.New(w, pTerm)
	require.NoError(t, err)

	aliensCalled := false
	aliens := map[symbol.TheoryTag]subproblem.Matcher{
		symbol.TheoryAssociativeCommutative: func(subject *dagnode.DagNode, sub *substitution.Substitution) (bool, subproblem.Subproblem, error) {
			aliensCalled = true
			return false, nil, nil
		},
	}
	automaton := freetheory.Compile(pattern, aliens)

	leaf, err := dagnode.New(p)
	require.NoError(t, err)
	subject, err := dagnode.New(w, leaf)
	require.NoError(t, err)

	ok, sp, err := automaton.Match(subject, substitution.New(0))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Nil(t, sp)
	assert.False(t, aliensCalled, "a ground alien subterm is matched by DAG equality, not delegated")
}

// TestNonGroundAliensOrderedByAlreadyBoundVariables matches
// g(Y, w(Z), w(Y)) against a subject whose w-slots are labeled via
// ExtraData: the alien matcher records the order it is invoked in. Y
// is bound by the time the non-ground aliens are considered (the
// variable child matches in pass one), so w(Y) — already fully
// constrained — must be tried before w(Z), even though w(Z) comes
// first in source order; the constraint-propagation ordering search
// picks the most-bound candidate first regardless of source position.
func TestNonGroundAliensOrderedByAlreadyBoundVariables(t *testing.T) {
	g, p, w, y, z := buildAlienFixture(t)

	wyPattern, err := term.New(w, term.NewVariable(y, 0))
	require.NoError(t, err)
	wzPattern, err := term.New(w, term.NewVariable(z, 1))
	require.NoError(t, err)
	pattern, err := term.New(g, term.NewVariable(y, 0), wzPattern, wyPattern)
	require.NoError(t, err)

	var order []string
	aliens := map[symbol.TheoryTag]subproblem.Matcher{
		symbol.TheoryAssociativeCommutative: func(subject *dagnode.DagNode, sub *substitution.Substitution) (bool, subproblem.Subproblem, error) {
			order = append(order, subject.ExtraData().(string))
			return true, nil, nil
		},
	}
	automaton := freetheory.Compile(pattern, aliens)

	yValue, err := dagnode.New(p) // arbitrary filler node for Y's binding; never inspected by the alien matcher
	require.NoError(t, err)
	_, err = yValue.ComputeBaseSort()
	require.NoError(t, err)
	wySubject, err := dagnode.New(w, yValue)
	require.NoError(t, err)
	wySubject.SetExtraData("Y")
	wzSubject, err := dagnode.New(w, yValue)
	require.NoError(t, err)
	wzSubject.SetExtraData("Z")
	subject, err := dagnode.New(g, yValue, wzSubject, wySubject)
	require.NoError(t, err)

	ok, sp, err := automaton.Match(subject, substitution.New(2))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Nil(t, sp)
	assert.Equal(t, []string{"Y", "Z"}, order, "the alien already constrained by a bound variable must be tried first")
}

func TestVariablePatternIsNotDelegatedToAlienMatcher(t *testing.T) {
	f, p, x := buildFixture(t)
	called := false
	aliens := map[symbol.TheoryTag]subproblem.Matcher{
		symbol.TheoryVariable: func(subject *dagnode.DagNode, sub *substitution.Substitution) (bool, subproblem.Subproblem, error) {
			called = true
			return true, nil, nil
		},
	}
	variablePattern := term.NewVariable(x, 0)
	// An alien matcher is registered for x's own theory tag (TheoryVariable).
	automaton := freetheory.Compile(variablePattern, aliens)

	leaf, _ := dagnode.New(p)
	_, err := leaf.ComputeBaseSort()
	require.NoError(t, err)
	sub := substitution.New(1)
	// x is declared with TheoryVariable so LHSAutomaton.matchTerm takes
	// the variable branch, not the alien branch, since IsVariable() is
	// checked first; this exercises the ordinary variable path.
	ok, _, err := automaton.Match(leaf, sub)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, called, "a variable leaf is matched by MatchVariable, not delegated as an alien")
	_ = f
}
