package module_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rljacobson/mod2/dagnode"
	"github.com/rljacobson/mod2/freetheory"
	"github.com/rljacobson/mod2/module"
	"github.com/rljacobson/mod2/sortlattice"
	"github.com/rljacobson/mod2/symbol"
	"github.com/rljacobson/mod2/term"
)

// buildModule declares sort A, constants a, b, done:A, symbols h, g:A
// A->A, variables X, Y:A, the equation h(X,Y) = g(Y,X), and the rule
// g(X,Y) -> done (spec.md §8 scenario 3, extended with one rule for
// the state-transition graph test).
func buildModule(t *testing.T) (m *module.Module, h, g, a, b, done, x, y *symbol.Symbol) {
	t.Helper()
	m = module.New("test", nil)

	sortA, err := m.Lattice.DeclareSort("A")
	require.NoError(t, err)
	require.NoError(t, m.Lattice.Close())

	decl0 := func(sym *symbol.Symbol) {
		require.NoError(t, sym.AddDeclaration(symbol.OperatorDeclaration{ResultSort: sortA, Constructor: symbol.Constructor}))
		require.NoError(t, sym.Compile())
	}

	h, err = m.Symbols.Intern("h", 2, symbol.Standard, symbol.TheoryFree)
	require.NoError(t, err)
	require.NoError(t, h.AddDeclaration(symbol.OperatorDeclaration{
		ArgSorts: []*sortlattice.Sort{sortA, sortA}, ResultSort: sortA, Constructor: symbol.Constructor,
	}))
	require.NoError(t, h.Compile())

	g, err = m.Symbols.Intern("g", 2, symbol.Standard, symbol.TheoryFree)
	require.NoError(t, err)
	require.NoError(t, g.AddDeclaration(symbol.OperatorDeclaration{
		ArgSorts: []*sortlattice.Sort{sortA, sortA}, ResultSort: sortA, Constructor: symbol.Constructor,
	}))
	require.NoError(t, g.Compile())

	a, err = m.Symbols.Intern("a", 0, symbol.Standard, symbol.TheoryFree)
	require.NoError(t, err)
	decl0(a)
	b, err = m.Symbols.Intern("b", 0, symbol.Standard, symbol.TheoryFree)
	require.NoError(t, err)
	decl0(b)
	done, err = m.Symbols.Intern("done", 0, symbol.Standard, symbol.TheoryFree)
	require.NoError(t, err)
	decl0(done)

	x, err = m.Symbols.Intern("X", 0, symbol.Variable, symbol.TheoryVariable)
	require.NoError(t, err)
	require.NoError(t, x.AddDeclaration(symbol.OperatorDeclaration{ResultSort: sortA}))
	require.NoError(t, x.Compile())
	y, err = m.Symbols.Intern("Y", 0, symbol.Variable, symbol.TheoryVariable)
	require.NoError(t, err)
	require.NoError(t, y.AddDeclaration(symbol.OperatorDeclaration{ResultSort: sortA}))
	require.NoError(t, y.Compile())

	// h(X, Y) = g(Y, X)
	hPattern, err := term.New(h, term.NewVariable(x, 0), term.NewVariable(y, 1))
	require.NoError(t, err)
	hLHS := freetheory.Compile(hPattern, nil)
	hRHS := &freetheory.RHSAutomaton{Program: []freetheory.Instruction{
		{Symbol: g, Dest: 2, Sources: []int{1, 0}},
	}}
	m.AddEquation(h, &freetheory.Remainder{LHS: hLHS, RHS: hRHS, Speed: freetheory.ClassifySpeed(hPattern, false)}, false, 3)

	// g(X, Y) -> done
	gPattern, err := term.New(g, term.NewVariable(x, 0), term.NewVariable(y, 1))
	require.NoError(t, err)
	gLHS := freetheory.Compile(gPattern, nil)
	gRHS := &freetheory.RHSAutomaton{Program: []freetheory.Instruction{
		{Symbol: done, Dest: 2, Sources: nil},
	}}
	m.AddRule(gLHS, gRHS, 3)

	return m, h, g, a, b, done, x, y
}

func TestReduceAppliesEquationOnceAndSwapsArguments(t *testing.T) {
	m, h, g, a, b, _, _, _ := buildModule(t)
	aNode, err := dagnode.New(a)
	require.NoError(t, err)
	bNode, err := dagnode.New(b)
	require.NoError(t, err)
	_, err = aNode.ComputeBaseSort()
	require.NoError(t, err)
	_, err = bNode.ComputeBaseSort()
	require.NoError(t, err)
	root, err := dagnode.New(h, aNode, bNode)
	require.NoError(t, err)

	ctx := module.NewRewritingContext(nil)
	result, err := m.Reduce(root, ctx)
	require.NoError(t, err)

	assert.Same(t, g, result.Symbol)
	assert.Same(t, bNode, result.Args[0])
	assert.Same(t, aNode, result.Args[1])
	assert.Equal(t, 1, ctx.EquationCount)
	assert.True(t, result.Flags.Has(dagnode.Reduced))
}

func TestTermToDagPreservesStructuralHash(t *testing.T) {
	_, h, _, a, b, _, _, _ := buildModule(t)
	aTerm, err := term.New(a)
	require.NoError(t, err)
	bTerm, err := term.New(b)
	require.NoError(t, err)
	hTerm, err := term.New(h, aTerm, bTerm)
	require.NoError(t, err)
	hTerm.Normalize()

	dag, err := module.TermToDag(hTerm, true)
	require.NoError(t, err)

	wantHash, err := hTerm.StructuralHash()
	require.NoError(t, err)
	assert.Equal(t, wantHash, dag.StructuralHash())
}

func TestNewStateTransitionGraphAppliesRuleAndReducesFresh(t *testing.T) {
	m, h, _, a, b, done, _, _ := buildModule(t)
	aNode, err := dagnode.New(a)
	require.NoError(t, err)
	bNode, err := dagnode.New(b)
	require.NoError(t, err)
	_, err = aNode.ComputeBaseSort()
	require.NoError(t, err)
	_, err = bNode.ComputeBaseSort()
	require.NoError(t, err)
	root, err := dagnode.New(h, aNode, bNode)
	require.NoError(t, err)

	ctx := module.NewRewritingContext(nil)
	m.Root, err = m.Reduce(root, ctx)
	require.NoError(t, err)

	graph, err := m.NewStateTransitionGraph(ctx, 1, 16)
	require.NoError(t, err)

	next, rule, err := graph.GetNextState(graph.Root(), 0, ctx)
	require.NoError(t, err)
	require.NotNil(t, rule)
	assert.Same(t, done, next.DAG.Symbol)
}
