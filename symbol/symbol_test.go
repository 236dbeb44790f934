package symbol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rljacobson/mod2/sortlattice"
	"github.com/rljacobson/mod2/symbol"
)

// buildChainLattice declares a single kind A < B < C (A most specific,
// C most general: A and B are both subsorts of C, and A is a subsort
// of B) and closes it, returning the three sorts by name.
func buildChainLattice(t *testing.T) (a, b, c *sortlattice.Sort) {
	t.Helper()
	l := sortlattice.NewLattice()
	for _, n := range []string{"A", "B", "C"} {
		_, err := l.DeclareSort(n)
		require.NoError(t, err)
	}
	require.NoError(t, l.DeclareSubsort("A", "B"))
	require.NoError(t, l.DeclareSubsort("B", "C"))
	require.NoError(t, l.Close())

	sa, _ := l.Sort("A")
	sb, _ := l.Sort("B")
	sc, _ := l.Sort("C")
	return sa, sb, sc
}

// TestSortTableDispatchPicksMostSpecific follows spec.md §8 scenario 2
// with result sorts A, B, C: symbol f with declarations f:A A->A,
// f:B B->B, f:C C->C, dispatched against argument sorts A, B, C.
func TestSortTableDispatchPicksMostSpecific(t *testing.T) {
	a, b, c := buildChainLattice(t)

	reg := symbol.NewRegistry()
	f, err := reg.Intern("f", 2, symbol.Standard, symbol.TheoryFree)
	require.NoError(t, err)

	require.NoError(t, f.AddDeclaration(symbol.OperatorDeclaration{
		ArgSorts: []*sortlattice.Sort{a, a}, ResultSort: a, Constructor: symbol.Constructor,
	}))
	require.NoError(t, f.AddDeclaration(symbol.OperatorDeclaration{
		ArgSorts: []*sortlattice.Sort{b, b}, ResultSort: b, Constructor: symbol.Constructor,
	}))
	require.NoError(t, f.AddDeclaration(symbol.OperatorDeclaration{
		ArgSorts: []*sortlattice.Sort{c, c}, ResultSort: c, Constructor: symbol.Constructor,
	}))
	require.NoError(t, f.Compile())

	table := f.SortTable()

	result, err := table.ComputeBaseSort([]*sortlattice.Sort{a, a})
	require.NoError(t, err)
	assert.Equal(t, a, result, "f(p,p) should resolve via the f:A A declaration")

	result, err = table.ComputeBaseSort([]*sortlattice.Sort{a, b})
	require.NoError(t, err)
	assert.Equal(t, b, result, "f(p,q) should resolve via the f:B B declaration")

	result, err = table.ComputeBaseSort([]*sortlattice.Sort{b, c})
	require.NoError(t, err)
	assert.Equal(t, c, result, "f(q,r) should resolve via the f:C C declaration")

	result, err = table.ComputeBaseSort([]*sortlattice.Sort{c, c})
	require.NoError(t, err)
	assert.Equal(t, c, result, "f(r,r) should resolve via the f:C C declaration")
}

func TestAddDeclarationRejectsWrongArity(t *testing.T) {
	a, _, _ := buildChainLattice(t)
	reg := symbol.NewRegistry()
	f, _ := reg.Intern("f", 2, symbol.Standard, symbol.TheoryFree)

	err := f.AddDeclaration(symbol.OperatorDeclaration{ArgSorts: []*sortlattice.Sort{a}, ResultSort: a})
	assert.ErrorIs(t, err, symbol.ErrArityMismatch)
}

func TestComputeBaseSortBeforeCompileFails(t *testing.T) {
	a, _, _ := buildChainLattice(t)
	reg := symbol.NewRegistry()
	f, _ := reg.Intern("f", 1, symbol.Standard, symbol.TheoryFree)
	require.NoError(t, f.AddDeclaration(symbol.OperatorDeclaration{ArgSorts: []*sortlattice.Sort{a}, ResultSort: a}))

	_, err := f.SortTable().ComputeBaseSort([]*sortlattice.Sort{a})
	assert.ErrorIs(t, err, symbol.ErrNotCompiled)
}

func TestConstructorStatusFollowsMostSpecificOverload(t *testing.T) {
	a, b, _ := buildChainLattice(t)
	reg := symbol.NewRegistry()
	f, _ := reg.Intern("f", 1, symbol.Standard, symbol.TheoryFree)
	require.NoError(t, f.AddDeclaration(symbol.OperatorDeclaration{
		ArgSorts: []*sortlattice.Sort{a}, ResultSort: a, Constructor: symbol.Constructor,
	}))
	require.NoError(t, f.AddDeclaration(symbol.OperatorDeclaration{
		ArgSorts: []*sortlattice.Sort{b}, ResultSort: b, Constructor: symbol.NonConstructor,
	}))
	require.NoError(t, f.Compile())

	status, err := f.SortTable().ConstructorStatusFor([]*sortlattice.Sort{a})
	require.NoError(t, err)
	assert.Equal(t, symbol.Constructor, status)

	status, err = f.SortTable().ConstructorStatusFor([]*sortlattice.Sort{b})
	require.NoError(t, err)
	assert.Equal(t, symbol.NonConstructor, status)
}

func TestRegistryAssignsDistinctIDs(t *testing.T) {
	reg := symbol.NewRegistry()
	f, err := reg.Intern("f", 1, symbol.Standard, symbol.TheoryFree)
	require.NoError(t, err)
	g, err := reg.Intern("f", 2, symbol.Standard, symbol.TheoryFree) // overloaded name, distinct arity
	require.NoError(t, err)

	assert.NotEqual(t, f.ID(), g.ID())
	assert.Len(t, reg.ByName("f"), 2)

	_, err = reg.Intern("", 0, symbol.Standard, symbol.TheoryFree)
	assert.ErrorIs(t, err, symbol.ErrEmptySymbolName)
}
