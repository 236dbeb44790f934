package term_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rljacobson/mod2/sortlattice"
	"github.com/rljacobson/mod2/symbol"
	"github.com/rljacobson/mod2/term"
)

func buildSymbols(t *testing.T) (f, x *symbol.Symbol) {
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

	x, err = reg.Intern("X", 0, symbol.Variable, symbol.TheoryVariable)
	require.NoError(t, err)
	return f, x
}

func TestNormalizeComputesOccursSetAndHash(t *testing.T) {
	f, x := buildSymbols(t)
	v0 := term.NewVariable(x, 0)
	v1 := term.NewVariable(x, 1)
	root, err := term.New(f, v0, v1)
	require.NoError(t, err)

	root.Normalize()
	occurs, err := root.OccursSet()
	require.NoError(t, err)
	assert.True(t, occurs.Test(0))
	assert.True(t, occurs.Test(1))
	assert.False(t, occurs.Test(2))

	h, err := root.StructuralHash()
	require.NoError(t, err)
	assert.NotZero(t, h)
}

func TestStructuralHashBeforeNormalizeFails(t *testing.T) {
	f, x := buildSymbols(t)
	root, _ := term.New(f, term.NewVariable(x, 0), term.NewVariable(x, 1))
	_, err := root.StructuralHash()
	assert.ErrorIs(t, err, term.ErrNotNormalized)
}

func TestAssignSaveIndexOnce(t *testing.T) {
	_, x := buildSymbols(t)
	v := term.NewVariable(x, 0)
	require.NoError(t, v.AssignSaveIndex(3))
	assert.Equal(t, 3, v.SaveIndex())
	assert.ErrorIs(t, v.AssignSaveIndex(4), term.ErrSaveIndexAlreadyAssigned)
}

func TestNewRejectsWrongArity(t *testing.T) {
	f, _ := buildSymbols(t)
	_, err := term.New(f)
	assert.ErrorIs(t, err, term.ErrArityMismatch)
}
