package dagnode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rljacobson/mod2/dagnode"
	"github.com/rljacobson/mod2/sortlattice"
	"github.com/rljacobson/mod2/symbol"
)

func buildFSymbol(t *testing.T) (f, p *symbol.Symbol) {
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

	return f, p
}

func TestComputeBaseSortPropagatesFromLeaves(t *testing.T) {
	f, p := buildFSymbol(t)
	leaf1, err := dagnode.New(p)
	require.NoError(t, err)
	leaf2, err := dagnode.New(p)
	require.NoError(t, err)
	root, err := dagnode.New(f, leaf1, leaf2)
	require.NoError(t, err)

	_, err = leaf1.ComputeBaseSort()
	require.NoError(t, err)
	_, err = leaf2.ComputeBaseSort()
	require.NoError(t, err)
	sort, err := root.ComputeBaseSort()
	require.NoError(t, err)
	assert.Equal(t, "A", sort.Name())
}

func TestNewRejectsWrongArity(t *testing.T) {
	f, _ := buildFSymbol(t)
	_, err := dagnode.New(f)
	assert.ErrorIs(t, err, dagnode.ErrArityMismatch)
}

func TestMakeCloneSharesStructurePreservesDAG(t *testing.T) {
	f, p := buildFSymbol(t)
	leaf, err := dagnode.New(p)
	require.NoError(t, err)
	// Both argument positions of root share the very same leaf node.
	root, err := dagnode.New(f, leaf, leaf)
	require.NoError(t, err)

	clone := root.MakeClone()
	require.NotSame(t, root, clone)
	assert.Same(t, clone.Args[0], clone.Args[1], "shared subterm must stay shared in the clone")
	assert.NotSame(t, leaf, clone.Args[0])
}

func TestCopyWithReplacementSharesUntouchedArgs(t *testing.T) {
	f, p := buildFSymbol(t)
	leaf1, _ := dagnode.New(p)
	leaf2, _ := dagnode.New(p)
	root, _ := dagnode.New(f, leaf1, leaf2)

	replacement, _ := dagnode.New(p)
	copy1, err := root.CopyWithReplacement(0, replacement)
	require.NoError(t, err)
	assert.Same(t, replacement, copy1.Args[0])
	assert.Same(t, leaf2, copy1.Args[1])

	_, err = root.CopyWithReplacement(5, replacement)
	assert.ErrorIs(t, err, dagnode.ErrArgIndexOutOfRange)
}

func TestStructuralHashAndEqual(t *testing.T) {
	f, p := buildFSymbol(t)
	leaf1, _ := dagnode.New(p)
	leaf2, _ := dagnode.New(p)
	a, _ := dagnode.New(f, leaf1, leaf1)
	b, _ := dagnode.New(f, leaf2, leaf2)

	assert.Equal(t, a.StructuralHash(), b.StructuralHash())
	assert.True(t, a.Equal(b))
	assert.Equal(t, 0, a.Compare(b))
}

func TestHashConsSetCanonicalizes(t *testing.T) {
	f, p := buildFSymbol(t)
	leaf1, _ := dagnode.New(p)
	leaf2, _ := dagnode.New(p)
	a, _ := dagnode.New(f, leaf1, leaf1)
	b, _ := dagnode.New(f, leaf2, leaf2)

	set, err := dagnode.NewHashConsSet(16)
	require.NoError(t, err)

	canonA := set.MakeCanonical(a)
	canonB := set.MakeCanonical(b)
	assert.Same(t, canonA, canonB)
}
