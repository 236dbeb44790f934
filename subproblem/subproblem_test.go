package subproblem_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rljacobson/mod2/dagnode"
	"github.com/rljacobson/mod2/sortlattice"
	"github.com/rljacobson/mod2/subproblem"
	"github.com/rljacobson/mod2/substitution"
	"github.com/rljacobson/mod2/symbol"
)

type fakeContext struct{ aborted bool }

func (f *fakeContext) SafePoint()     {}
func (f *fakeContext) Aborted() bool { return f.aborted }

// countingSubproblem succeeds solutions times, then is exhausted.
type countingSubproblem struct {
	solutions int
	calls     int
}

func (c *countingSubproblem) Solve(findFirst bool, ctx subproblem.Context) (bool, error) {
	if findFirst {
		c.calls = 0
	}
	if c.calls >= c.solutions {
		return false, nil
	}
	c.calls++
	return true, nil
}

func TestSortCheckSubproblemSucceedsOnce(t *testing.T) {
	l := sortlattice.NewLattice()
	_, _ = l.DeclareSort("A")
	_, _ = l.DeclareSort("B")
	require.NoError(t, l.DeclareSubsort("B", "A"))
	require.NoError(t, l.Close())
	a, _ := l.Sort("A")
	b, _ := l.Sort("B")

	reg := symbol.NewRegistry()
	p, _ := reg.Intern("p", 0, symbol.Standard, symbol.TheoryFree)
	require.NoError(t, p.AddDeclaration(symbol.OperatorDeclaration{ResultSort: b, Constructor: symbol.Constructor}))
	require.NoError(t, p.Compile())
	leaf, _ := dagnode.New(p)
	_, err := leaf.ComputeBaseSort()
	require.NoError(t, err)

	sc := &subproblem.SortCheckSubproblem{Node: leaf, Bound: a}
	ctx := &fakeContext{}
	ok, err := sc.Solve(true, ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = sc.Solve(false, ctx)
	require.NoError(t, err)
	assert.False(t, ok, "a sort check never yields a second solution")
}

func TestSubproblemSequenceBacktracks(t *testing.T) {
	first := &countingSubproblem{solutions: 1}
	second := &countingSubproblem{solutions: 2}
	seq := subproblem.NewSubproblemSequence(first, second)
	ctx := &fakeContext{}

	ok, err := seq.Solve(true, ctx)
	require.NoError(t, err)
	require.True(t, ok)

	// Second solution: second member still has one left.
	ok, err = seq.Solve(false, ctx)
	require.NoError(t, err)
	require.True(t, ok)

	// Third resume: second member exhausted, first member (only one
	// solution) cannot supply a fresh one either, so the whole
	// sequence is exhausted.
	ok, err = seq.Solve(false, ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSubproblemSequenceEmptyIsTriviallySatisfied(t *testing.T) {
	seq := subproblem.NewSubproblemSequence()
	ok, err := seq.Solve(true, &fakeContext{})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVariableAbstractionSubproblemDelegatesToInner(t *testing.T) {
	l := sortlattice.NewLattice()
	_, _ = l.DeclareSort("A")
	require.NoError(t, l.Close())
	a, _ := l.Sort("A")
	reg := symbol.NewRegistry()
	p, _ := reg.Intern("p", 0, symbol.Standard, symbol.TheoryFree)
	require.NoError(t, p.AddDeclaration(symbol.OperatorDeclaration{ResultSort: a, Constructor: symbol.Constructor}))
	require.NoError(t, p.Compile())
	leaf, _ := dagnode.New(p)

	sub := substitution.New(1)
	require.NoError(t, sub.Bind(0, leaf))

	called := false
	inner := &countingSubproblem{solutions: 1}
	va := &subproblem.VariableAbstractionSubproblem{
		SurrogateIndex: 0,
		Substitution:   sub,
		Match: func(subject *dagnode.DagNode, s *substitution.Substitution) (bool, subproblem.Subproblem, error) {
			called = true
			assert.Same(t, leaf, subject)
			return true, inner, nil
		},
	}

	ok, err := va.Solve(true, &fakeContext{})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, called)

	ok, err = va.Solve(false, &fakeContext{})
	require.NoError(t, err)
	assert.False(t, ok, "inner countingSubproblem has exactly one solution")
}
