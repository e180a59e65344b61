package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchess/corvid/eval/uniform"
)

func TestMctsIterateExpandsRoot(t *testing.T) {
	tr := newTestTree()
	m := NewMcts(tr, uniform.Network{}, uniform.Network{})

	pos := newFakePosition(3)
	m.PrepareRoot(pos)
	require.False(t, tr.Root().IsTerminal())

	m.Iterate(pos, nil)
	assert.True(t, tr.Root().HasChildren())
	assert.Equal(t, 2, tr.Root().NumEdges())
}

func TestMctsIterateAccumulatesVisits(t *testing.T) {
	tr := newTestTree()
	m := NewMcts(tr, uniform.Network{}, uniform.Network{})
	// Large enough that 32 iterations cannot prove the root Won/Lost; a
	// proven root stops Iterate from counting further descents.
	pos := newFakePosition(20)
	m.PrepareRoot(pos)

	stats := NewSearchStats()
	for i := 0; i < 32; i++ {
		m.Iterate(pos, stats)
	}

	assert.Equal(t, uint64(32), stats.Iters())
	total := uint32(0)
	for i := 0; i < tr.Root().NumEdges(); i++ {
		total += tr.Root().EdgeAt(i).Visits()
	}
	assert.Equal(t, uint32(32), total)
}

func TestMctsTerminalRootNeverIterates(t *testing.T) {
	tr := newTestTree()
	m := NewMcts(tr, uniform.Network{}, uniform.Network{})
	pos := newFakePosition(0) // no legal moves, in check: checkmated
	m.PrepareRoot(pos)
	require.True(t, tr.Root().IsTerminal())

	stats := NewSearchStats()
	m.Iterate(pos, stats)
	assert.Equal(t, uint64(0), stats.Iters())
	assert.False(t, tr.Root().HasChildren())
}

func TestSearchRespectsMaxIters(t *testing.T) {
	tr := NewTree(DefaultOptions().WithThreads(1))
	// Not provable within 50 iterations, so only the iteration cap ends it.
	pos := newFakePosition(20)
	limits := NewSearchLimits().WithMaxIters(50)

	_, stats := Search(tr, pos, uniform.Network{}, uniform.Network{}, limits)
	assert.Equal(t, uint64(50), stats.Iters())
}

func TestBestMoveReturnsALegalMove(t *testing.T) {
	tr := NewTree(DefaultOptions().WithThreads(1))
	pos := newFakePosition(4)
	limits := NewSearchLimits().WithMaxIters(200)

	mv, stats, err := BestMove(tr, pos, uniform.Network{}, uniform.Network{}, limits)
	require.NoError(t, err)
	assert.True(t, mv.Index == 1 || mv.Index == 2)
	assert.Greater(t, stats.Iters(), uint64(0))
}

func TestBestMoveNoLegalMoves(t *testing.T) {
	tr := NewTree(DefaultOptions().WithThreads(1))
	pos := newFakePosition(0)
	limits := NewSearchLimits().WithMaxIters(10)

	_, _, err := BestMove(tr, pos, uniform.Network{}, uniform.Network{}, limits)
	assert.ErrorIs(t, err, ErrNoLegalMoves)
}
