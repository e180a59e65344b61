package viz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchess/corvid/board"
	"github.com/corvidchess/corvid/eval/uniform"
	"github.com/corvidchess/corvid/search"
)

// nimPosition mirrors the search package's own test double: a Nim-like
// subtraction game small enough to exercise the tree walk deterministically.
type nimPosition struct {
	value  int
	toMove board.Color
}

func TestDOTRendersRootAndExpandedChildren(t *testing.T) {
	tree := search.NewTree(search.DefaultOptions().WithTreeBytes(1 << 16).WithHashBytes(1 << 16))
	network := uniform.New()
	pos := newNimPosition(4)

	m := search.NewMcts(tree, network, network)
	m.PrepareRoot(pos)
	for i := 0; i < 16; i++ {
		m.Iterate(pos, nil)
	}

	dot := DOT(tree, 3)
	require.NotEmpty(t, dot)
	assert.Contains(t, dot, "digraph")
	assert.Contains(t, dot, nodeName(tree.RootIndex()))
}

func TestDOTMaxDepthZeroWalksWholeTree(t *testing.T) {
	tree := search.NewTree(search.DefaultOptions().WithTreeBytes(1 << 16).WithHashBytes(1 << 16))
	network := uniform.New()
	pos := newNimPosition(4)

	m := search.NewMcts(tree, network, network)
	m.PrepareRoot(pos)
	for i := 0; i < 8; i++ {
		m.Iterate(pos, nil)
	}

	shallow := DOT(tree, 1)
	deep := DOT(tree, 0)
	assert.True(t, len(deep) >= len(shallow))
}

func newNimPosition(value int) *nimPosition {
	return &nimPosition{value: value}
}

func (p *nimPosition) SideToMove() board.Color { return p.toMove }

func (p *nimPosition) MapMoves(cb func(board.Move)) {
	if p.value <= 0 {
		return
	}
	cb(board.Move{Index: 1, UCI: "-1"})
	if p.value >= 2 {
		cb(board.Move{Index: 2, UCI: "-2"})
	}
}

func (p *nimPosition) IsInCheck() bool              { return p.value == 0 }
func (p *nimPosition) IsInsufficientMaterial() bool { return false }
func (p *nimPosition) HalfMoveCounter() int         { return 0 }
func (p *nimPosition) IsRepetition() bool           { return false }
func (p *nimPosition) HashKey() uint64              { return uint64(p.value)<<1 | uint64(p.toMove) }

func (p *nimPosition) MakeMove(mv board.Move) {
	p.value -= int(mv.Index)
	if p.value < 0 {
		p.value = 0
	}
	p.toMove = p.toMove.Other()
}

func (p *nimPosition) Clone() board.Position {
	cp := *p
	return &cp
}
