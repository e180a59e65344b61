package search

import "github.com/corvidchess/corvid/board"

// fakePosition is a minimal subtraction (Nim-like) game used to exercise the
// tree and search machinery without a real chess move generator: from value
// v the side to move may subtract 1 or 2 (down to a floor of 0), and a side
// facing v==0 has no moves and is considered in check, i.e. checkmated.
type fakePosition struct {
	value  int
	toMove board.Color
}

func newFakePosition(value int) *fakePosition {
	return &fakePosition{value: value, toMove: board.White}
}

func (p *fakePosition) SideToMove() board.Color { return p.toMove }

func (p *fakePosition) MapMoves(cb func(board.Move)) {
	if p.value <= 0 {
		return
	}
	cb(board.Move{Index: 1, UCI: "-1"})
	if p.value >= 2 {
		cb(board.Move{Index: 2, UCI: "-2"})
	}
}

func (p *fakePosition) IsInCheck() bool                   { return p.value == 0 }
func (p *fakePosition) IsInsufficientMaterial() bool      { return false }
func (p *fakePosition) HalfMoveCounter() int              { return 0 }
func (p *fakePosition) IsRepetition() bool                { return false }
func (p *fakePosition) HashKey() uint64 {
	return uint64(p.value)<<1 | uint64(p.toMove)
}

func (p *fakePosition) MakeMove(mv board.Move) {
	p.value -= int(mv.Index)
	if p.value < 0 {
		p.value = 0
	}
	p.toMove = p.toMove.Other()
}

func (p *fakePosition) Clone() board.Position {
	cp := *p
	return &cp
}
