package selfplay

import "github.com/corvidchess/corvid/board"

// fakePosition is the same Nim-like subtraction game used by the search
// package's own tests, extended with a trivial Bitboards implementation so
// it satisfies Packable.
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

func (p *fakePosition) IsInCheck() bool              { return p.value == 0 }
func (p *fakePosition) IsInsufficientMaterial() bool { return false }
func (p *fakePosition) HalfMoveCounter() int         { return 0 }
func (p *fakePosition) IsRepetition() bool           { return false }
func (p *fakePosition) HashKey() uint64              { return uint64(p.value)<<1 | uint64(p.toMove) }

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

func (p *fakePosition) Bitboards() [BitboardCount]uint64 {
	var boards [BitboardCount]uint64
	boards[0] = uint64(p.value)
	return boards
}

// unpackablePosition is a minimal board.Position that does not implement
// Packable, to exercise NewSample's error path. It embeds the interface, not
// *fakePosition, so only board.Position's methods are promoted.
type unpackablePosition struct{ board.Position }

func newUnpackablePosition(value int) unpackablePosition {
	return unpackablePosition{Position: &fakePosition{value: value, toMove: board.White}}
}
