// Package chessboard adapts github.com/notnil/chess to satisfy the
// board.Position interface. It is the one concrete Board collaborator this
// repository ships; the search package itself never imports it.
package chessboard

import (
	"strconv"
	"strings"

	"github.com/notnil/chess"
	"github.com/pkg/errors"

	"github.com/corvidchess/corvid/board"
)

// Position wraps a *chess.Game, keeping its own history of position hash
// keys since New/FromFEN (carried over by Clone), so repetition is detected
// by this adapter rather than by notnil/chess's own outcome detection.
type Position struct {
	game    *chess.Game
	history []uint64 // hash keys seen since this Position's root, for repetition
}

// New returns the starting position, move-indexed with UCI notation so
// board.Move.Index lines up with chess.Move.String().
func New() *Position {
	g := chess.NewGame(chess.UseNotation(chess.UCINotation{}))
	p := &Position{game: g}
	p.history = append(p.history, p.HashKey())
	return p
}

// FromFEN parses a FEN string into a Position.
func FromFEN(fen string) (*Position, error) {
	f, err := chess.FEN(fen)
	if err != nil {
		return nil, errors.Wrap(err, "chessboard: invalid fen")
	}
	g := chess.NewGame(f, chess.UseNotation(chess.UCINotation{}))
	p := &Position{game: g}
	p.history = append(p.history, p.HashKey())
	return p, nil
}

func colorOf(c chess.Color) board.Color {
	if c == chess.Black {
		return board.Black
	}
	return board.White
}

// SideToMove implements board.Position.
func (p *Position) SideToMove() board.Color {
	return colorOf(p.game.Position().Turn())
}

// MapMoves implements board.Position.
func (p *Position) MapMoves(cb func(board.Move)) {
	for _, m := range p.game.ValidMoves() {
		cb(board.Move{Index: moveIndex(m), UCI: m.String()})
	}
}

// moveIndex packs a chess.Move into a stable int32: from-square*64+to-square,
// with the promotion piece type shifted into bits 16 and up.
func moveIndex(m *chess.Move) int32 {
	idx := int32(m.S1())*64 + int32(m.S2())
	if promo := m.Promo(); promo != chess.NoPieceType {
		idx |= int32(promo) << 16
	}
	return idx
}

// findMove resolves a board.Move back to a concrete *chess.Move by scanning
// the current legal move list. This keeps Position the single source of
// truth for move legality instead of trusting an edge's cached index.
func (p *Position) findMove(mv board.Move) (*chess.Move, error) {
	for _, m := range p.game.ValidMoves() {
		if moveIndex(m) == mv.Index {
			return m, nil
		}
	}
	return nil, errors.Errorf("chessboard: move %s is not legal in this position", mv.UCI)
}

// IsInCheck implements board.Position.
func (p *Position) IsInCheck() bool {
	return p.game.Position().InCheck()
}

// IsInsufficientMaterial reports a coarse material-draw check: only kings,
// or the kings plus a single minor piece in total, remain on the board.
func (p *Position) IsInsufficientMaterial() bool {
	counts := map[chess.PieceType]int{}
	for _, pc := range p.game.Position().Board().SquareMap() {
		if pc == chess.NoPiece {
			continue
		}
		counts[pc.Type()]++
	}
	heavy := counts[chess.Queen] + counts[chess.Rook] + counts[chess.Pawn]
	minors := counts[chess.Bishop] + counts[chess.Knight]
	return heavy == 0 && minors <= 1
}

// MaterialBalance implements board.MaterialAware using standard piece
// values (pawn=1, knight/bishop=3, rook=5, queen=9).
func (p *Position) MaterialBalance() float32 {
	var white, black float32
	for _, pc := range p.game.Position().Board().SquareMap() {
		if pc == chess.NoPiece {
			continue
		}
		v := pieceValue(pc.Type())
		if pc.Color() == chess.White {
			white += v
		} else {
			black += v
		}
	}
	if p.SideToMove() == board.White {
		return white - black
	}
	return black - white
}

func pieceValue(t chess.PieceType) float32 {
	switch t {
	case chess.Pawn:
		return 1
	case chess.Knight, chess.Bishop:
		return 3
	case chess.Rook:
		return 5
	case chess.Queen:
		return 9
	default:
		return 0
	}
}

var pieceOrder = [6]chess.PieceType{
	chess.Pawn, chess.Knight, chess.Bishop, chess.Rook, chess.Queen, chess.King,
}

// Bitboards implements selfplay.Packable (satisfied structurally, without
// this package importing selfplay): one 64-bit board per (piece type,
// color) pair, white's six boards first, then black's, each bit set for an
// occupied square.
func (p *Position) Bitboards() [12]uint64 {
	var boards [12]uint64
	for sq, pc := range p.game.Position().Board().SquareMap() {
		if pc == chess.NoPiece {
			continue
		}
		idx := -1
		for i, t := range pieceOrder {
			if t == pc.Type() {
				idx = i
				break
			}
		}
		if idx < 0 {
			continue
		}
		if pc.Color() == chess.Black {
			idx += 6
		}
		boards[idx] |= 1 << uint(sq)
	}
	return boards
}

// HalfMoveCounter implements board.Position by reading the fifty-move
// counter out of the position's FEN rendering.
func (p *Position) HalfMoveCounter() int {
	fen := p.game.Position().String()
	fields := strings.Fields(fen)
	if len(fields) < 5 {
		return 0
	}
	n, err := strconv.Atoi(fields[4])
	if err != nil {
		return 0
	}
	return n
}

// IsRepetition implements board.Position against this Position's own
// history, per spec.md §4.B ("threefold repetition per search history").
func (p *Position) IsRepetition() bool {
	key := p.HashKey()
	count := 0
	for _, h := range p.history {
		if h == key {
			count++
			if count >= 3 {
				return true
			}
		}
	}
	return false
}

// HashKey implements board.Position using the position's 16-byte Zobrist
// hash folded down to 64 bits.
func (p *Position) HashKey() uint64 {
	h := p.game.Position().Hash()
	var lo, hi uint64
	for i := 0; i < 8; i++ {
		lo |= uint64(h[i]) << (8 * i)
		hi |= uint64(h[i+8]) << (8 * i)
	}
	return lo ^ hi
}

// MakeMove implements board.Position. It panics on an illegal move, matching
// the teacher's own MakeMove discipline (the board collaborator is trusted;
// see spec.md §7 on malformed-position handling being the caller's job).
func (p *Position) MakeMove(mv board.Move) {
	m, err := p.findMove(mv)
	if err != nil {
		panic(err)
	}
	if err := p.game.Move(m); err != nil {
		panic(errors.Wrap(err, "chessboard: illegal move applied"))
	}
	p.history = append(p.history, p.HashKey())
}

// ApplyUCI parses a UCI move string against the current legal move list and
// applies it, returning a wrapped error instead of panicking when the text
// doesn't name a legal move. Used by cmd/play for untrusted stdin input,
// where MakeMove's panic-on-illegal-move discipline would be inappropriate.
func (p *Position) ApplyUCI(uci string) error {
	for _, m := range p.game.ValidMoves() {
		if m.String() == uci {
			p.MakeMove(board.Move{Index: moveIndex(m), UCI: uci})
			return nil
		}
	}
	return errors.Errorf("chessboard: %q is not a legal move here", uci)
}

// Clone implements board.Position.
func (p *Position) Clone() board.Position {
	hist := make([]uint64, len(p.history))
	copy(hist, p.history)
	return &Position{game: p.game.Clone(), history: hist}
}

// FEN renders the current position as FEN, for logging and sample capture.
func (p *Position) FEN() string {
	return p.game.Position().String()
}

// Moves returns the UCI text of every legal move, for CLI front ends.
func (p *Position) Moves() []string {
	moves := p.game.ValidMoves()
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}

// Underlying exposes the wrapped *chess.Game for renderers that need the
// full board representation (piece placement, not just the move surface).
func (p *Position) Underlying() *chess.Game {
	return p.game
}
