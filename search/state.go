package search

import "fmt"

// StateKind tags the four-way GameState union of spec.md §3.B.
type StateKind uint8

const (
	Unresolved StateKind = iota
	Drawn
	Lost
	Won
)

func (k StateKind) String() string {
	switch k {
	case Unresolved:
		return "Unresolved"
	case Drawn:
		return "Drawn"
	case Lost:
		return "Lost"
	case Won:
		return "Won"
	default:
		return "invalid"
	}
}

// GameState is the terminal classification of a node: Unresolved, Drawn, or
// Lost/Won with a mate distance in plies. Plies are monotone along a proven
// mating line; only terminal states block further expansion (spec.md §3.B).
type GameState struct {
	kind  StateKind
	plies uint16
}

// UnresolvedState is the zero value: not yet known to be terminal.
var UnresolvedState = GameState{kind: Unresolved}

// DrawnState marks a drawn position.
var DrawnState = GameState{kind: Drawn}

// LostState marks a forced loss in d plies for the side to move.
func LostState(d uint16) GameState { return GameState{kind: Lost, plies: d} }

// WonState marks a forced win in d plies for the side to move.
func WonState(d uint16) GameState { return GameState{kind: Won, plies: d} }

// Kind reports which branch of the union this state occupies.
func (s GameState) Kind() StateKind { return s.kind }

// Plies reports the proven mate distance; meaningless outside Lost/Won.
func (s GameState) Plies() uint16 { return s.plies }

// IsTerminal reports whether this state blocks further expansion.
func (s GameState) IsTerminal() bool { return s.kind != Unresolved }

func (s GameState) String() string {
	if s.kind == Lost || s.kind == Won {
		return fmt.Sprintf("%s(%d)", s.kind, s.plies)
	}
	return s.kind.String()
}

// pack/unpack let GameState live in a single atomic word on Node.
func (s GameState) pack() uint32 {
	return uint32(s.kind)<<16 | uint32(s.plies)
}

func unpackState(bits uint32) GameState {
	return GameState{kind: StateKind(bits >> 16), plies: uint16(bits)}
}
