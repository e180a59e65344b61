// Package eval declares the abstract policy/value network surface the
// search package evaluates leaves through. Both interfaces are external
// collaborators per spec.md §1 — this package never trains or loads
// weights, it only names the contract and (in eval/uniform) a reference
// stand-in used by tests and by the CLIs when no trained model is wired.
package eval

import (
	"github.com/chewxy/math32"

	"github.com/corvidchess/corvid/board"
)

// ValueNetwork estimates win/draw/loss chances for the side to move in p.
// Two forms coexist in the literature this engine is descended from: a
// single scalar logit, and a (win, draw, loss) triple. This package always
// exposes the triple form; ScalarAdapter lifts a scalar-only network into it.
type ValueNetwork interface {
	Forward(p board.Position) (win, draw, loss float32)
}

// PolicyNetwork assigns a prior probability to every move already
// enumerated by the caller (typically via board.Position.MapMoves), in the
// same order as moves.
type PolicyNetwork interface {
	Priors(p board.Position, moves []board.Move) []float32
}

// ScalarForward is the single-logit form of a value head.
type ScalarForward func(p board.Position) (logit float32)

// ScalarAdapter lifts a ScalarForward into a ValueNetwork by treating the
// logit as a win-probability logit with zero draw chance, per spec.md §6
// ("the spec supports either by treating the scalar form as
// (sigmoid(logit), 0)").
type ScalarAdapter struct {
	Forward_ ScalarForward
}

// NewScalarAdapter wraps fwd as a ValueNetwork.
func NewScalarAdapter(fwd ScalarForward) ScalarAdapter {
	return ScalarAdapter{Forward_: fwd}
}

func sigmoid(x float32) float32 {
	return 1 / (1 + math32.Exp(-x))
}

// Forward implements ValueNetwork.
func (s ScalarAdapter) Forward(p board.Position) (win, draw, loss float32) {
	w := sigmoid(s.Forward_(p))
	return w, 0, 1 - w
}
