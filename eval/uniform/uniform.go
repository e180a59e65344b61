// Package uniform provides a deterministic PolicyNetwork/ValueNetwork pair
// used by the test suite (spec.md §8 scenarios S1-S6 call for a
// "deterministic evaluator: value = 0, policy = uniform") and by the CLI
// front ends when no trained model is configured.
package uniform

import "github.com/corvidchess/corvid/board"

// Network is a PolicyNetwork and ValueNetwork that never consults any
// weights: every legal move gets an equal prior, and every position not
// already known to be terminal is scored as dead even.
type Network struct{}

// New returns a ready-to-use uniform network.
func New() Network { return Network{} }

// Priors implements eval.PolicyNetwork.
func (Network) Priors(_ board.Position, moves []board.Move) []float32 {
	n := len(moves)
	if n == 0 {
		return nil
	}
	out := make([]float32, n)
	p := float32(1) / float32(n)
	for i := range out {
		out[i] = p
	}
	return out
}

// Forward implements eval.ValueNetwork. It models the "value = 0" reference
// evaluator from spec.md §8: a zero scalar logit, which under the
// sigmoid(logit) convention of spec.md §6 is a dead-even 50/50 position
// with no drawing chance.
func (Network) Forward(_ board.Position) (win, draw, loss float32) {
	return 0.5, 0, 0.5
}
