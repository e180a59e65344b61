package search

import (
	"github.com/corvidchess/corvid/board"
	"github.com/corvidchess/corvid/eval"
)

// stateOf classifies position as the GameState a freshly-allocated node
// should carry, per spec.md §4.D: drawn by the fifty-move rule, insufficient
// material, or repetition; lost-in-zero if the side to move has no legal
// moves and is in check (checkmate); drawn if it has none and is not
// (stalemate); Unresolved otherwise.
func stateOf(position board.Position) GameState {
	if position.IsInsufficientMaterial() || position.IsRepetition() || position.HalfMoveCounter() >= 100 {
		return DrawnState
	}

	hasMove := false
	position.MapMoves(func(board.Move) {
		hasMove = true
	})
	if !hasMove {
		if position.IsInCheck() {
			return LostState(0)
		}
		return DrawnState
	}
	return UnresolvedState
}

// PositionState is the exported form of stateOf, for callers outside this
// package (the self-play driver) that need to classify a position's
// terminal status the same way the tree does (spec.md §4.B).
func PositionState(position board.Position) GameState {
	return stateOf(position)
}

// evaluateLeaf returns a value estimate for position from the side-to-move's
// perspective, consulting the tree's transposition cache first and falling
// back to network.Forward on a miss, per spec.md §4.C/§4.F. loss is
// discarded since Score only stores (win, draw). The result has
// EngineOptions.MaterialReductionBonus folded in when position supports it
// (spec.md §6).
func evaluateLeaf(tree *Tree, network eval.ValueNetwork, position board.Position) Score {
	key := position.HashKey()
	var s Score
	if cached, ok := tree.HashTable().Probe(key); ok {
		s = cached
	} else {
		win, draw, _ := network.Forward(position)
		s = NewScore(win, draw)
		tree.HashTable().Store(key, s)
	}
	return applyMaterialBonus(tree.Options(), position, s)
}

// applyMaterialBonus adds EngineOptions.MaterialReductionBonus()/10 to s.Win,
// signed by which side the material favors, when position implements
// board.MaterialAware. A zero bonus or a balanced position is a no-op.
func applyMaterialBonus(opts EngineOptions, position board.Position, s Score) Score {
	bonus := opts.MaterialReductionBonus()
	if bonus == 0 {
		return s
	}
	ma, ok := position.(board.MaterialAware)
	if !ok {
		return s
	}
	balance := ma.MaterialBalance()
	if balance == 0 {
		return s
	}
	adj := bonus / 10
	if balance < 0 {
		adj = -adj
	}
	return Score{Win: saturate(s.Win + adj), Draw: s.Draw}
}

// collectMoves enumerates position's legal moves into a freshly allocated
// slice, for callers (expansion, policy priors) that need random access
// rather than a push-style callback.
func collectMoves(position board.Position) []board.Move {
	var moves []board.Move
	position.MapMoves(func(mv board.Move) {
		moves = append(moves, mv)
	})
	return moves
}
