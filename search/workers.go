package search

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/corvidchess/corvid/board"
	"github.com/corvidchess/corvid/eval"
)

// segmentCycleInterval is how many iterations the primary worker runs
// between AdvanceSegments calls. Cycling every iteration would serialize the
// whole pool on the tree's mutex for no benefit; cycling too rarely lets a
// deep search exhaust its young segment before a cycle ever happens.
const segmentCycleInterval = 1024

// statsPollInterval is how many iterations pass between UpdateTimePassed
// calls: a per-iteration time.Now() would dominate the hot loop, so the
// clock is polled periodically instead, matching the original main_loop's
// "if iters % 128 == 0" cadence. Iteration/node limits are still checked
// every iteration since they need no clock read.
const statsPollInterval = 128

// Search runs a parallel MCTS search from rootPosition to completion,
// matching spec.md §4.H's worker pool: opts.Threads() goroutines share one
// Tree, one designated as primary (limit-checking, segment cycling, and
// signalling interruption) and the rest as helpers that iterate, poll the
// interruption token, and set it once the root is terminal. No progress
// reports are emitted. rootPosition is read-only to Search; each goroutine
// clones it per descent.
func Search(tree *Tree, rootPosition board.Position, value eval.ValueNetwork, policy eval.PolicyNetwork, limits *SearchLimits) (*Mcts, *SearchStats) {
	m := NewMcts(tree, value, policy)
	m.PrepareRoot(rootPosition)

	stats := NewSearchStats()
	var interrupted atomic.Bool

	threads := tree.Options().Threads()
	if threads < 1 {
		threads = 1
	}

	var wg sync.WaitGroup
	wg.Add(threads)
	for w := 0; w < threads; w++ {
		isPrimary := w == 0
		go func() {
			defer wg.Done()
			if isPrimary {
				primaryLoop(m, tree, rootPosition, stats, limits, &interrupted)
			} else {
				helperLoop(m, rootPosition, &interrupted)
			}
		}()
	}
	wg.Wait()

	return m, stats
}

func primaryLoop(m *Mcts, tree *Tree, rootPosition board.Position, stats *SearchStats, limits *SearchLimits, interrupted *atomic.Bool) {
	iter := uint64(0)
	for {
		if interrupted.Load() {
			return
		}
		if ok := m.Iterate(rootPosition, stats); !ok {
			// Young segment exhausted mid-descent: the iteration produced no
			// score, so it doesn't count. Cycle segments now and retry.
			tree.AdvanceSegments()
			continue
		}
		iter++

		if tree.Root().IsTerminal() {
			interrupted.Store(true)
			return
		}

		if iter%segmentCycleInterval == 0 {
			tree.AdvanceSegments()
		}

		if iter%statsPollInterval == 0 {
			stats.UpdateTimePassed()
		}
		if limits.IsLimitReached(stats, uint64(tree.TotalUsage())) {
			interrupted.Store(true)
			return
		}
	}
}

func helperLoop(m *Mcts, rootPosition board.Position, interrupted *atomic.Bool) {
	for {
		if interrupted.Load() {
			return
		}
		if ok := m.Iterate(rootPosition, nil); !ok {
			// Exhaustion is resolved by the primary's AdvanceSegments call;
			// just retry once it's had a chance to run.
			continue
		}

		if m.Tree().Root().IsTerminal() {
			interrupted.Store(true)
			return
		}
	}
}

// ErrNoLegalMoves is returned by BestMove when the root position has no
// legal moves to search.
var ErrNoLegalMoves = errors.New("search: root position has no legal moves")

// BestMove runs a search and returns its principal variation's first move.
func BestMove(tree *Tree, rootPosition board.Position, value eval.ValueNetwork, policy eval.PolicyNetwork, limits *SearchLimits) (board.Move, *SearchStats, error) {
	m, stats := Search(tree, rootPosition, value, policy, limits)
	pv := m.Tree().GetPV()
	if len(pv) == 0 {
		return board.Move{}, stats, ErrNoLegalMoves
	}
	return pv[0], stats, nil
}
