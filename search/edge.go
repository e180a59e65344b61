package search

import (
	"sync/atomic"

	"github.com/corvidchess/corvid/board"
)

// Edge is the per-move slot attached to an expanded Node: a possibly-NULL
// child node index, the move it represents, its policy prior, and the
// atomically-mutated visit/score accumulators (spec.md §3 "Edge").
//
// Visit count and packed score are separate atomics: a reader may observe
// visits incremented before total_score is updated, and vice versa. PUCT
// tolerates this one-iteration skew (spec.md §5).
type Edge struct {
	child  atomic.Uint64 // NodeIndex, NullIndex until resolved
	move   board.Move
	prior  float32 // written once at expansion, read-only thereafter
	visits atomic.Uint32
	score  AtomicScore
}

// newEdge builds an edge for mv with the given policy prior, unresolved.
func newEdge(mv board.Move, prior float32) Edge {
	e := Edge{move: mv, prior: prior}
	e.child.Store(uint64(NullIndex))
	return e
}

// Move returns the move this edge represents.
func (e *Edge) Move() board.Move { return e.move }

// Policy returns the policy prior assigned at expansion time.
func (e *Edge) Policy() float32 { return e.prior }

// Visits returns the number of descents that have traversed this edge.
func (e *Edge) Visits() uint32 { return e.visits.Load() }

// ChildIndex returns the resolved child node index, or NullIndex if this
// edge has never been descended into.
func (e *Edge) ChildIndex() NodeIndex { return NodeIndex(e.child.Load()) }

// Score returns the current running-average score accumulated on this edge.
func (e *Edge) Score() Score { return e.score.Load() }

// Clone returns a value snapshot of this edge's atomic fields, matching the
// "snapshot clone of the edge that led here" passed down each recursion
// frame in spec.md §4.F.
func (e *Edge) Clone() EdgeSnapshot {
	return EdgeSnapshot{
		Move:   e.move,
		Prior:  e.prior,
		Visits: e.Visits(),
		Score:  e.Score(),
		Child:  e.ChildIndex(),
	}
}

// EdgeSnapshot is a consistent-enough point-in-time copy of an Edge, safe to
// hold across a recursive call without further synchronization.
type EdgeSnapshot struct {
	Move   board.Move
	Prior  float32
	Visits uint32
	Score  Score
	Child  NodeIndex
}

// AddScore increments this edge's visit count and then folds a new leaf
// evaluation into its running average. This is the single mutation
// point spec.md §4.F calls "add_edge_score": visits and total_score are
// updated as two separate atomics, deliberately not combined under a lock.
func (e *Edge) AddScore(score Score) {
	n := e.visits.Add(1)
	old := e.score.Load()
	delta := Score{
		Win:  (score.Win - old.Win) / float32(n),
		Draw: (score.Draw - old.Draw) / float32(n),
	}
	e.score.Add(delta)
}

// resolveChild attempts to publish newIdx as this edge's child, but only if
// the edge still points at expected (typically NullIndex or a now-stale
// index). On a losing race it returns whatever another worker already
// published, so callers always get a usable index.
func (e *Edge) resolveChild(expected, newIdx NodeIndex) NodeIndex {
	if e.child.CompareAndSwap(uint64(expected), uint64(newIdx)) {
		return newIdx
	}
	return NodeIndex(e.child.Load())
}
