package search

import (
	"sort"
	"strings"

	"github.com/corvidchess/corvid/board"
)

// PVLine is one ranked root line: the move sequence plus the root edge's own
// visit count and running score, for multi-PV reporting (spec.md §4.I).
type PVLine struct {
	Moves  []board.Move
	Visits uint32
	Score  Score
}

// PrincipalVariations reports the top MultiPV() root lines, ranked by visit
// count with ties broken by score, matching the ranking Tree.GetPVs uses
// internally.
func (m *Mcts) PrincipalVariations() []PVLine {
	k := m.options.MultiPV()
	if k < 1 {
		k = 1
	}

	root := m.tree.Root()
	n := root.NumEdges()
	type candidate struct {
		slot   int
		visits uint32
		scalar float32
	}
	cands := make([]candidate, n)
	for i := 0; i < n; i++ {
		e := root.EdgeAt(i)
		cands[i] = candidate{i, e.Visits(), e.Score().Scalar()}
	}
	sort.Slice(cands, func(a, b int) bool {
		if cands[a].visits != cands[b].visits {
			return cands[a].visits > cands[b].visits
		}
		return cands[a].scalar > cands[b].scalar
	})
	if k > len(cands) {
		k = len(cands)
	}

	lines := make([]PVLine, 0, k)
	for i := 0; i < k; i++ {
		e := root.EdgeAt(cands[i].slot)
		moves := []board.Move{e.Move()}
		if child := e.ChildIndex(); !child.IsNull() {
			moves = append(moves, m.tree.pvFrom(child)...)
		}
		lines = append(lines, PVLine{Moves: moves, Visits: e.Visits(), Score: e.Score()})
	}
	return lines
}

// FormatPV renders a move sequence as a space-separated UCI string, for log
// lines and CLI output.
func FormatPV(moves []board.Move) string {
	parts := make([]string, len(moves))
	for i, mv := range moves {
		parts[i] = mv.UCI
	}
	return strings.Join(parts, " ")
}
