package search

import (
	"time"

	"golang.org/x/exp/rand"

	"github.com/corvidchess/corvid/board"
	"github.com/corvidchess/corvid/eval"
)

// Mcts ties a Tree to a pair of networks and drives individual search
// iterations, per spec.md §4.F/§4.G. It holds no position state of its own —
// every call is handed the current root position explicitly, matching the
// teacher's stateless-search-object convention.
type Mcts struct {
	tree    *Tree
	value   eval.ValueNetwork
	policy  eval.PolicyNetwork
	options EngineOptions
	rng     *rand.Rand
}

// NewMcts builds a searcher over tree using the given networks.
func NewMcts(tree *Tree, value eval.ValueNetwork, policy eval.PolicyNetwork) *Mcts {
	return &Mcts{
		tree:    tree,
		value:   value,
		policy:  policy,
		options: tree.Options(),
		rng:     rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

// PrepareRoot classifies the root node's terminal state from rootPosition.
// Must be called once before Iterate after every Tree.Clear() or position
// change, since Clear() resets the root to Unresolved unconditionally.
func (m *Mcts) PrepareRoot(rootPosition board.Position) {
	m.tree.Root().SetState(stateOf(rootPosition))
}

// expand builds node's edge list from position's legal moves and the policy
// network's priors, then claims expansion rights via tryExpand. A losing
// racer's locally-built slice is simply discarded; the winner's is what every
// subsequent visit sees (spec.md §5). Reports whether this call won the CAS,
// so the root's one-time Dirichlet noise mix (spec.md §4.G.1) is applied by
// exactly one racer.
func (m *Mcts) expand(position board.Position, node *Node) bool {
	moves := collectMoves(position)
	if len(moves) == 0 {
		return false
	}
	priors := m.policy.Priors(position, moves)
	edges := make([]Edge, len(moves))
	for i, mv := range moves {
		p := float32(1) / float32(len(moves))
		if i < len(priors) {
			p = priors[i]
		}
		edges[i] = newEdge(mv, p)
	}
	return node.tryExpand(edges)
}

// descend is one recursive step of selection: it resolves the node at
// (parentIdx, slot), evaluates or expands it per the expand-on-second-visit
// rule (spec.md §4.F/§5 — the first visit to a non-root node only evaluates;
// expansion is deferred to its second visit), and recurses through a
// PUCT-selected grandchild otherwise. The returned Score is from parent's
// perspective (i.e. already reversed once from whatever position is).
// The returned depth counts this call and everything beneath it. The final
// bool is false when the young segment was exhausted partway down this
// descent (spec.md §4.F rule 4): no score was produced, nothing was folded
// into any edge on the path, and the caller must bail out of the iteration
// entirely rather than treat the zero Score as real.
func (m *Mcts) descend(position board.Position, parent *Node, parentIdx NodeIndex, slot int) (Score, uint32, bool) {
	edge := parent.EdgeAt(slot)
	priorVisits := edge.Visits()
	firstVisit := priorVisits == 0

	childIdx, ok := m.tree.GetNodeIndex(position, edge.ChildIndex(), parentIdx, slot)
	if !ok {
		return Score{}, 0, false
	}

	node := m.tree.At(childIdx)

	if node.IsTerminal() {
		score := ScoreForState(node.State()).Reversed()
		m.tree.BackpropagateMates(parentIdx, node.State())
		edge.AddScore(score)
		return score, 1, true
	}

	if firstVisit {
		score := evaluateLeaf(m.tree, m.value, position).Reversed()
		edge.AddScore(score)
		return score, 1, true
	}

	if !node.HasChildren() {
		m.expand(position, node)
	}

	grandSlot := selectEdge(node, priorVisits, m.options.CPuctValue())
	if grandSlot == -1 {
		// Expansion produced no edges (no legal moves but stateOf missed it,
		// or a concurrent racer's slice lost the CAS and this node is still
		// seen as unexpanded): fall back to a leaf evaluation this iteration.
		score := evaluateLeaf(m.tree, m.value, position).Reversed()
		edge.AddScore(score)
		return score, 1, true
	}

	chosen := node.EdgeAt(grandSlot)
	childPosition := position.Clone()
	childPosition.MakeMove(chosen.Move())

	deeper, deeperDepth, ok := m.descend(childPosition, node, childIdx, grandSlot)
	if !ok {
		return Score{}, 0, false
	}
	score := deeper.Reversed()
	edge.AddScore(score)
	m.tree.BackpropagateMates(parentIdx, node.State())
	return score, deeperDepth + 1, true
}

// Iterate runs one full descent from the root and folds its result into
// stats, if stats is non-nil. rootPosition is never mutated; descents clone
// it before applying moves (spec.md §4.F). It returns false if the young
// segment was exhausted partway through the descent (spec.md §4.F rule 4):
// the caller must cycle segments and retry rather than count this as a
// completed iteration.
func (m *Mcts) Iterate(rootPosition board.Position, stats *SearchStats) bool {
	root := m.tree.Root()
	if root.IsTerminal() {
		return true
	}
	if !root.HasChildren() {
		if won := m.expand(rootPosition, root); won {
			if epsilon := m.options.DirichletEpsilon(); epsilon > 0 {
				ApplyRootNoise(m.tree, m.rng)
			}
		}
	}

	rootEdge := m.tree.RootEdge()
	priorVisits := rootEdge.Visits()
	slot := selectEdge(root, priorVisits, m.options.CPuctValue())
	if slot == -1 {
		return true
	}

	chosen := root.EdgeAt(slot)
	childPosition := rootPosition.Clone()
	childPosition.MakeMove(chosen.Move())

	score, depth, ok := m.descend(childPosition, root, m.tree.RootIndex(), slot)
	if !ok {
		return false
	}
	// rootEdge only tracks a visit count to drive priorVisits above; its score
	// is otherwise unused, so no perspective flip is needed here.
	rootEdge.AddScore(score)

	if stats != nil {
		stats.AddIteration(depth)
	}
	return true
}

// Tree exposes the underlying tree, e.g. for PV extraction after a search.
func (m *Mcts) Tree() *Tree { return m.tree }
