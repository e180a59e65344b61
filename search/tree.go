package search

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/corvidchess/corvid/board"
)

// RootIndex is the pinned slot the root node lives in, outside the ordinary
// segments (spec.md §3 "The root resides in a pinned slot outside ordinary
// segments").
const RootIndex NodeIndex = NullIndex - 1

const (
	defaultSegments      = 8
	approxBytesPerNode   = 96
	minNodesPerSegment   = 256
)

type segmentSlab struct {
	nodes      []Node
	bump       atomic.Uint32
	generation atomic.Uint32
}

// Tree is the segmented arena of spec.md §4.D: a fixed memory budget split
// into K equal-sized segments, a pinned root slot, and a lossy transposition
// cache alongside it.
type Tree struct {
	options   EngineOptions
	hashTable *HashTable

	segments    []*segmentSlab
	numSegments int
	segSize     int
	young       atomic.Uint32
	usage       atomic.Int64

	root     Node
	rootEdge Edge

	mu sync.Mutex
}

// NewTree allocates a tree sized per opts.TreeBytes()/opts.HashBytes().
func NewTree(opts EngineOptions) *Tree {
	nodeBudget := opts.TreeBytes() / approxBytesPerNode
	if nodeBudget < defaultSegments*minNodesPerSegment {
		nodeBudget = defaultSegments * minNodesPerSegment
	}
	segSize := nodeBudget / defaultSegments

	t := &Tree{
		options:     opts,
		hashTable:   NewHashTable(opts.HashBytes()),
		numSegments: defaultSegments,
		segSize:     segSize,
	}
	t.segments = make([]*segmentSlab, defaultSegments)
	for i := range t.segments {
		t.segments[i] = &segmentSlab{nodes: make([]Node, segSize)}
	}
	t.root.reset()
	t.rootEdge = newEdge(board.Move{}, 1)
	return t
}

// Options returns the tree's configuration.
func (t *Tree) Options() EngineOptions { return t.options }

// HashTable returns the tree's transposition cache.
func (t *Tree) HashTable() *HashTable { return t.hashTable }

// RootIndex returns the pinned root's index.
func (t *Tree) RootIndex() NodeIndex { return RootIndex }

// RootEdge returns the synthetic edge whose child is always the root,
// matching spec.md §4.F's "edge that led here" passed into the outermost
// recursion frame.
func (t *Tree) RootEdge() *Edge { return &t.rootEdge }

// Root returns the root node.
func (t *Tree) Root() *Node { return &t.root }

// At returns a pointer to the node at idx. idx must be RootIndex or a valid,
// currently-live index previously returned by GetNodeIndex.
func (t *Tree) At(idx NodeIndex) *Node {
	return t.nodeAt(idx)
}

func (t *Tree) nodeAt(idx NodeIndex) *Node {
	if idx == RootIndex {
		return &t.root
	}
	seg := t.segments[idx.segment()]
	return &seg.nodes[idx.slot()]
}

// isValid reports whether idx still names a live node: the root is always
// live, and an ordinary index is live only while its segment's generation
// matches the one it was stamped with at allocation time.
func (t *Tree) isValid(idx NodeIndex) bool {
	if idx == NullIndex {
		return false
	}
	if idx == RootIndex {
		return true
	}
	seg := t.segments[idx.segment()]
	return seg.generation.Load() == idx.generation()
}

func (t *Tree) allocNode() (NodeIndex, bool) {
	segID := t.young.Load()
	seg := t.segments[segID]
	slot := seg.bump.Add(1) - 1
	if slot >= uint32(t.segSize) {
		return NullIndex, false
	}
	node := &seg.nodes[slot]
	node.reset()
	idx := makeNodeIndex(segID, slot, seg.generation.Load())
	t.usage.Add(1)
	return idx, true
}

// GetNodeIndex resolves the child node for an edge, per spec.md §4.D: if the
// edge already points at a valid node in a live segment, that index is
// returned as-is. Otherwise a new node is allocated in the young segment,
// its GameState initialized from stateOf(position), and its index published
// back into the edge. Returns false if allocation failed, signalling the
// caller to bail out and let the driver cycle segments.
func (t *Tree) GetNodeIndex(position board.Position, existing NodeIndex, parentIdx NodeIndex, slot int) (NodeIndex, bool) {
	if t.isValid(existing) {
		return existing, true
	}

	newIdx, ok := t.allocNode()
	if !ok {
		return NullIndex, false
	}
	node := t.nodeAt(newIdx)
	node.SetState(stateOf(position))

	parent := t.nodeAt(parentIdx)
	edge := parent.EdgeAt(slot)
	winner := edge.resolveChild(existing, newIdx)
	if t.isValid(winner) {
		return winner, true
	}
	return newIdx, true
}

// AddEdgeScore folds score into the edge at (parentIdx, slot).
func (t *Tree) AddEdgeScore(parentIdx NodeIndex, slot int, score Score) {
	t.nodeAt(parentIdx).EdgeAt(slot).AddScore(score)
}

// GetEdgeClone returns a point-in-time snapshot of the edge at (parentIdx, slot).
func (t *Tree) GetEdgeClone(parentIdx NodeIndex, slot int) EdgeSnapshot {
	return t.nodeAt(parentIdx).EdgeAt(slot).Clone()
}

// BackpropagateMates applies spec.md §4.D's mate-propagation rule: a Lost
// child forces its parent to a Won state one ply further out; a parent all
// of whose children are proven Won becomes Lost at one past the shortest
// child mate. Anything else leaves the parent unchanged.
func (t *Tree) BackpropagateMates(parentIdx NodeIndex, childState GameState) {
	parent := t.nodeAt(parentIdx)

	if childState.Kind() == Lost {
		parent.trySetMate(WonState(childState.Plies() + 1))
		return
	}
	if childState.Kind() != Won {
		return
	}

	n := parent.NumEdges()
	if n == 0 {
		return
	}
	var minPlies uint16
	first := true
	for i := 0; i < n; i++ {
		childIdx := parent.EdgeAt(i).ChildIndex()
		if childIdx.IsNull() {
			return
		}
		st := t.nodeAt(childIdx).State()
		if st.Kind() != Won {
			return
		}
		if first || st.Plies() < minPlies {
			minPlies = st.Plies()
			first = false
		}
	}
	parent.trySetMate(LostState(minPlies + 1))
}

// protectedSegments reports which segments currently hold one of the root's
// direct children, so AdvanceSegments can avoid recycling them: "the root
// and its immediate children are preserved across cycles" (spec.md §4.D).
func (t *Tree) protectedSegments() map[uint32]bool {
	protected := map[uint32]bool{}
	n := t.root.NumEdges()
	for i := 0; i < n; i++ {
		idx := t.root.EdgeAt(i).ChildIndex()
		if !idx.IsNull() && idx != RootIndex {
			protected[idx.segment()] = true
		}
	}
	return protected
}

// AdvanceSegments promotes the young-segment pointer to the next segment not
// currently protecting one of the root's children, marking it reclaimable by
// bumping its generation and resetting its bump pointer (spec.md §4.D).
// It is a no-op if every segment is currently protected.
func (t *Tree) AdvanceSegments() {
	t.mu.Lock()
	defer t.mu.Unlock()

	protected := t.protectedSegments()
	cur := t.young.Load()
	for i := 1; i <= t.numSegments; i++ {
		next := (cur + uint32(i)) % uint32(t.numSegments)
		if protected[next] {
			continue
		}
		seg := t.segments[next]
		seg.generation.Add(1)
		seg.bump.Store(0)
		t.young.Store(next)
		return
	}
}

// Clear discards every allocated node (by bumping every segment's
// generation) and resets the root, but leaves the transposition cache
// intact — it has its own Clear per spec.md §4.C.
func (t *Tree) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, seg := range t.segments {
		seg.generation.Add(1)
		seg.bump.Store(0)
	}
	t.young.Store(0)
	t.usage.Store(0)
	t.root.reset()
	t.rootEdge = newEdge(board.Move{}, 1)
}

// TotalUsage reports the number of nodes allocated since the last Clear
// (approximately; segment cycling does not decrement it).
func (t *Tree) TotalUsage() int64 { return t.usage.Load() }

func (t *Tree) pvFrom(idx NodeIndex) []board.Move {
	var pv []board.Move
	for {
		node := t.nodeAt(idx)
		// The starting node is walked even when proven terminal, so a root
		// found Won or Lost mid-search still yields its best move.
		if (node.IsTerminal() && len(pv) > 0) || !node.HasChildren() {
			return pv
		}
		n := node.NumEdges()
		best := -1
		var bestVisits uint32
		var bestScalar float32
		for i := 0; i < n; i++ {
			e := node.EdgeAt(i)
			v := e.Visits()
			s := e.Score().Scalar()
			if best == -1 || v > bestVisits || (v == bestVisits && s > bestScalar) {
				best, bestVisits, bestScalar = i, v, s
			}
		}
		if best == -1 {
			return pv
		}
		e := node.EdgeAt(best)
		pv = append(pv, e.Move())
		child := e.ChildIndex()
		if child.IsNull() {
			return pv
		}
		idx = child
	}
}

// GetPV walks the visits-maximizing child from the root, breaking ties by
// score.Scalar(), stopping at a NULL child, an unexpanded node, or a terminal
// state below the root.
func (t *Tree) GetPV() []board.Move {
	return t.pvFrom(RootIndex)
}

// GetPVs reports the top k principal variations from the root, ranked by
// visit count (ties broken by score).
func (t *Tree) GetPVs(k int) [][]board.Move {
	root := &t.root
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
	out := make([][]board.Move, 0, k)
	for i := 0; i < k; i++ {
		e := root.EdgeAt(cands[i].slot)
		line := []board.Move{e.Move()}
		if child := e.ChildIndex(); !child.IsNull() {
			line = append(line, t.pvFrom(child)...)
		}
		out = append(out, line)
	}
	return out
}
