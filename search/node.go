package search

import (
	"sync/atomic"
)

// NodeIndex encodes (generation, segment, slot) into a single 64-bit value
// so it fits an atomic.Uint64 on an Edge, per spec.md §3 ("A node index
// encodes (segment_id, slot_id)"), extended with a generation tag so a
// stale index into a recycled segment can be detected (spec.md §4.D/§5).
type NodeIndex uint64

// NullIndex is the sentinel for "no child yet".
const NullIndex NodeIndex = ^NodeIndex(0)

const (
	slotBits = 32
	segBits  = 8
	segShift = slotBits
	genShift = slotBits + segBits
)

func makeNodeIndex(segID, slot, generation uint32) NodeIndex {
	return NodeIndex(uint64(generation)<<genShift | uint64(segID)<<segShift | uint64(slot))
}

func (idx NodeIndex) segment() uint32 {
	return uint32((uint64(idx) >> segShift) & (1<<segBits - 1))
}

func (idx NodeIndex) slot() uint32 {
	return uint32(uint64(idx) & (1<<slotBits - 1))
}

func (idx NodeIndex) generation() uint32 {
	return uint32(uint64(idx) >> genShift)
}

// IsNull reports whether idx is the NULL sentinel.
func (idx NodeIndex) IsNull() bool { return idx == NullIndex }

// Node is a shared, concurrently mutated tree node: a terminal
// classification and a lazily-allocated, length-immutable-once-set action
// list (spec.md §3 "Node").
type Node struct {
	state atomic.Uint32
	edges atomic.Pointer[[]Edge]
}

func (n *Node) reset() {
	n.state.Store(UnresolvedState.pack())
	n.edges.Store(nil)
}

// State returns the node's current terminal classification.
func (n *Node) State() GameState {
	return unpackState(n.state.Load())
}

// IsTerminal reports whether this node's game state blocks expansion.
func (n *Node) IsTerminal() bool {
	return n.State().IsTerminal()
}

// SetState stores st unconditionally. Used when a node is first created
// from a terminal check on its position (spec.md §4.D).
func (n *Node) SetState(st GameState) {
	n.state.Store(st.pack())
}

// trySetMate updates the node to a proven mate state, but only the first
// time: once Won/Lost is set it is never regressed to Unresolved or Drawn,
// and this implementation does not contest an existing mate classification
// either, keeping the monotonicity invariant (spec.md §8 property 5) trivial
// to uphold under concurrent writers.
func (n *Node) trySetMate(st GameState) bool {
	for {
		old := n.state.Load()
		oldState := unpackState(old)
		if oldState.IsTerminal() {
			return false
		}
		if n.state.CompareAndSwap(old, st.pack()) {
			return true
		}
	}
}

// HasChildren reports whether this node has been expanded.
func (n *Node) HasChildren() bool {
	return n.edges.Load() != nil
}

// Edges returns the node's action list, or nil if unexpanded.
func (n *Node) Edges() []Edge {
	p := n.edges.Load()
	if p == nil {
		return nil
	}
	return *p
}

// EdgeAt returns a pointer to the edge at slot, for in-place atomic updates.
// Callers must only call this after confirming HasChildren().
func (n *Node) EdgeAt(slot int) *Edge {
	p := n.edges.Load()
	return &(*p)[slot]
}

// NumEdges returns the number of edges this node was expanded with, or 0 if
// it is not yet expanded.
func (n *Node) NumEdges() int {
	p := n.edges.Load()
	if p == nil {
		return 0
	}
	return len(*p)
}

// tryExpand claims first-expander rights via a CAS on the edges pointer: the
// winner's built slice becomes visible to everyone atomically, and losers
// simply observe HasChildren() true on their next check (spec.md §5). A
// losing caller is returned false and must not use edges built locally.
func (n *Node) tryExpand(edges []Edge) bool {
	return n.edges.CompareAndSwap(nil, &edges)
}
