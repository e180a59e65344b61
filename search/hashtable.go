package search

import "sync/atomic"

// HashTable is the lossy transposition cache of spec.md §4.C: a fixed-size
// slot array indexed by the low 32 bits of a position key, verified against
// a tag taken from the high 32 bits (see tag), that silently overwrites on
// collision. It is advisory —
// correctness never depends on a hit, so it needs no locking: stores are two
// relaxed atomic writes, reads two relaxed atomic loads. A torn read is
// harmless because the verification key would then mismatch; the only
// failure mode is a false-positive hit formed from a torn-but-plausible
// update, which is acceptable for an advisory cache.
type HashTable struct {
	entries []hashEntry
}

type hashEntry struct {
	keyHi atomic.Uint32
	score AtomicScore
}

// NewHashTable sizes the table by bytes; entry count is bytes/8, matching
// the 64-bit-slot layout described in spec.md §4.C.
func NewHashTable(sizeInBytes int) *HashTable {
	n := sizeInBytes / 8
	if n < 1 {
		n = 1
	}
	return &HashTable{entries: make([]hashEntry, n)}
}

func (h *HashTable) index(key uint64) uint64 {
	keyLo := key & 0xFFFFFFFF
	return (keyLo * uint64(len(h.entries))) >> 32
}

// tag is the verification word stored for key: its high 32 bits with the
// lowest bit forced to 1, so an empty (zero) slot never verifies.
func tag(key uint64) uint32 {
	return uint32(key>>32) | 1
}

// Probe returns the cached score for key, and whether the slot's tag matched.
func (h *HashTable) Probe(key uint64) (Score, bool) {
	idx := h.index(key)
	entry := &h.entries[idx]
	if entry.keyHi.Load() != tag(key) {
		return Score{}, false
	}
	return entry.score.Load(), true
}

// Store records score under key, always-replace on collision.
func (h *HashTable) Store(key uint64, score Score) {
	idx := h.index(key)
	entry := &h.entries[idx]
	entry.keyHi.Store(tag(key))
	entry.score.Store(score)
}

// Clear resets every slot, discarding all cached scores. Fields are reset via
// Store rather than overwritten with a zero-value hashEntry{}, since entries
// embed atomics that must never be copied by value.
func (h *HashTable) Clear() {
	for i := range h.entries {
		entry := &h.entries[i]
		entry.keyHi.Store(0)
		entry.score.Store(Score{})
	}
}

// Len reports the number of slots.
func (h *HashTable) Len() int { return len(h.entries) }
