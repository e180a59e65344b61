package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashTableStoreProbe(t *testing.T) {
	h := NewHashTable(1 << 12)
	key := uint64(0xDEADBEEFCAFEBABE)
	s := Score{Win: 0.6, Draw: 0.1}
	h.Store(key, s)

	got, ok := h.Probe(key)
	assert.True(t, ok)
	assert.InDelta(t, s.Win, got.Win, 1.0/fixed16Max)
	assert.InDelta(t, s.Draw, got.Draw, 1.0/fixed16Max)
}

func TestHashTableMissOnUnseenKey(t *testing.T) {
	h := NewHashTable(1 << 12)
	_, ok := h.Probe(0x1234)
	assert.False(t, ok)
}

func TestHashTableAlwaysReplaceOnCollision(t *testing.T) {
	h := NewHashTable(8) // a single slot
	h.Store(0x0000000100000000, Score{Win: 1})
	h.Store(0x0000000200000000, Score{Win: 0})

	got, ok := h.Probe(0x0000000200000000)
	assert.True(t, ok)
	assert.InDelta(t, float32(0), got.Win, 1.0/fixed16Max)

	_, ok = h.Probe(0x0000000100000000)
	assert.False(t, ok, "the older entry must have been evicted, not chained")
}

func TestHashTableClear(t *testing.T) {
	h := NewHashTable(1 << 10)
	h.Store(42, Score{Win: 1})
	h.Clear()
	_, ok := h.Probe(42)
	assert.False(t, ok)
}
