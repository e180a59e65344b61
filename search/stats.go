package search

import (
	"sync/atomic"
	"time"
)

// SearchStats holds the atomics named in spec.md §4.I: iteration count,
// summed/maximum depth, and elapsed time, with avg_depth derived on read.
// update_time_passed is read from a monotonic clock and is intended to be
// called from the primary worker only.
type SearchStats struct {
	iters     atomic.Uint64
	sumDepth  atomic.Uint64
	maxDepth  atomic.Uint64
	elapsedMs atomic.Uint64

	start time.Time
}

// NewSearchStats returns a zeroed stats block with its clock started now.
func NewSearchStats() *SearchStats {
	return &SearchStats{start: time.Now()}
}

// AddIteration records one completed descent of the given depth.
func (s *SearchStats) AddIteration(depth uint32) {
	s.iters.Add(1)
	s.sumDepth.Add(uint64(depth))
	for {
		cur := s.maxDepth.Load()
		if uint64(depth) <= cur {
			break
		}
		if s.maxDepth.CompareAndSwap(cur, uint64(depth)) {
			break
		}
	}
}

// Iters returns the number of completed iterations.
func (s *SearchStats) Iters() uint64 { return s.iters.Load() }

// AvgDepth returns sum_depth/iters, or 0 before the first iteration.
func (s *SearchStats) AvgDepth() uint64 {
	n := s.iters.Load()
	if n == 0 {
		return 0
	}
	return s.sumDepth.Load() / n
}

// MaxDepth returns the deepest descent observed so far.
func (s *SearchStats) MaxDepth() uint64 { return s.maxDepth.Load() }

// ElapsedMs returns the elapsed time as of the last UpdateTimePassed call.
func (s *SearchStats) ElapsedMs() uint64 { return s.elapsedMs.Load() }

// UpdateTimePassed refreshes ElapsedMs from the monotonic clock. Called
// from the primary worker only, per spec.md §4.I.
func (s *SearchStats) UpdateTimePassed() {
	s.elapsedMs.Store(uint64(time.Since(s.start).Milliseconds()))
}
