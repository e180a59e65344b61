package search

// SearchLimits composes optional caps on iterations, elapsed time, and
// nodes, combined by logical OR (spec.md §3/§4.I).
type SearchLimits struct {
	maxIters   uint64
	maxTimeMs  uint64
	maxNodes   uint64
}

// NewSearchLimits returns a limits set with every cap disabled.
func NewSearchLimits() *SearchLimits {
	return &SearchLimits{}
}

func (l *SearchLimits) WithMaxIters(n uint64) *SearchLimits {
	l.maxIters = n
	return l
}

func (l *SearchLimits) WithMaxTimeMs(ms uint64) *SearchLimits {
	l.maxTimeMs = ms
	return l
}

func (l *SearchLimits) WithMaxNodes(n uint64) *SearchLimits {
	l.maxNodes = n
	return l
}

// IsLimitReached reports whether any configured cap is exceeded.
func (l *SearchLimits) IsLimitReached(stats *SearchStats, totalNodes uint64) bool {
	if l.maxIters > 0 && stats.Iters() >= l.maxIters {
		return true
	}
	if l.maxTimeMs > 0 && stats.ElapsedMs() >= l.maxTimeMs {
		return true
	}
	if l.maxNodes > 0 && totalNodes >= l.maxNodes {
		return true
	}
	return false
}
