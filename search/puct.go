package search

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"
)

// selectEdge picks the edge maximizing the PUCT formula named in spec.md
// §4.E:
//
//	Q(a) + c_puct * P(a) * sqrt(max(N,1)) / (n(a)+1)
//
// where N is the parent's total visit count and Q(a) defaults to 0.5 (first
// play urgency) for an edge never yet descended into.
func selectEdge(node *Node, parentVisits uint32, cpuct float32) int {
	n := node.NumEdges()
	if n == 0 {
		return -1
	}

	sqrtN := float32(math.Sqrt(float64(maxU32(parentVisits, 1))))
	best := -1
	var bestScore float32
	for i := 0; i < n; i++ {
		e := node.EdgeAt(i)
		visits := e.Visits()
		q := float32(0.5)
		if visits > 0 {
			q = e.Score().Scalar()
		}
		u := cpuct * e.Policy() * sqrtN / float32(visits+1)
		score := q + u
		if best == -1 || score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

func maxU32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

// ApplyRootNoise mixes Dirichlet(alpha) exploration noise into the root's
// edge priors, per spec.md §4.G's documented root-noise extension hook: each
// prior becomes (1-epsilon)*prior + epsilon*noise. A non-positive epsilon
// (the default) disables this entirely, matching the teacher's opt-in
// dirichletSample field.
func ApplyRootNoise(tree *Tree, rng *rand.Rand) {
	opts := tree.Options()
	epsilon := opts.DirichletEpsilon()
	if epsilon <= 0 {
		return
	}

	root := tree.Root()
	n := root.NumEdges()
	if n < 2 {
		return
	}

	alpha := make([]float64, n)
	for i := range alpha {
		alpha[i] = opts.DirichletAlpha()
	}
	dir, ok := distmv.NewDirichlet(alpha, rng)
	if !ok {
		return
	}
	noise := dir.Rand(nil)

	for i := 0; i < n; i++ {
		e := root.EdgeAt(i)
		e.prior = (1-epsilon)*e.prior + epsilon*float32(noise[i])
	}
}
