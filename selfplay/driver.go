package selfplay

import (
	"log"

	rng "github.com/leesper/go_rng"
	"github.com/pkg/errors"

	"github.com/corvidchess/corvid/board"
	"github.com/corvidchess/corvid/eval"
	"github.com/corvidchess/corvid/search"
)

// Opening constructs a fresh starting board.Position; the curated set
// handed to NewDriver is a slice of these (spec.md §4.J step 1).
type Opening func() board.Position

// Driver runs self-play games against one pair of networks, producing
// packed training samples. Each Driver owns its own Tree and RNG stream so
// many can run concurrently, one per goroutine, without contention
// (spec.md §5 "embarrassingly parallel across games").
type Driver struct {
	tree     *search.Tree
	value    eval.ValueNetwork
	policy   eval.PolicyNetwork
	limits   *search.SearchLimits
	openings []Opening
	opener   *rng.UniformGenerator
	sink     *Sink
	logger   *log.Logger
}

// NewDriver builds a Driver over a freshly allocated tree sized per opts.
// seed gives this driver's opening sampler an independent stream so several
// Drivers can run in parallel without sharing an RNG.
func NewDriver(opts search.EngineOptions, value eval.ValueNetwork, policy eval.PolicyNetwork, limits *search.SearchLimits, openings []Opening, seed int64, sink *Sink, logger *log.Logger) *Driver {
	if logger == nil {
		logger = log.Default()
	}
	return &Driver{
		tree:     search.NewTree(opts),
		value:    value,
		policy:   policy,
		limits:   limits,
		openings: openings,
		opener:   rng.NewUniformGenerator(seed),
		sink:     sink,
		logger:   logger,
	}
}

func bestRootScalar(root *search.Node) float32 {
	n := root.NumEdges()
	best := -1
	var bestVisits uint32
	for i := 0; i < n; i++ {
		e := root.EdgeAt(i)
		if best == -1 || e.Visits() > bestVisits {
			best, bestVisits = i, e.Visits()
		}
	}
	if best == -1 {
		return 0.5
	}
	return root.EdgeAt(best).Score().Scalar()
}

// PlayGame runs one game from a randomly sampled opening to a terminal
// position, then enqueues its labelled samples on the sink (spec.md §4.J).
// It returns an error only when the finished game's samples could not be
// marshalled; a position that can't be packed into a Sample mid-game is
// logged and that one ply is dropped instead of aborting the whole game.
func (d *Driver) PlayGame() error {
	idx := d.opener.Int64Range(0, int64(len(d.openings)))
	position := d.openings[idx]()

	d.tree.Clear()

	var samples []Sample
	state := search.UnresolvedState

	for {
		state = search.PositionState(position)
		if state.Kind() != search.Unresolved {
			break
		}

		// The source clears the tree on every ply; reusing the subtree
		// across plies is out of scope (spec.md §4.J step 3a).
		d.tree.Clear()

		m, _ := search.Search(d.tree, position, d.value, d.policy, d.limits)
		pv := m.Tree().GetPV()
		if len(pv) == 0 {
			d.logger.Printf("selfplay: no legal moves found mid-game, ending early")
			break
		}
		bestMove := pv[0]
		bestScore := bestRootScalar(m.Tree().Root())

		sample, sampleErr := NewSample(position, bestScore)
		if sampleErr != nil {
			d.logger.Printf("selfplay: %v", sampleErr)
		}

		position.MakeMove(bestMove)
		nextState := search.PositionState(position)
		if nextState.Kind() != search.Unresolved {
			// The position this move produced is terminal: this ply's
			// sample carries no search signal, so it is discarded
			// (spec.md §4.J step 3e).
			state = nextState
			break
		}
		if sampleErr == nil {
			samples = append(samples, sample)
		}
	}

	labelled := LabelGame(samples, state, position)
	if len(labelled) == 0 {
		return nil
	}
	blob, err := MarshalSamples(labelled)
	if err != nil {
		return errors.Wrap(err, "selfplay: marshalling finished game")
	}
	d.sink.Push(blob)
	return nil
}

// LabelGame assigns Result to every recorded sample from the final state of
// the game, per spec.md §4.J step 4: a draw labels everything ResultDraw;
// otherwise the loser is the side to move at the final terminal position,
// and every sample recorded for that side is a loss, every other a win.
// finalState.Kind() other than Drawn/Lost (i.e. still Unresolved, meaning
// the driver bailed out early) yields no labelled samples at all.
func LabelGame(samples []Sample, finalState search.GameState, finalPosition board.Position) []Sample {
	switch finalState.Kind() {
	case search.Drawn:
		for i := range samples {
			samples[i].Result = ResultDraw
		}
		return samples
	case search.Lost:
		loser := finalPosition.SideToMove()
		for i := range samples {
			if samples[i].SideToMove == loser {
				samples[i].Result = ResultLoss
			} else {
				samples[i].Result = ResultWin
			}
		}
		return samples
	default:
		return nil
	}
}
