package selfplay

import (
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchess/corvid/board"
	"github.com/corvidchess/corvid/eval/uniform"
	"github.com/corvidchess/corvid/search"
)

func TestPlayGameProducesLabelledSamples(t *testing.T) {
	opts := search.DefaultOptions().WithTreeBytes(1 << 16).WithHashBytes(1 << 16)
	limits := search.NewSearchLimits().WithMaxIters(8)
	sink := NewSink(8)
	network := uniform.New()

	openings := []Opening{
		func() board.Position { return newFakePosition(3) },
	}

	driver := NewDriver(opts, network, network, limits, openings, 1, sink, log.New(newDiscard(), "", 0))
	require.NoError(t, driver.PlayGame())
	sink.Close()

	blob, ok := sink.Pop()
	require.True(t, ok)
	assert.Zero(t, len(blob)%RecordSize)
	assert.NotZero(t, len(blob))

	_, ok = sink.Pop()
	assert.False(t, ok, "only one game's worth of samples should have been pushed")
}

func TestPlayGameTerminalOpeningPushesNothing(t *testing.T) {
	opts := search.DefaultOptions().WithTreeBytes(1 << 16).WithHashBytes(1 << 16)
	limits := search.NewSearchLimits().WithMaxIters(4)
	sink := NewSink(8)
	network := uniform.New()

	// value 0 with White to move: MapMoves yields nothing and the side to
	// move is in check, so PositionState reports an immediate Lost(0).
	openings := []Opening{
		func() board.Position { return newFakePosition(0) },
	}

	driver := NewDriver(opts, network, network, limits, openings, 2, sink, log.New(newDiscard(), "", 0))
	require.NoError(t, driver.PlayGame())
	sink.Close()

	_, ok := sink.Pop()
	assert.False(t, ok, "a game that opens in a terminal position has no samples to label")
}

type discard struct{}

func newDiscard() *discard { return &discard{} }

func (*discard) Write(p []byte) (int, error) { return len(p), nil }
