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

func TestRunPoolPlaysAcrossAllDrivers(t *testing.T) {
	opts := search.DefaultOptions().WithTreeBytes(1 << 16).WithHashBytes(1 << 16)
	limits := search.NewSearchLimits().WithMaxIters(4)
	network := uniform.New()
	sink := NewSink(16)
	openings := []Opening{
		func() board.Position { return newFakePosition(3) },
	}
	logger := log.New(newDiscard(), "", 0)

	drivers := []*Driver{
		NewDriver(opts, network, network, limits, openings, 10, sink, logger),
		NewDriver(opts, network, network, limits, openings, 20, sink, logger),
		NewDriver(opts, network, network, limits, openings, 30, sink, logger),
	}

	err := RunPool(drivers, 2)
	require.NoError(t, err)
	sink.Close()

	count := 0
	for {
		_, ok := sink.Pop()
		if !ok {
			break
		}
		count++
	}
	assert.Equal(t, len(drivers)*2, count)
}
