package selfplay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchess/corvid/board"
	"github.com/corvidchess/corvid/search"
)

func TestNewSamplePacksBitboardsAndScore(t *testing.T) {
	pos := newFakePosition(7)
	pos.toMove = board.Black

	s, err := NewSample(pos, 0.75)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), s.Bitboards[0])
	assert.Equal(t, board.Black, s.SideToMove)
	assert.Equal(t, float32(0.75), s.Score)
	assert.Equal(t, ResultLoss, s.Result) // unlabelled default
}

func TestNewSampleRejectsUnpackablePosition(t *testing.T) {
	_, err := NewSample(newUnpackablePosition(3), 0.5)
	assert.Error(t, err)
}

func TestSampleMarshalBinaryIsFixedSize(t *testing.T) {
	pos := newFakePosition(5)
	s, err := NewSample(pos, 0.25)
	require.NoError(t, err)
	s.Result = ResultWin

	rec, err := s.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, rec, RecordSize)

	// The layout is bitboards, side, score, result. Side is byte 96, score is
	// bytes 97-100, result is byte 101.
	assert.Equal(t, uint8(board.White), rec[BitboardCount*8])
	assert.Equal(t, uint8(ResultWin), rec[RecordSize-1])
}

func TestMarshalSamplesConcatenatesRecords(t *testing.T) {
	pos := newFakePosition(2)
	s1, err := NewSample(pos, 0.1)
	require.NoError(t, err)
	s2, err := NewSample(pos, 0.9)
	require.NoError(t, err)

	blob, err := MarshalSamples([]Sample{s1, s2})
	require.NoError(t, err)
	assert.Len(t, blob, 2*RecordSize)
}

func TestLabelGameDraw(t *testing.T) {
	pos := newFakePosition(0)
	samples := []Sample{
		{SideToMove: board.White},
		{SideToMove: board.Black},
	}
	labelled := LabelGame(samples, search.DrawnState, pos)
	for _, s := range labelled {
		assert.Equal(t, ResultDraw, s.Result)
	}
}

func TestLabelGameLossSplitsByLoser(t *testing.T) {
	pos := newFakePosition(0)
	pos.toMove = board.Black // loser is the side to move at the final position

	samples := []Sample{
		{SideToMove: board.White},
		{SideToMove: board.Black},
	}
	labelled := LabelGame(samples, search.LostState(0), pos)
	require.Len(t, labelled, 2)
	assert.Equal(t, ResultWin, labelled[0].Result)
	assert.Equal(t, ResultLoss, labelled[1].Result)
}

func TestLabelGameUnresolvedYieldsNoSamples(t *testing.T) {
	pos := newFakePosition(5)
	samples := []Sample{{SideToMove: board.White}}
	labelled := LabelGame(samples, search.UnresolvedState, pos)
	assert.Nil(t, labelled)
}
