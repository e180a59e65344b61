// Package selfplay drives self-play games against a search, producing
// packed training samples (spec.md §4.J/§4.K).
package selfplay

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/corvidchess/corvid/board"
)

// BitboardCount is the number of bitboards packed per sample: six piece
// kinds for each color.
const BitboardCount = 12

// RecordSize is the fixed byte size of one packed sample record: twelve
// 8-byte bitboards, a side-to-move byte, a float32 score, and a result byte
// (spec.md §6 "record size is fixed per build").
const RecordSize = BitboardCount*8 + 1 + 4 + 1

// Result labels a finished sample from its recorded side-to-move's
// perspective (spec.md §6).
type Result uint8

const (
	ResultLoss Result = 0
	ResultDraw Result = 1
	ResultWin  Result = 2
)

// Packable is the optional Position extension a Board adapter implements to
// make itself exportable as a training sample.
type Packable interface {
	Bitboards() [BitboardCount]uint64
}

// Sample is one training record: a position snapshot, the search's score
// estimate for it, and (filled in post-game by LabelGame) the outcome from
// the recorded side's perspective.
type Sample struct {
	Bitboards  [BitboardCount]uint64
	SideToMove board.Color
	Score      float32
	Result     Result
}

// NewSample snapshots position and score, leaving Result unlabelled
// (ResultLoss, corrected later by LabelGame).
func NewSample(position board.Position, score float32) (Sample, error) {
	p, ok := position.(Packable)
	if !ok {
		return Sample{}, errors.Errorf("selfplay: %T does not implement Packable", position)
	}
	return Sample{
		Bitboards:  p.Bitboards(),
		SideToMove: position.SideToMove(),
		Score:      score,
	}, nil
}

// MarshalBinary encodes s as a fixed RecordSize-byte little-endian record.
func (s Sample) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Grow(RecordSize)
	for _, bb := range s.Bitboards {
		if err := binary.Write(buf, binary.LittleEndian, bb); err != nil {
			return nil, errors.Wrap(err, "selfplay: encoding bitboards")
		}
	}
	if err := binary.Write(buf, binary.LittleEndian, uint8(s.SideToMove)); err != nil {
		return nil, errors.Wrap(err, "selfplay: encoding side to move")
	}
	if err := binary.Write(buf, binary.LittleEndian, s.Score); err != nil {
		return nil, errors.Wrap(err, "selfplay: encoding score")
	}
	if err := binary.Write(buf, binary.LittleEndian, uint8(s.Result)); err != nil {
		return nil, errors.Wrap(err, "selfplay: encoding result")
	}
	return buf.Bytes(), nil
}

// MarshalSamples concatenates samples into one byte blob, the unit the
// sample sink's producers enqueue (spec.md §4.J step 5).
func MarshalSamples(samples []Sample) ([]byte, error) {
	blob := make([]byte, 0, len(samples)*RecordSize)
	for _, s := range samples {
		rec, err := s.MarshalBinary()
		if err != nil {
			return nil, err
		}
		blob = append(blob, rec...)
	}
	return blob, nil
}
