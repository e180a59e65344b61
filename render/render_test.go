package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchess/corvid/board"
)

func TestPNGProducesBoardSizedImage(t *testing.T) {
	img, err := PNG(nil)
	require.NoError(t, err)
	assert.Equal(t, boardSize, img.Bounds().Dx())
	assert.Equal(t, boardSize, img.Bounds().Dy())
}

func TestPNGDrawsGlyphsWithoutError(t *testing.T) {
	glyphs := []Glyph{
		{File: 4, Rank: 0, Text: "K", Color: ColorForSide(board.White)},
		{File: 4, Rank: 7, Text: "k", Color: ColorForSide(board.Black)},
	}
	img, err := PNG(glyphs)
	require.NoError(t, err)
	assert.NotNil(t, img)
}

func TestColorForSideDistinguishesWhiteFromBlack(t *testing.T) {
	white := ColorForSide(board.White)
	black := ColorForSide(board.Black)
	assert.NotEqual(t, white, black)
}
