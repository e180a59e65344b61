// Package render rasterizes a board position into a PNG image, for
// debugging dumps alongside the viz package's DOT tree export.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/corvidchess/corvid/board"
)

const (
	squareSize = 48
	boardSize  = squareSize * 8
)

var (
	lightSquare = color.RGBA{235, 210, 180, 255}
	darkSquare  = color.RGBA{120, 85, 60, 255}
	labelColor  = color.RGBA{20, 20, 20, 255}
)

// Labeler draws text onto an image at a pixel origin. Labeler exists so a
// caller with a real outline font (e.g. a github.com/golang/freetype
// context loaded against an embedded .ttf) can substitute richer glyph
// rendering for the bitmap default; DefaultLabeler needs no font asset and
// is what PNG uses unless a Labeler is supplied to PNGWith.
type Labeler interface {
	DrawLabel(dst draw.Image, x, y int, text string, c color.Color)
}

// basicLabeler draws with golang.org/x/image/font's bitmap face, requiring
// no embedded font file.
type basicLabeler struct{}

// DefaultLabeler is the zero-asset Labeler PNG uses.
var DefaultLabeler Labeler = basicLabeler{}

func (basicLabeler) DrawLabel(dst draw.Image, x, y int, text string, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// Glyph is a single square's visible marking: a one-letter piece code
// ("K","q", ...) in the convention a board.Position adapter chooses, already
// resolved by the caller since board.Position names no piece-enumeration
// method of its own.
type Glyph struct {
	File, Rank int // 0-based, a1 = (0,0)
	Text       string
	Color      color.Color
}

// PNG rasterizes an 8x8 checkered board with glyphs overlaid, using the
// default bitmap labeler.
func PNG(glyphs []Glyph) (image.Image, error) {
	return PNGWith(glyphs, DefaultLabeler)
}

// PNGWith is PNG with an explicit Labeler, letting a caller substitute a
// freetype-backed implementation for sharper text.
func PNGWith(glyphs []Glyph, labeler Labeler) (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, boardSize, boardSize))

	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			c := lightSquare
			if (rank+file)%2 == 1 {
				c = darkSquare
			}
			drawSquare(img, file, rank, c)
		}
	}

	for _, g := range glyphs {
		col := g.Color
		if col == nil {
			col = labelColor
		}
		x := g.File*squareSize + squareSize/3
		y := (7-g.Rank)*squareSize + squareSize*2/3
		labeler.DrawLabel(img, x, y, g.Text, col)
	}

	return img, nil
}

func drawSquare(img *image.RGBA, file, rank int, c color.RGBA) {
	y0 := (7 - rank) * squareSize
	x0 := file * squareSize
	rect := image.Rect(x0, y0, x0+squareSize, y0+squareSize)
	draw.Draw(img, rect, &image.Uniform{c}, image.Point{}, draw.Src)
}

// ColorForSide maps a board.Color to the glyph tint a renderer typically
// uses: white pieces drawn lighter than black.
func ColorForSide(c board.Color) color.Color {
	if c == board.White {
		return color.RGBA{245, 245, 245, 255}
	}
	return color.RGBA{10, 10, 10, 255}
}
