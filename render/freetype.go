package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
)

// freetypeLabeler draws outline-font glyphs via a github.com/golang/freetype
// context. Unlike DefaultLabeler it needs a real .ttf/.otf loaded by the
// caller; PNG never constructs one itself since no font asset ships with
// this module.
type freetypeLabeler struct {
	font *truetype.Font
	size float64
	dpi  float64
}

// NewFreetypeLabeler parses fontBytes as a TrueType/OpenType font and
// returns a Labeler that renders through it at the given point size, for
// callers that want sharper glyphs than DefaultLabeler's bitmap face.
func NewFreetypeLabeler(fontBytes []byte, size float64) (Labeler, error) {
	f, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, errors.Wrap(err, "render: parsing font")
	}
	return &freetypeLabeler{font: f, size: size, dpi: 72}, nil
}

func (l *freetypeLabeler) DrawLabel(dst draw.Image, x, y int, text string, c color.Color) {
	ctx := freetype.NewContext()
	ctx.SetDPI(l.dpi)
	ctx.SetFont(l.font)
	ctx.SetFontSize(l.size)
	ctx.SetClip(dst.Bounds())
	ctx.SetDst(dst)
	ctx.SetSrc(image.NewUniform(c))
	pt := freetype.Pt(x, y)
	// Best-effort: a glyph rendering error (e.g. a codepoint missing from
	// the supplied font) degrades to no visible label rather than a panic.
	ctx.DrawString(text, pt)
}
