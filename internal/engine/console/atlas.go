package console

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	firstGlyph  = ' '
	lastGlyph   = '~'
	atlasCols   = 16
	replacement = '?'
)

// Atlas is a grid of printable ASCII glyphs rasterized into an alpha image.
type Atlas struct {
	Image   *image.Alpha
	CellW   int
	CellH   int
	Advance int
}

// NewAtlas rasterizes the fixed-width 7x13 bitmap face.
func NewAtlas() *Atlas {
	face := basicfont.Face7x13
	count := int(lastGlyph - firstGlyph + 1)
	rows := (count + atlasCols - 1) / atlasCols

	a := &Atlas{
		CellW:   face.Advance,
		CellH:   face.Height,
		Advance: face.Advance,
	}
	a.Image = image.NewAlpha(image.Rect(0, 0, atlasCols*a.CellW, rows*a.CellH))

	d := &font.Drawer{Dst: a.Image, Src: image.Opaque, Face: face}
	for r := firstGlyph; r <= lastGlyph; r++ {
		col, row := a.cell(r)
		d.Dot = fixed.P(col*a.CellW, row*a.CellH+face.Ascent)
		d.DrawString(string(r))
	}
	return a
}

func (a *Atlas) cell(r rune) (col, row int) {
	i := int(r - firstGlyph)
	return i % atlasCols, i / atlasCols
}

// UV returns the texture rectangle of r with v0 at the top of the cell.
// Runes outside printable ASCII map to '?'.
func (a *Atlas) UV(r rune) (u0, v0, u1, v1 float32) {
	if r < firstGlyph || r > lastGlyph {
		r = replacement
	}
	col, row := a.cell(r)
	w := float32(a.Image.Rect.Dx())
	h := float32(a.Image.Rect.Dy())
	u0 = float32(col*a.CellW) / w
	v0 = float32(row*a.CellH) / h
	u1 = float32((col+1)*a.CellW) / w
	v1 = float32((row+1)*a.CellH) / h
	return u0, v0, u1, v1
}
