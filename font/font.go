// Package font provides fixed-cell bitmap fonts in the row-mask format
// consumed by the ili9341 glyph renderer.
//
// A glyph row is a 16-bit mask: bit 15-col set means the pixel at col is
// foreground. Fonts can be converted from any [font.Face], including
// TrueType faces rasterized with freetype.
package font

import (
	"errors"
	"fmt"

	"github.com/golang/freetype/truetype"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	firstRune = ' '
	lastRune  = '~'
)

// Font is a fixed-cell bitmap font covering the printable ASCII range.
type Font struct {
	// Width and Height are the glyph cell size in pixels. Width is at
	// most 16.
	Width  int
	Height int

	// Data holds one row mask per glyph row, indexed by
	// (r-' ')*Height+row.
	Data []uint16
}

// Row returns the row mask for one glyph row. Runes outside the printable
// ASCII range render as space.
func (f *Font) Row(r rune, row int) uint16 {
	if r < firstRune || r > lastRune {
		r = firstRune
	}
	return f.Data[int(r-firstRune)*f.Height+row]
}

// StringSize returns the rendered size of s. The measurement is
// fixed-width and single-line: embedded line breaks are counted as
// regular glyphs and do not add height.
func (f *Font) StringSize(s string) (w, h int) {
	return f.Width * len([]rune(s)), f.Height
}

// FromFace converts a font face into the row-mask format. The cell size
// is taken from the face metrics and the advance of '0'; faces wider than
// 16 pixels do not fit a row mask and are rejected.
func FromFace(face xfont.Face) (*Font, error) {
	m := face.Metrics()
	height := (m.Ascent + m.Descent).Ceil()
	if height <= 0 {
		return nil, errors.New("font: face reports zero height")
	}

	advance, ok := face.GlyphAdvance('0')
	if !ok {
		return nil, errors.New("font: face has no '0' glyph")
	}
	width := advance.Ceil()
	if width <= 0 {
		return nil, errors.New("font: face reports zero advance")
	}
	if width > 16 {
		return nil, fmt.Errorf("font: glyph width %d exceeds the 16 pixel row mask", width)
	}

	f := &Font{
		Width:  width,
		Height: height,
		Data:   make([]uint16, (lastRune-firstRune+1)*height),
	}

	ascent := m.Ascent.Ceil()
	for r := rune(firstRune); r <= lastRune; r++ {
		dr, mask, maskp, _, ok := face.Glyph(fixed.P(0, ascent), r)
		if !ok {
			continue // glyph stays blank
		}
		base := int(r-firstRune) * height
		for y := dr.Min.Y; y < dr.Max.Y; y++ {
			if y < 0 || y >= height {
				continue
			}
			for x := dr.Min.X; x < dr.Max.X; x++ {
				if x < 0 || x >= width {
					continue
				}
				_, _, _, a := mask.At(maskp.X+x-dr.Min.X, maskp.Y+y-dr.Min.Y).RGBA()
				if a >= 0x8000 {
					f.Data[base+y] |= 1 << uint(15-x)
				}
			}
		}
	}
	return f, nil
}

// FromTrueType rasterizes a TrueType font at the given size in points
// (72 DPI) into the row-mask format. Only narrow monospaced faces fit the
// 16 pixel cell limit.
func FromTrueType(data []byte, points float64) (*Font, error) {
	ft, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("font: parse failed: %w", err)
	}
	face := truetype.NewFace(ft, &truetype.Options{
		Size:    points,
		DPI:     72,
		Hinting: xfont.HintingFull,
	})
	defer face.Close()
	return FromFace(face)
}

// Font7x13 is the package default, converted from x/image's fixed 7x13
// face.
var Font7x13 = mustFromFace(basicfont.Face7x13)

func mustFromFace(face xfont.Face) *Font {
	f, err := FromFace(face)
	if err != nil {
		panic(err)
	}
	return f
}
