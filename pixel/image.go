package pixel

import (
	"encoding/binary"
	"image"
	"image/color"
)

// RGB565Image is a 16-bits per pixel 5-6-5-bit RGB image. Pixels are
// packed big-endian, matching the panel's frame memory layout, so Pix can
// be streamed to the display without conversion.
type RGB565Image struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels, two bytes per pixel, high byte first.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
}

func NewRGB565Image(w, h int) *RGB565Image {
	return &RGB565Image{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    make([]byte, w*2*h),
		Stride: w * 2,
	}
}

func (p *RGB565Image) ColorModel() color.Model {
	return RGB565Model
}

func (p *RGB565Image) Bounds() image.Rectangle {
	return p.Rect
}

func (p *RGB565Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}

	v := binary.BigEndian.Uint16(p.Pix[x*2+y*p.Stride:])
	return RGB565{v}
}

func (p *RGB565Image) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}

	v := rgb565Model(c).(RGB565).V
	binary.BigEndian.PutUint16(p.Pix[x*2+y*p.Stride:], v)
}

// Fill sets every pixel to the given color.
func (p *RGB565Image) Fill(c color.Color) {
	var pair [2]byte
	binary.BigEndian.PutUint16(pair[:], rgb565Model(c).(RGB565).V)
	for i, l := 0, len(p.Pix); i < l; i += 2 {
		copy(p.Pix[i:], pair[:])
	}
}

// Clear resets the image to black.
func (p *RGB565Image) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0x00
	}
}
