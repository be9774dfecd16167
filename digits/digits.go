// Package digits renders seven-segment style digit panels on a TFT
// drawing surface.
package digits

import (
	"errors"

	"github.com/BeatGlow/ili9341/pixel"
)

// Canvas is the drawing surface a Panel renders to. *ili9341.Device
// implements it.
type Canvas interface {
	Fill(x0, y0, x1, y1 int, c pixel.RGB565) error
}

// Segment bits, the conventional gfedcba layout:
//
//	 aaa
//	f   b
//	 ggg
//	e   c
//	 ddd
const (
	segA = 1 << iota
	segB
	segC
	segD
	segE
	segF
	segG
)

var digitSegments = [10]byte{
	segA | segB | segC | segD | segE | segF,        // 0
	segB | segC,                                    // 1
	segA | segB | segD | segE | segG,               // 2
	segA | segB | segC | segD | segG,               // 3
	segB | segC | segF | segG,                      // 4
	segA | segC | segD | segF | segG,               // 5
	segA | segC | segD | segE | segF | segG,        // 6
	segA | segB | segC,                             // 7
	segA | segB | segC | segD | segE | segF | segG, // 8
	segA | segB | segC | segD | segF | segG,        // 9
}

// Panel is a row of equally sized seven-segment digit cells.
type Panel struct {
	canvas     Canvas
	x, y       int
	count      int
	width      int // cell width
	height     int // cell height
	gap        int
	thickness  int
	on         pixel.RGB565
	off        pixel.RGB565
	background pixel.RGB565
}

// NewPanel creates a panel of count digit cells with origin (x,y). Each
// cell is width by height pixels; lit segments use on, unlit segments
// off, and the area around the segments background.
func NewPanel(canvas Canvas, x, y, count, width, height int, on, off, background pixel.RGB565) (*Panel, error) {
	if canvas == nil {
		return nil, errors.New("digits: nil canvas")
	}
	if count <= 0 || width < 10 || height < 15 {
		return nil, errors.New("digits: panel geometry too small")
	}

	t := width / 5
	if t < 2 {
		t = 2
	}

	p := &Panel{
		canvas:     canvas,
		x:          x,
		y:          y,
		count:      count,
		width:      width,
		height:     height,
		gap:        width / 4,
		thickness:  t,
		on:         on,
		off:        off,
		background: background,
	}
	return p, p.Clear()
}

// Size returns the total panel dimensions including inter-digit gaps.
func (p *Panel) Size() (w, h int) {
	return p.count*p.width + (p.count-1)*p.gap, p.height
}

// Clear fills the panel area with the background color.
func (p *Panel) Clear() error {
	w, h := p.Size()
	return p.canvas.Fill(p.x, p.y, p.x+w-1, p.y+h-1, p.background)
}

// DrawDigit renders the digit cell at index. Values outside 0-9 blank the
// cell (all segments unlit).
func (p *Panel) DrawDigit(index, value int) error {
	if index < 0 || index >= p.count {
		return errors.New("digits: cell index out of range")
	}

	var lit byte
	if value >= 0 && value <= 9 {
		lit = digitSegments[value]
	}

	var (
		x = p.x + index*(p.width+p.gap)
		y = p.y
		w = p.width
		h = p.height
		t = p.thickness
		// the middle segment splits the cell in an upper and lower half
		my = y + (h-t)/2
	)

	for _, seg := range [7]struct {
		bit            byte
		x0, y0, x1, y1 int
	}{
		{segA, x + t, y, x + w - t - 1, y + t - 1},
		{segB, x + w - t, y + t, x + w - 1, my - 1},
		{segC, x + w - t, my + t, x + w - 1, y + h - t - 1},
		{segD, x + t, y + h - t, x + w - t - 1, y + h - 1},
		{segE, x, my + t, x + t - 1, y + h - t - 1},
		{segF, x, y + t, x + t - 1, my - 1},
		{segG, x + t, my, x + w - t - 1, my + t - 1},
	} {
		c := p.off
		if lit&seg.bit != 0 {
			c = p.on
		}
		if err := p.canvas.Fill(seg.x0, seg.y0, seg.x1, seg.y1, c); err != nil {
			return err
		}
	}
	return nil
}

// DrawValue renders a non-negative value right-aligned across all cells
// with leading zeros. Values wider than the panel are truncated to the
// least significant digits.
func (p *Panel) DrawValue(value int) error {
	if value < 0 {
		value = 0
	}
	for i := p.count - 1; i >= 0; i-- {
		if err := p.DrawDigit(i, value%10); err != nil {
			return err
		}
		value /= 10
	}
	return nil
}
