package ili9341

import (
	"github.com/BeatGlow/ili9341/font"
	"github.com/BeatGlow/ili9341/pixel"
)

// DrawChar draws one glyph with the given foreground and background
// colors. If the glyph would extend past the right edge the cursor wraps
// to the start of the next line first. The position the glyph was
// actually drawn at is returned so callers can track the wrap.
func (d *Device) DrawChar(x, y int, ch rune, f *font.Font, fg, bg pixel.RGB565) (int, int, error) {
	if x+f.Width > d.width {
		y += f.Height
		x = 0
	}

	if err := d.SetWindow(x, y, x+f.Width-1, y+f.Height-1); err != nil {
		return x, y, err
	}
	if err := d.c.Command(cmdRAMWR); err != nil {
		return x, y, err
	}

	// Rasterize row by row into the transfer buffer, flushing a chunk
	// whenever it fills. Pixels are 2 bytes each and the buffer capacity
	// is even, so a pixel never straddles two chunks.
	var n int
	for row := 0; row < f.Height; row++ {
		mask := f.Row(ch, row)
		for col := 0; col < f.Width; col++ {
			if n == maxTransfer {
				if err := d.write(rawPixels, d.buf[:n]); err != nil {
					return x, y, err
				}
				n = 0
			}
			c := bg
			if mask&(0x8000>>uint(col)) != 0 {
				c = fg
			}
			d.buf[n] = byte(c.V >> 8)
			d.buf[n+1] = byte(c.V)
			n += 2
		}
	}
	if n > 0 {
		if err := d.write(rawPixels, d.buf[:n]); err != nil {
			return x, y, err
		}
	}
	return x, y, nil
}

// DrawString draws a string starting at (x,y). A '\n' advances to the
// next line and returns the cursor to the start column, or to column 0
// when immediately followed by '\r'. A lone '\r' is skipped.
func (d *Device) DrawString(x, y int, s string, f *font.Font, fg, bg pixel.RGB565) error {
	cx, cy := x, y

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '\n':
			cy += f.Height + 1
			if i+1 < len(runes) && runes[i+1] == '\r' {
				cx = 0
				i++
			} else {
				cx = x
			}
		case '\r':
			// ignored outside a newline sequence
		default:
			gx, gy, err := d.DrawChar(cx, cy, runes[i], f, fg, bg)
			if err != nil {
				return err
			}
			cx, cy = gx+f.Width, gy
		}
	}
	return nil
}
