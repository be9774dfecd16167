package ili9341

import (
	"image"

	"github.com/BeatGlow/ili9341/pixel"
)

// DrawImage copies an image to the panel with its top-left corner at
// (x,y). A [pixel.RGB565Image] is streamed as-is; any other image is
// converted pixel by pixel through the RGB565 color model.
func (d *Device) DrawImage(x, y int, img image.Image) error {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	if err := d.SetWindow(x, y, x+w-1, y+h-1); err != nil {
		return err
	}
	if err := d.c.Command(cmdRAMWR); err != nil {
		return err
	}

	// Fast path: the pixel data already has the panel's memory layout.
	if p, ok := img.(*pixel.RGB565Image); ok && p.Stride == w*2 {
		pix := p.Pix
		for i, l := 0, len(pix); i < l; i += maxTransfer {
			j := i + maxTransfer
			if j > l {
				j = l
			}
			if err := d.write(rawPixels, pix[i:j]); err != nil {
				return err
			}
		}
		return nil
	}

	var n int
	for iy := b.Min.Y; iy < b.Max.Y; iy++ {
		for ix := b.Min.X; ix < b.Max.X; ix++ {
			if n == maxTransfer {
				if err := d.write(rawPixels, d.buf[:n]); err != nil {
					return err
				}
				n = 0
			}
			c := pixel.RGB565Model.Convert(img.At(ix, iy)).(pixel.RGB565)
			d.buf[n] = byte(c.V >> 8)
			d.buf[n+1] = byte(c.V)
			n += 2
		}
	}
	if n > 0 {
		return d.write(rawPixels, d.buf[:n])
	}
	return nil
}
