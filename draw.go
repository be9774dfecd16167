package ili9341

import "github.com/BeatGlow/ili9341/pixel"

// DrawPixel sets a single pixel. Coordinates are not range checked.
func (d *Device) DrawPixel(x, y int, c pixel.RGB565) error {
	if err := d.SetWindow(x, y, x, y); err != nil {
		return err
	}
	return d.c.Command(cmdRAMWR, byte(c.V>>8), byte(c.V))
}

func (d *Device) clamp(x, y int) (int, int) {
	if x < 0 {
		x = 0
	} else if x >= d.width {
		x = d.width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= d.height {
		y = d.height - 1
	}
	return x, y
}

// DrawLine draws a line between two points. Coordinates outside the
// current orientation's bounds are pulled to the nearest edge.
func (d *Device) DrawLine(x0, y0, x1, y1 int, c pixel.RGB565) error {
	x0, y0 = d.clamp(x0, y0)
	x1, y1 = d.clamp(x1, y1)

	// Horizontal and vertical lines are 1 pixel thick fills.
	if x0 == x1 || y0 == y1 {
		return d.Fill(x0, y0, x1, y1, c)
	}

	dx := x1 - x0
	sx := 1
	if dx < 0 {
		dx = -dx
		sx = -1
	}
	dy := y0 - y1
	sy := 1
	if dy > 0 {
		dy = -dy
		sy = -1
	}

	// Integer Bresenham. The loop ends only once both axes reach the
	// endpoint, so both endpoints are always drawn.
	e := dx + dy
	for {
		if err := d.DrawPixel(x0, y0, c); err != nil {
			return err
		}
		if x0 == x1 && y0 == y1 {
			return nil
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// DrawRectangle draws the outline of a rectangle.
func (d *Device) DrawRectangle(x0, y0, x1, y1 int, c pixel.RGB565) error {
	if err := d.DrawLine(x0, y0, x1, y0, c); err != nil { // top
		return err
	}
	if err := d.DrawLine(x1, y0, x1, y1, c); err != nil { // right
		return err
	}
	if err := d.DrawLine(x0, y1, x1, y1, c); err != nil { // bottom
		return err
	}
	return d.DrawLine(x0, y0, x0, y1, c) // left
}

// DrawFilledRectangle draws a solid rectangle.
func (d *Device) DrawFilledRectangle(x0, y0, x1, y1 int, c pixel.RGB565) error {
	return d.Fill(x0, y0, x1, y1, c)
}

// DrawCircle draws the outline of a circle centered at (x0,y0).
func (d *Device) DrawCircle(x0, y0, r int, c pixel.RGB565) error {
	var (
		f    = 1 - r
		ddFx = 1
		ddFy = -2 * r
		x    = 0
		y    = r
	)

	for _, p := range [...][2]int{{x0, y0 + r}, {x0, y0 - r}, {x0 + r, y0}, {x0 - r, y0}} {
		if err := d.DrawPixel(p[0], p[1], c); err != nil {
			return err
		}
	}

	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}
		x++
		ddFx += 2
		f += ddFx

		for _, p := range [...][2]int{
			{x0 + x, y0 + y}, {x0 - x, y0 + y}, {x0 + x, y0 - y}, {x0 - x, y0 - y},
			{x0 + y, y0 + x}, {x0 - y, y0 + x}, {x0 + y, y0 - x}, {x0 - y, y0 - x},
		} {
			if err := d.DrawPixel(p[0], p[1], c); err != nil {
				return err
			}
		}
	}
	return nil
}

// DrawFilledCircle draws a solid circle centered at (x0,y0).
func (d *Device) DrawFilledCircle(x0, y0, r int, c pixel.RGB565) error {
	var (
		f    = 1 - r
		ddFx = 1
		ddFy = -2 * r
		x    = 0
		y    = r
	)

	if err := d.DrawPixel(x0, y0+r, c); err != nil {
		return err
	}
	if err := d.DrawPixel(x0, y0-r, c); err != nil {
		return err
	}
	if err := d.DrawLine(x0-r, y0, x0+r, y0, c); err != nil {
		return err
	}

	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}
		x++
		ddFx += 2
		f += ddFx

		for _, l := range [...][4]int{
			{x0 - x, y0 + y, x0 + x, y0 + y},
			{x0 - x, y0 - y, x0 + x, y0 - y},
			{x0 - y, y0 + x, x0 + y, y0 + x},
			{x0 - y, y0 - x, x0 + y, y0 - x},
		} {
			if err := d.DrawLine(l[0], l[1], l[2], l[3], c); err != nil {
				return err
			}
		}
	}
	return nil
}
