// Package pixel implements the RGB565 color model used by the ILI9341 panel.
//
// The types are compatible with Go's native [color.Color] and
// [image.Image] / [draw.Image] interfaces.
package pixel
