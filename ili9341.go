// Package ili9341 drives ILI9341 TFT LCD panels over SPI.
//
// The driver talks to the controller through a [Conn], addresses frame
// memory with an explicit cursor window and streams pixel data through a
// small fixed-size transfer buffer, so large fills never allocate.
//
// A Device is not safe for concurrent use: the window command and the
// memory write that follows it must not be interleaved with another
// drawing call, or the panel addressing is corrupted. Callers that draw
// from multiple goroutines must serialize access themselves.
package ili9341

import (
	"fmt"
	"os"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/ili9341/pixel"
)

var debug bool

func init() {
	debug = os.Getenv("DISPLAY_DEBUG") != ""
}

// Native panel dimensions in the portrait orientations.
const (
	Width  = 240
	Height = 320
)

// maxTransfer is the transfer buffer capacity. Pixel streams larger than
// this are split into chunks of at most maxTransfer bytes.
const maxTransfer = 256

// Registers (from the ILI9341 datasheet).
const (
	cmdNOP       = 0x00
	cmdSWRESET   = 0x01 // Software Reset
	cmdSLPIN     = 0x10 // Enter Sleep Mode
	cmdSLPOUT    = 0x11 // Sleep Out
	cmdINVOFF    = 0x20 // Display Inversion OFF
	cmdINVON     = 0x21 // Display Inversion ON
	cmdGAMSET    = 0x26 // Gamma Set
	cmdDISPOFF   = 0x28 // Display OFF
	cmdDISPON    = 0x29 // Display ON
	cmdCASET     = 0x2A // Column Address Set
	cmdPASET     = 0x2B // Page Address Set
	cmdRAMWR     = 0x2C // Memory Write
	cmdMADCTL    = 0x36 // Memory Access Control
	cmdPIXFMT    = 0x3A // COLMOD: Interface Pixel Format
	cmdFRMCTRL1  = 0xB1 // Frame Rate Control (Normal Mode)
	cmdDISCTRL   = 0xB6 // Display Function Control
	cmdPWCTRL1   = 0xC0 // Power Control 1
	cmdPWCTRL2   = 0xC1 // Power Control 2
	cmdVMCTRL1   = 0xC5 // VCOM Control 1
	cmdVMCTRL2   = 0xC7 // VCOM Control 2
	cmdPWCTRLA   = 0xCB // Power Control A
	cmdPWCTRLB   = 0xCF // Power Control B
	cmdGAMCTRLP  = 0xE0 // Positive Gamma Correction
	cmdGAMCTRLN  = 0xE1 // Negative Gamma Correction
	cmdTIMCTRLA  = 0xE8 // Driver Timing Control A
	cmdTIMCTRLB  = 0xEA // Driver Timing Control B
	cmdPWSEQCTRL = 0xED // Power On Sequence Control
	cmdGAM3CTRL  = 0xF2 // Enable 3 Gamma Control
	cmdPUMPRATIO = 0xF7 // Pump Ratio Control

	// rawPixels is not a controller opcode: it tags a continuation chunk
	// of an already started memory write, sent without a command byte.
	rawPixels = 0x00
)

// Memory Access Control (MADCTL) bit fields.
const (
	_             byte = 1 << iota // D0: reserved
	_                              // D1: reserved
	madctlMH                       // D2: Horizontal Refresh Order
	madctlBGR                      // D3: RGB-BGR Order
	madctlML                       // D4: Vertical Refresh Order
	madctlMV                       // D5: Row/Column Exchange
	madctlMX                       // D6: Column Address Order
	madctlMY                       // D7: Row Address Order
)

// Orientation selects one of the four supported panel rotations.
type Orientation uint8

// Supported orientations. The landscape variants swap the panel's native
// width and height.
const (
	Portrait1  Orientation = iota // native portrait
	Portrait2                     // portrait, flipped
	Landscape1                    // rotated 90° clock wise
	Landscape2                    // rotated 270° clock wise
)

func (o Orientation) String() string {
	switch o {
	case Portrait2:
		return "portrait (flipped)"
	case Landscape1:
		return "landscape"
	case Landscape2:
		return "landscape (flipped)"
	default:
		return "portrait"
	}
}

func (o Orientation) madctl() byte {
	switch o {
	case Portrait2:
		return madctlMY | madctlBGR
	case Landscape1:
		return madctlMV | madctlBGR
	case Landscape2:
		return madctlMY | madctlMX | madctlMV | madctlBGR
	default:
		return madctlMX | madctlBGR
	}
}

func (o Orientation) size() (w, h int) {
	if o == Landscape1 || o == Landscape2 {
		return Height, Width
	}
	return Width, Height
}

// Config is the display configuration.
type Config struct {
	// Orientation of the panel, Portrait1 if unset.
	Orientation Orientation

	// Backlight pin, optional.
	Backlight gpio.PinOut
}

// Device is an ILI9341 display.
type Device struct {
	c           Conn
	backlight   gpio.PinOut
	width       int
	height      int
	orientation Orientation
	buf         [maxTransfer]byte
}

// New resets and initializes the panel on the provided connection, leaving
// the display on with the backlight enabled and the screen black.
func New(c Conn, config *Config) (*Device, error) {
	if config == nil {
		config = new(Config)
	}

	d := &Device{
		c:         c,
		backlight: config.Backlight,
	}
	d.width, d.height = Portrait1.size()

	if err := d.init(config); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Device) init(config *Config) (err error) {
	// Hardware reset pulse. The controller wants ≥10ms on either edge
	// before it accepts commands.
	if err = d.c.Reset(gpio.Low); err != nil {
		return
	}
	time.Sleep(10 * time.Millisecond)
	if err = d.c.Reset(gpio.High); err != nil {
		return
	}
	time.Sleep(10 * time.Millisecond)

	if err = d.commands([][]byte{
		{cmdPWCTRLA, 0x39, 0x2C, 0x00, 0x34, 0x02}, // Power Control A: default after reset
		{cmdPWCTRLB, 0x00, 0xC1, 0x30},             // Power Control B: discharge path enable
		{cmdTIMCTRLA, 0x85, 0x00, 0x78},            // Driver Timing Control A: default after reset
		{cmdTIMCTRLB, 0x00, 0x00},                  // Driver Timing Control B: gate timing 0 units
		{cmdPWSEQCTRL, 0x64, 0x03, 0x12, 0x81},     // Power On Sequence Control
		{cmdPUMPRATIO, 0x20},                       // Pump Ratio Control: DDVDH = 2xVCI
		{cmdPWCTRL1, 0x23},                         // Power Control 1: GVDD = 4.6V
		{cmdPWCTRL2, 0x10},                         // Power Control 2: default after reset
		{cmdVMCTRL1, 0x3E, 0x28},                   // VCOM Control 1: VCOMH = 4.25V, VCOML = -1.5V
		{cmdVMCTRL2, 0x86},                         // VCOM Control 2: VMH-58, VML-58
		{cmdMADCTL, Portrait1.madctl()},            // Memory Access Control: portrait, BGR order
		{cmdPIXFMT, 0x55},                          // Interface Pixel Format: 16 bits/pixel
		{cmdFRMCTRL1, 0x00, 0x18},                  // Frame Rate Control: 79Hz
		{cmdDISCTRL, 0x0A, 0x82, 0x27},             // Display Function Control: default after reset
		{cmdGAM3CTRL, 0x02},                        // 3 Gamma Control: default after reset
		{cmdCASET, 0x00, 0x00, 0x00, 0xEF},         // Columns 0..239
		{cmdPASET, 0x00, 0x00, 0x01, 0x3F},         // Rows 0..319
		{cmdGAMSET, 0x01},                          // Gamma curve 1
		{cmdGAMCTRLP, 0x0F, 0x31, 0x2B, 0x0C, 0x0E, 0x08, 0x4E, 0xF1, 0x37, 0x07, 0x10, 0x03, 0x0E, 0x09, 0x00}, // Positive Gamma Correction
		{cmdGAMCTRLN, 0x00, 0x0E, 0x14, 0x03, 0x11, 0x07, 0x31, 0xC1, 0x48, 0x08, 0x0F, 0x0C, 0x31, 0x36, 0x0F}, // Negative Gamma Correction
	}); err != nil {
		return
	}

	if err = d.c.Command(cmdSLPOUT); err != nil {
		return
	}
	time.Sleep(10 * time.Millisecond)
	if err = d.c.Command(cmdDISPON); err != nil {
		return
	}
	time.Sleep(10 * time.Millisecond)

	if err = d.SetBacklight(true); err != nil {
		return
	}

	if config.Orientation != Portrait1 {
		if err = d.Rotate(config.Orientation); err != nil {
			return
		}
	}

	return d.FillScreen(pixel.Black)
}

func (d *Device) String() string {
	return fmt.Sprintf("ILI9341 %dx%d", d.width, d.height)
}

// Close turns the display off and closes the connection.
func (d *Device) Close() error {
	if err := d.Show(false); err != nil {
		_ = d.c.Close()
		return err
	}
	return d.c.Close()
}

// Size returns the logical width and height in the current orientation.
func (d *Device) Size() (w, h int) {
	return d.width, d.height
}

// Orientation returns the active orientation.
func (d *Device) Orientation() Orientation {
	return d.orientation
}

func (d *Device) commands(commands [][]byte) (err error) {
	for _, command := range commands {
		if err = d.c.Command(command[0], command[1:]...); err != nil {
			return
		}
	}
	return
}

// write sends one command with its payload. The rawPixels pseudo-opcode
// carries no command byte: the payload continues a running memory write.
func (d *Device) write(op byte, data []byte) error {
	if op == rawPixels {
		return d.c.Data(data...)
	}
	return d.c.Command(op, data...)
}

// SetWindow defines the rectangle of frame memory addressed by the next
// memory write. Corners may be passed in either order; coordinates are
// not range checked.
func (d *Device) SetWindow(x0, y0, x1, y1 int) error {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	if err := d.c.Command(cmdCASET, byte(x0>>8), byte(x0), byte(x1>>8), byte(x1)); err != nil {
		return err
	}
	return d.c.Command(cmdPASET, byte(y0>>8), byte(y0), byte(y1>>8), byte(y1))
}

// Fill floods the rectangle with a solid color. Corners may be passed in
// either order.
func (d *Device) Fill(x0, y0, x1, y1 int, c pixel.RGB565) error {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}

	// 2 bytes per pixel, high byte first.
	total := (x1 - x0 + 1) * (y1 - y0 + 1) * 2

	if err := d.SetWindow(x0, y0, x1, y1); err != nil {
		return err
	}

	hi, lo := byte(c.V>>8), byte(c.V)
	for i := 0; i < maxTransfer; i += 2 {
		d.buf[i] = hi
		d.buf[i+1] = lo
	}

	if err := d.c.Command(cmdRAMWR); err != nil {
		return err
	}

	// The buffer content is uniform, so it is streamed unmodified until
	// fewer than maxTransfer bytes remain. The final chunk is always
	// between 2 and maxTransfer bytes.
	remaining := total
	for remaining > maxTransfer {
		if err := d.write(rawPixels, d.buf[:]); err != nil {
			return err
		}
		remaining -= maxTransfer
	}
	return d.write(rawPixels, d.buf[:remaining])
}

// FillScreen floods the whole display in the current orientation.
func (d *Device) FillScreen(c pixel.RGB565) error {
	return d.Fill(0, 0, d.width-1, d.height-1, c)
}

// Rotate selects the panel orientation. Subsequent drawing calls use the
// new logical width and height.
func (d *Device) Rotate(o Orientation) error {
	d.orientation = o
	d.width, d.height = o.size()
	return d.c.Command(cmdMADCTL, o.madctl())
}

// Show toggles the display on or off.
func (d *Device) Show(show bool) error {
	var command = byte(cmdDISPOFF)
	if show {
		command = cmdDISPON
	}
	return d.c.Command(command)
}

// Invert toggles display color inversion.
func (d *Device) Invert(invert bool) error {
	var command = byte(cmdINVOFF)
	if invert {
		command = cmdINVON
	}
	return d.c.Command(command)
}

// SetBacklight drives the backlight pin, if one is configured.
func (d *Device) SetBacklight(on bool) error {
	if d.backlight == nil {
		return nil
	}
	return d.backlight.Out(gpio.Level(on))
}
