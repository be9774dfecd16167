package ili9341

import (
	"testing"

	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/ili9341/pixel"
)

// op is one transfer recorded by recordConn. raw marks a pixel-stream
// continuation sent without a command byte.
type op struct {
	cmd  byte
	data []byte
	raw  bool
}

type recordConn struct {
	ops    []op
	resets []gpio.Level
}

func (c *recordConn) String() string { return "record" }

func (c *recordConn) Close() error { return nil }

func (c *recordConn) Reset(l gpio.Level) error {
	c.resets = append(c.resets, l)
	return nil
}

func (c *recordConn) Command(cmd byte, data ...byte) error {
	c.ops = append(c.ops, op{cmd: cmd, data: append([]byte(nil), data...)})
	return nil
}

func (c *recordConn) Data(data ...byte) error {
	if len(data) == 0 {
		return nil
	}
	c.ops = append(c.ops, op{raw: true, data: append([]byte(nil), data...)})
	return nil
}

// pixelStream collects all raw continuation payloads after the given op
// index into chunk sizes and a total byte count.
func (c *recordConn) pixelStream(from int) (chunks []int, total int) {
	for _, o := range c.ops[from:] {
		if !o.raw {
			break
		}
		chunks = append(chunks, len(o.data))
		total += len(o.data)
	}
	return
}

func testDevice(o Orientation) (*Device, *recordConn) {
	rec := &recordConn{}
	d := &Device{c: rec, orientation: o}
	d.width, d.height = o.size()
	return d, rec
}

func TestSetWindowNormalization(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		cols, rows     []byte
	}{
		{"ordered", 0, 0, 239, 319, []byte{0, 0, 0, 239}, []byte{0, 0, 1, 0x3F}},
		{"swapped columns", 239, 0, 0, 319, []byte{0, 0, 0, 239}, []byte{0, 0, 1, 0x3F}},
		{"swapped rows", 0, 319, 239, 0, []byte{0, 0, 0, 239}, []byte{0, 0, 1, 0x3F}},
		{"swapped both", 10, 20, 5, 3, []byte{0, 5, 0, 10}, []byte{0, 3, 0, 20}},
		{"16-bit coordinates", 300, 5, 2, 310, []byte{0, 2, 1, 0x2C}, []byte{0, 5, 1, 0x36}},
		{"single pixel", 7, 9, 7, 9, []byte{0, 7, 0, 7}, []byte{0, 9, 0, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, rec := testDevice(Portrait1)
			if err := d.SetWindow(tt.x0, tt.y0, tt.x1, tt.y1); err != nil {
				t.Fatal(err)
			}
			if len(rec.ops) != 2 {
				t.Fatalf("expected 2 commands, got %d", len(rec.ops))
			}
			if rec.ops[0].cmd != cmdCASET {
				t.Errorf("expected column address set, got %#02x", rec.ops[0].cmd)
			}
			if got := rec.ops[0].data; !equal(got, tt.cols) {
				t.Errorf("expected columns %v, got %v", tt.cols, got)
			}
			if rec.ops[1].cmd != cmdPASET {
				t.Errorf("expected page address set, got %#02x", rec.ops[1].cmd)
			}
			if got := rec.ops[1].data; !equal(got, tt.rows) {
				t.Errorf("expected rows %v, got %v", tt.rows, got)
			}
		})
	}
}

func TestFillChunking(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		chunks []int
	}{
		{"single pixel", 1, 1, []int{2}},
		{"exactly one chunk", 8, 16, []int{256}},
		{"exactly two chunks", 16, 16, []int{256, 256}},
		{"partial chunk only", 3, 5, []int{30}},
		{"full chunks and remainder", 16, 17, []int{256, 256, 32}},
		{"odd rectangle", 13, 7, []int{182}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, rec := testDevice(Portrait1)
			if err := d.Fill(0, 0, tt.w-1, tt.h-1, pixel.Yellow); err != nil {
				t.Fatal(err)
			}

			// window, memory write, then the pixel stream
			if len(rec.ops) < 3 || rec.ops[2].cmd != cmdRAMWR {
				t.Fatalf("expected memory write as third op, got %+v", rec.ops)
			}
			chunks, total := rec.pixelStream(3)
			if want := tt.w * tt.h * 2; total != want {
				t.Errorf("expected %d bytes, got %d", want, total)
			}
			if !equalInts(chunks, tt.chunks) {
				t.Errorf("expected chunks %v, got %v", tt.chunks, chunks)
			}
		})
	}
}

func TestFillCornerOrder(t *testing.T) {
	a, recA := testDevice(Portrait1)
	b, recB := testDevice(Portrait1)

	if err := a.Fill(5, 9, 2, 3, pixel.Cyan); err != nil {
		t.Fatal(err)
	}
	if err := b.Fill(2, 3, 5, 9, pixel.Cyan); err != nil {
		t.Fatal(err)
	}

	if len(recA.ops) != len(recB.ops) {
		t.Fatalf("expected identical op counts, got %d and %d", len(recA.ops), len(recB.ops))
	}
	for i := range recA.ops {
		if recA.ops[i].cmd != recB.ops[i].cmd || !equal(recA.ops[i].data, recB.ops[i].data) {
			t.Errorf("op %d differs: %+v != %+v", i, recA.ops[i], recB.ops[i])
		}
	}
}

func TestFillScreenScenario(t *testing.T) {
	// Full red portrait fill: columns 0..239, rows 0..319, then exactly
	// 240*320*2 bytes of 0xF8,0x00.
	d, rec := testDevice(Portrait1)
	if err := d.Fill(0, 0, 239, 319, pixel.Red); err != nil {
		t.Fatal(err)
	}

	if !equal(rec.ops[0].data, []byte{0, 0, 0, 239}) {
		t.Errorf("unexpected column window %v", rec.ops[0].data)
	}
	if !equal(rec.ops[1].data, []byte{0, 0, 1, 0x3F}) {
		t.Errorf("unexpected row window %v", rec.ops[1].data)
	}

	chunks, total := rec.pixelStream(3)
	if total != 240*320*2 {
		t.Errorf("expected 153600 bytes, got %d", total)
	}
	if len(chunks) != 600 {
		t.Errorf("expected 600 chunks, got %d", len(chunks))
	}
	for _, o := range rec.ops[3:] {
		for i := 0; i < len(o.data); i += 2 {
			if o.data[i] != 0xF8 || o.data[i+1] != 0x00 {
				t.Fatalf("unexpected pixel bytes %#02x,%#02x", o.data[i], o.data[i+1])
			}
		}
	}
}

func TestOrientationProperties(t *testing.T) {
	tests := []struct {
		o      Orientation
		madctl byte
		w, h   int
	}{
		{Portrait1, 0x48, 240, 320},
		{Portrait2, 0x88, 240, 320},
		{Landscape1, 0x28, 320, 240},
		{Landscape2, 0xE8, 320, 240},
	}

	for _, tt := range tests {
		t.Run(tt.o.String(), func(t *testing.T) {
			if got := tt.o.madctl(); got != tt.madctl {
				t.Errorf("expected MADCTL %#02x, got %#02x", tt.madctl, got)
			}
			if w, h := tt.o.size(); w != tt.w || h != tt.h {
				t.Errorf("expected size %dx%d, got %dx%d", tt.w, tt.h, w, h)
			}
		})
	}
}

func TestRotate(t *testing.T) {
	d, rec := testDevice(Portrait1)

	if err := d.Rotate(Landscape1); err != nil {
		t.Fatal(err)
	}
	if w, h := d.Size(); w != 320 || h != 240 {
		t.Errorf("expected 320x240 in landscape, got %dx%d", w, h)
	}
	last := rec.ops[len(rec.ops)-1]
	if last.cmd != cmdMADCTL || !equal(last.data, []byte{0x28}) {
		t.Errorf("unexpected memory access control op %+v", last)
	}
}

func TestRotateRoundTrip(t *testing.T) {
	d, rec := testDevice(Portrait1)

	for _, o := range []Orientation{Landscape1, Portrait2, Landscape2, Portrait1} {
		if err := d.Rotate(o); err != nil {
			t.Fatal(err)
		}
	}

	if d.Orientation() != Portrait1 {
		t.Errorf("expected portrait after round trip, got %s", d.Orientation())
	}
	if w, h := d.Size(); w != 240 || h != 320 {
		t.Errorf("expected 240x320 after round trip, got %dx%d", w, h)
	}
	last := rec.ops[len(rec.ops)-1]
	if last.cmd != cmdMADCTL || !equal(last.data, []byte{0x48}) {
		t.Errorf("unexpected memory access control op %+v", last)
	}
}

func TestNewInitSequence(t *testing.T) {
	rec := &recordConn{}
	d, err := New(rec, nil)
	if err != nil {
		t.Fatal(err)
	}

	if !equalLevels(rec.resets, []gpio.Level{gpio.Low, gpio.High}) {
		t.Errorf("expected reset pulse low then high, got %v", rec.resets)
	}
	if rec.ops[0].cmd != cmdPWCTRLA {
		t.Errorf("expected power control A first, got %#02x", rec.ops[0].cmd)
	}

	var sleepOut, displayOn bool
	for _, o := range rec.ops {
		switch o.cmd {
		case cmdSLPOUT:
			sleepOut = true
		case cmdDISPON:
			if !sleepOut {
				t.Error("display on before sleep out")
			}
			displayOn = true
		}
	}
	if !sleepOut || !displayOn {
		t.Error("init sequence misses sleep out or display on")
	}

	if w, h := d.Size(); w != Width || h != Height {
		t.Errorf("expected native portrait size, got %dx%d", w, h)
	}

	// The boot fill covers the whole screen in black.
	var total int
	for _, o := range rec.ops {
		if o.raw {
			total += len(o.data)
			for _, b := range o.data {
				if b != 0 {
					t.Fatal("expected black boot fill")
				}
			}
		}
	}
	if total != Width*Height*2 {
		t.Errorf("expected %d boot fill bytes, got %d", Width*Height*2, total)
	}
}

func equal(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalLevels(a, b []gpio.Level) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
