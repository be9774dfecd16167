package ili9341

import (
	"image"
	"image/color"
	"testing"

	"github.com/BeatGlow/ili9341/pixel"
)

func TestDrawImageFastPath(t *testing.T) {
	img := pixel.NewRGB565Image(20, 20)
	img.Fill(pixel.Cyan)

	d, rec := testDevice(Portrait1)
	if err := d.DrawImage(30, 40, img); err != nil {
		t.Fatal(err)
	}

	if !equal(rec.ops[0].data, []byte{0, 30, 0, 49}) {
		t.Errorf("unexpected columns %v", rec.ops[0].data)
	}
	if !equal(rec.ops[1].data, []byte{0, 40, 0, 59}) {
		t.Errorf("unexpected rows %v", rec.ops[1].data)
	}

	// 20*20*2 = 800 bytes in maxTransfer slices.
	chunks, total := rec.pixelStream(3)
	if total != 800 {
		t.Errorf("expected 800 bytes, got %d", total)
	}
	if !equalInts(chunks, []int{256, 256, 256, 32}) {
		t.Errorf("expected chunks [256 256 256 32], got %v", chunks)
	}
	for _, o := range rec.ops[3:] {
		for i := 0; i < len(o.data); i += 2 {
			if o.data[i] != 0x07 || o.data[i+1] != 0xFF {
				t.Fatalf("unexpected pixel bytes %02X %02X", o.data[i], o.data[i+1])
			}
		}
	}
}

func TestDrawImageConverted(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.NRGBA{R: 0xFF, A: 0xFF})
		}
	}

	d, rec := testDevice(Portrait1)
	if err := d.DrawImage(0, 0, img); err != nil {
		t.Fatal(err)
	}

	_, total := rec.pixelStream(3)
	if total != 4*2*2 {
		t.Errorf("expected 16 bytes, got %d", total)
	}
	for _, o := range rec.ops[3:] {
		for i := 0; i < len(o.data); i += 2 {
			if o.data[i] != 0xF8 || o.data[i+1] != 0x00 {
				t.Fatalf("expected red pixels, got %02X %02X", o.data[i], o.data[i+1])
			}
		}
	}
}

func TestDrawImageEmpty(t *testing.T) {
	d, rec := testDevice(Portrait1)
	if err := d.DrawImage(0, 0, image.NewNRGBA(image.Rectangle{})); err != nil {
		t.Fatal(err)
	}
	if len(rec.ops) != 0 {
		t.Errorf("expected no ops for an empty image, got %d", len(rec.ops))
	}
}

func TestDrawImageOffsetBounds(t *testing.T) {
	// An image whose bounds do not start at the origin still lands at the
	// requested panel position.
	img := image.NewNRGBA(image.Rect(10, 10, 14, 12))

	d, rec := testDevice(Portrait1)
	if err := d.DrawImage(5, 6, img); err != nil {
		t.Fatal(err)
	}

	if !equal(rec.ops[0].data, []byte{0, 5, 0, 8}) {
		t.Errorf("unexpected columns %v", rec.ops[0].data)
	}
	if !equal(rec.ops[1].data, []byte{0, 6, 0, 7}) {
		t.Errorf("unexpected rows %v", rec.ops[1].data)
	}
}
