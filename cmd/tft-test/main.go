// Command tft-test exercises the ILI9341 driver: fills, vector
// primitives, text and image transfer.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/ili9341"
	"github.com/BeatGlow/ili9341/font"
	"github.com/BeatGlow/ili9341/pixel"
)

func main() {
	spiFlag := flag.String("spi", "", "SPI port (default: first available)")
	dcPinFlag := flag.String("dc", "GPIO24", "Data/Command GPIO pin (DC)")
	resetPinFlag := flag.String("reset", "GPIO25", "Reset GPIO pin")
	blPinFlag := flag.String("bl", "GPIO19", "Backlight GPIO pin")
	rotateFlag := flag.String("rotate", "", "Panel orientation")
	delayFlag := flag.Duration("delay", time.Second, "Delay between test screens")
	flag.Parse()

	var orientation ili9341.Orientation
	switch *rotateFlag {
	case "", "portrait":
		orientation = ili9341.Portrait1
	case "portrait-flipped":
		orientation = ili9341.Portrait2
	case "landscape":
		orientation = ili9341.Landscape1
	case "landscape-flipped":
		orientation = ili9341.Landscape2
	default:
		fatal(fmt.Errorf("invalid orientation %q specified", *rotateFlag))
	}

	if _, err := host.Init(); err != nil {
		fatal(err)
	}

	port, err := spireg.Open(*spiFlag)
	if err != nil {
		fatal(err)
	}

	conn, err := ili9341.OpenSPI(port, &ili9341.SPIConfig{
		Reset: pin(*resetPinFlag),
		DC:    pin(*dcPinFlag),
	})
	if err != nil {
		fatal(err)
	}

	dev, err := ili9341.New(conn, &ili9341.Config{
		Orientation: orientation,
		Backlight:   pin(*blPinFlag),
	})
	if err != nil {
		fatal(err)
	}
	defer dev.Close()
	fmt.Println("using display:", dev, "orientation:", dev.Orientation())

	w, h := dev.Size()

	fmt.Println("fills")
	for _, c := range []pixel.RGB565{pixel.Red, pixel.Green, pixel.Blue, pixel.Black} {
		check(dev.FillScreen(c))
		time.Sleep(*delayFlag / 4)
	}

	fmt.Println("rectangles")
	for i := 0; i < 8; i++ {
		check(dev.DrawRectangle(i*10, i*10, w-1-i*10, h-1-i*10, pixel.Yellow))
	}
	time.Sleep(*delayFlag)

	fmt.Println("lines")
	check(dev.FillScreen(pixel.Black))
	for x := 0; x < w; x += 16 {
		check(dev.DrawLine(w/2, h/2, x, 0, pixel.Cyan))
		check(dev.DrawLine(w/2, h/2, x, h-1, pixel.Magenta))
	}
	time.Sleep(*delayFlag)

	fmt.Println("circles")
	check(dev.FillScreen(pixel.Black))
	check(dev.DrawFilledCircle(w/2, h/2, 40, pixel.Orange))
	for r := 50; r < w/2; r += 10 {
		check(dev.DrawCircle(w/2, h/2, r, pixel.Green))
	}
	time.Sleep(*delayFlag)

	fmt.Println("text")
	check(dev.FillScreen(pixel.Black))
	check(dev.DrawString(4, 4, "ILI9341 driver test\n\r0123456789", font.Font7x13, pixel.White, pixel.Black))
	time.Sleep(*delayFlag)

	fmt.Println("image")
	img := pixel.NewRGB565Image(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, pixel.New(uint8(x*255/w), uint8(y*255/h), 128))
		}
	}
	check(dev.DrawImage(0, 0, img))
	time.Sleep(*delayFlag)
}

func check(err error) {
	if err != nil {
		fatal(err)
	}
}

func pin(name string) gpio.PinIO {
	p := gpioreg.ByName(name)
	if p == nil {
		fatal(fmt.Errorf("no such GPIO pin %q", name))
	}
	return p
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal:", err)
	os.Exit(1)
}
