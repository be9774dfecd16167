// Command stopwatch runs a lap-timing stopwatch on an ILI9341 TFT panel
// with three push buttons and two status LEDs.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/ili9341"
	"github.com/BeatGlow/ili9341/button"
	"github.com/BeatGlow/ili9341/digits"
	"github.com/BeatGlow/ili9341/font"
	"github.com/BeatGlow/ili9341/pixel"
	"github.com/BeatGlow/ili9341/stopwatch"
)

// Digit panel colors, lit and dimmed red on black.
var (
	digitOn    = pixel.Red
	digitOff   = pixel.RGB565{V: 0x1800}
	background = pixel.Black
)

// Landscape layout: three 2-digit panels (minutes, seconds, centiseconds)
// separated by blinking colons, lap times below.
const (
	digitWidth  = 42
	digitHeight = 90
	panelTop    = 30
	lapTop      = 150
	lapPitch    = 18
)

func main() {
	spiFlag := flag.String("spi", "", "SPI port (default: first available)")
	dcPinFlag := flag.String("dc", "GPIO24", "Data/Command GPIO pin (DC)")
	resetPinFlag := flag.String("reset", "GPIO25", "Reset GPIO pin")
	blPinFlag := flag.String("bl", "GPIO19", "Backlight GPIO pin")
	startPinFlag := flag.String("btn-start", "GPIO5", "Start/stop button GPIO pin")
	resetBtnFlag := flag.String("btn-reset", "GPIO6", "Reset button GPIO pin")
	funcPinFlag := flag.String("btn-func", "GPIO13", "Function button GPIO pin")
	redPinFlag := flag.String("led-red", "GPIO20", "Red status LED GPIO pin")
	greenPinFlag := flag.String("led-green", "GPIO21", "Green status LED GPIO pin")
	flag.Parse()

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
		Orientation: ili9341.Landscape1,
		Backlight:   pin(*blPinFlag),
	})
	if err != nil {
		fatal(err)
	}
	defer dev.Close()
	fmt.Println("using display:", dev)

	// Minutes, seconds, centiseconds.
	var panels [3]*digits.Panel
	for i, x := range [3]int{6, 113, 220} {
		if panels[i], err = digits.NewPanel(dev, x, panelTop, 2, digitWidth, digitHeight, digitOn, digitOff, background); err != nil {
			fatal(err)
		}
	}

	poller, err := button.NewPoller(pin(*startPinFlag), pin(*resetBtnFlag), pin(*funcPinFlag))
	if err != nil {
		fatal(err)
	}

	redLED := pin(*redPinFlag)
	greenLED := pin(*greenPinFlag)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sw := stopwatch.New()

	// Tick source, one centisecond per period.
	go func() {
		t := time.NewTicker(10 * time.Millisecond)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				sw.Tick()
			}
		}
	}()

	go poller.Run(ctx, button.DefaultInterval, func(ev button.Event) {
		if ev.Has(button.StartStop) {
			sw.StartStop()
		}
		if ev.Has(button.Reset) {
			sw.Reset()
		}
		if ev.Has(button.Func) {
			sw.Lap()
		}
	})

	// Status LEDs: green blinks while counting, red marks a held display.
	go func() {
		t := time.NewTicker(500 * time.Millisecond)
		defer t.Stop()
		var blink gpio.Level
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				green := gpio.High
				if sw.Running() {
					blink = !blink
					green = blink
				}
				_ = greenLED.Out(green)
				_ = redLED.Out(gpio.Level(sw.Frozen()))
			}
		}
	}()

	// The refresh loop is the only goroutine that draws: the driver is
	// not safe for concurrent use.
	refresh := time.NewTicker(45 * time.Millisecond)
	defer refresh.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-refresh.C:
			if err := draw(dev, &panels, sw); err != nil {
				fatal(err)
			}
		}
	}
}

func draw(dev *ili9341.Device, panels *[3]*digits.Panel, sw *stopwatch.Stopwatch) error {
	total, laps := sw.Snapshot()
	min, sec, centi := stopwatch.Split(total)

	for i, v := range [3]uint32{min, sec, centi} {
		if err := panels[i].DrawValue(int(v)); err != nil {
			return err
		}
	}

	// The colons blink at 1Hz, following the parity of the seconds.
	colon := digitOn
	if sec%2 > 0 {
		colon = digitOff
	}
	for _, x := range [2]int{105, 212} {
		if err := dev.DrawFilledCircle(x, panelTop+30, 4, colon); err != nil {
			return err
		}
		if err := dev.DrawFilledCircle(x, panelTop+60, 4, colon); err != nil {
			return err
		}
	}

	for i := 0; i < 3; i++ {
		line := fmt.Sprintf("L%d %s", i+1, stopwatch.FormatTicks(laps[i]))
		if err := dev.DrawString(6, lapTop+i*lapPitch, line, font.Font7x13, pixel.White, background); err != nil {
			return err
		}
	}
	return nil
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
