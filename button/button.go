// Package button detects press events on the stopwatch push buttons.
//
// Buttons are wired active-low with pull-ups: a high to low transition
// between two polls counts as one press.
package button

import (
	"context"
	"strings"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// DefaultInterval is the polling period used when none is given. It
// doubles as the debounce window: bounces shorter than one period
// collapse into a single edge.
const DefaultInterval = 30 * time.Millisecond

// Event is a set of button press events.
type Event uint8

// Button events.
const (
	StartStop Event = 1 << iota
	Reset
	Func
)

// Has reports whether every event in mask is set.
func (e Event) Has(mask Event) bool {
	return e&mask == mask
}

func (e Event) String() string {
	if e == 0 {
		return "none"
	}
	var names []string
	if e.Has(StartStop) {
		names = append(names, "start/stop")
	}
	if e.Has(Reset) {
		names = append(names, "reset")
	}
	if e.Has(Func) {
		names = append(names, "func")
	}
	return strings.Join(names, "+")
}

// Poller scans the three buttons and reports falling edges.
type Poller struct {
	pins [3]gpio.PinIn
	prev [3]gpio.Level
}

// NewPoller configures the three button pins as pulled-up inputs.
func NewPoller(startStop, reset, fn gpio.PinIn) (*Poller, error) {
	p := &Poller{
		pins: [3]gpio.PinIn{startStop, reset, fn},
		prev: [3]gpio.Level{gpio.High, gpio.High, gpio.High},
	}
	for _, pin := range p.pins {
		if err := pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Poll reads the pins once and returns the falling edges seen since the
// previous call.
func (p *Poller) Poll() Event {
	var ev Event
	for i, pin := range p.pins {
		cur := pin.Read()
		if cur == gpio.Low && p.prev[i] == gpio.High {
			ev |= Event(1) << uint(i)
		}
		p.prev[i] = cur
	}
	return ev
}

// Run polls at the given interval until ctx is done, invoking fn for
// every non-empty event set. An interval of zero selects
// DefaultInterval.
func (p *Poller) Run(ctx context.Context, interval time.Duration, fn func(Event)) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if ev := p.Poll(); ev != 0 {
				fn(ev)
			}
		}
	}
}
