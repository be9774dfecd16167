// Package stopwatch implements the counter and lap state machine behind
// the stopwatch demo.
//
// Time is counted in ticks of one centisecond. The mutex guards only the
// counter state; it is never held across display I/O, so a slow panel
// transfer cannot block the tick source.
package stopwatch

import (
	"fmt"
	"sync"
)

// Laps is the number of split times kept.
const Laps = 4

// Stopwatch counts centiseconds and keeps a short lap history.
type Stopwatch struct {
	mu      sync.Mutex
	running bool
	frozen  bool
	ticks   uint32
	shown   uint32
	laps    [Laps]uint32
}

// New returns a stopped stopwatch at zero.
func New() *Stopwatch {
	return &Stopwatch{}
}

// Tick advances the counter by one centisecond while running. Call it
// every 10ms.
func (s *Stopwatch) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		s.ticks++
	}
}

// StartStop toggles the running state. Stopping freezes the displayed
// value; starting again records the frozen value as a lap and resumes
// counting.
func (s *Stopwatch) StartStop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		s.running = false
		s.frozen = true
		s.shown = s.ticks
	} else {
		if s.frozen {
			s.pushLap(s.shown)
			s.frozen = false
		}
		s.running = true
	}
}

// Reset zeroes the counter and clears the freeze and the lap history. The
// running state is preserved.
func (s *Stopwatch) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ticks = 0
	s.shown = 0
	s.frozen = false
	s.laps = [Laps]uint32{}
}

// Lap records the current displayed value without stopping.
func (s *Stopwatch) Lap() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frozen {
		s.pushLap(s.shown)
	} else {
		s.pushLap(s.ticks)
	}
}

func (s *Stopwatch) pushLap(t uint32) {
	copy(s.laps[1:], s.laps[:Laps-1])
	s.laps[0] = t
}

// Running reports whether the counter is advancing.
func (s *Stopwatch) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Frozen reports whether the displayed value is held.
func (s *Stopwatch) Frozen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frozen
}

// Snapshot returns the displayed total and the lap history. While frozen
// the total holds the value at the moment the stopwatch was stopped.
func (s *Stopwatch) Snapshot() (total uint32, laps [Laps]uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frozen {
		total = s.shown
	} else {
		total = s.ticks
	}
	return total, s.laps
}

// Split decomposes ticks into minutes, seconds and centiseconds. Minutes
// wrap at 100 so the value always fits two digits.
func Split(ticks uint32) (min, sec, centi uint32) {
	return (ticks / 6000) % 100, (ticks / 100) % 60, ticks % 100
}

// FormatTicks renders ticks as "MM:SS.CC".
func FormatTicks(ticks uint32) string {
	min, sec, centi := Split(ticks)
	return fmt.Sprintf("%02d:%02d.%02d", min, sec, centi)
}
