package stopwatch

import "testing"

func tick(s *Stopwatch, n int) {
	for i := 0; i < n; i++ {
		s.Tick()
	}
}

func TestNewIsStopped(t *testing.T) {
	s := New()
	if s.Running() {
		t.Error("expected a new stopwatch to be stopped")
	}
	if s.Frozen() {
		t.Error("expected a new stopwatch to be unfrozen")
	}
	if total, _ := s.Snapshot(); total != 0 {
		t.Errorf("expected zero, got %d", total)
	}
}

func TestTickOnlyWhileRunning(t *testing.T) {
	s := New()
	tick(s, 10)
	if total, _ := s.Snapshot(); total != 0 {
		t.Errorf("expected a stopped stopwatch to ignore ticks, got %d", total)
	}

	s.StartStop()
	tick(s, 10)
	if total, _ := s.Snapshot(); total != 10 {
		t.Errorf("expected 10 ticks, got %d", total)
	}
}

func TestStopFreezesDisplay(t *testing.T) {
	s := New()
	s.StartStop()
	tick(s, 42)
	s.StartStop()

	if s.Running() {
		t.Error("expected stopped")
	}
	if !s.Frozen() {
		t.Error("expected frozen after stop")
	}

	tick(s, 100)
	if total, _ := s.Snapshot(); total != 42 {
		t.Errorf("expected the frozen value 42, got %d", total)
	}
}

func TestRestartRecordsLap(t *testing.T) {
	s := New()
	s.StartStop()
	tick(s, 42)
	s.StartStop() // stop at 42
	s.StartStop() // restart, 42 becomes a lap

	if !s.Running() {
		t.Error("expected running after restart")
	}
	if s.Frozen() {
		t.Error("expected the freeze to clear on restart")
	}
	if _, laps := s.Snapshot(); laps[0] != 42 {
		t.Errorf("expected lap 42, got %v", laps)
	}

	tick(s, 8)
	if total, _ := s.Snapshot(); total != 50 {
		t.Errorf("expected counting to continue from 42, got %d", total)
	}
}

func TestLapHistoryShifts(t *testing.T) {
	s := New()
	s.StartStop()
	for _, n := range []int{10, 20, 30, 40, 50} {
		tick(s, n)
		s.Lap()
	}

	_, laps := s.Snapshot()
	want := [Laps]uint32{150, 100, 60, 30}
	if laps != want {
		t.Errorf("expected laps %v, got %v", want, laps)
	}
}

func TestLapWhileFrozen(t *testing.T) {
	s := New()
	s.StartStop()
	tick(s, 25)
	s.StartStop() // freeze at 25
	s.Lap()

	if _, laps := s.Snapshot(); laps[0] != 25 {
		t.Errorf("expected frozen lap 25, got %v", laps)
	}
}

func TestResetPreservesRunning(t *testing.T) {
	s := New()
	s.StartStop()
	tick(s, 99)
	s.Lap()
	s.Reset()

	if !s.Running() {
		t.Error("expected reset to keep the stopwatch running")
	}
	total, laps := s.Snapshot()
	if total != 0 {
		t.Errorf("expected zero after reset, got %d", total)
	}
	if laps != ([Laps]uint32{}) {
		t.Errorf("expected empty lap history, got %v", laps)
	}

	tick(s, 3)
	if total, _ := s.Snapshot(); total != 3 {
		t.Errorf("expected counting to resume from zero, got %d", total)
	}
}

func TestResetClearsFreeze(t *testing.T) {
	s := New()
	s.StartStop()
	tick(s, 12)
	s.StartStop()
	s.Reset()

	if s.Frozen() {
		t.Error("expected reset to clear the freeze")
	}
	s.StartStop()
	if _, laps := s.Snapshot(); laps != ([Laps]uint32{}) {
		t.Errorf("expected no lap from a reset freeze, got %v", laps)
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		ticks           uint32
		min, sec, centi uint32
	}{
		{0, 0, 0, 0},
		{99, 0, 0, 99},
		{100, 0, 1, 0},
		{5999, 0, 59, 99},
		{6000, 1, 0, 0},
		{6000*99 + 5999, 99, 59, 99},
		{6000 * 100, 0, 0, 0}, // minutes wrap at 100
	}

	for _, tt := range tests {
		min, sec, centi := Split(tt.ticks)
		if min != tt.min || sec != tt.sec || centi != tt.centi {
			t.Errorf("Split(%d): expected %02d:%02d.%02d, got %02d:%02d.%02d",
				tt.ticks, tt.min, tt.sec, tt.centi, min, sec, centi)
		}
	}
}

func TestFormatTicks(t *testing.T) {
	tests := []struct {
		ticks uint32
		want  string
	}{
		{0, "00:00.00"},
		{4273, "00:42.73"},
		{6000*12 + 3456, "12:34.56"},
	}

	for _, tt := range tests {
		if got := FormatTicks(tt.ticks); got != tt.want {
			t.Errorf("FormatTicks(%d): expected %q, got %q", tt.ticks, tt.want, got)
		}
	}
}
