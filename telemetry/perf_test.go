package telemetry

import (
	"math"
	"testing"
	"time"
)

// fakeClock only moves when advanced.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCollector(window int) (*PerfCollector, *fakeClock) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	pc := NewPerfCollector(window)
	pc.Now = clk.now
	return pc, clk
}

func TestPerfCollector_PhaseTiming(t *testing.T) {
	pc, clk := newTestCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseClear)
		clk.advance(100 * time.Microsecond)
		pc.StartPhase(PhaseUpdate)
		clk.advance(300 * time.Microsecond)
		pc.StartPhase(PhaseLinks)
		clk.advance(600 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()

	if stats.Samples != 5 {
		t.Errorf("expected 5 samples, got %d", stats.Samples)
	}
	if stats.AvgFrame != time.Millisecond {
		t.Errorf("expected 1ms frames, got %v", stats.AvgFrame)
	}
	if stats.PhaseAvg[PhaseUpdate] != 300*time.Microsecond {
		t.Errorf("expected 300us update, got %v", stats.PhaseAvg[PhaseUpdate])
	}
	if math.Abs(stats.PhasePct[PhaseLinks]-60) > 1e-9 {
		t.Errorf("expected links at 60%%, got %v", stats.PhasePct[PhaseLinks])
	}
	if stats.PhaseAvg[PhasePresent] != 0 {
		t.Errorf("untimed phase should be zero, got %v", stats.PhaseAvg[PhasePresent])
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc, clk := newTestCollector(3)

	for i := 1; i <= 6; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseUpdate)
		clk.advance(time.Duration(i) * time.Millisecond)
		pc.EndFrame()
	}

	stats := pc.Stats()

	// Only frames 4, 5, 6 remain.
	if stats.Samples != 3 {
		t.Fatalf("expected window of 3, got %d", stats.Samples)
	}
	if stats.MinFrame != 4*time.Millisecond || stats.MaxFrame != 6*time.Millisecond {
		t.Errorf("expected min 4ms max 6ms, got %v / %v", stats.MinFrame, stats.MaxFrame)
	}
	if stats.AvgFrame != 5*time.Millisecond {
		t.Errorf("expected avg 5ms, got %v", stats.AvgFrame)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(0)

	stats := pc.Stats()

	if stats.AvgFrame != 0 || stats.Samples != 0 || stats.FPS != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestPerfCollector_PresentRate(t *testing.T) {
	pc, clk := newTestCollector(10)

	pc.RecordPresent()
	clk.advance(20 * time.Millisecond)
	pc.RecordPresent()

	stats := pc.Stats()
	if stats.Interval != 20*time.Millisecond {
		t.Errorf("expected 20ms interval, got %v", stats.Interval)
	}
	if stats.FPS != 50 {
		t.Errorf("expected 50 fps, got %v", stats.FPS)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	var s PerfStats
	s.AvgFrame = 1500 * time.Microsecond
	s.PhasePct[PhaseLinks] = 42
	s.FPS = 60

	row := s.ToCSV(120)
	if row.Frame != 120 || row.AvgFrameUS != 1500 || row.LinksPct != 42 || row.FPS != 60 {
		t.Errorf("unexpected row %+v", row)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseLinks.String() != "links" {
		t.Errorf("expected links, got %q", PhaseLinks.String())
	}
	if Phase(99).String() != "unknown" {
		t.Errorf("expected unknown, got %q", Phase(99).String())
	}
}
