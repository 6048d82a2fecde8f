// Package telemetry measures the animation: per-phase frame timing, rolling
// frame statistics and the CSV/YAML files a run leaves behind.
package telemetry

import (
	"log/slog"
	"time"
)

// Phase is one timed section of a frame.
type Phase uint8

const (
	PhaseClear Phase = iota
	PhaseUpdate
	PhaseLinks
	PhasePresent
	phaseCount
)

var phaseNames = [phaseCount]string{"clear", "update", "links", "present"}

func (p Phase) String() string {
	if p >= phaseCount {
		return "unknown"
	}
	return phaseNames[p]
}

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameDuration time.Duration
	Phases        [phaseCount]time.Duration
}

// PerfCollector keeps per-phase frame timings over a rolling window.
type PerfCollector struct {
	// Now is the clock; defaults to time.Now.
	Now func() time.Time

	samples     []PerfSample
	writeIndex  int
	sampleCount int

	current    PerfSample
	frameStart time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	// Wall time between presented frames
	lastPresent time.Time
	interval    time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize frames.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		Now:     time.Now,
		samples: make([]PerfSample, windowSize),
	}
}

// StartFrame begins timing a frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = p.Now()
	p.current = PerfSample{}
	p.inPhase = false
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := p.Now()
	p.endPhase(now)
	p.phase = phase
	p.phaseStart = now
	p.inPhase = true
}

// EndFrame closes the frame and adds it to the window.
func (p *PerfCollector) EndFrame() {
	now := p.Now()
	p.endPhase(now)
	p.current.FrameDuration = now.Sub(p.frameStart)

	p.samples[p.writeIndex] = p.current
	p.writeIndex = (p.writeIndex + 1) % len(p.samples)
	if p.sampleCount < len(p.samples) {
		p.sampleCount++
	}
}

// RecordPresent marks a presented frame for FPS measurement.
func (p *PerfCollector) RecordPresent() {
	now := p.Now()
	if !p.lastPresent.IsZero() {
		p.interval = now.Sub(p.lastPresent)
	}
	p.lastPresent = now
}

func (p *PerfCollector) endPhase(now time.Time) {
	if !p.inPhase {
		return
	}
	p.current.Phases[p.phase] += now.Sub(p.phaseStart)
	p.inPhase = false
}

// PerfStats holds aggregated timing over the window.
type PerfStats struct {
	Samples int

	AvgFrame time.Duration
	MinFrame time.Duration
	MaxFrame time.Duration

	PhaseAvg [phaseCount]time.Duration
	PhasePct [phaseCount]float64 // share of the average frame, 0-100

	// Presented frames
	Interval time.Duration
	FPS      float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	st := PerfStats{Samples: p.sampleCount, Interval: p.interval}
	if p.interval > 0 {
		st.FPS = float64(time.Second) / float64(p.interval)
	}
	if p.sampleCount == 0 {
		return st
	}

	var total time.Duration
	var phaseSum [phaseCount]time.Duration
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.FrameDuration
		if i == 0 || s.FrameDuration < st.MinFrame {
			st.MinFrame = s.FrameDuration
		}
		st.MaxFrame = max(st.MaxFrame, s.FrameDuration)
		for ph, d := range s.Phases {
			phaseSum[ph] += d
		}
	}

	n := time.Duration(p.sampleCount)
	st.AvgFrame = total / n
	for ph := range phaseSum {
		st.PhaseAvg[ph] = phaseSum[ph] / n
		if st.AvgFrame > 0 {
			st.PhasePct[ph] = float64(st.PhaseAvg[ph]) / float64(st.AvgFrame) * 100
		}
	}
	return st
}

// LogStats logs the window at info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", "stats", s)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("samples", s.Samples),
		slog.Int64("avg_frame_us", s.AvgFrame.Microseconds()),
		slog.Int64("min_frame_us", s.MinFrame.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrame.Microseconds()),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for ph := Phase(0); ph < phaseCount; ph++ {
		if s.PhasePct[ph] > 0.1 {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", s.PhasePct[ph]))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is the perf.csv row.
type PerfStatsCSV struct {
	Frame      uint64  `csv:"frame"`
	AvgFrameUS int64   `csv:"avg_frame_us"`
	MinFrameUS int64   `csv:"min_frame_us"`
	MaxFrameUS int64   `csv:"max_frame_us"`
	FPS        float64 `csv:"fps"`
	ClearPct   float64 `csv:"clear_pct"`
	UpdatePct  float64 `csv:"update_pct"`
	LinksPct   float64 `csv:"links_pct"`
	PresentPct float64 `csv:"present_pct"`
}

// ToCSV flattens the stats for frame.
func (s PerfStats) ToCSV(frame uint64) PerfStatsCSV {
	return PerfStatsCSV{
		Frame:      frame,
		AvgFrameUS: s.AvgFrame.Microseconds(),
		MinFrameUS: s.MinFrame.Microseconds(),
		MaxFrameUS: s.MaxFrame.Microseconds(),
		FPS:        s.FPS,
		ClearPct:   s.PhasePct[PhaseClear],
		UpdatePct:  s.PhasePct[PhaseUpdate],
		LinksPct:   s.PhasePct[PhaseLinks],
		PresentPct: s.PhasePct[PhasePresent],
	}
}
