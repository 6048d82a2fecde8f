package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FrameRecord is what one animation frame reports.
type FrameRecord struct {
	IntervalSec float64 // sim time since the previous frame
	Particles   int
	Links       int
	Repelled    int
}

// WindowStats summarises the frames of one stats window.
type WindowStats struct {
	WindowStart uint64  `csv:"-"`
	WindowEnd   uint64  `csv:"window_end"`
	SimTimeSec  float64 `csv:"sim_time"`
	Frames      int     `csv:"frames"`

	Particles  int `csv:"particles"`
	Generation int `csv:"generation"`

	// Frame pacing
	FPS         float64 `csv:"fps"`
	FrameMSMean float64 `csv:"frame_ms_mean"`
	FrameMSStd  float64 `csv:"frame_ms_std"`
	FrameMSP50  float64 `csv:"frame_ms_p50"`
	FrameMSP90  float64 `csv:"frame_ms_p90"`

	// Connection pass
	LinksMean float64 `csv:"links_mean"`
	LinksP90  float64 `csv:"links_p90"`
	LinksMax  float64 `csv:"links_max"`

	RepelledMean float64 `csv:"repelled_mean"`

	// Events during the window
	Regenerations int `csv:"regenerations"`
	StateChanges  int `csv:"state_changes"`
}

// Collector accumulates frame records and produces WindowStats every
// windowFrames frames.
type Collector struct {
	windowFrames int

	windowStart uint64
	simTime     float64

	intervals []float64 // ms
	links     []float64
	repelled  []float64

	regenerations int
	stateChanges  int
}

// NewCollector creates a collector that flushes every windowFrames frames.
func NewCollector(windowFrames int) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	return &Collector{
		windowFrames: windowFrames,
		intervals:    make([]float64, 0, windowFrames),
		links:        make([]float64, 0, windowFrames),
		repelled:     make([]float64, 0, windowFrames),
	}
}

// RecordFrame adds one frame to the window.
func (c *Collector) RecordFrame(r FrameRecord) {
	c.simTime += r.IntervalSec
	if r.IntervalSec > 0 {
		c.intervals = append(c.intervals, r.IntervalSec*1000)
	}
	c.links = append(c.links, float64(r.Links))
	c.repelled = append(c.repelled, float64(r.Repelled))
}

// RecordRegeneration counts a population regeneration.
func (c *Collector) RecordRegeneration() { c.regenerations++ }

// RecordStateChange counts a loop start or stop.
func (c *Collector) RecordStateChange() { c.stateChanges++ }

// Frames returns the number of frames recorded in the current window.
func (c *Collector) Frames() int { return len(c.links) }

// ShouldFlush reports whether the window is full.
func (c *Collector) ShouldFlush() bool {
	return len(c.links) >= c.windowFrames
}

// Flush produces the stats for the current window and starts a new one.
// frame is the loop's frame counter; particles and generation describe the
// field at window end.
func (c *Collector) Flush(frame uint64, particles, generation int) WindowStats {
	s := WindowStats{
		WindowStart:   c.windowStart,
		WindowEnd:     frame,
		SimTimeSec:    c.simTime,
		Frames:        len(c.links),
		Particles:     particles,
		Generation:    generation,
		Regenerations: c.regenerations,
		StateChanges:  c.stateChanges,
	}

	s.FrameMSMean, s.FrameMSStd, s.FrameMSP50, s.FrameMSP90 = Summarize(c.intervals)
	if s.FrameMSMean > 0 {
		s.FPS = 1000 / s.FrameMSMean
	}
	s.LinksMean, _, _, s.LinksP90 = Summarize(c.links)
	if len(c.links) > 0 {
		s.LinksMax = floats.Max(c.links)
	}
	s.RepelledMean, _, _, _ = Summarize(c.repelled)

	c.windowStart = frame
	c.intervals = c.intervals[:0]
	c.links = c.links[:0]
	c.repelled = c.repelled[:0]
	c.regenerations = 0
	c.stateChanges = 0
	return s
}

// Summarize returns the mean, sample standard deviation and the empirical
// 50th and 90th percentiles of values. Empty input yields zeros.
func Summarize(values []float64) (mean, std, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	mean = stat.Mean(values, nil)
	if len(values) > 1 {
		std = stat.StdDev(values, nil)
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return mean, std, p50, p90
}

// LogValue implements slog.LogValuer.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStart),
		slog.Uint64("window_end", s.WindowEnd),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("frames", s.Frames),
		slog.Int("particles", s.Particles),
		slog.Int("generation", s.Generation),
		slog.Float64("fps", s.FPS),
		slog.Float64("frame_ms_mean", s.FrameMSMean),
		slog.Float64("frame_ms_std", s.FrameMSStd),
		slog.Float64("frame_ms_p90", s.FrameMSP90),
		slog.Float64("links_mean", s.LinksMean),
		slog.Float64("links_max", s.LinksMax),
		slog.Float64("repelled_mean", s.RepelledMean),
		slog.Int("regenerations", s.Regenerations),
		slog.Int("state_changes", s.StateChanges),
	)
}

// LogStats logs the window at info level.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
