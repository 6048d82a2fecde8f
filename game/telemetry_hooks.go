package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/heronet/field"
	"github.com/pthm-cable/heronet/telemetry"
)

// recordFrame feeds a rendered frame to the stats window.
func (g *Game) recordFrame(st field.StepStats) {
	var interval float64
	if !g.lastFrame.IsZero() {
		interval = g.now.Sub(g.lastFrame).Seconds()
	}
	g.lastFrame = g.now

	g.collector.RecordFrame(telemetry.FrameRecord{
		IntervalSec: interval,
		Particles:   st.Particles,
		Links:       st.Links,
		Repelled:    st.Repelled,
	})
	if g.collector.ShouldFlush() {
		g.flushTelemetry()
	}
}

// flushTelemetry closes the stats window and writes it out.
func (g *Game) flushTelemetry() {
	frame := g.frames
	stats := g.collector.Flush(frame, len(g.field.Particles()), g.field.Generation())
	perf := g.perf.Stats()
	g.lastStats = stats
	g.lastPerf = perf

	if g.opts.LogStats {
		stats.LogStats()
		perf.LogStats()
	}

	if err := g.output.WriteWindow(stats); err != nil {
		slog.Warn("failed to write frames", "error", err)
	}
	if err := g.output.WritePerf(perf, frame); err != nil {
		slog.Warn("failed to write perf", "error", err)
	}
}

// writeRunFiles saves the effective config and run metadata.
func (g *Game) writeRunFiles() error {
	if g.output == nil {
		return nil
	}
	if err := g.output.WriteConfig(g.cfg); err != nil {
		return err
	}
	w, h := g.field.Size()
	return g.output.WriteRun(telemetry.RunInfo{
		ID:      g.opts.RunID,
		Started: time.Now().UTC(),
		Backend: g.opts.Backend,
		Seed:    g.opts.Seed,
		Width:   w,
		Height:  h,
	})
}
