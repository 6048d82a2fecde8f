package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/pthm-cable/heronet/loop"
)

// HeadlessOptions configures RunHeadless.
type HeadlessOptions struct {
	// MaxFrames stops the run after this many rendered frames (0 = unlimited).
	MaxFrames uint64
	// FrameInterval advances the simulated clock per iteration.
	FrameInterval time.Duration
	// Start is the simulated clock's origin.
	Start time.Time
}

// RunHeadless drives g on a simulated clock until ctx is done or
// MaxFrames frames have rendered. It returns the number of frames rendered.
func RunHeadless(ctx context.Context, g *Game, opts HeadlessOptions) uint64 {
	if !g.Active() {
		return 0
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = time.Second / 60
	}
	now := opts.Start
	if now.IsZero() {
		now = time.Unix(0, 0)
	}

	g.Start()
	for {
		select {
		case <-ctx.Done():
			slog.Info("headless run interrupted", "frames", g.Frames())
			return g.Frames()
		default:
		}

		g.Frame(now)
		now = now.Add(opts.FrameInterval)

		if opts.MaxFrames > 0 && g.Frames() >= opts.MaxFrames {
			slog.Info("max ticks reached", "frames", g.Frames())
			return g.Frames()
		}
		if g.State() == loop.Stopped && !g.ResizePending() {
			// Nothing can wake a stopped loop without host events.
			slog.Info("loop stopped", "frames", g.Frames())
			return g.Frames()
		}
	}
}
