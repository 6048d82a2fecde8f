// Package game is the controller between a host and the particle field: it
// owns the animation loop, the resize debouncer and telemetry, and turns host
// events into field updates.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/heronet/config"
	"github.com/pthm-cable/heronet/field"
	"github.com/pthm-cable/heronet/loop"
	"github.com/pthm-cable/heronet/telemetry"
)

// Options configures a Game.
type Options struct {
	Seed      int64
	Width     int // initial canvas width
	Height    int // initial canvas height
	LogStats  bool
	OutputDir string
	Backend   string
	RunID     string
}

// FrameSurface is a Surface that needs to bracket each frame, such as one
// drawing into an offscreen target.
type FrameSurface interface {
	field.Surface
	BeginFrame(width, height int)
	EndFrame()
}

// Game drives one particle field.
type Game struct {
	cfg  *config.Config
	opts Options

	surface field.Surface
	field   *field.Field

	queue  *loop.FrameQueue
	loop   *loop.Loop
	resize *loop.Debouncer

	// Size waiting for the debouncer
	pendingW, pendingH int

	paused  bool
	visible bool
	frames  uint64 // frames rendered

	// Time of the Frame call being flushed, and of the last stepped frame
	now       time.Time
	lastFrame time.Time

	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	lastPerf  telemetry.PerfStats
	lastStats telemetry.WindowStats
}

// NewGame creates a controller drawing onto surface. A nil surface yields
// an inert controller: the loop never starts and every method is a no-op.
func NewGame(cfg *config.Config, opts Options, surface field.Surface) (*Game, error) {
	g := &Game{cfg: cfg, opts: opts, visible: true}
	if surface == nil {
		slog.Warn("no drawing surface, animation disabled")
		return g, nil
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("opening output: %w", err)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	g.surface = surface
	g.field = field.New(rng, opts.Width, opts.Height, field.ParamsFromConfig(cfg))
	g.queue = &loop.FrameQueue{}
	g.loop = loop.New(g.queue, g.step)
	g.loop.OnStateChange = g.onStateChange
	g.resize = loop.NewDebouncer(time.Duration(cfg.Loop.ResizeDebounceMS) * time.Millisecond)
	g.perf = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	g.collector = telemetry.NewCollector(cfg.Derived.StatsWindowTick)
	g.output = output

	if err := g.writeRunFiles(); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing run files: %w", err)
	}
	return g, nil
}

// Active reports whether the controller has a surface to animate.
func (g *Game) Active() bool { return g.field != nil }

// Start begins the animation loop.
func (g *Game) Start() {
	if g.field == nil {
		return
	}
	g.loop.Start()
}

// Frame is called once per host iteration. It applies a settled resize and
// runs the frame callbacks that are due.
func (g *Game) Frame(now time.Time) {
	if g.field == nil {
		return
	}
	g.now = now
	if g.resize.Poll(now) {
		g.field.Resize(g.pendingW, g.pendingH)
		g.collector.RecordRegeneration()
	}
	g.queue.Flush()
}

// step renders one frame. It is the loop's frame callback.
func (g *Game) step() {
	g.frames++
	g.perf.StartFrame()

	fs, bracketed := g.surface.(FrameSurface)
	if bracketed {
		w, h := g.field.Size()
		fs.BeginFrame(w, h)
	}

	g.perf.StartPhase(telemetry.PhaseClear)
	g.field.Clear(g.surface)
	g.perf.StartPhase(telemetry.PhaseUpdate)
	repelled := g.field.Advance(g.surface)
	g.perf.StartPhase(telemetry.PhaseLinks)
	links := g.field.Connect(g.surface)

	if bracketed {
		g.perf.StartPhase(telemetry.PhasePresent)
		fs.EndFrame()
	}
	g.perf.EndFrame()
	g.perf.RecordPresent()

	st := field.StepStats{
		Particles: len(g.field.Particles()),
		Links:     len(links),
		Repelled:  repelled,
	}
	g.field.RecordStats(st)
	g.recordFrame(st)
}

// Unload flushes and closes telemetry output.
func (g *Game) Unload() {
	if g.field == nil {
		return
	}
	if g.collector.Frames() > 0 {
		g.flushTelemetry()
	}
	if err := g.output.Close(); err != nil {
		slog.Warn("closing output", "error", err)
	}
}

// Field returns the animated field, or nil for an inert controller.
func (g *Game) Field() *field.Field { return g.field }

// Loop returns the animation loop, or nil for an inert controller.
func (g *Game) Loop() *loop.Loop { return g.loop }

// Frames returns how many frames have been rendered.
func (g *Game) Frames() uint64 { return g.frames }

// State returns the loop state.
func (g *Game) State() loop.State {
	if g.loop == nil {
		return loop.Stopped
	}
	return g.loop.State()
}

// PerfStats returns the perf window as of the last telemetry flush.
func (g *Game) PerfStats() telemetry.PerfStats { return g.lastPerf }

// LiveFPS returns the current presented frame rate.
func (g *Game) LiveFPS() float64 {
	if g.perf == nil {
		return 0
	}
	return g.perf.Stats().FPS
}

// WindowStats returns the most recently flushed stats window.
func (g *Game) WindowStats() telemetry.WindowStats { return g.lastStats }

// Options returns the options the game was created with.
func (g *Game) Options() Options { return g.opts }

func (g *Game) onStateChange(s loop.State) {
	g.collector.RecordStateChange()
	slog.Info("loop_state", "state", s.String(), "frame", g.frames)
}
