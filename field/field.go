// Package field owns the particle network: the population, the canvas it
// lives on and the pointer that disturbs it.
package field

import (
	"image/color"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/heronet/components"
	"github.com/pthm-cable/heronet/config"
	"github.com/pthm-cable/heronet/systems"
)

// Surface is the 2D drawing target for one frame, in canvas coordinates.
type Surface interface {
	Clear()
	FillCircle(x, y, radius float64, c color.NRGBA)
	StrokeLine(x1, y1, x2, y2, width float64, c color.NRGBA)
}

// Params bundles the per-system parameters a Field runs with.
type Params struct {
	Population systems.PopulationParams
	Motion     systems.MotionParams
	Links      systems.LinkParams

	LinksEnabled bool
	LinkWidth    float64
	LinkColor    color.NRGBA
}

// ParamsFromConfig builds field params from the loaded config.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		Population:   systems.PopulationParamsFromConfig(cfg),
		Motion:       systems.MotionParamsFromConfig(cfg),
		Links:        systems.LinkParamsFromConfig(cfg),
		LinksEnabled: cfg.Links.Enabled,
		LinkWidth:    cfg.Links.Width,
		LinkColor:    config.MustHexColor(cfg.Links.Color),
	}
}

// StepStats summarises one frame.
type StepStats struct {
	Particles int
	Links     int
	Repelled  int
}

// Field is one particle network instance.
type Field struct {
	rng    *rand.Rand
	params Params

	width, height int
	particles     []components.Particle
	pointer       *systems.Pointer

	links      []systems.Link
	generation int
	last       StepStats
}

// New creates a field for a width x height canvas and generates its
// population from rng.
func New(rng *rand.Rand, width, height int, params Params) *Field {
	f := &Field{
		rng:    rng,
		params: params,
		width:  width,
		height: height,
	}
	f.Regenerate()
	return f
}

// Regenerate discards the population and generates a new one for the
// current canvas size.
func (f *Field) Regenerate() {
	f.particles = systems.Populate(f.rng, f.width, f.height, f.params.Population)
	f.links = f.links[:0]
	f.generation++

	slog.Debug("field_regenerated",
		"width", f.width,
		"height", f.height,
		"particles", len(f.particles),
		"generation", f.generation,
	)
}

// Resize sets the canvas size and regenerates the population.
// The pointer is kept; it is re-read from the host on the next move.
func (f *Field) Resize(width, height int) {
	f.width = width
	f.height = height
	f.Regenerate()
}

// SetPointer marks the pointer active at canvas position (x, y).
func (f *Field) SetPointer(x, y float64) {
	if f.pointer == nil {
		f.pointer = &systems.Pointer{}
	}
	f.pointer.X = x
	f.pointer.Y = y
}

// ClearPointer marks the pointer inactive.
func (f *Field) ClearPointer() {
	f.pointer = nil
}

// Pointer returns the active pointer position, if any.
func (f *Field) Pointer() (x, y float64, ok bool) {
	if f.pointer == nil {
		return 0, 0, false
	}
	return f.pointer.X, f.pointer.Y, true
}

// Clear wipes the surface for a new frame.
func (f *Field) Clear(s Surface) {
	s.Clear()
}

// Advance moves every particle one tick and draws it at its new position.
// Returns how many particles the pointer pushed.
func (f *Field) Advance(s Surface) int {
	w := float64(f.width)
	h := float64(f.height)
	repelled := 0
	for i := range f.particles {
		p := &f.particles[i]
		if systems.UpdateParticle(p, f.pointer, w, h, f.params.Motion) {
			repelled++
		}
		s.FillCircle(p.X, p.Y, p.Size, p.Color)
	}
	return repelled
}

// Connect runs the connection pass over the current positions and strokes
// every link. Returns the links drawn; the slice is reused next frame.
func (f *Field) Connect(s Surface) []systems.Link {
	if !f.params.LinksEnabled {
		f.links = f.links[:0]
		return f.links
	}
	f.links = systems.Links(f.links, f.particles, float64(f.width), float64(f.height), f.params.Links)
	for _, l := range f.links {
		a := &f.particles[l.A]
		b := &f.particles[l.B]
		c := components.WithAlpha(f.params.LinkColor, l.Opacity)
		s.StrokeLine(a.X, a.Y, b.X, b.Y, f.params.LinkWidth, c)
	}
	return f.links
}

// Step renders one full frame: clear, advance, connect.
func (f *Field) Step(s Surface) StepStats {
	f.Clear(s)
	repelled := f.Advance(s)
	links := f.Connect(s)
	f.last = StepStats{
		Particles: len(f.particles),
		Links:     len(links),
		Repelled:  repelled,
	}
	return f.last
}

// RecordStats stores stats for a frame assembled from the individual phases.
func (f *Field) RecordStats(st StepStats) {
	f.last = st
}

// LastStats returns the stats of the most recent frame.
func (f *Field) LastStats() StepStats { return f.last }

// Particles returns the live population. Callers must not retain it across
// a Regenerate.
func (f *Field) Particles() []components.Particle { return f.particles }

// Size returns the canvas size.
func (f *Field) Size() (width, height int) { return f.width, f.height }

// Generation counts how many populations have been generated.
func (f *Field) Generation() int { return f.generation }

// Params returns the current parameters.
func (f *Field) Params() Params { return f.params }

// SetParams replaces the runtime parameters. Population params take effect
// on the next Regenerate.
func (f *Field) SetParams(p Params) { f.params = p }
