package systems

import (
	"math"

	"github.com/pthm-cable/heronet/components"
	"github.com/pthm-cable/heronet/config"
)

// Pointer is an active pointer position in canvas space.
// A nil *Pointer means no pointer is present.
type Pointer struct {
	X, Y float64
}

// MotionParams controls the per-tick particle update.
type MotionParams struct {
	PointerRadius float64
	PointerStep   float64 // nudge per axis per tick
	MarginFactor  float64 // pointer nudges stop within size*MarginFactor of an edge
}

// MotionParamsFromConfig builds motion params from the loaded config.
func MotionParamsFromConfig(cfg *config.Config) MotionParams {
	return MotionParams{
		PointerRadius: cfg.Pointer.Radius,
		PointerStep:   cfg.Pointer.Step,
		MarginFactor:  cfg.Pointer.MarginFactor,
	}
}

// Bounce flips each velocity component whose axis is outside [0, extent].
// Position is not clamped; a particle may overshoot for a tick.
func Bounce(p *components.Particle, width, height float64) {
	if p.X > width || p.X < 0 {
		p.Vel.X = -p.Vel.X
	}
	if p.Y > height || p.Y < 0 {
		p.Vel.Y = -p.Vel.Y
	}
}

// Repel nudges p away from the pointer when it is strictly inside
// radius+size. Each axis moves independently, and only while the particle
// stays clear of the edge margin. Returns true if the particle was in range.
func Repel(p *components.Particle, ptr *Pointer, width, height float64, m MotionParams) bool {
	if ptr == nil {
		return false
	}
	dx := ptr.X - p.X
	dy := ptr.Y - p.Y
	if math.Sqrt(dx*dx+dy*dy) >= m.PointerRadius+p.Size {
		return false
	}

	margin := p.Size * m.MarginFactor
	if ptr.X < p.X && p.X < width-margin {
		p.X += m.PointerStep
	}
	if ptr.X > p.X && p.X > margin {
		p.X -= m.PointerStep
	}
	if ptr.Y < p.Y && p.Y < height-margin {
		p.Y += m.PointerStep
	}
	if ptr.Y > p.Y && p.Y > margin {
		p.Y -= m.PointerStep
	}
	return true
}

// Move applies one tick of velocity.
func Move(p *components.Particle) {
	p.X += p.Vel.X
	p.Y += p.Vel.Y
}

// UpdateParticle runs bounce, repel and move for one tick.
// Returns true if the pointer affected the particle.
func UpdateParticle(p *components.Particle, ptr *Pointer, width, height float64, m MotionParams) bool {
	Bounce(p, width, height)
	repelled := Repel(p, ptr, width, height, m)
	Move(p)
	return repelled
}
