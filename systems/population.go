package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/heronet/components"
	"github.com/pthm-cable/heronet/config"
)

// PopulationParams controls particle generation.
type PopulationParams struct {
	AreaPerParticle float64 // canvas px² per particle
	MaxCount        int
	MinSize         float64
	MaxSize         float64
	MaxSpeed        float64 // per-axis velocity bound
	EdgeFactor      float64 // spawn inset = size * EdgeFactor
	Palette         components.Palette
}

// PopulationParamsFromConfig builds generation params from the loaded config.
func PopulationParamsFromConfig(cfg *config.Config) PopulationParams {
	p := cfg.Particles
	return PopulationParams{
		AreaPerParticle: p.AreaPerParticle,
		MaxCount:        p.MaxCount,
		MinSize:         p.MinSize,
		MaxSize:         p.MaxSize,
		MaxSpeed:        p.MaxSpeed,
		EdgeFactor:      p.EdgeFactor,
		Palette:         components.PaletteFromConfig(cfg),
	}
}

// ParticleCount returns how many particles a width x height canvas holds:
// floor(w*h / AreaPerParticle) capped at MaxCount. Non-positive sizes hold none.
func (p PopulationParams) ParticleCount(width, height int) int {
	if width <= 0 || height <= 0 || p.AreaPerParticle <= 0 {
		return 0
	}
	n := int(math.Floor(float64(width) * float64(height) / p.AreaPerParticle))
	if n > p.MaxCount {
		n = p.MaxCount
	}
	if n < 0 {
		n = 0
	}
	return n
}

// Populate generates a fresh population for a width x height canvas.
// The result is fully determined by rng's state.
func Populate(rng *rand.Rand, width, height int, p PopulationParams) []components.Particle {
	n := p.ParticleCount(width, height)
	particles := make([]components.Particle, 0, n)

	w := float64(width)
	h := float64(height)
	for i := 0; i < n; i++ {
		size := p.MinSize + rng.Float64()*(p.MaxSize-p.MinSize)
		inset := size * p.EdgeFactor
		x := spawnCoord(rng, w, inset)
		y := spawnCoord(rng, h, inset)
		dx := rng.Float64()*2*p.MaxSpeed - p.MaxSpeed
		dy := rng.Float64()*2*p.MaxSpeed - p.MaxSpeed
		c := p.Palette[rng.Intn(len(p.Palette))]

		particles = append(particles, components.Particle{
			Position: components.Position{X: x, Y: y},
			Vel:      components.Velocity{X: dx, Y: dy},
			Body:     components.Body{Size: size, Color: c},
		})
	}

	return particles
}

// spawnCoord picks a coordinate in [inset, extent-inset).
// An empty interval collapses to the center. The draw is consumed either way
// so the rng sequence does not depend on canvas size.
func spawnCoord(rng *rand.Rand, extent, inset float64) float64 {
	r := rng.Float64()
	span := extent - 2*inset
	if span <= 0 {
		return extent / 2
	}
	return inset + r*span
}
