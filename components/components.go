// Package components defines the value types a particle is built from.
package components

import "image/color"

// Position is a canvas-space coordinate.
type Position struct {
	X, Y float64
}

// Velocity is a per-tick displacement. Components only ever flip sign.
type Velocity struct {
	X, Y float64
}

// Body holds the immutable appearance of a particle.
// Color uses straight (non-premultiplied) alpha.
type Body struct {
	Size  float64 // radius in canvas px
	Color color.NRGBA
}

// Particle is a single animated point of the network.
type Particle struct {
	Position
	Vel Velocity
	Body
}
