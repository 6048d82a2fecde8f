package systems

import (
	"math"
	"slices"

	"github.com/pthm-cable/heronet/components"
	"github.com/pthm-cable/heronet/config"
)

// Link is a connection between two particles, indexed into the population.
// A < B always holds.
type Link struct {
	A, B    int
	DistSq  float64
	Opacity float64
}

// BroadPhase selects how candidate pairs are found.
type BroadPhase uint8

const (
	BroadPhaseScan BroadPhase = iota // all pairs, O(n²)
	BroadPhaseGrid                   // uniform grid, cell = link distance
)

// LinkParams controls the connection pass.
type LinkParams struct {
	DistanceDiv  float64 // threshold = (W/DistanceDiv)*(H/DistanceDiv)
	OpacityDiv   float64 // opacity = 1 - d²/OpacityDiv
	ClampOpacity bool
	BroadPhase   BroadPhase
}

// LinkParamsFromConfig builds connection params from the loaded config.
func LinkParamsFromConfig(cfg *config.Config) LinkParams {
	bp := BroadPhaseScan
	if cfg.Links.BroadPhase == "grid" {
		bp = BroadPhaseGrid
	}
	return LinkParams{
		DistanceDiv:  cfg.Links.DistanceDiv,
		OpacityDiv:   cfg.Links.OpacityDiv,
		ClampOpacity: cfg.Links.ClampOpacity,
		BroadPhase:   bp,
	}
}

// Threshold returns the squared link distance for a width x height canvas.
func (lp LinkParams) Threshold(width, height float64) float64 {
	return (width / lp.DistanceDiv) * (height / lp.DistanceDiv)
}

// Opacity returns the line opacity for a pair at squared distance distSq.
func (lp LinkParams) Opacity(distSq float64) float64 {
	o := 1 - distSq/lp.OpacityDiv
	if lp.ClampOpacity {
		o = math.Max(0, math.Min(1, o))
	}
	return o
}

// Links appends to dst every unordered pair whose squared distance is below
// the threshold, ordered by (A, B). Reuse dst across frames to avoid
// allocations.
func Links(dst []Link, particles []components.Particle, width, height float64, lp LinkParams) []Link {
	dst = dst[:0]
	threshold := lp.Threshold(width, height)
	if threshold <= 0 || len(particles) < 2 {
		return dst
	}

	if lp.BroadPhase == BroadPhaseGrid {
		if grid := NewSpatialGrid(width, height, math.Sqrt(threshold)); grid != nil {
			return grid.Links(dst, particles, threshold, lp)
		}
	}
	return scanLinks(dst, particles, threshold, lp)
}

// scanLinks checks every pair. Fine at the population sizes in use.
func scanLinks(dst []Link, particles []components.Particle, threshold float64, lp LinkParams) []Link {
	for a := 0; a < len(particles); a++ {
		pa := &particles[a]
		for b := a + 1; b < len(particles); b++ {
			pb := &particles[b]
			dx := pa.X - pb.X
			dy := pa.Y - pb.Y
			d2 := dx*dx + dy*dy
			if d2 < threshold {
				dst = append(dst, Link{A: a, B: b, DistSq: d2, Opacity: lp.Opacity(d2)})
			}
		}
	}
	return dst
}

// sortLinks orders links by (A, B) so every broad phase yields the same sequence.
func sortLinks(links []Link) {
	slices.SortFunc(links, func(x, y Link) int {
		if x.A != y.A {
			return x.A - y.A
		}
		return x.B - y.B
	})
}
