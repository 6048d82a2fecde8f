// Package systems provides the per-tick particle logic: generation, motion
// and the connection pass.
package systems

import "github.com/pthm-cable/heronet/components"

// maxGridCells bounds grid allocation. Tiny link distances on large
// canvases fall back to the pair scan instead.
const maxGridCells = 1 << 16

// SpatialGrid buckets particle indices into square cells so the connection
// pass only compares particles in neighbouring cells.
type SpatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	cells    [][]int // flat grid of particle index lists
}

// NewSpatialGrid creates a grid covering width x height with the given cell
// size. Returns nil when the grid would be empty or too large.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	if cellSize <= 0 || width <= 0 || height <= 0 {
		return nil
	}
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1
	if cols*rows > maxGridCells {
		return nil
	}

	cells := make([][]int, cols*rows)
	for i := range cells {
		cells[i] = make([]int, 0, 4)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all particles from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds particle index i at the given position.
func (g *SpatialGrid) Insert(i int, x, y float64) {
	col, row := g.cellCoords(x, y)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], i)
}

// Links appends all pairs under threshold, ordered by (A, B).
// The cell size must be at least sqrt(threshold).
func (g *SpatialGrid) Links(dst []Link, particles []components.Particle, threshold float64, lp LinkParams) []Link {
	g.Clear()
	for i := range particles {
		g.Insert(i, particles[i].X, particles[i].Y)
	}

	start := len(dst)
	for a := range particles {
		pa := &particles[a]
		col, row := g.cellCoords(pa.X, pa.Y)

		for dc := -1; dc <= 1; dc++ {
			c := col + dc
			if c < 0 || c >= g.cols {
				continue
			}
			for dr := -1; dr <= 1; dr++ {
				r := row + dr
				if r < 0 || r >= g.rows {
					continue
				}
				for _, b := range g.cells[r*g.cols+c] {
					if b <= a {
						continue
					}
					pb := &particles[b]
					dx := pa.X - pb.X
					dy := pa.Y - pb.Y
					d2 := dx*dx + dy*dy
					if d2 < threshold {
						dst = append(dst, Link{A: a, B: b, DistSq: d2, Opacity: lp.Opacity(d2)})
					}
				}
			}
		}
	}

	sortLinks(dst[start:])
	return dst
}

// cellCoords returns the clamped cell column and row for a position.
// Particles overshooting the canvas land in the border cells.
func (g *SpatialGrid) cellCoords(x, y float64) (col, row int) {
	col = int(x / g.cellSize)
	row = int(y / g.cellSize)

	if x < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if y < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}
