package renderer

import (
	"image/color"
	"math"
)

// Braille patterns pack a 2x4 dot grid into one cell, starting at U+2800.
const brailleBase = 0x2800

// dotBits maps (col, row) within a cell to its braille bit.
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

type cell struct {
	mask  uint8
	color color.NRGBA
	solid bool // painted by a particle; links never recolor it
}

// BrailleCanvas is a Surface rasterized onto terminal cells using braille
// dots. Canvas coordinates are scaled down by PixelsPerDot.
type BrailleCanvas struct {
	cols, rows   int
	PixelsPerDot float64

	// MinLineAlpha drops link dots fainter than this.
	MinLineAlpha uint8

	Background color.NRGBA

	cells []cell
}

// NewBrailleCanvas creates a canvas cols x rows cells large.
func NewBrailleCanvas(cols, rows int, pixelsPerDot float64, bg color.NRGBA) *BrailleCanvas {
	if pixelsPerDot <= 0 {
		pixelsPerDot = 1
	}
	b := &BrailleCanvas{
		PixelsPerDot: pixelsPerDot,
		MinLineAlpha: 24,
		Background:   bg,
	}
	b.Resize(cols, rows)
	return b
}

// Resize changes the cell grid and clears it.
func (b *BrailleCanvas) Resize(cols, rows int) {
	b.cols = max(cols, 0)
	b.rows = max(rows, 0)
	b.cells = make([]cell, b.cols*b.rows)
}

// Cells returns the grid size in cells.
func (b *BrailleCanvas) Cells() (cols, rows int) { return b.cols, b.rows }

// CanvasSize returns the canvas size in pixels covered by the grid.
func (b *BrailleCanvas) CanvasSize() (w, h int) {
	return int(float64(b.cols*2) * b.PixelsPerDot), int(float64(b.rows*4) * b.PixelsPerDot)
}

// CellToCanvas returns the canvas position of the centre of cell (col, row).
func (b *BrailleCanvas) CellToCanvas(col, row int) (x, y float64) {
	return (float64(col)*2 + 1) * b.PixelsPerDot, (float64(row)*4 + 2) * b.PixelsPerDot
}

// Clear empties every cell.
func (b *BrailleCanvas) Clear() {
	clear(b.cells)
}

// FillCircle sets every dot within radius of (x, y), and at least the dot
// under the centre.
func (b *BrailleCanvas) FillCircle(x, y, radius float64, c color.NRGBA) {
	cx := x / b.PixelsPerDot
	cy := y / b.PixelsPerDot
	r := radius / b.PixelsPerDot
	c = blend(b.Background, c)

	b.set(int(math.Floor(cx)), int(math.Floor(cy)), c, true)
	if r < 1 {
		return
	}
	x0, x1 := int(math.Floor(cx-r)), int(math.Ceil(cx+r))
	y0, y1 := int(math.Floor(cy-r)), int(math.Ceil(cy+r))
	for dy := y0; dy <= y1; dy++ {
		for dx := x0; dx <= x1; dx++ {
			fx := float64(dx) + 0.5 - cx
			fy := float64(dy) + 0.5 - cy
			if fx*fx+fy*fy <= r*r {
				b.set(dx, dy, c, true)
			}
		}
	}
}

// StrokeLine sets the dots along the segment. Width is ignored; a dot is
// the thinnest line a cell can show.
func (b *BrailleCanvas) StrokeLine(x1, y1, x2, y2, _ float64, c color.NRGBA) {
	if c.A < b.MinLineAlpha {
		return
	}
	c = blend(b.Background, c)
	ax := int(math.Floor(x1 / b.PixelsPerDot))
	ay := int(math.Floor(y1 / b.PixelsPerDot))
	bx := int(math.Floor(x2 / b.PixelsPerDot))
	by := int(math.Floor(y2 / b.PixelsPerDot))

	dx := abs(bx - ax)
	dy := -abs(by - ay)
	sx, sy := 1, 1
	if ax > bx {
		sx = -1
	}
	if ay > by {
		sy = -1
	}
	e := dx + dy
	for {
		b.set(ax, ay, c, false)
		if ax == bx && ay == by {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			ax += sx
		}
		if e2 <= dx {
			e += dx
			ay += sy
		}
	}
}

// Dot reports whether the dot at dot coordinates (x, y) is set.
func (b *BrailleCanvas) Dot(x, y int) bool {
	i, bit, ok := b.locate(x, y)
	return ok && b.cells[i].mask&bit != 0
}

// Cell returns the braille rune and color of cell (col, row). Empty cells
// return a space.
func (b *BrailleCanvas) Cell(col, row int) (rune, color.NRGBA) {
	if col < 0 || col >= b.cols || row < 0 || row >= b.rows {
		return ' ', b.Background
	}
	c := b.cells[row*b.cols+col]
	if c.mask == 0 {
		return ' ', b.Background
	}
	return rune(brailleBase + int(c.mask)), c.color
}

func (b *BrailleCanvas) set(x, y int, c color.NRGBA, solid bool) {
	i, bit, ok := b.locate(x, y)
	if !ok {
		return
	}
	cl := &b.cells[i]
	cl.mask |= bit
	if solid || !cl.solid {
		cl.color = c
		cl.solid = cl.solid || solid
	}
}

func (b *BrailleCanvas) locate(x, y int) (idx int, bit uint8, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row := x/2, y/4
	if col >= b.cols || row >= b.rows {
		return 0, 0, false
	}
	return row*b.cols + col, dotBits[x%2][y%4], true
}

// blend composites straight-alpha c over an opaque background.
func blend(bg, c color.NRGBA) color.NRGBA {
	a := float64(c.A) / 255
	mix := func(dst, src uint8) uint8 {
		return uint8(float64(dst) + (float64(src)-float64(dst))*a + 0.5)
	}
	return color.NRGBA{R: mix(bg.R, c.R), G: mix(bg.G, c.G), B: mix(bg.B, c.B), A: 0xff}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
