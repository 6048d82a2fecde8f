// Package viewport places the hero canvas on a scrollable page inside the
// host window and answers where the canvas is and whether any of it shows.
package viewport

// Rect is an axis-aligned rectangle in window pixels.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies inside r. The right and bottom
// edges are exclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Viewport is the window's view onto a page whose top section is the hero
// canvas.
type Viewport struct {
	// Window dimensions
	WindowW, WindowH float64

	// HeroFraction is the hero height as a fraction of the window height.
	HeroFraction float64

	// PageScreens is the page height in hero heights.
	PageScreens float64

	// Scroll is the page offset in pixels, 0 at the top.
	Scroll float64
}

// New creates a viewport scrolled to the top of the page.
func New(windowW, windowH int, heroFraction, pageScreens float64) *Viewport {
	if heroFraction <= 0 {
		heroFraction = 1
	}
	if pageScreens < 1 {
		pageScreens = 1
	}
	return &Viewport{
		WindowW:      float64(windowW),
		WindowH:      float64(windowH),
		HeroFraction: heroFraction,
		PageScreens:  pageScreens,
	}
}

// CanvasSize returns the hero canvas size in whole pixels.
func (v *Viewport) CanvasSize() (w, h int) {
	return int(v.WindowW), int(v.WindowH * v.HeroFraction)
}

// CanvasRect returns the canvas rectangle in window coordinates.
func (v *Viewport) CanvasRect() Rect {
	w, h := v.CanvasSize()
	return Rect{X: 0, Y: -v.Scroll, W: float64(w), H: float64(h)}
}

// PageHeight returns the full page height.
func (v *Viewport) PageHeight() float64 {
	_, h := v.CanvasSize()
	return float64(h) * v.PageScreens
}

// MaxScroll returns the largest valid scroll offset.
func (v *Viewport) MaxScroll() float64 {
	m := v.PageHeight() - v.WindowH
	if m < 0 {
		return 0
	}
	return m
}

// ScrollBy moves the page by dy pixels, clamped to the page.
func (v *Viewport) ScrollBy(dy float64) {
	v.Scroll = clamp(v.Scroll+dy, 0, v.MaxScroll())
}

// Resize updates the window size and re-clamps the scroll offset.
// Returns false when the size did not change.
func (v *Viewport) Resize(windowW, windowH int) bool {
	w, h := float64(windowW), float64(windowH)
	if w == v.WindowW && h == v.WindowH {
		return false
	}
	v.WindowW = w
	v.WindowH = h
	v.Scroll = clamp(v.Scroll, 0, v.MaxScroll())
	return true
}

// IntersectionRatio returns the fraction of the canvas area that lies
// inside the window.
func (v *Viewport) IntersectionRatio() float64 {
	c := v.CanvasRect()
	area := c.W * c.H
	if area <= 0 {
		return 0
	}
	ix := overlap(c.X, c.X+c.W, 0, v.WindowW)
	iy := overlap(c.Y, c.Y+c.H, 0, v.WindowH)
	return ix * iy / area
}

// Visible reports whether any part of the canvas is on screen.
func (v *Viewport) Visible() bool {
	return v.IntersectionRatio() > 0
}

// ToCanvas converts window coordinates to canvas-local coordinates.
func (v *Viewport) ToCanvas(wx, wy float64) (cx, cy float64) {
	c := v.CanvasRect()
	return wx - c.X, wy - c.Y
}

// ToWindow converts canvas-local coordinates to window coordinates.
func (v *Viewport) ToWindow(cx, cy float64) (wx, wy float64) {
	c := v.CanvasRect()
	return cx + c.X, cy + c.Y
}

// Contains reports whether the window point (wx, wy) is over the canvas.
func (v *Viewport) Contains(wx, wy float64) bool {
	return v.CanvasRect().Contains(wx, wy)
}

// overlap returns the length of the intersection of [a0,a1) and [b0,b1).
func overlap(a0, a1, b0, b1 float64) float64 {
	lo := max(a0, b0)
	hi := min(a1, b1)
	if hi <= lo {
		return 0
	}
	return hi - lo
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
