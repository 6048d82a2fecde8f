// Package renderer provides the surfaces a field draws onto: a raylib
// window and a braille-dot terminal canvas.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// WindowSurface draws the canvas into an offscreen render texture, which
// keeps the last frame when the animation stops. The host blits it into
// the window every iteration with Draw.
type WindowSurface struct {
	Background rl.Color

	target rl.RenderTexture2D
	w, h   int32
	loaded bool
	active bool // between BeginFrame and EndFrame
}

// NewWindowSurface creates a surface with the given background.
func NewWindowSurface(bg color.NRGBA) *WindowSurface {
	return &WindowSurface{Background: toRL(bg)}
}

// BeginFrame redirects drawing into the canvas texture, reallocating it
// when the canvas size changed. Must be called outside rl.BeginDrawing.
func (s *WindowSurface) BeginFrame(width, height int) {
	w, h := int32(width), int32(height)
	if w <= 0 || h <= 0 {
		s.Unload()
		s.w, s.h = w, h
		return
	}
	if !s.loaded || w != s.w || h != s.h {
		s.Unload()
		s.target = rl.LoadRenderTexture(w, h)
		s.w, s.h = w, h
		s.loaded = true
	}
	rl.BeginTextureMode(s.target)
	s.active = true
}

// EndFrame stops drawing into the texture.
func (s *WindowSurface) EndFrame() {
	if !s.active {
		return
	}
	rl.EndTextureMode()
	s.active = false
}

// Clear fills the canvas with the background color.
func (s *WindowSurface) Clear() {
	if !s.active {
		return
	}
	rl.ClearBackground(s.Background)
}

// FillCircle draws a filled circle.
func (s *WindowSurface) FillCircle(x, y, radius float64, c color.NRGBA) {
	if !s.active {
		return
	}
	rl.DrawCircleV(rl.Vector2{X: float32(x), Y: float32(y)}, float32(radius), toRL(c))
}

// StrokeLine draws a line segment of the given width.
func (s *WindowSurface) StrokeLine(x1, y1, x2, y2, width float64, c color.NRGBA) {
	if !s.active {
		return
	}
	a := rl.Vector2{X: float32(x1), Y: float32(y1)}
	b := rl.Vector2{X: float32(x2), Y: float32(y2)}
	rl.DrawLineEx(a, b, float32(width), toRL(c))
}

// Draw blits the canvas with its top-left corner at window position (x, y).
// Call inside rl.BeginDrawing.
func (s *WindowSurface) Draw(x, y float32) {
	if !s.loaded {
		return
	}
	// Render textures are stored upside down.
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(s.w), Height: -float32(s.h)}
	rl.DrawTextureRec(s.target.Texture, src, rl.Vector2{X: x, Y: y}, rl.White)
}

// Unload frees the render texture.
func (s *WindowSurface) Unload() {
	if s.loaded {
		rl.UnloadRenderTexture(s.target)
		s.loaded = false
	}
}

// toRL converts a straight-alpha color for raylib, which blends with
// non-premultiplied alpha.
func toRL(c color.NRGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
