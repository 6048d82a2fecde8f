package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/heronet/viewport"
)

// PageRenderer draws the part of the page below the hero canvas and a
// scroll indicator, so scrolling the hero out of view has somewhere to go.
type PageRenderer struct {
	top, bottom rl.Color
	indicator   rl.Color
}

// NewPageRenderer creates a page renderer fading from the canvas
// background into a darker tone.
func NewPageRenderer(bg color.NRGBA) *PageRenderer {
	return &PageRenderer{
		top:       toRL(bg),
		bottom:    toRL(darken(bg, 0.5)),
		indicator: rl.NewColor(255, 255, 255, 60),
	}
}

// Draw renders the page for the viewport's current scroll.
func (p *PageRenderer) Draw(vp *viewport.Viewport) {
	c := vp.CanvasRect()
	below := float32(c.Y + c.H)
	w := int32(vp.WindowW)
	h := int32(vp.WindowH)

	if below < float32(vp.WindowH) {
		rest := vp.PageHeight() - c.H
		if rest > 0 {
			rl.DrawRectangleGradientV(0, int32(below), w, int32(rest), p.top, p.bottom)
		}
	}

	maxScroll := vp.MaxScroll()
	if maxScroll <= 0 {
		return
	}
	// Scroll thumb on the right edge.
	track := float32(h)
	thumb := track * float32(vp.WindowH/vp.PageHeight())
	y := (track - thumb) * float32(vp.Scroll/maxScroll)
	rl.DrawRectangleRec(rl.Rectangle{X: float32(w) - 4, Y: y, Width: 3, Height: thumb}, p.indicator)
}

func darken(c color.NRGBA, f float64) color.NRGBA {
	return color.NRGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}
