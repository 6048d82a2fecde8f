package ui

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/heronet/game"
)

// ControlsResult reports what the user changed on the panel this frame.
type ControlsResult struct {
	Tuning     game.Tuning
	Changed    bool
	Regenerate bool
}

// ControlsPanel renders the tuning panel on the right edge of the window.
type ControlsPanel struct {
	renderer *Renderer
	width    int32
	visible  bool
}

// NewControlsPanel creates a hidden panel of the given width.
func NewControlsPanel(width int32) *ControlsPanel {
	return &ControlsPanel{renderer: NewRenderer(), width: width}
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool { return c.visible }

// Contains reports whether the window point is over the panel, so the host
// can keep panel clicks away from the field.
func (c *ControlsPanel) Contains(screenW, x, y float32) bool {
	if !c.visible {
		return false
	}
	return x >= screenW-float32(c.width)-10 && y <= float32(c.height())+10
}

func (c *ControlsPanel) height() int32 {
	return 10*c.renderer.Theme.LineHeight + 4*30 + c.renderer.Theme.Padding*2
}

// Draw renders the panel for t and returns the edits.
func (c *ControlsPanel) Draw(screenW int32, t game.Tuning) ControlsResult {
	res := ControlsResult{Tuning: t}
	if !c.visible {
		return res
	}

	r := c.renderer
	pad := float32(r.Theme.Padding)
	x := screenW - c.width - 10
	r.DrawPanel(x, 10, c.width, c.height())

	px := float32(x) + pad
	py := float32(10) + pad
	sliderW := float32(c.width) - 2*pad - 50

	slider := func(label, lo, hi string, value, vmin, vmax float32, format string) float32 {
		rl.DrawText(label, int32(px), int32(py), r.Theme.FontSize, r.Theme.LabelColor)
		py += float32(r.Theme.LineHeight)
		v := gui.SliderBar(rl.Rectangle{X: px + 20, Y: py, Width: sliderW - 20, Height: 16}, lo, hi, value, vmin, vmax)
		rl.DrawText(fmt.Sprintf(format, v), int32(px+sliderW+8), int32(py+1), r.Theme.FontSize, r.Theme.ValueColor)
		py += 26
		return v
	}

	rl.DrawText("Tuning", int32(px), int32(py), r.Theme.TitleSize, rl.White)
	py += float32(r.Theme.LineHeight) + 6

	radius := slider("Pointer radius", "0", "400", float32(t.PointerRadius), 0, 400, "%.0f")
	step := slider("Pointer push", "0", "10", float32(t.PointerStep), 0, 10, "%.1f")
	div := slider("Link distance divisor", "2", "20", float32(t.LinkDistanceDiv), 2, 20, "%.1f")
	maxCount := slider("Max particles", "0", "300", float32(t.MaxCount), 0, 300, "%.0f")

	if newRadius := float64(radius); newRadius != t.PointerRadius {
		res.Tuning.PointerRadius = math.Round(newRadius)
		res.Changed = true
	}
	if newStep := float64(step); newStep != t.PointerStep {
		res.Tuning.PointerStep = newStep
		res.Changed = true
	}
	if newDiv := float64(div); newDiv != t.LinkDistanceDiv {
		res.Tuning.LinkDistanceDiv = newDiv
		res.Changed = true
	}
	if n := int(maxCount); n != t.MaxCount {
		res.Tuning.MaxCount = n
		res.Changed = true
	}

	py += 4
	half := (float32(c.width) - 3*pad) / 2
	if gui.Button(rl.Rectangle{X: px, Y: py, Width: half, Height: 26}, toggleText(t.LinksEnabled, "Links: on", "Links: off")) {
		res.Tuning.LinksEnabled = !t.LinksEnabled
		res.Changed = true
	}
	if gui.Button(rl.Rectangle{X: px + half + pad, Y: py, Width: half, Height: 26}, toggleText(t.Paused, "Resume", "Pause")) {
		res.Tuning.Paused = !t.Paused
		res.Changed = true
	}
	py += 34
	if gui.Button(rl.Rectangle{X: px, Y: py, Width: 2*half + pad, Height: 26}, "Regenerate") {
		res.Regenerate = true
	}

	return res
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
