package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/heronet/telemetry"
)

// HUDData holds what the HUD shows for one frame.
type HUDData struct {
	Title         string
	Particles     int
	Links         int
	Repelled      int
	Generation    int
	Frames        uint64
	FPS           float64
	State         string
	Paused        bool
	PointerActive bool
	Visibility    float64 // canvas intersection ratio
}

// HUD renders the stats overlay.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a HUD.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	th := h.renderer.Theme
	rl.DrawText(data.Title, 10, 10, th.TitleSize, rl.White)

	rl.DrawText(
		fmt.Sprintf("Particles: %d | Links: %d | Repelled: %d | Gen: %d", data.Particles, data.Links, data.Repelled, data.Generation),
		10, 34, th.FontSize, th.LabelColor,
	)
	rl.DrawText(
		fmt.Sprintf("Frame: %d | FPS: %.0f | Visible: %.0f%%", data.Frames, data.FPS, data.Visibility*100),
		10, 52, th.FontSize, th.LabelColor,
	)

	status := data.State
	if data.Paused {
		status = "paused"
	}
	if data.PointerActive {
		status += " | pointer"
	}
	rl.DrawText(status, 10, 70, th.FontSize, rl.Yellow)
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-22, 12, h.renderer.Theme.Muted)
}

// PerfPanel renders per-phase frame timing.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a perf panel at (x, y).
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition moves the panel.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	width := int32(220)
	height := r.Theme.LineHeight*7 + r.Theme.Padding*2
	r.DrawPanel(p.x, p.y, width, height)

	x := p.x + r.Theme.Padding
	y := p.y + r.Theme.Padding
	y = r.DrawSectionHeader(x, y, "Frame timing")
	y = r.DrawLabelValue(x, y, "avg", stats.AvgFrame.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "max", stats.MaxFrame.Round(time.Microsecond).String())

	for _, ph := range []telemetry.Phase{telemetry.PhaseClear, telemetry.PhaseUpdate, telemetry.PhaseLinks, telemetry.PhasePresent} {
		pct := stats.PhasePct[ph]
		color := r.Theme.ValueColor
		if pct > 50 {
			color = rl.Orange
		}
		rl.DrawText(ph.String()+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
		rl.DrawText(fmt.Sprintf("%5.1f%%", pct), x+r.Theme.LabelWidth, y, r.Theme.FontSize, color)
		y += r.Theme.LineHeight
	}
}
