// Package ui draws the window host's overlay: a stats HUD and a raygui
// tuning panel.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	Muted         rl.Color
	Padding       int32
	LineHeight    int32
	LabelWidth    int32
	FontSize      int32
	TitleSize     int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:       rl.Color{R: 15, G: 20, B: 35, A: 225},
		PanelBorder:   rl.Color{R: 79, G: 70, B: 229, A: 160},
		SectionHeader: rl.Color{R: 6, G: 182, B: 212, A: 255},
		LabelColor:    rl.LightGray,
		ValueColor:    rl.RayWhite,
		Muted:         rl.Gray,
		Padding:       10,
		LineHeight:    18,
		LabelWidth:    90,
		FontSize:      14,
		TitleSize:     18,
	}
}

// Renderer draws UI primitives with a consistent theme.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the next line's Y.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.FontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws "label: value" and returns the next line's Y.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}
