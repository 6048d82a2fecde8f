package game

import "time"

// PointerMoved records the pointer at canvas-local (x, y).
func (g *Game) PointerMoved(x, y float64) {
	if g.field == nil {
		return
	}
	g.field.SetPointer(x, y)
}

// PointerLeft marks the pointer inactive.
func (g *Game) PointerLeft() {
	if g.field == nil {
		return
	}
	g.field.ClearPointer()
}

// SetVisible forwards the host's visibility signal to the loop.
func (g *Game) SetVisible(visible bool) {
	g.visible = visible
	g.syncGate()
}

// Visible reports the last visibility signal.
func (g *Game) Visible() bool { return g.visible }

// Resized records a new canvas size. The field regenerates once the
// resize burst has been quiet for the debounce delay.
func (g *Game) Resized(width, height int, now time.Time) {
	if g.field == nil {
		return
	}
	g.pendingW = width
	g.pendingH = height
	g.resize.Trigger(now)
}

// ResizePending reports whether a debounced resize is waiting.
func (g *Game) ResizePending() bool {
	return g.resize != nil && g.resize.Pending()
}

// SetPaused freezes or resumes the animation.
func (g *Game) SetPaused(paused bool) {
	g.paused = paused
	g.syncGate()
}

// TogglePause flips the paused state and returns it.
func (g *Game) TogglePause() bool {
	g.SetPaused(!g.paused)
	return g.paused
}

// Paused reports whether the animation is paused.
func (g *Game) Paused() bool { return g.paused }

// Regenerate replaces the population for the current canvas size.
func (g *Game) Regenerate() {
	if g.field == nil {
		return
	}
	g.field.Regenerate()
	g.collector.RecordRegeneration()
}

// syncGate opens the loop only while visible and not paused.
func (g *Game) syncGate() {
	if g.loop == nil {
		return
	}
	g.loop.SetVisible(g.visible && !g.paused)
}
