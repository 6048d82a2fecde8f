// Package host runs a game against a real event source: a raylib window or
// a tcell terminal.
package host

import (
	"context"
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/heronet/config"
	"github.com/pthm-cable/heronet/game"
	"github.com/pthm-cable/heronet/renderer"
	"github.com/pthm-cable/heronet/ui"
	"github.com/pthm-cable/heronet/viewport"
)

const windowControls = "[wheel] scroll  [space] pause  [r] regenerate  [l] links  [tab] tuning  [p] perf  [f11] fullscreen"

type window struct {
	cfg *config.Config
	g   *game.Game
	vp  *viewport.Viewport

	surface  *renderer.WindowSurface
	page     *renderer.PageRenderer
	hud      *ui.HUD
	perf     *ui.PerfPanel
	controls *ui.ControlsPanel
	pageBg   rl.Color

	showPerf bool
}

// RunWindow opens a raylib window and animates the hero canvas until the
// window closes or ctx is done.
func RunWindow(ctx context.Context, cfg *config.Config, opts game.Options) error {
	if cfg.Screen.Resizable {
		rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	} else {
		rl.SetConfigFlags(rl.FlagMsaa4xHint)
	}
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	bg := config.MustHexColor(cfg.Screen.Background)
	vp := viewport.New(rl.GetScreenWidth(), rl.GetScreenHeight(), cfg.Viewport.HeroFraction, cfg.Viewport.PageScreens)
	surface := renderer.NewWindowSurface(bg)
	defer surface.Unload()

	opts.Width, opts.Height = vp.CanvasSize()
	g, err := game.NewGame(cfg, opts, surface)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	defer g.Unload()

	w := &window{
		cfg:      cfg,
		g:        g,
		vp:       vp,
		surface:  surface,
		page:     renderer.NewPageRenderer(bg),
		hud:      ui.NewHUD(),
		perf:     ui.NewPerfPanel(10, 92),
		controls: ui.NewControlsPanel(280),
		pageBg:   rl.NewColor(bg.R/2, bg.G/2, bg.B/2, 255),
	}

	g.Start()
	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			return nil
		}
		now := time.Now()
		w.handleInput(now)
		// Draws into the canvas texture, outside BeginDrawing.
		g.Frame(now)
		w.draw()
	}
	return nil
}

func (w *window) handleInput(now time.Time) {
	w.handleResize(now)
	w.handleScroll()
	w.handleKeys()
	w.handlePointer()

	visible := w.vp.Visible() && !rl.IsWindowMinimized() && !rl.IsWindowHidden()
	w.g.SetVisible(visible)
}

// handleResize propagates a window resize to the viewport and the game.
func (w *window) handleResize(now time.Time) {
	if !rl.IsWindowResized() {
		return
	}
	if !w.vp.Resize(rl.GetScreenWidth(), rl.GetScreenHeight()) {
		return
	}
	cw, ch := w.vp.CanvasSize()
	w.g.Resized(cw, ch, now)
}

func (w *window) handleScroll() {
	step := w.cfg.Viewport.ScrollStep
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		w.vp.ScrollBy(-float64(wheel) * step)
	}
	switch {
	case rl.IsKeyPressed(rl.KeyPageDown):
		w.vp.ScrollBy(w.vp.WindowH)
	case rl.IsKeyPressed(rl.KeyPageUp):
		w.vp.ScrollBy(-w.vp.WindowH)
	case rl.IsKeyPressed(rl.KeyHome):
		w.vp.ScrollBy(-w.vp.PageHeight())
	case rl.IsKeyPressed(rl.KeyEnd):
		w.vp.ScrollBy(w.vp.PageHeight())
	}
}

func (w *window) handleKeys() {
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		w.g.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		w.g.Regenerate()
	}
	if rl.IsKeyPressed(rl.KeyL) {
		t := w.g.Tuning()
		t.LinksEnabled = !t.LinksEnabled
		w.g.SetTuning(t)
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		w.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		w.showPerf = !w.showPerf
	}
}

// handlePointer tracks the cursor in canvas coordinates while it is in the
// window and off the tuning panel.
func (w *window) handlePointer() {
	if !rl.IsCursorOnScreen() {
		w.g.PointerLeft()
		return
	}
	mp := rl.GetMousePosition()
	if w.controls.Contains(float32(w.vp.WindowW), mp.X, mp.Y) {
		w.g.PointerLeft()
		rl.SetMouseCursor(rl.MouseCursorDefault)
		return
	}
	wx, wy := float64(mp.X), float64(mp.Y)
	cx, cy := w.vp.ToCanvas(wx, wy)
	w.g.PointerMoved(cx, cy)

	if w.vp.Contains(wx, wy) {
		rl.SetMouseCursor(rl.MouseCursorCrosshair)
	} else {
		rl.SetMouseCursor(rl.MouseCursorDefault)
	}
}

func (w *window) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(w.pageBg)

	w.page.Draw(w.vp)
	c := w.vp.CanvasRect()
	w.surface.Draw(float32(c.X), float32(c.Y))

	st := w.g.Field().LastStats()
	_, _, pointer := w.g.Field().Pointer()
	w.hud.Draw(ui.HUDData{
		Title:         w.cfg.Screen.Title,
		Particles:     st.Particles,
		Links:         st.Links,
		Repelled:      st.Repelled,
		Generation:    w.g.Field().Generation(),
		Frames:        w.g.Frames(),
		FPS:           float64(rl.GetFPS()),
		State:         w.g.State().String(),
		Paused:        w.g.Paused(),
		PointerActive: pointer,
		Visibility:    w.vp.IntersectionRatio(),
	})
	if w.showPerf {
		w.perf.Draw(w.g.PerfStats())
	}
	res := w.controls.Draw(int32(w.vp.WindowW), w.g.Tuning())
	w.hud.DrawControls(int32(w.vp.WindowH), windowControls)

	rl.EndDrawing()

	if res.Changed {
		w.g.SetTuning(res.Tuning)
	}
	if res.Regenerate {
		w.g.Regenerate()
	}
}
