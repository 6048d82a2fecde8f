package host

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/heronet/config"
	"github.com/pthm-cable/heronet/game"
	"github.com/pthm-cable/heronet/renderer"
)

type terminal struct {
	g      *game.Game
	screen tcell.Screen
	canvas *renderer.BrailleCanvas
	status tcell.Style
}

// RunTerminal animates the canvas in the terminal with braille dots. The
// bottom row is a status line. Returns when the user quits or ctx is done.
func RunTerminal(ctx context.Context, cfg *config.Config, opts game.Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.EnableFocus()
	screen.HideCursor()

	bg := config.MustHexColor(cfg.Screen.Background)
	cols, rows := screen.Size()
	canvas := renderer.NewBrailleCanvas(cols, rows-1, cfg.Terminal.PixelsPerDot, bg)

	opts.Width, opts.Height = canvas.CanvasSize()
	g, err := game.NewGame(cfg, opts, canvas)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	defer g.Unload()

	t := &terminal{
		g:      g,
		screen: screen,
		canvas: canvas,
		status: tcell.StyleDefault.
			Background(tcell.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B))).
			Foreground(tcell.ColorGray),
	}

	quit := make(chan struct{})
	defer close(quit)
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return // screen finalized
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	fps := cfg.Terminal.TargetFPS
	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	g.Start()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !t.handleEvent(ev, time.Now()) {
				return nil
			}
		case now := <-ticker.C:
			g.Frame(now)
			t.draw()
		}
	}
}

// handleEvent applies one terminal event. Returns false to quit.
func (t *terminal) handleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.handleKey(ev)

	case *tcell.EventResize:
		cols, rows := ev.Size()
		oldCols, oldRows := t.canvas.Cells()
		if cols == oldCols && rows-1 == oldRows {
			return true
		}
		t.canvas.Resize(cols, rows-1)
		t.screen.Sync()
		w, h := t.canvas.CanvasSize()
		t.g.Resized(w, h, now)

	case *tcell.EventMouse:
		col, row := ev.Position()
		if _, rows := t.canvas.Cells(); row >= rows {
			t.g.PointerLeft()
			return true
		}
		t.g.PointerMoved(t.canvas.CellToCanvas(col, row))

	case *tcell.EventFocus:
		t.g.SetVisible(ev.Focused)
		if !ev.Focused {
			t.g.PointerLeft()
		}
	}
	return true
}

func (t *terminal) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			t.g.TogglePause()
		case 'r':
			t.g.Regenerate()
		case 'l':
			tu := t.g.Tuning()
			tu.LinksEnabled = !tu.LinksEnabled
			t.g.SetTuning(tu)
		}
	}
	return true
}

func (t *terminal) draw() {
	t.canvas.Flush(t.screen, 0, 0)

	_, rows := t.canvas.Cells()
	st := t.g.Field().LastStats()
	line := fmt.Sprintf(" particles %d  links %d  gen %d  fps %.0f  %s  [space] pause [r] regen [l] links [q] quit",
		st.Particles, st.Links, t.g.Field().Generation(), t.g.LiveFPS(), t.stateLabel())
	cols, _ := t.canvas.Cells()
	for i, r := range []rune(line) {
		if i >= cols {
			break
		}
		t.screen.SetContent(i, rows, r, nil, t.status)
	}
	for i := len([]rune(line)); i < cols; i++ {
		t.screen.SetContent(i, rows, ' ', nil, t.status)
	}
	t.screen.Show()
}

func (t *terminal) stateLabel() string {
	if t.g.Paused() {
		return "paused"
	}
	return t.g.State().String()
}
