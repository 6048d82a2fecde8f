package renderer

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// Flush copies the canvas into screen starting at cell (x0, y0). The
// caller shows the screen.
func (b *BrailleCanvas) Flush(screen tcell.Screen, x0, y0 int) {
	bg := tcellColor(b.Background)
	base := tcell.StyleDefault.Background(bg)
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.cols; col++ {
			r, c := b.Cell(col, row)
			style := base
			if r != ' ' {
				style = base.Foreground(tcellColor(c))
			}
			screen.SetContent(x0+col, y0+row, r, nil, style)
		}
	}
}

func tcellColor(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
