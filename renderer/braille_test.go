package renderer

import (
	"image/color"
	"testing"
)

var (
	black = color.NRGBA{A: 0xff}
	red   = color.NRGBA{R: 0xff, A: 0xff}
	blue  = color.NRGBA{B: 0xff, A: 0xff}
)

func TestBrailleCanvas_Size(t *testing.T) {
	b := NewBrailleCanvas(10, 5, 4, black)

	if cols, rows := b.Cells(); cols != 10 || rows != 5 {
		t.Errorf("expected 10x5 cells, got %dx%d", cols, rows)
	}
	if w, h := b.CanvasSize(); w != 80 || h != 80 {
		t.Errorf("expected 80x80 canvas, got %dx%d", w, h)
	}
	if x, y := b.CellToCanvas(0, 0); x != 4 || y != 8 {
		t.Errorf("expected cell centre (4, 8), got (%v, %v)", x, y)
	}
}

func TestBrailleCanvas_SmallCircleSetsCentreDot(t *testing.T) {
	b := NewBrailleCanvas(4, 4, 1, black)
	b.FillCircle(3.2, 5.7, 0.5, red)

	if !b.Dot(3, 5) {
		t.Fatal("expected centre dot set")
	}
	r, c := b.Cell(1, 1)
	if r != 0x2810 {
		t.Errorf("expected rune U+2810, got %U", r)
	}
	if c != red {
		t.Errorf("expected red, got %v", c)
	}
}

func TestBrailleCanvas_LargeCircleCoversDots(t *testing.T) {
	b := NewBrailleCanvas(8, 4, 1, black)
	b.FillCircle(8, 8, 3, red)

	for _, p := range [][2]int{{8, 8}, {6, 8}, {9, 9}, {8, 6}} {
		if !b.Dot(p[0], p[1]) {
			t.Errorf("expected dot %v set", p)
		}
	}
	if b.Dot(3, 3) || b.Dot(12, 12) {
		t.Error("dots outside the radius should be clear")
	}
}

func TestBrailleCanvas_HorizontalLine(t *testing.T) {
	b := NewBrailleCanvas(4, 1, 1, black)
	b.StrokeLine(0, 0, 7, 0, 1, red)

	for col := 0; col < 4; col++ {
		r, _ := b.Cell(col, 0)
		if r != 0x2809 {
			t.Errorf("cell %d: expected U+2809, got %U", col, r)
		}
	}
}

func TestBrailleCanvas_DiagonalLineIsContinuous(t *testing.T) {
	b := NewBrailleCanvas(4, 2, 1, black)
	b.StrokeLine(0, 0, 7, 7, 1, red)

	for i := 0; i <= 7; i++ {
		if !b.Dot(i, i) {
			t.Errorf("expected dot (%d, %d) on the diagonal", i, i)
		}
	}
}

func TestBrailleCanvas_FaintLinesSkipped(t *testing.T) {
	b := NewBrailleCanvas(4, 1, 1, black)
	b.StrokeLine(0, 0, 7, 0, 1, color.NRGBA{R: 0xff, A: 10})

	if r, _ := b.Cell(0, 0); r != ' ' {
		t.Errorf("expected empty cell, got %U", r)
	}
}

func TestBrailleCanvas_LinesDoNotRecolorParticles(t *testing.T) {
	b := NewBrailleCanvas(2, 1, 1, black)
	b.FillCircle(0, 0, 0.5, red)
	b.StrokeLine(0, 1, 3, 1, 1, blue)

	if _, c := b.Cell(0, 0); c != red {
		t.Errorf("particle cell recolored to %v", c)
	}
	if _, c := b.Cell(1, 0); c != blue {
		t.Errorf("link-only cell should take the link color, got %v", c)
	}
}

func TestBrailleCanvas_ClipsOutOfRange(t *testing.T) {
	b := NewBrailleCanvas(2, 2, 1, black)
	b.FillCircle(-10, -10, 2, red)
	b.FillCircle(100, 3, 2, red)
	b.StrokeLine(-5, 2, 20, 2, 1, red)

	if !b.Dot(0, 2) || !b.Dot(3, 2) {
		t.Error("expected the in-range part of the line drawn")
	}
	if b.Dot(0, 0) {
		t.Error("off-canvas circle leaked onto the grid")
	}
}

func TestBrailleCanvas_Clear(t *testing.T) {
	b := NewBrailleCanvas(2, 2, 1, black)
	b.FillCircle(1, 1, 2, red)
	b.Clear()

	for row := 0; row < 2; row++ {
		for col := 0; col < 2; col++ {
			if r, c := b.Cell(col, row); r != ' ' || c != black {
				t.Errorf("cell (%d, %d) not cleared: %U %v", col, row, r, c)
			}
		}
	}
}

func TestBlend(t *testing.T) {
	tests := []struct {
		name string
		c    color.NRGBA
		want color.NRGBA
	}{
		{"opaque", red, red},
		{"transparent", color.NRGBA{R: 0xff}, black},
		{"half", color.NRGBA{R: 0xff, A: 128}, color.NRGBA{R: 128, A: 0xff}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := blend(black, tt.c); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
