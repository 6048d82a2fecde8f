package field

import "image/color"

// Circle is a recorded FillCircle call.
type Circle struct {
	X, Y, Radius float64
	Color        color.NRGBA
}

// Line is a recorded StrokeLine call.
type Line struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	Color          color.NRGBA
}

// Recorder is a Surface that keeps the draw calls of the current frame.
// It backs the headless host and tests.
type Recorder struct {
	Circles []Circle
	Lines   []Line
	Clears  int // total Clear calls
}

// Clear starts a new frame.
func (r *Recorder) Clear() {
	r.Circles = r.Circles[:0]
	r.Lines = r.Lines[:0]
	r.Clears++
}

// FillCircle records a circle.
func (r *Recorder) FillCircle(x, y, radius float64, c color.NRGBA) {
	r.Circles = append(r.Circles, Circle{X: x, Y: y, Radius: radius, Color: c})
}

// StrokeLine records a line.
func (r *Recorder) StrokeLine(x1, y1, x2, y2, width float64, c color.NRGBA) {
	r.Lines = append(r.Lines, Line{X1: x1, Y1: y1, X2: x2, Y2: y2, Width: width, Color: c})
}
