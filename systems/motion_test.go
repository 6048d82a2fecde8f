package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/heronet/components"
)

var testMotion = MotionParams{PointerRadius: 150, PointerStep: 2, MarginFactor: 10}

func particleAt(x, y, vx, vy, size float64) components.Particle {
	return components.Particle{
		Position: components.Position{X: x, Y: y},
		Vel:      components.Velocity{X: vx, Y: vy},
		Body:     components.Body{Size: size},
	}
}

func TestBounce(t *testing.T) {
	tests := []struct {
		name           string
		x, y           float64
		wantVX, wantVY float64
	}{
		{"inside", 50, 50, 0.1, -0.1},
		{"past right", 100.5, 50, -0.1, -0.1},
		{"past left", -0.1, 50, -0.1, -0.1},
		{"past bottom", 50, 100.01, 0.1, 0.1},
		{"past top", 50, -3, 0.1, 0.1},
		{"corner", -1, 101, -0.1, 0.1},
		{"on edge", 100, 0, 0.1, -0.1}, // edges are inside
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := particleAt(tc.x, tc.y, 0.1, -0.1, 1)
			Bounce(&p, 100, 100)
			if p.Vel.X != tc.wantVX || p.Vel.Y != tc.wantVY {
				t.Errorf("velocity = (%v, %v), want (%v, %v)", p.Vel.X, p.Vel.Y, tc.wantVX, tc.wantVY)
			}
			if p.X != tc.x || p.Y != tc.y {
				t.Errorf("bounce must not move the particle, got (%v, %v)", p.X, p.Y)
			}
		})
	}
}

func TestUpdateParticle_FlipsSameTick(t *testing.T) {
	// Overshot the right edge while moving right: flipped and moved back.
	p := particleAt(800.1, 300, 0.2, 0, 2)
	UpdateParticle(&p, nil, 800, 600, testMotion)

	if p.Vel.X != -0.2 {
		t.Fatalf("expected flipped velocity -0.2, got %v", p.Vel.X)
	}
	if p.X >= 800.1 {
		t.Errorf("expected particle to move back inside, x = %v", p.X)
	}
}

func TestRepel_NilPointer(t *testing.T) {
	p := particleAt(100, 100, 0, 0, 2)
	if Repel(&p, nil, 800, 600, testMotion) {
		t.Error("nil pointer must not repel")
	}
	if p.X != 100 || p.Y != 100 {
		t.Errorf("particle moved without pointer: (%v, %v)", p.X, p.Y)
	}
}

func TestRepel_ExactThresholdDoesNotNudge(t *testing.T) {
	// Pointer exactly radius+size away on the x axis.
	p := particleAt(400, 300, 0, 0, 2)
	ptr := &Pointer{X: 400 - 152, Y: 300}

	if Repel(&p, ptr, 800, 600, testMotion) {
		t.Error("distance == radius+size must not count as in range")
	}
	if p.X != 400 {
		t.Errorf("expected no nudge, x = %v", p.X)
	}
}

func TestRepel_PushesAwayPerAxis(t *testing.T) {
	tests := []struct {
		name         string
		ptr          Pointer
		wantX, wantY float64
	}{
		{"pointer up-left", Pointer{X: 390, Y: 290}, 402, 302},
		{"pointer down-right", Pointer{X: 410, Y: 310}, 398, 298},
		{"pointer left only", Pointer{X: 350, Y: 300}, 402, 300},
		{"pointer above only", Pointer{X: 400, Y: 250}, 400, 302},
		{"pointer on particle", Pointer{X: 400, Y: 300}, 400, 300},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := particleAt(400, 300, 0, 0, 2)
			ptr := tc.ptr
			if !Repel(&p, &ptr, 800, 600, testMotion) {
				t.Fatal("expected particle in range")
			}
			if p.X != tc.wantX || p.Y != tc.wantY {
				t.Errorf("position = (%v, %v), want (%v, %v)", p.X, p.Y, tc.wantX, tc.wantY)
			}
		})
	}
}

func TestRepel_RespectsEdgeMargin(t *testing.T) {
	// size 3 -> margin 30. Particle near the right edge, pointer to its left:
	// pushing right would cross into the margin, so x stays put.
	p := particleAt(775, 300, 0, 0, 3)
	ptr := &Pointer{X: 700, Y: 300}
	Repel(&p, ptr, 800, 600, testMotion)
	if p.X != 775 {
		t.Errorf("expected no push into right margin, x = %v", p.X)
	}

	// Near the top edge with pointer below: pushing up would cross the margin.
	p = particleAt(400, 20, 0, 0, 3)
	ptr = &Pointer{X: 400, Y: 80}
	Repel(&p, ptr, 800, 600, testMotion)
	if p.Y != 20 {
		t.Errorf("expected no push into top margin, y = %v", p.Y)
	}
}

func TestUpdateParticle_RepelAndMoveCompound(t *testing.T) {
	p := particleAt(400, 300, 0.1, 0.2, 2)
	ptr := &Pointer{X: 390, Y: 300}

	if !UpdateParticle(&p, ptr, 800, 600, testMotion) {
		t.Fatal("expected pointer influence")
	}
	if math.Abs(p.X-402.1) > 1e-9 {
		t.Errorf("expected x = 400 + 2 + 0.1, got %v", p.X)
	}
	if math.Abs(p.Y-300.2) > 1e-9 {
		t.Errorf("expected y = 300 + 0.2, got %v", p.Y)
	}
}

func TestUpdateParticle_SizeAndColorImmutable(t *testing.T) {
	p := particleAt(400, 300, 0.1, 0.1, 2.5)
	p.Color.R = 9
	ptr := &Pointer{X: 401, Y: 301}
	for i := 0; i < 100; i++ {
		UpdateParticle(&p, ptr, 800, 600, testMotion)
	}
	if p.Size != 2.5 || p.Color.R != 9 {
		t.Errorf("body changed: %+v", p.Body)
	}
}
