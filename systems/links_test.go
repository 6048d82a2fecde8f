package systems

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/pthm-cable/heronet/components"
)

var testLinks = LinkParams{DistanceDiv: 7, OpacityDiv: 20000, ClampOpacity: true}

func TestLinks_ThresholdIsStrict(t *testing.T) {
	// 700x700 -> threshold (100)*(100) = 10000, i.e. distance 100.
	particles := []components.Particle{
		particleAt(100, 100, 0, 0, 1),
		particleAt(200, 100, 0, 0, 1),    // exactly 100 from #0
		particleAt(100, 199.99, 0, 0, 1), // just under 100 from #0
	}

	links := Links(nil, particles, 700, 700, testLinks)

	if hasLink(links, 0, 1) {
		t.Error("pair at exactly the threshold distance must not link")
	}
	if !hasLink(links, 0, 2) {
		t.Error("pair just under the threshold must link")
	}
}

func TestLinks_NoSelfPairsAndOrdered(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	particles := Populate(rng, 1280, 720, testPopulationParams())

	links := Links(nil, particles, 1280, 720, testLinks)
	if len(links) == 0 {
		t.Fatal("expected some links in a full population")
	}
	for i, l := range links {
		if l.A >= l.B {
			t.Fatalf("link %d: expected A < B, got (%d, %d)", i, l.A, l.B)
		}
		if i > 0 {
			prev := links[i-1]
			if prev.A > l.A || (prev.A == l.A && prev.B >= l.B) {
				t.Fatalf("links not ordered at %d: %v then %v", i, prev, l)
			}
		}
	}
}

func TestLinks_SymmetricWithThreshold(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	w, h := 1000.0, 800.0
	particles := Populate(rng, int(w), int(h), testPopulationParams())
	threshold := testLinks.Threshold(w, h)

	links := Links(nil, particles, w, h, testLinks)
	for a := range particles {
		for b := range particles {
			if a == b {
				continue
			}
			dx := particles[a].X - particles[b].X
			dy := particles[a].Y - particles[b].Y
			want := dx*dx+dy*dy < threshold
			lo, hi := min(a, b), max(a, b)
			if got := hasLink(links, lo, hi); got != want {
				t.Fatalf("pair (%d, %d): linked = %v, want %v", a, b, got, want)
			}
		}
	}
}

func TestLinks_Opacity(t *testing.T) {
	tests := []struct {
		distSq float64
		clamp  bool
		want   float64
	}{
		{0, true, 1},
		{10000, true, 0.5},
		{20000, true, 0},
		{30000, true, 0},
		{30000, false, -0.5},
	}

	for _, tc := range tests {
		lp := testLinks
		lp.ClampOpacity = tc.clamp
		if got := lp.Opacity(tc.distSq); got != tc.want {
			t.Errorf("Opacity(%v, clamp=%v) = %v, want %v", tc.distSq, tc.clamp, got, tc.want)
		}
	}
}

func TestLinks_FarPairsStillLinkWithZeroOpacity(t *testing.T) {
	// 1400x1400 -> threshold 200*200 = 40000, beyond the 20000 opacity range.
	particles := []components.Particle{
		particleAt(100, 100, 0, 0, 1),
		particleAt(100, 280, 0, 0, 1), // d² = 32400
	}

	links := Links(nil, particles, 1400, 1400, testLinks)
	if len(links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(links))
	}
	if links[0].Opacity != 0 {
		t.Errorf("expected clamped opacity 0, got %v", links[0].Opacity)
	}
}

func TestLinks_DegenerateInputs(t *testing.T) {
	one := []components.Particle{particleAt(1, 1, 0, 0, 1)}
	if got := Links(nil, one, 700, 700, testLinks); len(got) != 0 {
		t.Errorf("single particle produced %d links", len(got))
	}
	two := []components.Particle{particleAt(1, 1, 0, 0, 1), particleAt(1, 1, 0, 0, 1)}
	if got := Links(nil, two, 0, 700, testLinks); len(got) != 0 {
		t.Errorf("zero-width canvas produced %d links", len(got))
	}
}

func TestLinks_GridMatchesScan(t *testing.T) {
	grid := testLinks
	grid.BroadPhase = BroadPhaseGrid

	for seed := int64(0); seed < 25; seed++ {
		rng := rand.New(rand.NewSource(seed))
		w := 200 + rng.Intn(1800)
		h := 200 + rng.Intn(1200)
		particles := Populate(rng, w, h, testPopulationParams())

		// Push a few particles just outside the canvas like a mid-bounce frame.
		for i := 0; i < len(particles); i += 7 {
			particles[i].X = -0.15
		}
		for i := 3; i < len(particles); i += 11 {
			particles[i].Y = float64(h) + 0.15
		}

		want := Links(nil, particles, float64(w), float64(h), testLinks)
		got := Links(nil, particles, float64(w), float64(h), grid)
		if !slices.Equal(want, got) {
			t.Fatalf("seed %d (%dx%d): grid produced %d links, scan %d", seed, w, h, len(got), len(want))
		}
	}
}

func TestLinks_ReusesBuffer(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	particles := Populate(rng, 1280, 720, testPopulationParams())

	buf := make([]Link, 0, 4096)
	first := Links(buf, particles, 1280, 720, testLinks)
	n := len(first)
	second := Links(first, particles, 1280, 720, testLinks)
	if len(second) != n {
		t.Errorf("expected %d links on reuse, got %d", n, len(second))
	}
	if cap(second) != cap(buf) {
		t.Error("expected the buffer to be reused without reallocation")
	}
}

func hasLink(links []Link, a, b int) bool {
	for _, l := range links {
		if l.A == a && l.B == b {
			return true
		}
	}
	return false
}
