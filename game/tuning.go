package game

// Tuning is the set of parameters the interactive panel can change while
// the animation runs.
type Tuning struct {
	PointerRadius   float64
	PointerStep     float64
	LinkDistanceDiv float64
	LinksEnabled    bool
	MaxCount        int
	Paused          bool
}

// Tuning returns the current tunable parameters.
func (g *Game) Tuning() Tuning {
	if g.field == nil {
		return Tuning{}
	}
	p := g.field.Params()
	return Tuning{
		PointerRadius:   p.Motion.PointerRadius,
		PointerStep:     p.Motion.PointerStep,
		LinkDistanceDiv: p.Links.DistanceDiv,
		LinksEnabled:    p.LinksEnabled,
		MaxCount:        p.Population.MaxCount,
		Paused:          g.paused,
	}
}

// SetTuning applies t. Changing MaxCount regenerates the population;
// everything else takes effect on the next frame.
func (g *Game) SetTuning(t Tuning) {
	if g.field == nil {
		return
	}
	p := g.field.Params()
	regen := false

	if t.PointerRadius >= 0 {
		p.Motion.PointerRadius = t.PointerRadius
	}
	if t.PointerStep >= 0 {
		p.Motion.PointerStep = t.PointerStep
	}
	if t.LinkDistanceDiv > 0 {
		p.Links.DistanceDiv = t.LinkDistanceDiv
	}
	p.LinksEnabled = t.LinksEnabled
	if t.MaxCount >= 0 && t.MaxCount != p.Population.MaxCount {
		p.Population.MaxCount = t.MaxCount
		regen = true
	}

	g.field.SetParams(p)
	if regen {
		g.Regenerate()
	}
	if t.Paused != g.paused {
		g.SetPaused(t.Paused)
	}
}
