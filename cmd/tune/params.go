package main

import (
	"github.com/pthm-cable/heronet/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string
	Path    string // config key, for logs
	Min     float64
	Max     float64
	Default float64
	apply   func(cfg *config.Config, v float64)
}

// ParamVector is the set of tuned parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the tuned parameter set with defaults from cfg.
func NewParamVector(cfg *config.Config) *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{
				Name: "distance_div", Path: "links.distance_div",
				Min: 2, Max: 20, Default: cfg.Links.DistanceDiv,
				apply: func(c *config.Config, v float64) { c.Links.DistanceDiv = v },
			},
			{
				Name: "opacity_div", Path: "links.opacity_div",
				Min: 2000, Max: 80000, Default: cfg.Links.OpacityDiv,
				apply: func(c *config.Config, v float64) { c.Links.OpacityDiv = v },
			},
			{
				Name: "area_per_particle", Path: "particles.area_per_particle",
				Min: 4000, Max: 60000, Default: cfg.Particles.AreaPerParticle,
				apply: func(c *config.Config, v float64) { c.Particles.AreaPerParticle = v },
			},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int { return len(pv.Specs) }

// DefaultVector returns the default values.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize maps raw values to [0,1].
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return out
}

// Denormalize maps [0,1] values back to raw values, clamped to bounds.
func (pv *ParamVector) Denormalize(norm []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v := spec.Min + norm[i]*(spec.Max-spec.Min)
		out[i] = min(max(v, spec.Min), spec.Max)
	}
	return out
}

// ApplyToConfig writes raw values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, raw []float64) {
	for i, spec := range pv.Specs {
		spec.apply(cfg, raw[i])
	}
}
