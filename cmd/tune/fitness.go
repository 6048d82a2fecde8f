package main

import (
	"math/rand"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/heronet/config"
	"github.com/pthm-cable/heronet/field"
)

// Canvas is one evaluated canvas size.
type Canvas struct {
	W, H int
}

// Target is the look the tuner aims for.
type Target struct {
	LinksPerParticle float64
	MeanOpacity      float64
	Particles        float64 // per megapixel
}

// Result summarises one evaluation.
type Result struct {
	LinksPerParticle float64
	MeanOpacity      float64
	ParticlesPerMP   float64
	Fitness          float64
}

// FitnessEvaluator runs fields headlessly and scores their link density.
type FitnessEvaluator struct {
	params   *ParamVector
	base     *config.Config
	seeds    []int64
	canvases []Canvas
	frames   int
	warmup   int
	target   Target
}

// NewFitnessEvaluator creates an evaluator.
func NewFitnessEvaluator(params *ParamVector, base *config.Config, seeds []int64, canvases []Canvas, frames int, target Target) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:   params,
		base:     base,
		seeds:    seeds,
		canvases: canvases,
		frames:   frames,
		warmup:   frames / 5,
		target:   target,
	}
}

// Evaluate scores raw parameter values. Lower is better.
func (fe *FitnessEvaluator) Evaluate(raw []float64) Result {
	cfg := *fe.base
	fe.params.ApplyToConfig(&cfg, raw)
	params := field.ParamsFromConfig(&cfg)

	var perParticle, opacity, density []float64
	var rec field.Recorder
	for _, seed := range fe.seeds {
		for _, c := range fe.canvases {
			f := field.New(rand.New(rand.NewSource(seed)), c.W, c.H, params)
			n := len(f.Particles())
			density = append(density, float64(n)/(float64(c.W*c.H)/1e6))
			if n == 0 {
				continue
			}
			for i := 0; i < fe.frames; i++ {
				f.Step(&rec)
				if i < fe.warmup {
					continue
				}
				perParticle = append(perParticle, float64(len(rec.Lines))/float64(n))
				for _, l := range rec.Lines {
					opacity = append(opacity, float64(l.Color.A)/255)
				}
			}
		}
	}

	res := Result{
		LinksPerParticle: meanOrZero(perParticle),
		MeanOpacity:      meanOrZero(opacity),
		ParticlesPerMP:   meanOrZero(density),
	}
	res.Fitness = sq(res.LinksPerParticle-fe.target.LinksPerParticle) +
		sq(4*(res.MeanOpacity-fe.target.MeanOpacity))
	if fe.target.Particles > 0 {
		res.Fitness += sq((res.ParticlesPerMP - fe.target.Particles) / fe.target.Particles)
	}
	return res
}

func meanOrZero(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return stat.Mean(v, nil)
}

func sq(x float64) float64 { return x * x }
