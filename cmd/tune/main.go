// Package main fits link and density parameters with CMA-ES so the network
// reaches a target look across canvas sizes.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/heronet/config"
)

// EvalRow is one line of tune_log.csv.
type EvalRow struct {
	Eval             int     `csv:"eval"`
	Fitness          float64 `csv:"fitness"`
	DistanceDiv      float64 `csv:"distance_div"`
	OpacityDiv       float64 `csv:"opacity_div"`
	AreaPerParticle  float64 `csv:"area_per_particle"`
	LinksPerParticle float64 `csv:"links_per_particle"`
	MeanOpacity      float64 `csv:"mean_opacity"`
	ParticlesPerMP   float64 `csv:"particles_per_mp"`
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := d / time.Minute
	s := (d - m*time.Minute) / time.Second
	return fmt.Sprintf("%dm%02ds", m, s)
}

// parseSizes parses "1280x720,1920x1080".
func parseSizes(s string) ([]Canvas, error) {
	var out []Canvas
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		w, h, ok := strings.Cut(part, "x")
		if !ok {
			return nil, fmt.Errorf("size %q: want WxH", part)
		}
		wi, err := strconv.Atoi(w)
		if err != nil {
			return nil, fmt.Errorf("size %q: %w", part, err)
		}
		hi, err := strconv.Atoi(h)
		if err != nil {
			return nil, fmt.Errorf("size %q: %w", part, err)
		}
		if wi <= 0 || hi <= 0 {
			return nil, fmt.Errorf("size %q: must be positive", part)
		}
		out = append(out, Canvas{W: wi, H: hi})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no sizes given")
	}
	return out, nil
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 150, "Maximum number of evaluations")
	frames := flag.Int("frames", 300, "Frames simulated per run")
	sizes := flag.String("sizes", "1280x720,1920x1080,800x600", "Canvas sizes to evaluate")
	targetLinks := flag.Float64("target-links", 2.5, "Target links per particle")
	targetOpacity := flag.Float64("target-opacity", 0.35, "Target mean link opacity")
	targetDensity := flag.Float64("target-density", 0, "Target particles per megapixel (0 = ignore)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	canvases, err := parseSizes(*sizes)
	if err != nil {
		log.Fatalf("invalid --sizes: %v", err)
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	params := NewParamVector(baseCfg)
	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, baseCfg, evalSeeds, canvases, *frames, Target{
		LinksPerParticle: *targetLinks,
		MeanOpacity:      *targetOpacity,
		Particles:        *targetDensity,
	})

	logFile, err := os.Create(filepath.Join(*outputDir, "tune_log.csv"))
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()
	logWriter := gocsv.DefaultCSVWriter(logFile)

	evalCount := 0
	bestFitness := 1e18
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			res := evaluator.Evaluate(raw)
			evalCount++

			if res.Fitness < bestFitness {
				bestFitness = res.Fitness
				bestParams = append(bestParams[:0], raw...)
			}

			row := []EvalRow{{
				Eval:             evalCount,
				Fitness:          res.Fitness,
				DistanceDiv:      raw[0],
				OpacityDiv:       raw[1],
				AreaPerParticle:  raw[2],
				LinksPerParticle: res.LinksPerParticle,
				MeanOpacity:      res.MeanOpacity,
				ParticlesPerMP:   res.ParticlesPerMP,
			}}
			write := gocsv.MarshalCSVWithoutHeaders
			if evalCount == 1 {
				write = gocsv.MarshalCSV
			}
			if err := write(row, logWriter); err != nil {
				log.Printf("failed to write log row: %v", err)
			}

			elapsed := time.Since(startTime)
			remaining := time.Duration(*maxEvals-evalCount) * (elapsed / time.Duration(evalCount))
			fmt.Printf("Eval %d/%d: links/p=%.2f opacity=%.2f fitness=%.4f (best=%.4f) | elapsed: %s, ETA: %s\n",
				evalCount, *maxEvals, res.LinksPerParticle, res.MeanOpacity, res.Fitness, bestFitness,
				formatDuration(elapsed), formatDuration(remaining))
			return res.Fitness
		},
	}

	dim := params.Dim()
	method := &optimize.CmaEsChol{
		InitStepSize: 0.2,
		Population:   4 + int(3.0*float64(dim)/2.0),
	}
	settings := &optimize.Settings{FuncEvaluations: *maxEvals}

	fmt.Printf("Starting CMA-ES with %d parameters, max_evals=%d, %d seeds x %d sizes x %d frames\n",
		dim, *maxEvals, *seeds, len(canvases), *frames)

	result, err := optimize.Minimize(problem, params.Normalize(params.DefaultVector()), settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if bestParams == nil && result != nil {
		bestParams = params.Denormalize(result.X)
	}
	if bestParams == nil {
		log.Fatal("no evaluations completed")
	}

	fmt.Printf("\nTuning complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.4f\n\nBest parameters:\n", bestFitness)
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.3f\n", spec.Path, bestParams[i])
	}

	bestCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to reload config: %v", err)
	}
	params.ApplyToConfig(bestCfg, bestParams)
	outPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(outPath); err != nil {
		log.Printf("failed to write best config: %v", err)
		return
	}
	fmt.Printf("\nBest config saved to: %s\n", outPath)
}
