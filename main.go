package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/pthm-cable/heronet/config"
	"github.com/pthm-cable/heronet/field"
	"github.com/pthm-cable/heronet/game"
	"github.com/pthm-cable/heronet/host"
)

func main() {
	// A missing .env is fine; anything else is worth a warning.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	envSeed, err := envInt64("HERONET_SEED")
	if err != nil {
		slog.Error("invalid HERONET_SEED", "error", err)
		os.Exit(1)
	}

	// CLI flags, defaulted from the environment
	configPath := flag.String("config", os.Getenv("HERONET_CONFIG"), "Path to config.yaml (empty = use defaults)")
	backend := flag.String("backend", envOr("HERONET_BACKEND", "window"), "Host: window, terminal or headless")
	seed := flag.Int64("seed", envSeed, "RNG seed (0 = time-based)")
	maxTicks := flag.Uint64("max-ticks", 0, "Headless: stop after N frames (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output stats windows via slog")

	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	runID := uuid.New().String()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("run", runID)
	slog.SetDefault(logger)

	opts := game.Options{
		Seed:      rngSeed,
		Width:     cfg.Screen.Width,
		Height:    cfg.Screen.Height,
		LogStats:  *logStats,
		OutputDir: *outputDir,
		Backend:   *backend,
		RunID:     runID,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("starting",
		"backend", *backend,
		"seed", rngSeed,
		"config", *configPath,
		"output_dir", *outputDir,
	)

	if err := run(ctx, cfg, opts, *maxTicks); err != nil {
		slog.Error("run failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, opts game.Options, maxTicks uint64) error {
	switch opts.Backend {
	case "window":
		return host.RunWindow(ctx, cfg, opts)
	case "terminal":
		return host.RunTerminal(ctx, cfg, opts)
	case "headless":
		// Headless mode - no raylib or terminal needed
		g, err := game.NewGame(cfg, opts, &field.Recorder{})
		if err != nil {
			return fmt.Errorf("creating game: %w", err)
		}
		defer g.Unload()

		fps := cfg.Screen.TargetFPS
		if fps <= 0 {
			fps = 60
		}
		game.RunHeadless(ctx, g, game.HeadlessOptions{
			MaxFrames:     maxTicks,
			FrameInterval: time.Second / time.Duration(fps),
		})
		return nil
	default:
		return fmt.Errorf("unknown backend %q", opts.Backend)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
