package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/heronet/config"
)

func TestOutputManager_NilIsNoop(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if om != nil {
		t.Fatal("expected nil manager for empty dir")
	}
	if err := om.WriteWindow(WindowStats{}); err != nil {
		t.Errorf("nil WriteWindow: %v", err)
	}
	if err := om.WritePerf(PerfStats{}, 1); err != nil {
		t.Errorf("nil WritePerf: %v", err)
	}
	if err := om.WriteRun(RunInfo{}); err != nil {
		t.Errorf("nil WriteRun: %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("expected empty dir, got %q", om.Dir())
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}

func TestOutputManager_CSVHeaderWrittenOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("creating output: %v", err)
	}

	for i := uint64(1); i <= 3; i++ {
		if err := om.WriteWindow(WindowStats{WindowEnd: i * 10, Frames: 10}); err != nil {
			t.Fatalf("write window: %v", err)
		}
		if err := om.WritePerf(PerfStats{}, i*10); err != nil {
			t.Fatalf("write perf: %v", err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	for _, name := range []string{"frames.csv", "perf.csv"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 4 {
			t.Errorf("%s: expected header + 3 rows, got %d lines", name, len(lines))
		}
		if strings.Count(string(data), "window_end")+strings.Count(string(data), "avg_frame_us") != 1 {
			t.Errorf("%s: header repeated:\n%s", name, data)
		}
	}
}

func TestOutputManager_WriteConfigAndRun(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("creating output: %v", err)
	}
	defer om.Close()

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("written config does not load back: %v", err)
	}

	info := RunInfo{
		ID:      "0c8d0a52-5b0c-4a43-9b8e-0a2f4f7b1e11",
		Started: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Backend: "headless",
		Seed:    7,
		Width:   1280,
		Height:  720,
	}
	if err := om.WriteRun(info); err != nil {
		t.Fatalf("write run: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "run.yaml"))
	if err != nil {
		t.Fatalf("reading run.yaml: %v", err)
	}
	var got RunInfo
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("parsing run.yaml: %v", err)
	}
	if !got.Started.Equal(info.Started) {
		t.Errorf("started: got %v, want %v", got.Started, info.Started)
	}
	got.Started = info.Started
	if got != info {
		t.Errorf("run.yaml mismatch: got %+v, want %+v", got, info)
	}
}
