package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/gleam/internal/intro"
	"github.com/san-kum/gleam/internal/palette"
	"github.com/san-kum/gleam/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Samples: []sim.Sample{
			{Frame: 1, T: 1.0 / 60, Dt: 0.016667, Phase: intro.Carve, Run: 1, HeadX: -300, HeadY: 360, VelX: 620, TrailLen: 1, Color: palette.Cyan},
			{Frame: 2, T: 2.0 / 60, Dt: 0.016667, Phase: intro.Exit, Run: 1, HeadX: -289.5, HeadY: 361.25, VelX: 619, VelY: 10, TrailLen: 2, Mix: 0.5, Color: palette.Magenta},
		},
		Metrics: map[string]float64{"speed_deviation": 1e-9},
		Frames:  2,
		Runs:    1,
		Errors:  []error{errors.New("frame 9: boom")},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := sim.DefaultConfig()
	cfg.Seed = 42

	runID, err := st.Save("classic", cfg, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Preset != "classic" || meta.Seed != 42 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if math.Abs(meta.FPS-60) > 1e-3 || meta.Width != 1280 {
		t.Errorf("fps %v width %v", meta.FPS, meta.Width)
	}
	if meta.Metrics["speed_deviation"] != 1e-9 {
		t.Errorf("metric lost: %v", meta.Metrics)
	}
	if len(meta.Errors) != 1 {
		t.Errorf("expected 1 recorded error, got %v", meta.Errors)
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	got := samples[1]
	if got.Phase != intro.Exit || got.HeadX != -289.5 || got.Color != palette.Magenta || got.TrailLen != 2 {
		t.Errorf("sample round trip = %+v", got)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	first, err := st.Save("calm", sim.DefaultConfig(), testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	second, err := st.Save("calm", sim.DefaultConfig(), testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != second || runs[1].ID != first {
		t.Errorf("expected newest first, got %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "nope"))
	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v, %v", runs, err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save("classic", sim.DefaultConfig(), &sim.Result{Metrics: map[string]float64{}})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{"metadata.json", "frames.csv"} {
		if _, err := os.Stat(filepath.Join(tmpDir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}

	samples, err := st.LoadSamples(runID)
	if err != nil || len(samples) != 0 {
		t.Errorf("expected no samples, got %v, %v", samples, err)
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportJSON(&buf, "classic", sim.DefaultConfig(), testResult()); err != nil {
		t.Fatal(err)
	}

	var got ExportData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Frames != 2 || len(got.Samples) != 2 || got.Samples[1].Color != palette.Magenta {
		t.Errorf("export = %+v", got)
	}
}
