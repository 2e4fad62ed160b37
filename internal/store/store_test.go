package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jakecoffman/cp/v2"
	"github.com/san-kum/cubedrop/internal/metrics"
)

func testSamples() []metrics.Sample {
	return []metrics.Sample{
		{Frame: 1, Time: 0.016, KineticEnergy: 7200, StackHeight: 240, Target: cp.Vector{X: 10, Y: 10}},
		{Frame: 2, Time: 0.032, KineticEnergy: 7100.5, StackHeight: 240, Target: cp.Vector{X: 12.5, Y: 10}},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{
		Preset:  "reference",
		Frames:  2,
		Dt:      0.016,
		Cubes:   13,
		Metrics: map[string]float64{"energy": 1.5},
	}, testSamples())
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
	if meta.Preset != "reference" {
		t.Errorf("expected preset 'reference', got '%s'", meta.Preset)
	}
	if meta.Cubes != 13 {
		t.Errorf("expected 13 cubes, got %d", meta.Cubes)
	}
	if meta.Metrics["energy"] != 1.5 {
		t.Errorf("expected energy 1.5, got %f", meta.Metrics["energy"])
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}
	want := testSamples()
	if len(samples) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(samples))
	}
	for i := range want {
		if samples[i] != want[i] {
			t.Errorf("sample %d = %+v, want %+v", i, samples[i], want[i])
		}
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

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, preset := range []string{"tower", "reference"} {
		meta := RunMetadata{Preset: preset, Timestamp: base.Add(time.Duration(i) * time.Second)}
		if _, err := st.Save(meta, nil); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Preset != "tower" || runs[1].Preset != "reference" {
		t.Errorf("runs not in time order: %s, %s", runs[0].Preset, runs[1].Preset)
	}
}

func TestStoreMissingRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); !errors.Is(err, ErrNoRun) {
		t.Errorf("Load error = %v, want ErrNoRun", err)
	}
	if _, err := st.LoadSamples("nope"); !errors.Is(err, ErrNoRun) {
		t.Errorf("LoadSamples error = %v, want ErrNoRun", err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{Preset: "reference"}, testSamples())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	for _, name := range []string{"metadata.json", "samples.csv"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	meta := RunMetadata{ID: "reference_1", Preset: "reference", Frames: 2}
	if err := ExportJSON(&buf, meta, testSamples()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got["id"] != "reference_1" {
		t.Errorf("id = %v", got["id"])
	}
	if samples, ok := got["samples"].([]any); !ok || len(samples) != 2 {
		t.Errorf("samples = %v", got["samples"])
	}
}
