package experiment

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/jakecoffman/cp/v2"
	"github.com/san-kum/cubedrop/internal/config"
	"github.com/san-kum/cubedrop/internal/sim"
)

func TestRun(t *testing.T) {
	res, err := Run(context.Background(), Config{
		Name:      "reference",
		Scene:     config.DefaultConfig(),
		Frames:    30,
		Dt:        1.0 / 60,
		Cursor:    sim.FixedCursor(cp.Vector{X: 100, Y: 100}),
		RestLimit: 1,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Frames != 30 {
		t.Errorf("Frames = %d, want 30", res.Frames)
	}
	if len(res.Samples) != 30 {
		t.Errorf("got %d samples, want 30", len(res.Samples))
	}
	if res.Cubes != 13 {
		t.Errorf("Cubes = %d, want 13", res.Cubes)
	}
	for _, name := range []string{"energy", "peak_height", "stability"} {
		if _, ok := res.Values[name]; !ok {
			t.Errorf("missing metric %q", name)
		}
	}

	last := res.Samples[len(res.Samples)-1]
	// The drag snaps x to the cursor before each step; one step of the
	// target's own velocity moves it only slightly.
	if math.Abs(last.Target.X-100) > 1 {
		t.Errorf("drag target x = %v, want about 100", last.Target.X)
	}
}

func TestRunValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"no scene", Config{Frames: 1, Dt: 0.1}},
		{"zero frames", Config{Scene: config.DefaultConfig(), Dt: 0.1}},
		{"zero dt", Config{Scene: config.DefaultConfig(), Frames: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Run(context.Background(), tt.cfg); !errors.Is(err, ErrInvalidRun) {
				t.Errorf("err = %v, want ErrInvalidRun", err)
			}
		})
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Config{Scene: config.DefaultConfig(), Frames: 10, Dt: 0.1})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRunAllPresets(t *testing.T) {
	names := config.ListPresets()
	cfgs, err := Presets(names, 20, 1.0/60, 1)
	if err != nil {
		t.Fatalf("Presets: %v", err)
	}
	results, err := RunAll(context.Background(), cfgs)
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if len(results) != len(names) {
		t.Fatalf("got %d results, want %d", len(results), len(names))
	}
	for i, res := range results {
		if res.Name != names[i] {
			t.Errorf("result %d is %s, want %s", i, res.Name, names[i])
		}
		if want := config.GetPreset(names[i]).Scene.CubeCount(); res.Cubes != want {
			t.Errorf("%s: Cubes = %d, want %d", res.Name, res.Cubes, want)
		}
	}
}

func TestPresetsUnknown(t *testing.T) {
	if _, err := Presets([]string{"nope"}, 1, 0.1, 1); err == nil {
		t.Error("expected error for unknown preset")
	}
}
