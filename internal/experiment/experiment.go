package experiment

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/san-kum/cubedrop/internal/config"
	"github.com/san-kum/cubedrop/internal/metrics"
	"github.com/san-kum/cubedrop/internal/scene"
	"github.com/san-kum/cubedrop/internal/sim"
)

var ErrInvalidRun = errors.New("invalid experiment")

// Config describes one headless run of a scene.
type Config struct {
	Name   string
	Scene  *config.Config
	Frames int
	Dt     float64
	// Cursor is optional; nil leaves the cursor at the origin.
	Cursor sim.CursorPath
	// RestLimit is the kinetic energy at or below which a sample counts as
	// at rest.
	RestLimit float64
	// Frame receives every render. Nil runs without drawing.
	Frame sim.Frame
}

type Result struct {
	Name    string
	Frames  int
	Time    float64
	Cubes   int
	Values  map[string]float64
	Samples []metrics.Sample
	// Scene is the scene in its final state.
	Scene *scene.Scene
}

func (c Config) validate() error {
	if c.Scene == nil {
		return fmt.Errorf("%w: %s: no scene", ErrInvalidRun, c.Name)
	}
	if c.Frames <= 0 {
		return fmt.Errorf("%w: %s: frames must be positive, got %d", ErrInvalidRun, c.Name, c.Frames)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("%w: %s: dt must be positive, got %g", ErrInvalidRun, c.Name, c.Dt)
	}
	return nil
}

// Run builds the scene and replays a fixed-step script through the frame
// loop, sampling after every update.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	s := scene.New(cfg.Scene)
	s.Init()
	loop := sim.New(s)
	tracker := metrics.NewTracker(s, cfg.Frames,
		metrics.NewEnergy(),
		metrics.NewPeakHeight(),
		metrics.NewStability(cfg.RestLimit),
	)
	loop.AddObserver(tracker)

	if err := loop.Run(ctx, sim.NewFixedStep(cfg.Frames, cfg.Dt, cfg.Cursor), cfg.Frame); err != nil {
		return nil, err
	}

	return &Result{
		Name:    cfg.Name,
		Frames:  loop.Updates(),
		Time:    s.Timer(),
		Cubes:   len(s.Cubes()),
		Values:  tracker.Values(),
		Samples: tracker.History(),
		Scene:   s,
	}, nil
}

// RunAll runs each config on its own goroutine. Every run owns its scene and
// world, so nothing is shared. Results keep the order of cfgs.
func RunAll(ctx context.Context, cfgs []Config) ([]*Result, error) {
	results := make([]*Result, len(cfgs))
	errs := make([]error, len(cfgs))

	var wg sync.WaitGroup
	for i, cfg := range cfgs {
		wg.Add(1)
		go func(idx int, c Config) {
			defer wg.Done()
			results[idx], errs[idx] = Run(ctx, c)
		}(i, cfg)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return results, nil
}

// Presets returns one config per named preset, sharing frames, dt and rest
// limit.
func Presets(names []string, frames int, dt, restLimit float64) ([]Config, error) {
	cfgs := make([]Config, 0, len(names))
	for _, name := range names {
		sc := config.GetPreset(name)
		if sc == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
		cfgs = append(cfgs, Config{Name: name, Scene: sc, Frames: frames, Dt: dt, RestLimit: restLimit})
	}
	return cfgs, nil
}
