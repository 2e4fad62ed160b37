package gui

import (
	"context"
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/cubedrop/internal/config"
	"github.com/san-kum/cubedrop/internal/scene"
	"github.com/san-kum/cubedrop/internal/sim"
)

var ErrNoWindow = errors.New("window could not be created")

// openWindow creates the window described by w. Escape closes it only when
// ExitOnEsc is set.
func openWindow(w config.WindowConfig) error {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(w.Width), int32(w.Height), w.Title)
	if !rl.IsWindowReady() {
		return ErrNoWindow
	}
	rl.SetTargetFPS(int32(w.FPS))
	if w.ExitOnEsc {
		rl.SetExitKey(rl.KeyEscape)
	} else {
		rl.SetExitKey(0)
	}
	rl.TraceLog(rl.LogInfo, "cubedrop: window %dx%d open", w.Width, w.Height)
	return nil
}

type phase int

const (
	phaseInput phase = iota
	phaseUpdate
	phaseRender
)

// windowSource turns each raylib frame into at most one mouse event, one
// update and one render, in that order.
type windowSource struct {
	phase  phase
	cursor rl.Vector2
}

func (s *windowSource) Next() (sim.Event, bool) {
	switch s.phase {
	case phaseInput:
		if rl.WindowShouldClose() {
			return sim.Event{}, false
		}
		s.phase = phaseUpdate
		if p := rl.GetMousePosition(); p != s.cursor {
			s.cursor = p
			return sim.MouseMove(float64(p.X), float64(p.Y)), true
		}
		fallthrough
	case phaseUpdate:
		s.phase = phaseRender
		return sim.Update(float64(rl.GetFrameTime())), true
	default:
		s.phase = phaseInput
		return sim.Render(), true
	}
}

// Run opens the window and drives the scene until the window closes or ctx
// is cancelled.
func Run(ctx context.Context, cfg *config.Config) error {
	s := scene.New(cfg)
	s.Init()
	return RunScene(ctx, cfg.Window, s)
}

func RunScene(ctx context.Context, w config.WindowConfig, s *scene.Scene) error {
	if err := openWindow(w); err != nil {
		return err
	}
	defer rl.CloseWindow()

	loop := sim.New(s)
	err := loop.Run(ctx, &windowSource{}, frame{})
	rl.TraceLog(rl.LogInfo, "cubedrop: closed after %d frames", loop.Updates())
	return err
}
