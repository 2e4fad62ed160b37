package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/jakecoffman/cp/v2"
)

var ErrUnknownEvent = errors.New("sim: unknown event kind")

// Loop is the single-threaded event dispatcher. Each event is handled to
// completion before the next one is read.
type Loop struct {
	scene     Scene
	cursor    cp.Vector
	updates   int
	renders   int
	observers []Observer
}

func New(s Scene) *Loop {
	return &Loop{
		scene:     s,
		observers: make([]Observer, 0),
	}
}

func (l *Loop) AddObserver(o Observer) { l.observers = append(l.observers, o) }

// Cursor is the last mouse position seen, (0, 0) before any mouse-move.
func (l *Loop) Cursor() cp.Vector { return l.cursor }

func (l *Loop) Updates() int { return l.updates }

func (l *Loop) Renders() int { return l.renders }

// Dispatch handles one event. Updates drag the target onto the cursor before
// stepping physics. A nil frame skips rendering.
func (l *Loop) Dispatch(ev Event, f Frame) error {
	switch ev.Kind {
	case MouseMoveEvent:
		l.cursor = ev.Cursor
	case UpdateEvent:
		delta := l.scene.Drag(l.cursor)
		l.scene.Update(ev.Dt)
		l.updates++
		stats := Stats{Frame: l.updates, Dt: ev.Dt, Cursor: l.cursor, Delta: delta}
		for _, o := range l.observers {
			o.OnUpdate(stats)
		}
	case RenderEvent:
		l.renders++
		if f == nil {
			return nil
		}
		canvas := f.Begin()
		l.scene.Render(canvas)
		f.End()
	default:
		return fmt.Errorf("%w: %d", ErrUnknownEvent, int(ev.Kind))
	}
	return nil
}

// Run polls src until it reports shutdown or ctx is done.
func (l *Loop) Run(ctx context.Context, src Source, f Frame) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		ev, ok := src.Next()
		if !ok {
			return nil
		}
		if err := l.Dispatch(ev, f); err != nil {
			return err
		}
	}
}
