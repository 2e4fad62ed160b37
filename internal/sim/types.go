package sim

import (
	"fmt"

	"github.com/jakecoffman/cp/v2"
	"github.com/san-kum/cubedrop/internal/scene"
)

type EventKind int

const (
	MouseMoveEvent EventKind = iota
	UpdateEvent
	RenderEvent
)

func (k EventKind) String() string {
	switch k {
	case MouseMoveEvent:
		return "mouse-move"
	case UpdateEvent:
		return "update"
	case RenderEvent:
		return "render"
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is one input from the window. Cursor is set for mouse-move and Dt
// for update; render carries nothing.
type Event struct {
	Kind   EventKind
	Cursor cp.Vector
	Dt     float64
}

func MouseMove(x, y float64) Event {
	return Event{Kind: MouseMoveEvent, Cursor: cp.Vector{X: x, Y: y}}
}

func Update(dt float64) Event { return Event{Kind: UpdateEvent, Dt: dt} }

func Render() Event { return Event{Kind: RenderEvent} }

func (e Event) String() string {
	switch e.Kind {
	case MouseMoveEvent:
		return fmt.Sprintf("mouse-move(%.1f, %.1f)", e.Cursor.X, e.Cursor.Y)
	case UpdateEvent:
		return fmt.Sprintf("update(%.4f)", e.Dt)
	}
	return e.Kind.String()
}

// Scene is what the loop drives.
type Scene interface {
	Drag(cursor cp.Vector) cp.Vector
	Update(dt float64)
	Render(c scene.Canvas)
}

// Source yields events until it reports shutdown with ok == false.
type Source interface {
	Next() (ev Event, ok bool)
}

// Frame brackets one render pass.
type Frame interface {
	Begin() scene.Canvas
	End()
}

// Stats describes one processed update.
type Stats struct {
	Frame  int
	Dt     float64
	Cursor cp.Vector
	Delta  cp.Vector
}

type Observer interface {
	OnUpdate(s Stats)
}
