package sim

import "github.com/jakecoffman/cp/v2"

// Script is a Source that replays a fixed list of events.
type Script struct {
	events []Event
	pos    int
}

func NewScript(events ...Event) *Script {
	return &Script{events: events}
}

func (s *Script) Next() (Event, bool) {
	if s.pos >= len(s.events) {
		return Event{}, false
	}
	ev := s.events[s.pos]
	s.pos++
	return ev, true
}

func (s *Script) Len() int { return len(s.events) }

// CursorPath gives the cursor for a frame, and whether it moved on that frame.
type CursorPath func(frame int) (cp.Vector, bool)

// FixedCursor moves the cursor to p on the first frame and leaves it there.
func FixedCursor(p cp.Vector) CursorPath {
	return func(frame int) (cp.Vector, bool) {
		return p, frame == 0
	}
}

// NewFixedStep scripts frames of constant dt: an optional mouse-move, then an
// update, then a render. A nil path never moves the cursor.
func NewFixedStep(frames int, dt float64, path CursorPath) *Script {
	events := make([]Event, 0, frames*3)
	for i := 0; i < frames; i++ {
		if path != nil {
			if p, moved := path(i); moved {
				events = append(events, MouseMove(p.X, p.Y))
			}
		}
		events = append(events, Update(dt), Render())
	}
	return NewScript(events...)
}
