package physics

import (
	"fmt"

	"github.com/jakecoffman/cp/v2"
)

// BodyID indexes the world's body table.
type BodyID int

type Kind int

const (
	Static Kind = iota
	Dynamic
)

func (k Kind) String() string {
	switch k {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

type Material struct {
	Friction    float64
	Restitution float64
}

type World struct {
	space  *cp.Space
	bodies []*cp.Body
	kinds  []Kind

	lastStep float64
	elapsed  float64
	steps    int
}

func NewWorld(gravity cp.Vector) *World {
	space := cp.NewSpace()
	space.SetGravity(gravity)
	return &World{
		space:  space,
		bodies: make([]*cp.Body, 0, 32),
		kinds:  make([]Kind, 0, 32),
	}
}

func (w *World) SetIterations(n int) {
	if n > 0 {
		w.space.Iterations = uint(n)
	}
}

func (w *World) Gravity() cp.Vector { return w.space.Gravity() }

// Step advances the simulation by exactly dt in a single solver call.
func (w *World) Step(dt float64) {
	w.space.Step(dt)
	w.lastStep = dt
	w.elapsed += dt
	w.steps++
}

// LastStep is the dt handed to the most recent Step.
func (w *World) LastStep() float64 { return w.lastStep }

// Elapsed is the simulated time summed over all steps.
func (w *World) Elapsed() float64 { return w.elapsed }

func (w *World) Steps() int { return w.steps }

func (w *World) Len() int { return len(w.bodies) }

func (w *World) Kind(id BodyID) Kind {
	w.body(id)
	return w.kinds[id]
}

// Bodies lists the ids of the given kind in creation order.
func (w *World) Bodies(kind Kind) []BodyID {
	var ids []BodyID
	for i, k := range w.kinds {
		if k == kind {
			ids = append(ids, BodyID(i))
		}
	}
	return ids
}

func (w *World) Position(id BodyID) cp.Vector { return w.body(id).Position() }

// Rotation is the body angle in radians.
func (w *World) Rotation(id BodyID) float64 { return w.body(id).Angle() }

func (w *World) Velocity(id BodyID) cp.Vector { return w.body(id).Velocity() }

func (w *World) AngularVelocity(id BodyID) float64 { return w.body(id).AngularVelocity() }

func (w *World) Mass(id BodyID) float64 { return w.body(id).Mass() }

func (w *World) SetPosition(id BodyID, p cp.Vector) { w.body(id).SetPosition(p) }

// Translate moves a body by d without touching its velocity.
func (w *World) Translate(id BodyID, d cp.Vector) {
	b := w.body(id)
	b.SetPosition(b.Position().Add(d))
}

func (w *World) SetVelocity(id BodyID, v cp.Vector) { w.body(id).SetVelocityVector(v) }

func (w *World) SetRotation(id BodyID, angle float64) { w.body(id).SetAngle(angle) }

func (w *World) SetAngularVelocity(id BodyID, omega float64) {
	w.body(id).SetAngularVelocity(omega)
}

// KineticEnergy returns 1/2 m v^2 + 1/2 I w^2 for one body.
func (w *World) KineticEnergy(id BodyID) float64 {
	// cp reports m v^2 + I w^2 (no half factor)
	return 0.5 * w.body(id).KineticEnergy()
}

func (w *World) body(id BodyID) *cp.Body {
	if id < 0 || int(id) >= len(w.bodies) {
		panic(fmt.Errorf("%w: %d", ErrUnknownBody, int(id)))
	}
	return w.bodies[id]
}

func (w *World) register(b *cp.Body, kind Kind) BodyID {
	w.bodies = append(w.bodies, b)
	w.kinds = append(w.kinds, kind)
	return BodyID(len(w.bodies) - 1)
}
