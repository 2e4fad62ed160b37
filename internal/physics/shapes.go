package physics

import (
	"github.com/jakecoffman/cp/v2"
)

const (
	// planeDepth is the radius of the capsule standing in for a half-space.
	planeDepth = 1000.0
	// planeExtent is the half length of the capsule along the plane line.
	planeExtent = 100000.0
)

// Plane is a static half-space. Normal points away from the solid side and
// Offset is a point on the boundary line.
type Plane struct {
	Normal   cp.Vector
	Offset   cp.Vector
	Material Material
}

// Box is a dynamic axis-aligned box centred on Position.
type Box struct {
	Position      cp.Vector
	Width, Height float64
	Density       float64
	Material      Material
	// FixedRotation gives the body infinite inertia and pins its angle.
	FixedRotation bool
}

func (b Box) Mass() float64 { return b.Density * b.Width * b.Height }

// AddPlane adds a static body at p.Offset whose solid half lies behind p.Normal.
// cp has no infinite plane, so the boundary is a thick capsule whose near
// surface coincides with the plane line.
func (w *World) AddPlane(p Plane) BodyID {
	n := p.Normal.Normalize()
	t := n.Perp().Mult(planeExtent)
	core := n.Mult(-planeDepth)

	body := cp.NewStaticBody()
	body.SetPosition(p.Offset)
	w.space.AddBody(body)

	shape := cp.NewSegment(body, core.Add(t), core.Sub(t), planeDepth)
	shape.SetFriction(p.Material.Friction)
	shape.SetElasticity(p.Material.Restitution)
	w.space.AddShape(shape)

	return w.register(body, Static)
}

// AddBox adds a dynamic box. Mass is density times area.
func (w *World) AddBox(b Box) BodyID {
	mass := b.Mass()
	moment := cp.MomentForBox(mass, b.Width, b.Height)
	if b.FixedRotation {
		moment = cp.INFINITY
	}

	body := cp.NewBody(mass, moment)
	body.SetPosition(b.Position)
	if b.FixedRotation {
		body.SetPositionUpdateFunc(pinAngle)
	}
	w.space.AddBody(body)

	shape := cp.NewBox(body, b.Width, b.Height, 0)
	shape.SetFriction(b.Material.Friction)
	shape.SetElasticity(b.Material.Restitution)
	w.space.AddShape(shape)

	return w.register(body, Dynamic)
}

// pinAngle integrates position but keeps the angle the body had before the step.
func pinAngle(body *cp.Body, dt float64) {
	angle := body.Angle()
	cp.BodyUpdatePosition(body, dt)
	body.SetAngle(angle)
}
