package scene

import (
	"github.com/jakecoffman/cp/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/cubedrop/internal/physics"
)

// Cube is the drawable view of one dynamic body.
type Cube struct {
	Body physics.BodyID
	// Radius is the side length of the drawn square.
	Radius float64
}

// Transform maps the cube's local square onto its body: translate to the
// body position, rotate by the body angle, then recenter by half the side.
func (c Cube) Transform(w *physics.World) cp.Transform {
	half := c.Radius / 2
	return cp.NewTransformTranslate(w.Position(c.Body)).
		Mult(cp.NewTransformRotate(w.Rotation(c.Body))).
		Mult(cp.NewTransformTranslate(cp.Vector{X: -half, Y: -half}))
}

func (c Cube) Render(canvas Canvas, w *physics.World, color colorful.Color) {
	canvas.FillRect(color, Square(0, 0, c.Radius), c.Transform(w))
}
