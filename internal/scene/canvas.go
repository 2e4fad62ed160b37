package scene

import (
	"math"

	"github.com/jakecoffman/cp/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Rect is an axis-aligned rectangle in local coordinates, top-left anchored.
type Rect struct {
	X, Y, W, H float64
}

func Square(x, y, side float64) Rect { return Rect{X: x, Y: y, W: side, H: side} }

// Canvas is the drawing surface a frame renders into.
type Canvas interface {
	Clear(c colorful.Color)
	// FillRect fills r after mapping it through t.
	FillRect(c colorful.Color, r Rect, t cp.Transform)
}

// Corners returns the four corners of r mapped through t, clockwise on screen
// starting at the local top-left.
func Corners(r Rect, t cp.Transform) [4]cp.Vector {
	return [4]cp.Vector{
		t.Point(cp.Vector{X: r.X, Y: r.Y}),
		t.Point(cp.Vector{X: r.X + r.W, Y: r.Y}),
		t.Point(cp.Vector{X: r.X + r.W, Y: r.Y + r.H}),
		t.Point(cp.Vector{X: r.X, Y: r.Y + r.H}),
	}
}

// Decompose splits a rigid transform applied to r into the screen position of
// r's local top-left corner and the rotation angle in radians.
func Decompose(r Rect, t cp.Transform) (cp.Vector, float64) {
	axis := t.Vect(cp.Vector{X: 1, Y: 0})
	return t.Point(cp.Vector{X: r.X, Y: r.Y}), math.Atan2(axis.Y, axis.X)
}
