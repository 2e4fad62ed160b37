package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/jakecoffman/cp/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/cubedrop/internal/scene"
)

// frame brackets one raylib draw pass.
type frame struct{}

func (frame) Begin() scene.Canvas {
	rl.BeginDrawing()
	return canvas{}
}

func (frame) End() { rl.EndDrawing() }

// canvas draws scene rectangles with raylib.
type canvas struct{}

func (canvas) Clear(c colorful.Color) {
	rl.ClearBackground(toRL(c))
}

// FillRect rotates about the rectangle's top-left corner, which is where
// raylib places the origin when it is (0, 0).
func (canvas) FillRect(c colorful.Color, r scene.Rect, t cp.Transform) {
	pos, angle := scene.Decompose(r, t)
	rec := rl.NewRectangle(float32(pos.X), float32(pos.Y), float32(r.W), float32(r.H))
	rl.DrawRectanglePro(rec, rl.Vector2{}, float32(angle*180/math.Pi), toRL(c))
}

func toRL(c colorful.Color) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.NewColor(r, g, b, 255)
}
