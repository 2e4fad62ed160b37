package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/jakecoffman/cp/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/cubedrop/internal/scene"
)

// SVG records one rendered frame as an SVG document. It implements
// scene.Canvas, so a scene renders into it the same way it renders into a
// window.
type SVG struct {
	Width, Height int
	background    string
	body          strings.Builder
	rects         int
}

func NewSVG(width, height int) *SVG {
	return &SVG{Width: width, Height: height, background: "#ffffff"}
}

// Clear drops everything drawn so far.
func (s *SVG) Clear(c colorful.Color) {
	s.background = c.Clamped().Hex()
	s.body.Reset()
	s.rects = 0
}

func (s *SVG) FillRect(c colorful.Color, r scene.Rect, t cp.Transform) {
	x := t.Vect(cp.Vector{X: 1})
	y := t.Vect(cp.Vector{Y: 1})
	o := t.Point(cp.Vector{})
	fmt.Fprintf(&s.body, `<rect x="%.3f" y="%.3f" width="%.3f" height="%.3f" fill="%s" transform="matrix(%.6f %.6f %.6f %.6f %.3f %.3f)"/>
`, r.X, r.Y, r.W, r.H, c.Clamped().Hex(), x.X, x.Y, y.X, y.Y, o.X, o.Y)
	s.rects++
}

// Path overlays a polyline through points, e.g. the drag target's trail.
func (s *SVG) Path(points []cp.Vector, stroke string) {
	if len(points) < 2 {
		return
	}
	s.body.WriteString(`<path fill="none" stroke="` + stroke + `" stroke-width="1.5" d="M`)
	for i, p := range points {
		if i == 0 {
			fmt.Fprintf(&s.body, "%.1f,%.1f", p.X, p.Y)
		} else {
			fmt.Fprintf(&s.body, " L%.1f,%.1f", p.X, p.Y)
		}
	}
	s.body.WriteString("\"/>\n")
}

// Begin and End let an SVG stand in as the frame of a headless loop.
func (s *SVG) Begin() scene.Canvas { return s }
func (s *SVG) End()                {}

// Rects is the number of rectangles drawn since the last Clear.
func (s *SVG) Rects() int { return s.rects }

func (s *SVG) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.Width, s.Height, s.Width, s.Height, s.background)
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

func (s *SVG) WriteFile(path string) error {
	return os.WriteFile(path, []byte(s.String()), 0644)
}
