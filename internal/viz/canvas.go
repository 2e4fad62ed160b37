package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jakecoffman/cp/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/cubedrop/internal/scene"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Raster draws scene rectangles onto a braille canvas. World coordinates
// (worldW x worldH) are stretched over the canvas sub-pixels; each cell keeps
// the color of the last rectangle that touched it.
type Raster struct {
	canvas         *Canvas
	worldW, worldH float64
	background     colorful.Color
	colors         [][]colorful.Color
	touched        [][]bool
}

func NewRaster(cols, rows int, worldW, worldH float64) *Raster {
	r := &Raster{
		canvas:  NewCanvas(cols, rows),
		worldW:  worldW,
		worldH:  worldH,
		colors:  make([][]colorful.Color, rows),
		touched: make([][]bool, rows),
	}
	for i := range r.colors {
		r.colors[i] = make([]colorful.Color, cols)
		r.touched[i] = make([]bool, cols)
	}
	return r
}

func (r *Raster) Canvas() *Canvas { return r.canvas }

func (r *Raster) Clear(c colorful.Color) {
	r.canvas.Clear()
	r.background = c
	for i := range r.touched {
		for j := range r.touched[i] {
			r.touched[i][j] = false
		}
	}
}

func (r *Raster) FillRect(c colorful.Color, rect scene.Rect, t cp.Transform) {
	quad := scene.Corners(rect, t)
	sx, sy := r.subPixelSize()

	minX, minY, maxX, maxY := quad[0].X, quad[0].Y, quad[0].X, quad[0].Y
	for _, p := range quad[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	x0, x1 := max(0, int(minX/sx)), min(r.canvas.Width*2-1, int(maxX/sx))
	y0, y1 := max(0, int(minY/sy)), min(r.canvas.Height*4-1, int(maxY/sy))
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			p := cp.Vector{X: (float64(px) + 0.5) * sx, Y: (float64(py) + 0.5) * sy}
			if !insideQuad(quad, p) {
				continue
			}
			r.canvas.Set(px, py)
			r.colors[py/4][px/2] = c
			r.touched[py/4][px/2] = true
		}
	}
}

// ToWorld maps a terminal cell to the world point at its centre.
func (r *Raster) ToWorld(col, row int) cp.Vector {
	sx, sy := r.subPixelSize()
	return cp.Vector{X: (float64(col)*2 + 1) * sx, Y: (float64(row)*4 + 2) * sy}
}

// String renders the canvas with each cell in its fill color.
func (r *Raster) String() string {
	bg := lipgloss.Color(r.background.Hex())
	var b strings.Builder
	for i, row := range r.canvas.Grid {
		for j, ch := range row {
			style := lipgloss.NewStyle().Background(bg)
			if r.touched[i][j] {
				style = style.Foreground(lipgloss.Color(r.colors[i][j].Hex()))
			}
			b.WriteString(style.Render(string(ch)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (r *Raster) subPixelSize() (float64, float64) {
	return r.worldW / float64(r.canvas.Width*2), r.worldH / float64(r.canvas.Height*4)
}

// insideQuad reports whether p lies in the convex quad, either winding.
func insideQuad(q [4]cp.Vector, p cp.Vector) bool {
	var pos, neg bool
	for i := range q {
		a, b := q[i], q[(i+1)%4]
		cross := b.Sub(a).Cross(p.Sub(a))
		if cross > 0 {
			pos = true
		} else if cross < 0 {
			neg = true
		}
	}
	return !(pos && neg)
}
