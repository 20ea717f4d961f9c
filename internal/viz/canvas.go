package viz

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
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

// PixelSize is the canvas size in sub-pixels.
func (c *Canvas) PixelSize() (int, int) { return c.Width * 2, c.Height * 4 }

// Set sets a pixel at (x, y) in sub-pixel coordinates.
func (c *Canvas) Set(x, y int) {
	col, row, bit, ok := c.locate(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] |= bit
}

func (c *Canvas) Unset(x, y int) {
	col, row, bit, ok := c.locate(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] &^= bit
	if c.Grid[row][col] < brailleBlank {
		c.Grid[row][col] = brailleBlank
	}
}

// IsSet reports whether the pixel at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	col, row, bit, ok := c.locate(x, y)
	return ok && c.Grid[row][col]&bit != 0
}

func (c *Canvas) locate(x, y int) (col, row int, bit rune, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, 0, false
	}
	return col, row, rune(pixelMap[y%4][x%2]), true
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawPolyline joins consecutive world points through the viewport.
func (c *Canvas) DrawPolyline(v Viewport, pts []r2.Vec) {
	if len(pts) == 1 {
		x, y := v.ToPixel(pts[0])
		c.Set(x, y)
		return
	}
	for i := 1; i < len(pts); i++ {
		if !finite(pts[i-1]) || !finite(pts[i]) {
			continue
		}
		x0, y0 := v.ToPixel(pts[i-1])
		x1, y1 := v.ToPixel(pts[i])
		c.DrawLine(x0, y0, x1, y1)
	}
}

// DrawCross draws a small plus sign centered on a world point.
func (c *Canvas) DrawCross(v Viewport, p r2.Vec, size int) {
	x, y := v.ToPixel(p)
	c.DrawLine(x-size, y, x+size, y)
	c.DrawLine(x, y-size, x, y+size)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Viewport maps world coordinates, origin at the center and y up, onto
// canvas sub-pixels with a uniform scale that fits HalfExtent.
type Viewport struct {
	HalfExtent r2.Vec
	W, H       int
	scale      float64
}

func NewViewport(c *Canvas, halfExtent r2.Vec) Viewport {
	w, h := c.PixelSize()
	s := math.Min(float64(w-1)/(2*halfExtent.X), float64(h-1)/(2*halfExtent.Y))
	return Viewport{HalfExtent: halfExtent, W: w, H: h, scale: s}
}

func (v Viewport) Scale() float64 { return v.scale }

func (v Viewport) ToPixel(p r2.Vec) (int, int) {
	cx, cy := v.center()
	x := cx + p.X*v.scale
	y := cy - p.Y*v.scale
	return int(math.Round(x)), int(math.Round(y))
}

func (v Viewport) ToWorld(x, y float64) r2.Vec {
	cx, cy := v.center()
	return r2.Vec{
		X: (x - cx) / v.scale,
		Y: (cy - y) / v.scale,
	}
}

func (v Viewport) center() (float64, float64) {
	return float64(v.W-1) / 2, float64(v.H-1) / 2
}

func finite(p r2.Vec) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
