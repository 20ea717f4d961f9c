package softbody

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// IsInside reports whether p lies inside the polygon traced by the border.
//
// A ray is cast from p toward +X and the border edges it crosses are counted;
// an odd count means inside. Each edge covers the half-open span between its
// endpoint heights, so a ray through a vertex is counted once and horizontal
// edges are never counted. Points exactly on the outline may go either way,
// but the answer for a given shape is always the same.
func (b *Body) IsInside(p r2.Vec) bool {
	n := len(b.Border)
	if n < 3 {
		return false
	}

	crossings := 0
	for i := 0; i < n; i++ {
		a := b.Points[b.Border[i]].Position
		c := b.Points[b.Border[(i+1)%n]].Position
		if (a.Y > p.Y) == (c.Y > p.Y) {
			continue
		}

		var x float64
		if a.X == c.X {
			x = a.X
		} else {
			slope := (c.Y - a.Y) / (c.X - a.X)
			x = a.X + (p.Y-a.Y)/slope
		}
		if x >= p.X {
			crossings++
		}
	}
	return crossings%2 == 1
}

// Bounds returns the axis-aligned box around the border points.
func (b *Body) Bounds() (lo, hi r2.Vec) {
	if len(b.Border) == 0 {
		return r2.Vec{}, r2.Vec{}
	}
	lo = r2.Vec{X: math.Inf(1), Y: math.Inf(1)}
	hi = r2.Vec{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, idx := range b.Border {
		p := b.Points[idx].Position
		lo.X, lo.Y = math.Min(lo.X, p.X), math.Min(lo.Y, p.Y)
		hi.X, hi.Y = math.Max(hi.X, p.X), math.Max(hi.Y, p.Y)
	}
	return lo, hi
}
