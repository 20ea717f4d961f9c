package softbody

import (
	"iter"

	"gonum.org/v1/gonum/spatial/r2"
)

// outlinePadding is the number of extra control points a 4-point spline
// window needs to close the loop.
const outlinePadding = 4

// Outline yields the border positions padded for a closed Catmull-Rom strip:
// the last border point first, then the whole border, then the first three
// border points again. A border of n points yields n+4 points. The sequence
// reads positions lazily and may be ranged over any number of times.
func (b *Body) Outline() iter.Seq[r2.Vec] {
	return func(yield func(r2.Vec) bool) {
		n := len(b.Border)
		if n == 0 {
			return
		}
		at := func(k int) r2.Vec {
			return b.Points[b.Border[((k%n)+n)%n]].Position
		}
		for k := -1; k < n+outlinePadding-1; k++ {
			if !yield(at(k)) {
				return
			}
		}
	}
}

func (b *Body) OutlinePoints() []r2.Vec {
	out := make([]r2.Vec, 0, len(b.Border)+outlinePadding)
	for p := range b.Outline() {
		out = append(out, p)
	}
	return out
}
