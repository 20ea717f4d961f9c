package softbody

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// PointMass is a particle of the body. Initial is its rest position relative
// to the rest shape and never changes after construction.
type PointMass struct {
	Initial  r2.Vec
	Position r2.Vec
	Velocity r2.Vec
	Mass     float64
}

func NewPointMass(rest r2.Vec, mass float64) PointMass {
	return PointMass{
		Initial:  rest,
		Position: rest,
		Mass:     mass,
	}
}

// Constraint keeps two points of the same body near Distance apart.
type Constraint struct {
	Points   [2]int
	Distance float64
}

type Body struct {
	Points      []PointMass
	Constraints []Constraint
	// Border lists the point indices that form the outline, in order.
	Border []int
	Params Params

	observers []Observer
}

// NewBody validates the point and constraint arrays and returns a body that
// owns them. A nil border uses every point in index order. Invalid input is a
// programming error and panics.
func NewBody(points []PointMass, constraints []Constraint, border []int) *Body {
	if len(points) == 0 {
		panic("softbody: body needs at least one point")
	}
	for i, p := range points {
		if !(p.Mass > 0) {
			panic(fmt.Sprintf("softbody: point %d has non-positive mass %v", i, p.Mass))
		}
	}
	for _, c := range constraints {
		checkPair(len(points), c.Points[0], c.Points[1])
		if c.Distance < 0 || math.IsNaN(c.Distance) {
			panic(fmt.Sprintf("softbody: constraint %v has negative distance %v", c.Points, c.Distance))
		}
	}
	if border == nil {
		border = make([]int, len(points))
		for i := range border {
			border[i] = i
		}
	}
	for _, idx := range border {
		if idx < 0 || idx >= len(points) {
			panic(fmt.Sprintf("softbody: border index %d out of range [0,%d)", idx, len(points)))
		}
	}

	return &Body{
		Points:      points,
		Constraints: constraints,
		Border:      border,
		Params:      DefaultParams(),
	}
}

// RegularPolygon builds n points on a circle of the given radius, centered at
// the origin, with every point tied to its antipodal partner.
func RegularPolygon(n int, radius float64) *Body {
	if n <= 0 {
		panic(fmt.Sprintf("softbody: regular polygon needs a positive point count, got %d", n))
	}

	points := make([]PointMass, 0, n)
	constraints := make([]Constraint, 0, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n) * 2 * math.Pi
		pos := r2.Vec{X: math.Cos(t) * radius, Y: math.Sin(t) * radius}
		points = append(points, NewPointMass(pos, 1.0))

		j := (i + n/2) % n
		if j == i {
			continue
		}
		constraints = append(constraints, Constraint{
			Points:   [2]int{i, j},
			Distance: radius * 2,
		})
	}

	return NewBody(points, constraints, nil)
}

func checkPair(n, a, b int) {
	if a < 0 || a >= n || b < 0 || b >= n {
		panic(fmt.Sprintf("softbody: constraint pair (%d, %d) out of range [0,%d)", a, b, n))
	}
	if a == b {
		panic(fmt.Sprintf("softbody: constraint pair (%d, %d) connects a point to itself", a, b))
	}
}

func (b *Body) Len() int { return len(b.Points) }

// Translate moves the current shape; the rest shape is untouched.
func (b *Body) Translate(offset r2.Vec) {
	for i := range b.Points {
		b.Points[i].Position = r2.Add(b.Points[i].Position, offset)
	}
}

func (b *Body) Positions() []r2.Vec {
	out := make([]r2.Vec, len(b.Points))
	for i, p := range b.Points {
		out[i] = p.Position
	}
	return out
}

func (b *Body) Centroid() r2.Vec {
	var sum r2.Vec
	for _, p := range b.Points {
		sum = r2.Add(sum, p.Position)
	}
	return r2.Scale(1/float64(len(b.Points)), sum)
}

func (b *Body) RestCentroid() r2.Vec {
	var sum r2.Vec
	for _, p := range b.Points {
		sum = r2.Add(sum, p.Initial)
	}
	return r2.Scale(1/float64(len(b.Points)), sum)
}

// Clone returns a deep copy. Observers are not carried over.
func (b *Body) Clone() *Body {
	c := &Body{
		Points:      make([]PointMass, len(b.Points)),
		Constraints: make([]Constraint, len(b.Constraints)),
		Border:      make([]int, len(b.Border)),
		Params:      b.Params,
	}
	copy(c.Points, b.Points)
	copy(c.Constraints, b.Constraints)
	copy(c.Border, b.Border)
	return c
}

// KineticEnergy is the sum of ½mv² over all points.
func (b *Body) KineticEnergy() float64 {
	e := 0.0
	for _, p := range b.Points {
		e += 0.5 * p.Mass * r2.Norm2(p.Velocity)
	}
	return e
}

func (b *Body) Momentum() r2.Vec {
	var m r2.Vec
	for _, p := range b.Points {
		m = r2.Add(m, r2.Scale(p.Mass, p.Velocity))
	}
	return m
}
