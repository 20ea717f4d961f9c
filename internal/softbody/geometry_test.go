package softbody

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func square() *Body {
	return NewBody([]PointMass{
		NewPointMass(r2.Vec{X: -1, Y: -1}, 1),
		NewPointMass(r2.Vec{X: 1, Y: -1}, 1),
		NewPointMass(r2.Vec{X: 1, Y: 1}, 1),
		NewPointMass(r2.Vec{X: -1, Y: 1}, 1),
	}, nil, nil)
}

func TestIsInsideHexagon(t *testing.T) {
	const r = 10.0
	b := RegularPolygon(6, r)

	tests := []struct {
		name string
		p    r2.Vec
		want bool
	}{
		{"center", r2.Vec{}, true},
		{"far right", r2.Vec{X: 2 * r}, false},
		{"far left", r2.Vec{X: -2 * r}, false},
		{"above", r2.Vec{Y: 2 * r}, false},
		{"near left vertex", r2.Vec{X: -0.9 * r}, true},
		{"upper half", r2.Vec{X: 2, Y: 6}, true},
		{"between top vertices", r2.Vec{Y: 0.9 * r}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.IsInside(tt.p); got != tt.want {
				t.Errorf("IsInside(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestIsInsideVertexIsDeterministic(t *testing.T) {
	b := RegularPolygon(6, 10)
	vertex := b.Points[0].Position

	first := b.IsInside(vertex)
	for i := 0; i < 10; i++ {
		if b.IsInside(vertex) != first {
			t.Fatal("vertex hit test changed between calls")
		}
	}
}

func TestIsInsideVerticalEdges(t *testing.T) {
	b := square()

	tests := []struct {
		p    r2.Vec
		want bool
	}{
		{r2.Vec{}, true},
		{r2.Vec{X: 0.99, Y: 0.5}, true},
		{r2.Vec{X: 1.5}, false},
		{r2.Vec{X: -1.5}, false},
		{r2.Vec{Y: 1.5}, false},
		{r2.Vec{X: -1.5, Y: 0.25}, false},
	}

	for _, tt := range tests {
		if got := b.IsInside(tt.p); got != tt.want {
			t.Errorf("IsInside(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestIsInsideUsesBorder(t *testing.T) {
	// square outline plus a stray point that is not part of the border
	pts := square().Points
	pts = append(pts, NewPointMass(r2.Vec{X: 5, Y: 0}, 1))
	b := NewBody(pts, nil, []int{0, 1, 2, 3})

	if !b.IsInside(r2.Vec{}) {
		t.Error("center should be inside the border square")
	}
	if b.IsInside(r2.Vec{X: 3}) {
		t.Error("point outside the border must not count the stray point")
	}
}

func TestIsInsideConcave(t *testing.T) {
	// U shape opening upward
	b := NewBody([]PointMass{
		NewPointMass(r2.Vec{X: 0, Y: 0}, 1),
		NewPointMass(r2.Vec{X: 3, Y: 0}, 1),
		NewPointMass(r2.Vec{X: 3, Y: 3}, 1),
		NewPointMass(r2.Vec{X: 2, Y: 3}, 1),
		NewPointMass(r2.Vec{X: 2, Y: 1}, 1),
		NewPointMass(r2.Vec{X: 1, Y: 1}, 1),
		NewPointMass(r2.Vec{X: 1, Y: 3}, 1),
		NewPointMass(r2.Vec{X: 0, Y: 3}, 1),
	}, nil, nil)

	if !b.IsInside(r2.Vec{X: 0.5, Y: 2}) {
		t.Error("left arm should be inside")
	}
	if b.IsInside(r2.Vec{X: 1.5, Y: 2}) {
		t.Error("notch should be outside")
	}
	if !b.IsInside(r2.Vec{X: 1.5, Y: 0.5}) {
		t.Error("base should be inside")
	}
}

func TestIsInsideDegenerateBorder(t *testing.T) {
	b := NewBody([]PointMass{
		NewPointMass(r2.Vec{X: -1}, 1),
		NewPointMass(r2.Vec{X: 1}, 1),
	}, nil, nil)

	if b.IsInside(r2.Vec{}) {
		t.Error("a two point border encloses nothing")
	}
}

func TestBounds(t *testing.T) {
	b := square()
	b.Translate(r2.Vec{X: 2})

	lo, hi := b.Bounds()
	if lo != (r2.Vec{X: 1, Y: -1}) || hi != (r2.Vec{X: 3, Y: 1}) {
		t.Errorf("bounds = %v %v", lo, hi)
	}
}
