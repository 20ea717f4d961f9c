package softbody

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestOutlinePadding(t *testing.T) {
	for _, n := range []int{3, 6, 16} {
		b := RegularPolygon(n, 10)
		out := b.OutlinePoints()

		if len(out) != n+4 {
			t.Fatalf("n=%d: outline has %d points, want %d", n, len(out), n+4)
		}
		for k := 0; k < 4; k++ {
			if out[n+k] != out[k] {
				t.Errorf("n=%d: out[%d] = %v, want out[%d] = %v", n, n+k, out[n+k], k, out[k])
			}
		}
		if out[0] != b.Points[n-1].Position {
			t.Errorf("n=%d: outline must start with the last border point", n)
		}
		for i := 0; i < n; i++ {
			if out[i+1] != b.Points[i].Position {
				t.Errorf("n=%d: out[%d] is not border point %d", n, i+1, i)
			}
		}
	}
}

func TestOutlineFollowsBorderOrder(t *testing.T) {
	pts := square().Points
	b := NewBody(pts, nil, []int{2, 0, 3})

	got := b.OutlinePoints()
	want := []r2.Vec{
		pts[3].Position,
		pts[2].Position, pts[0].Position, pts[3].Position,
		pts[2].Position, pts[0].Position, pts[3].Position,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d points, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("out[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestOutlineIsRestartableAndLive(t *testing.T) {
	b := RegularPolygon(5, 10)
	seq := b.Outline()

	count := 0
	for range seq {
		count++
	}
	again := 0
	for range seq {
		again++
	}
	if count != again || count != 9 {
		t.Errorf("first pass %d points, second pass %d, want 9", count, again)
	}

	b.Points[0].Position = r2.Vec{X: 42}
	for p := range seq {
		if p != b.Points[4].Position {
			t.Fatalf("first point should be the last border point")
		}
		break
	}
	found := false
	for p := range seq {
		if p == (r2.Vec{X: 42}) {
			found = true
		}
	}
	if !found {
		t.Error("outline did not pick up the moved point")
	}
}

func TestOutlineShortBorders(t *testing.T) {
	one := NewBody([]PointMass{NewPointMass(r2.Vec{X: 1}, 1)}, nil, nil)
	if got := one.OutlinePoints(); len(got) != 5 {
		t.Errorf("single point border: %d points, want 5", len(got))
	}

	empty := NewBody([]PointMass{NewPointMass(r2.Vec{}, 1)}, nil, []int{})
	if got := empty.OutlinePoints(); len(got) != 0 {
		t.Errorf("empty border: %d points, want 0", len(got))
	}
}
