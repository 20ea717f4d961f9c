package softbody_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/squish/internal/softbody"
)

var _ = Describe("Body", func() {
	var (
		body   *softbody.Body
		bounds = r2.Vec{X: 1e6, Y: 1e6}
	)

	BeforeEach(func() {
		body = softbody.RegularPolygon(16, 150)
	})

	Describe("rest shape", func() {
		It("is unchanged by a zero-length step", func() {
			before := body.Positions()
			body.Step(0, bounds)
			Expect(body.Positions()).To(Equal(before))
		})

		It("fits the identity transform", func() {
			tr := body.Fit()
			Expect(tr.Angle).To(BeNumerically("~", 0, 1e-12))
			Expect(body.Residual(tr)).To(BeNumerically("<", 1e-9))
		})
	})

	Describe("shape matching", func() {
		It("keeps a rigidly rotated body rigid", func() {
			for i := range body.Points {
				p := &body.Points[i]
				p.Position = r2.Rotate(p.Initial, 0.25, r2.Vec{})
			}

			for i := 0; i < 200; i++ {
				body.Step(0.01, bounds)
			}

			tr := body.Fit()
			Expect(tr.Angle).To(BeNumerically("~", 0.25, 1e-6))
			Expect(body.Residual(tr)).To(BeNumerically("<", 1e-6))
		})

		It("recovers from a deformation", func() {
			body.Points[0].Position = r2.Scale(1.3, body.Points[0].Position)
			body.Points[5].Position = r2.Scale(0.8, body.Points[5].Position)
			for i := range body.Points {
				p := &body.Points[i]
				p.Position = r2.Rotate(p.Position, 0.2, r2.Vec{})
			}

			initial := body.Residual(body.Fit())
			Expect(initial).To(BeNumerically(">", 1))

			const windows, perWindow = 5, 300
			peaks := make([]float64, windows)
			for w := 0; w < windows; w++ {
				for i := 0; i < perWindow; i++ {
					body.Step(0.01, bounds)
					peaks[w] = math.Max(peaks[w], body.Residual(body.Fit()))
				}
			}

			for w := 1; w < windows; w++ {
				Expect(peaks[w]).To(BeNumerically("<", peaks[w-1]), "window %d", w)
			}
			Expect(body.Residual(body.Fit())).To(BeNumerically("<", 0.05*initial))
		})
	})

	Describe("bounds", func() {
		It("pins a point on the wall with no velocity along that axis", func() {
			point := softbody.NewBody([]softbody.PointMass{softbody.NewPointMass(r2.Vec{}, 1)}, nil, nil)
			point.Points[0].Position = r2.Vec{Y: -75}
			limit := r2.Vec{X: 40, Y: 60}

			point.Step(0.02, limit)
			Expect(point.Points[0].Position).To(Equal(r2.Vec{Y: -60}))
			Expect(point.Points[0].Velocity.Y).To(BeZero())

			pinned := point.Points[0]
			point.Step(0.02, limit)
			Expect(point.Points[0]).To(Equal(pinned))
		})

		It("keeps a falling body inside the box", func() {
			limit := r2.Vec{X: 400, Y: 300}
			for i := 0; i < 500; i++ {
				body.ApplyForce(0.02, r2.Vec{Y: -200})
				body.Step(0.02, limit)
			}

			lo, hi := body.Bounds()
			Expect(lo.Y).To(BeNumerically(">=", -limit.Y))
			Expect(hi.Y).To(BeNumerically("<=", limit.Y))
			Expect(lo.X).To(BeNumerically(">=", -limit.X))
			Expect(hi.X).To(BeNumerically("<=", limit.X))
			Expect(lo.Y).To(Equal(-limit.Y))
		})
	})

	Describe("hit testing", func() {
		It("follows the body as it moves", func() {
			body.Translate(r2.Vec{X: 500})
			Expect(body.IsInside(r2.Vec{X: 500})).To(BeTrue())
			Expect(body.IsInside(r2.Vec{})).To(BeFalse())
		})
	})

	Describe("spring", func() {
		It("conserves momentum between two equal masses", func() {
			a := softbody.PointMass{Position: r2.Vec{X: 1}, Velocity: r2.Vec{Y: 2}, Mass: 1}
			b := softbody.PointMass{Position: r2.Vec{X: 5, Y: 3}, Mass: 1}
			before := r2.Add(a.Velocity, b.Velocity)

			softbody.DefaultSpring.WithDamping(0).WithDistance(2).Apply(&a, &b, 0.1)

			after := r2.Add(a.Velocity, b.Velocity)
			Expect(after.X).To(BeNumerically("~", before.X, 1e-12))
			Expect(after.Y).To(BeNumerically("~", before.Y, 1e-12))
		})
	})
})
