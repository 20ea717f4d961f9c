// Package softbody implements a 2D deformable body built from point masses.
//
// A [Body] is a ring of [PointMass] values held together by three kinds of
// springs, each configured through [Params]:
//
//   - ring springs between every adjacent pair of points (implicit, never stored)
//   - auxiliary [Constraint] springs, e.g. the long diagonals of [RegularPolygon]
//   - a shape-matching spring pulling every point toward the best rigid fit of
//     the rest shape
//
// # Stepping
//
// One frame is a call to [Body.ApplyForce] for every external force followed
// by a single [Body.Step]:
//
//	body := softbody.RegularPolygon(16, 150)
//	body.ApplyForce(dt, r2.Vec{Y: -200})
//	body.Step(dt, r2.Vec{X: 640, Y: 360})
//
// The phases inside Step run in a fixed order (ring, constraints, shape
// matching, integration, clamping); reordering them changes the numbers.
//
// # Queries
//
// [Body.IsInside] and [Body.Outline] only read the current positions and can
// be called between steps.
//
// # Thread Safety
//
// A Body is NOT safe for concurrent use. Distinct bodies share nothing and may
// be stepped from different goroutines.
package softbody
