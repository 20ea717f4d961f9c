// Package viz provides the terminal front end for soft-body scenes.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [RunInteractive]: preset picker that opens the live view
//   - [Model]: live view of a scene with mouse drag
//   - [Canvas]: Braille-based pixel canvas
//   - [CatmullRom]: spline sampler used to draw smooth outlines
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to initial state
//	G     - Toggle gravity
//	D     - Toggle debug overlay (constraints, shape targets, centroid)
//	T     - Cycle color themes
//	V     - Toggle GIF recording
//	?     - Show help overlay
//
// Press the left mouse button over a body to grab it; it is pulled towards
// the cursor until the button is released.
package viz
