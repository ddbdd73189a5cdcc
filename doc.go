// Package ravenscube models the interactive 3x3x3 cube widget from The
// Raven's Room: 27 cubies with grid positions and face colors, exact
// quarter-turn layer rotations, and an engine that sequences rotations with
// their animation, orbits the view and turns pointer gestures into clicks.
//
// # Features
//
//   - Cubie-level cube model with invariant checking
//   - Layer rotations as integer permutations of positions and face labels
//   - Idle/Animating state machine with cancellable deferred commits
//   - Drag-to-orbit and click-to-rotate gesture handling
//   - Randomized shuffle, queued or on a fixed interval
//   - Move notation for scripting and tests
//
// # Quick Start
//
// Drive a widget session from a host view:
//
//	e := ravenscube.NewEngine()
//	e.OnRotate(func(r ravenscube.Rotation) {
//	    animate(r.Cubies, r.Move.Axis, r.Move.Angle(), r.Duration)
//	})
//	e.OnSettle(func(ravenscube.Rotation) {
//	    draw(e.Snapshot())
//	})
//	e.Open()
//
//	// Forward pointer input
//	e.PointerDown(x, y, ravenscube.Front)
//	e.PointerUp() // a click: the front layer starts turning
//
// # Standalone Cube Model
//
// The Cube type can be used without an engine:
//
//	cube := ravenscube.NewCube()
//	cube.ApplyMoves(ravenscube.SexyMove)
//	cube.ApplyNotation("F B' M E2")
//
//	fmt.Println("Solved:", cube.IsSolved())
//	fmt.Print(cube)
//
// # Coordinates
//
// X grows to the right, Y grows downward and Z grows toward the viewer, so
// the top layer is Y == -1. Rotation directions are given as seen from the
// positive end of the axis.
package ravenscube
