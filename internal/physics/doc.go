// Package physics adapts the Chipmunk2D port (github.com/jakecoffman/cp/v2)
// to the small rigid-body contract the demo needs.
//
// Bodies live in a table owned by [World] and are referenced by [BodyID]:
//
//   - [World.AddPlane]: static half-space boundary
//   - [World.AddBox]: dynamic box with density, friction and restitution
//   - [World.Step]: one solver step, recorded for inspection
//
// Coordinates are screen space: x grows right, y grows down, so downward
// gravity has a positive Y component.
//
// # Handles
//
// A [BodyID] is an index into the body table. Passing an unknown index
// panics with [ErrUnknownBody]; there is no recovery path.
package physics
