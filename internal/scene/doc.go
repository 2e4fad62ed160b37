// Package scene lays out the falling-cube demo and turns its physics state
// into fill-rectangle calls on a [Canvas].
//
// A [Scene] holds the world, the boundary planes, and the [Cube] views. One
// cube is the drag target: [Scene.Drag] moves it onto the cursor before each
// physics step.
package scene
