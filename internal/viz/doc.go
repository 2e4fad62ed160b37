// Package viz runs the falling-cube scene in a terminal.
//
// The playfield is drawn on a braille [Canvas] through [Raster], which
// implements scene.Canvas, so the terminal and the window share one render
// path. [Model] is a Bubble Tea program that feeds ticks and mouse motion
// into the same sim.Loop the window uses.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset the scene
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q/Esc - Quit
package viz
