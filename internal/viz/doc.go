// Package viz hosts the intro in a terminal.
//
// The host is a Bubble Tea program that paints the animation on a braille
// [render.BrailleSurface], shows the title, and reveals an ENTER
// affordance once the skip delay has passed.
//
// # Key Bindings
//
//	Enter/Space - Dismiss the intro (after the delay)
//	S           - Toggle the stats panel
//	T           - Cycle color themes
//	Q/Ctrl+C    - Quit without dismissing
package viz
