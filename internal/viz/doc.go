// Package viz plays a session in the terminal.
//
// The player is a Bubble Tea program that renders frames lazily in
// increasing index order and draws them with half-block cells, next to a
// histogram of the current frame and a sparkline of frame means.
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	[ ]   - Step back/forward
//	0     - Jump to the first frame
//	+ -   - Change the frame rate
//	O     - Toggle looping
//	G     - Save the rendered frames as a GIF
//	T     - Cycle themes
//	?     - Show help overlay
package viz
