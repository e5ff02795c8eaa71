// Package viz is the Bubble Tea host for the backdrop layers.
//
// The terminal is the window: mouse motion becomes pointer moves,
// window size messages become resizes and a tea.Tick at the configured
// frame rate drives the animation-frame queue. Each layer draws into its
// own braille [render.Canvas]; the view overlays the trail on the
// background.
//
// # Key Bindings
//
//	T - Toggle dark/light theme
//	A - Toggle autopilot pointer
//	G - Toggle GIF recording
//	S - Save an SVG snapshot
//	R - Respawn the field
//	P - Toggle stats panel
//	? - Show help overlay
//	Q - Quit
//
// # Recording
//
// GIF recordings and SVG snapshots are written to the paths given in
// [Options], by default in the current directory.
package viz
