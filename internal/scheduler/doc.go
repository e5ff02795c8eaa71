// Package scheduler drives the per-frame update and draw cycle of a layer
// and ties it to the layer's mount lifecycle.
//
// A [Host] is the window a layer is mounted into: it owns the pointer, touch and
// resize event sources and the animation-frame callback. Hosts embed a
// [Dispatcher] for listener and frame bookkeeping; [ManualHost] is a host
// with no display, advanced explicitly by tests and headless renders.
//
// # Lifecycle
//
//	Unmounted --Start--> Running --Stop--> Stopped
//
// Stopped is terminal. Stop releases every listener and the pending frame
// together, so a stopped layer never draws again.
//
// # Thread Safety
//
// Nothing here is safe for concurrent use. Hosts funnel input events and
// frame callbacks into a single goroutine.
package scheduler
