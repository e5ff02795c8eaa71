// Package scene wires the particle field and the pointer trail into two
// mountable layers.
//
// [Background] is the ambient particle layer and [Cursor] the trail layer.
// Each owns its entity state and its own surface, and each runs under its
// own scheduler, so they mount, draw and unmount independently. [Scene]
// mounts both on one host with the trail above the background.
package scene
