// Package geom provides the 2D primitives shared by the particle field,
// the trail emitter and the render surfaces.
//
//   - [Vec2]: a point or velocity in surface pixels
//   - [Viewport]: the drawable area, sized to the host
//
// All values are plain data; nothing in this package allocates or holds state.
package geom
