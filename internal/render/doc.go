// Package render draws the particle field and the pointer trail onto a
// [Surface]. Drawing is a read pass: nothing here mutates a field or an
// emitter.
//
// Three surfaces are provided:
//
//   - [Raster]: an RGBA pixel buffer with source-over blending
//   - [Canvas]: a braille terminal canvas with per-cell color
//   - export.SVG: a vector surface in the export package
//
// Frame order for the particle layer is clear, particles, links. The trail
// is a separate layer with its own surface and is composited on top.
package render
