// Package field implements the ambient particle field: a fixed set of
// drifting points that are weakly attracted to the pointer and spring back
// toward the position they were spawned at.
//
// Particles are plain records. [UpdateParticle] is a pure function over one
// record and [Field.Step] applies it to the whole collection, so tests can
// drive the physics without any host or surface.
//
// # Boundary rule
//
// Crossing a viewport edge inverts the matching velocity component. The
// position is not clamped, so a particle may sit slightly outside the
// viewport for a frame before the reflected velocity brings it back.
package field
