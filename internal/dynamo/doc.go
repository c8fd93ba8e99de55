// Package dynamo provides the numeric primitives shared by the carving-trail
// simulation.
//
// The package defines:
//
//   - [Vec2]: 2D vector in logical pixels (positions) or pixels/second (velocities)
//   - [Source]: random source port used by waypoint selection
//   - sentinel errors reported by configuration and the frame driver
//
// # Zero-length vectors
//
// [Vec2.Unit] divides by 1 instead of 0 when the vector has zero length, so
// the result is the zero vector rather than NaN. Every direction in the
// simulation goes through Unit; a NaN head position would never recover.
package dynamo
