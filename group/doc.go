// Package group defines abstract interfaces for the prime-order groups
// used to blind and mix tokens.
//
// This package provides three core interfaces that abstract over the
// operations the mixing engine needs from a group library:
//
//   - [Scalar]: Elements of the scalar field (integers modulo the group order)
//   - [Element]: Elements of the group (points in a prime-order subgroup)
//   - [Group]: Factory and utility methods for creating scalars and elements
//
// # Design Philosophy
//
// The interfaces use a mutable receiver pattern for efficiency. Operations
// like Mul and ScalarMult set the receiver to the result and return it,
// allowing method chaining while minimizing allocations:
//
//	// Compute e * (a * b)
//	k := g.NewScalar().Mul(a, b)
//	out := g.NewElement().ScalarMult(k, e)
//
// All operations that can fail return errors rather than panicking, making
// error handling explicit and predictable.
//
// # Implementing a Group
//
// To implement these interfaces for a new group:
//
//  1. Create a Scalar type that wraps your field element and implements [Scalar]
//  2. Create an Element type that wraps your group element and implements [Element]
//  3. Create a Group type that implements [Group] as a factory
//
// See the ristretto package for the default implementation, and the
// ed25519 and bjj packages for curves with a cofactor.
//
// # Security Considerations
//
// Implementations must ensure:
//
//   - Scalar arithmetic is performed modulo the group order
//   - Scalar multiplication is constant-time where the library allows it
//   - Random scalars are generated without modulo bias
//   - SetBytes rejects non-canonical encodings and elements outside the
//     prime-order subgroup instead of coercing them
package group
