// Package ed25519 implements [group.Group] over the prime-order subgroup
// of the edwards25519 curve using filippo.io/edwards25519.
//
// Unlike ristretto255, edwards25519 has cofactor 8 and its point decoder
// accepts a handful of non-canonical encodings. SetBytes therefore
// re-encodes every decoded point and compares it with the input, and
// checks that the point is torsion-free before accepting it.
package ed25519
