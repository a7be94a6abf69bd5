// Package ristretto provides the default [group.Group] implementation,
// ristretto255 (RFC 9496), built on github.com/gtank/ristretto255.
//
// Ristretto255 is a prime-order group constructed on top of Curve25519.
// Its encoding is canonical and covers exactly the group elements, so a
// successful decode already establishes subgroup membership. Scalars and
// elements are both encoded in 32 bytes; scalars are little-endian.
//
// Scalar multiplication is constant-time, which makes this group the
// right choice for long-lived blinding keys.
package ristretto
