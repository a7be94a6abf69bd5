// Package bjj provides a Baby Jubjub elliptic curve implementation of the
// [group.Group] interface for blinding and mixing tokens.
//
// Baby Jubjub is a twisted Edwards curve defined over the scalar field of
// BN254 (also known as alt_bn128). It is commonly used in zero-knowledge
// proof systems, which makes it a natural choice when mixed tokens are
// later consumed inside a circuit.
//
// This package wraps the Baby Jubjub implementation from gnark-crypto,
// providing a clean interface that satisfies [group.Group], [group.Scalar],
// and [group.Element].
//
// # Curve Parameters
//
// Baby Jubjub is defined by the equation:
//
//	a*x^2 + y^2 = 1 + d*x^2*y^2
//
// where a = 168700 and d = 168696 over the BN254 scalar field.
//
// The curve has cofactor 8 and a prime-order subgroup of size:
//
//	2736030358979909402780800718157159386076813972158567259200215660948447373041
//
// Decoding multiplies every point by the subgroup order and rejects those
// that do not land on the identity, so small-order components never enter
// a batch.
//
// # Security
//
// This implementation relies on gnark-crypto for the underlying curve
// arithmetic, whose scalar multiplication is not constant-time. Use the
// ristretto group for deployments where the blinding key is exposed to
// timing measurements.
package bjj
