package group

import (
	"io"
	"reflect"
)

// Scalar represents an element of the scalar field associated with a
// prime-order group. Scalars are integers modulo the group order and are
// used as blinding exponents.
//
// All arithmetic methods use a mutable receiver pattern: they modify
// the receiver, store the result in it, and return it. This allows for
// efficient method chaining while minimizing memory allocations.
//
// Implementations must ensure all operations produce results in the
// valid range [0, order).
type Scalar interface {
	// Add sets the receiver to a+b and returns it.
	Add(a, b Scalar) Scalar
	// Mul sets the receiver to a*b and returns it.
	Mul(a, b Scalar) Scalar
	// Negate sets the receiver to -a and returns it.
	Negate(a Scalar) Scalar
	// Invert sets the receiver to a^{-1} and returns it.
	// Returns an error if a is zero.
	Invert(a Scalar) (Scalar, error)
	// Set sets the receiver to a and returns it.
	Set(a Scalar) Scalar
	// Bytes returns the canonical fixed-size encoding of the scalar.
	Bytes() []byte
	// SetBytes sets the receiver from a canonical encoding and returns it.
	// Returns an error if the length is wrong or the value is not
	// reduced modulo the group order. Values are never silently reduced.
	SetBytes(data []byte) (Scalar, error)
	// Equal reports whether the receiver equals b.
	Equal(b Scalar) bool
	// IsZero reports whether the receiver is zero.
	IsZero() bool
}

// Element represents an element of a prime-order group, typically a point
// in the prime-order subgroup of an elliptic curve.
//
// Like [Scalar], all arithmetic methods use a mutable receiver pattern.
//
// The identity element is the additive identity: P + Identity = P for
// all elements P.
type Element interface {
	// Add sets the receiver to a+b and returns it.
	Add(a, b Element) Element
	// Negate sets the receiver to -a and returns it.
	Negate(a Element) Element
	// ScalarMult sets the receiver to s*e and returns it.
	// Implementations must not modify s or e, so that one scalar can be
	// shared read-only between goroutines.
	ScalarMult(s Scalar, e Element) Element
	// Set sets the receiver to a and returns it.
	Set(a Element) Element
	// Bytes returns the canonical fixed-size encoding of the element.
	Bytes() []byte
	// SetBytes sets the receiver from an encoding and returns it.
	// Returns an error if the data has the wrong length, is not a
	// canonical encoding, or does not lie in the prime-order subgroup.
	SetBytes(data []byte) (Element, error)
	// Equal reports whether the receiver equals b.
	Equal(b Element) bool
	// IsIdentity reports whether the receiver is the identity element.
	IsIdentity() bool
}

// Group defines a prime-order group usable for blinding and mixing
// tokens. It provides factory methods for scalars and elements, the
// group's generator, the fixed encoding sizes, and random scalar
// generation from an injected source.
//
// Example usage:
//
//	g := ristretto.New() // or any other Group implementation
//	k, _ := g.RandomScalar(rand.Reader)
//	e := g.NewElement().ScalarMult(k, g.Generator())
type Group interface {
	// Name returns a stable identifier for the group, e.g. "ristretto255".
	Name() string
	// NewScalar returns a new zero scalar.
	NewScalar() Scalar
	// NewElement returns a new identity element.
	NewElement() Element
	// Generator returns the group's base point.
	Generator() Element
	// RandomScalar returns a uniformly random non-zero scalar read from r.
	// Implementations draw wide (at least 64 bytes) before reducing so
	// the result carries no modulo bias.
	RandomScalar(r io.Reader) (Scalar, error)
	// ScalarSize returns the length in bytes of an encoded scalar.
	ScalarSize() int
	// ElementSize returns the length in bytes of an encoded element.
	ElementSize() int
}

// Same reports whether a and b are the same group, compared by name.
func Same(a, b Group) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Name() == b.Name()
}

// OwnsScalar reports whether s is a scalar of g. Groups differ in byte
// order and modulus, so a foreign scalar must not be re-read through
// SetBytes.
func OwnsScalar(g Group, s Scalar) bool {
	if g == nil || s == nil {
		return false
	}
	return reflect.TypeOf(g.NewScalar()) == reflect.TypeOf(s)
}
