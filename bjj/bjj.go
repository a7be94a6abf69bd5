package bjj

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
	"github.com/f3rmion/tokenmix/group"
)

const (
	// scalarSize is the length of a big-endian encoded scalar.
	scalarSize = 32
	// elementSize is the length of a compressed point encoding.
	elementSize = 32
	// wideSize is the number of random bytes reduced into one scalar.
	wideSize = 64
)

// curveOrder is the Baby Jubjub subgroup order.
// This is distinct from the BN254 scalar field order (Fr).
var curveOrder *big.Int

func init() {
	curve := twistededwards.GetEdwardsCurve()
	curveOrder = new(big.Int).Set(&curve.Order)
}

var (
	errScalarEncoding  = errors.New("bjj: non-canonical scalar encoding")
	errElementEncoding = errors.New("bjj: non-canonical point encoding")
	errSubgroup        = errors.New("bjj: point is not in the prime-order subgroup")
)

// Scalar represents an element of the Baby Jubjub scalar field.
// It implements [group.Scalar] using big.Int with modular arithmetic
// over the curve's subgroup order.
//
// All arithmetic operations automatically reduce results modulo the
// curve order to maintain valid scalar values.
type Scalar struct {
	inner *big.Int
}

// newScalar creates a new scalar initialized to zero.
func newScalar() *Scalar {
	return &Scalar{inner: new(big.Int)}
}

// reduce ensures the scalar is in the range [0, curveOrder).
func (s *Scalar) reduce() {
	s.inner.Mod(s.inner, curveOrder)
}

// Add sets s to a + b (mod curveOrder) and returns s.
func (s *Scalar) Add(a, b group.Scalar) group.Scalar {
	aScalar := a.(*Scalar)
	bScalar := b.(*Scalar)
	s.inner.Add(aScalar.inner, bScalar.inner)
	s.reduce()
	return s
}

// Mul sets s to a * b (mod curveOrder) and returns s.
func (s *Scalar) Mul(a, b group.Scalar) group.Scalar {
	aScalar := a.(*Scalar)
	bScalar := b.(*Scalar)
	s.inner.Mul(aScalar.inner, bScalar.inner)
	s.reduce()
	return s
}

// Negate sets s to -a (mod curveOrder) and returns s.
func (s *Scalar) Negate(a group.Scalar) group.Scalar {
	aScalar := a.(*Scalar)
	s.inner.Neg(aScalar.inner)
	s.reduce()
	return s
}

// Invert sets s to a^(-1) (mod curveOrder) and returns s.
// Returns an error if a is zero, as zero has no multiplicative inverse.
func (s *Scalar) Invert(a group.Scalar) (group.Scalar, error) {
	aScalar := a.(*Scalar)
	if aScalar.IsZero() {
		return nil, errors.New("cannot invert zero scalar")
	}
	s.inner.ModInverse(aScalar.inner, curveOrder)
	return s, nil
}

// Set copies the value of a into s and returns s. The previous words of
// s are overwritten first, so setting zero wipes a secret scalar.
func (s *Scalar) Set(a group.Scalar) group.Scalar {
	aScalar := a.(*Scalar)
	if aScalar == s {
		return s
	}
	words := s.inner.Bits()
	clear(words[:cap(words)])
	s.inner.Set(aScalar.inner)
	return s
}

// Bytes returns the scalar as a 32-byte big-endian representation.
func (s *Scalar) Bytes() []byte {
	out := make([]byte, scalarSize)
	s.inner.FillBytes(out)
	return out
}

// SetBytes sets s from a 32-byte big-endian encoding and returns s.
// Values at or above the curve order are rejected, not reduced.
func (s *Scalar) SetBytes(data []byte) (group.Scalar, error) {
	if len(data) != scalarSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", errScalarEncoding, len(data), scalarSize)
	}
	v := new(big.Int).SetBytes(data)
	if v.Cmp(curveOrder) >= 0 {
		return nil, errScalarEncoding
	}
	s.inner.Set(v)
	return s, nil
}

// Equal reports whether s and b represent the same scalar value.
func (s *Scalar) Equal(b group.Scalar) bool {
	bScalar := b.(*Scalar)
	return s.inner.Cmp(bScalar.inner) == 0
}

// IsZero reports whether s is the zero scalar.
func (s *Scalar) IsZero() bool {
	return s.inner.Sign() == 0
}

// Element represents a point in the prime-order subgroup of Baby Jubjub.
// It implements [group.Element] by wrapping gnark-crypto's PointAffine.
//
// Points are represented in affine coordinates (x, y) on the twisted
// Edwards curve. The identity element is (0, 1).
type Element struct {
	inner twistededwards.PointAffine
}

// Add sets e to a + b and returns e.
func (e *Element) Add(a, b group.Element) group.Element {
	aPoint := a.(*Element)
	bPoint := b.(*Element)
	e.inner.Add(&aPoint.inner, &bPoint.inner)
	return e
}

// Negate sets e to -a and returns e.
func (e *Element) Negate(a group.Element) group.Element {
	aPoint := a.(*Element)
	e.inner.Neg(&aPoint.inner)
	return e
}

// ScalarMult sets e to s * q and returns e.
//
// gnark-crypto's twisted Edwards multiplication is not constant-time;
// prefer the ristretto group where timing matters.
func (e *Element) ScalarMult(s group.Scalar, q group.Element) group.Element {
	scalar := s.(*Scalar)
	qPoint := q.(*Element)
	e.inner.ScalarMultiplication(&qPoint.inner, scalar.inner)
	return e
}

// Set copies the value of a into e and returns e.
func (e *Element) Set(a group.Element) group.Element {
	aPoint := a.(*Element)
	e.inner.Set(&aPoint.inner)
	return e
}

// Bytes returns the compressed point encoding as a byte slice.
func (e *Element) Bytes() []byte {
	b := e.inner.Bytes()
	return b[:]
}

// SetBytes sets e from a compressed point encoding and returns e.
// The encoding must round-trip exactly and the point must lie in the
// prime-order subgroup; the receiver is left unchanged on error.
func (e *Element) SetBytes(data []byte) (group.Element, error) {
	if len(data) != elementSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", errElementEncoding, len(data), elementSize)
	}
	var p twistededwards.PointAffine
	if err := p.Unmarshal(data); err != nil {
		return nil, fmt.Errorf("%w: %w", errElementEncoding, err)
	}
	if !p.IsOnCurve() {
		return nil, errElementEncoding
	}
	canonical := p.Bytes()
	if !bytes.Equal(canonical[:], data) {
		return nil, errElementEncoding
	}
	var t twistededwards.PointAffine
	t.ScalarMultiplication(&p, curveOrder)
	if !t.IsZero() {
		return nil, errSubgroup
	}
	e.inner.Set(&p)
	return e, nil
}

// Equal reports whether e and b represent the same curve point.
func (e *Element) Equal(b group.Element) bool {
	bPoint := b.(*Element)
	return e.inner.Equal(&bPoint.inner)
}

// IsIdentity reports whether e is the identity element (0, 1).
func (e *Element) IsIdentity() bool {
	return e.inner.IsZero()
}

// BJJ implements [group.Group] for the Baby Jubjub curve.
//
// BJJ is a zero-sized type that provides access to Baby Jubjub curve
// operations. Create an instance with &BJJ{} or new(BJJ).
type BJJ struct{}

// Name returns "babyjubjub".
func (g *BJJ) Name() string {
	return "babyjubjub"
}

// NewScalar returns a new scalar initialized to zero.
func (g *BJJ) NewScalar() group.Scalar {
	return newScalar()
}

// NewElement returns a new point initialized to the identity element (0, 1).
func (g *BJJ) NewElement() group.Element {
	var p Element
	p.inner.X.SetZero()
	p.inner.Y.SetOne()
	return &p
}

// Generator returns the standard base point for the Baby Jubjub curve.
func (g *BJJ) Generator() group.Element {
	var p Element
	p.inner = twistededwards.GetEdwardsCurve().Base
	return &p
}

// RandomScalar generates a random non-zero scalar using the provided
// random source. 64 bytes are reduced modulo the ~251-bit order, so the
// result is statistically indistinguishable from uniform.
func (g *BJJ) RandomScalar(r io.Reader) (group.Scalar, error) {
	var buf [wideSize]byte
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, err
		}
		s := newScalar()
		s.inner.SetBytes(buf[:])
		s.reduce()
		if !s.IsZero() {
			return s, nil
		}
	}
}

// ScalarSize returns 32.
func (g *BJJ) ScalarSize() int {
	return scalarSize
}

// ElementSize returns 32.
func (g *BJJ) ElementSize() int {
	return elementSize
}
