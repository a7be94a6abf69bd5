package ristretto

import (
	"errors"
	"fmt"
	"io"

	"github.com/f3rmion/tokenmix/group"
	"github.com/gtank/ristretto255"
)

const (
	// encodingSize is the length of both scalar and element encodings.
	encodingSize = 32
	// wideSize is the input length of the uniform-bytes reductions.
	wideSize = 64
)

var (
	errScalarEncoding  = errors.New("ristretto255: non-canonical scalar encoding")
	errElementEncoding = errors.New("ristretto255: non-canonical element encoding")
)

// Scalar is an integer modulo the ristretto255 group order
// 2^252 + 27742317777372353535851937790883648493.
type Scalar struct {
	inner ristretto255.Scalar
}

// Add sets s to a + b and returns s.
func (s *Scalar) Add(a, b group.Scalar) group.Scalar {
	s.inner.Add(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Mul sets s to a * b and returns s.
func (s *Scalar) Mul(a, b group.Scalar) group.Scalar {
	s.inner.Multiply(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Negate sets s to -a and returns s.
func (s *Scalar) Negate(a group.Scalar) group.Scalar {
	s.inner.Negate(&a.(*Scalar).inner)
	return s
}

// Invert sets s to a^(-1) and returns s.
func (s *Scalar) Invert(a group.Scalar) (group.Scalar, error) {
	aScalar := a.(*Scalar)
	if aScalar.IsZero() {
		return nil, errors.New("cannot invert zero scalar")
	}
	s.inner.Invert(&aScalar.inner)
	return s, nil
}

// Set copies a into s and returns s.
func (s *Scalar) Set(a group.Scalar) group.Scalar {
	s.inner = a.(*Scalar).inner
	return s
}

// Bytes returns the 32-byte little-endian encoding of s.
func (s *Scalar) Bytes() []byte {
	return s.inner.Encode(make([]byte, 0, encodingSize))
}

// SetBytes decodes a canonical 32-byte little-endian scalar.
func (s *Scalar) SetBytes(data []byte) (group.Scalar, error) {
	if len(data) != encodingSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", errScalarEncoding, len(data), encodingSize)
	}
	var v ristretto255.Scalar
	if err := v.Decode(data); err != nil {
		return nil, fmt.Errorf("%w: %w", errScalarEncoding, err)
	}
	s.inner = v
	return s, nil
}

// Equal reports whether s and b are the same scalar, in constant time.
func (s *Scalar) Equal(b group.Scalar) bool {
	return s.inner.Equal(&b.(*Scalar).inner) == 1
}

// IsZero reports whether s is zero.
func (s *Scalar) IsZero() bool {
	var zero ristretto255.Scalar
	zero.Zero()
	return s.inner.Equal(&zero) == 1
}

// Element is a ristretto255 group element. Every 32-byte canonical
// encoding denotes an element of the prime-order group, so there is no
// cofactor to clear.
type Element struct {
	inner ristretto255.Element
}

func newElement() *Element {
	e := &Element{}
	e.inner.Zero()
	return e
}

// Add sets e to a + b and returns e.
func (e *Element) Add(a, b group.Element) group.Element {
	e.inner.Add(&a.(*Element).inner, &b.(*Element).inner)
	return e
}

// Negate sets e to -a and returns e.
func (e *Element) Negate(a group.Element) group.Element {
	e.inner.Negate(&a.(*Element).inner)
	return e
}

// ScalarMult sets e to s * q in constant time and returns e.
func (e *Element) ScalarMult(s group.Scalar, q group.Element) group.Element {
	e.inner.ScalarMult(&s.(*Scalar).inner, &q.(*Element).inner)
	return e
}

// Set copies a into e and returns e.
func (e *Element) Set(a group.Element) group.Element {
	e.inner = a.(*Element).inner
	return e
}

// Bytes returns the canonical 32-byte encoding of e.
func (e *Element) Bytes() []byte {
	return e.inner.Encode(make([]byte, 0, encodingSize))
}

// SetBytes decodes a canonical 32-byte encoding. Non-canonical field
// elements and encodings that are not valid ristretto255 points are
// rejected and the receiver is left unchanged.
func (e *Element) SetBytes(data []byte) (group.Element, error) {
	if len(data) != encodingSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", errElementEncoding, len(data), encodingSize)
	}
	var v ristretto255.Element
	if err := v.Decode(data); err != nil {
		return nil, fmt.Errorf("%w: %w", errElementEncoding, err)
	}
	e.inner = v
	return e, nil
}

// Equal reports whether e and b are the same element, in constant time.
func (e *Element) Equal(b group.Element) bool {
	return e.inner.Equal(&b.(*Element).inner) == 1
}

// IsIdentity reports whether e is the identity element.
func (e *Element) IsIdentity() bool {
	return e.inner.Equal(&newElement().inner) == 1
}

// Group implements [group.Group] for ristretto255.
type Group struct{}

// New returns the ristretto255 group.
func New() *Group {
	return &Group{}
}

// Name returns "ristretto255".
func (g *Group) Name() string {
	return "ristretto255"
}

// NewScalar returns a new zero scalar.
func (g *Group) NewScalar() group.Scalar {
	s := &Scalar{}
	s.inner.Zero()
	return s
}

// NewElement returns a new identity element.
func (g *Group) NewElement() group.Element {
	return newElement()
}

// Generator returns the canonical ristretto255 generator.
func (g *Group) Generator() group.Element {
	e := &Element{}
	e.inner.Base()
	return e
}

// RandomScalar reads 64 bytes from r and reduces them to a scalar,
// retrying in the negligible case that the result is zero.
func (g *Group) RandomScalar(r io.Reader) (group.Scalar, error) {
	var buf [wideSize]byte
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, err
		}
		s := &Scalar{}
		s.inner.FromUniformBytes(buf[:])
		if !s.IsZero() {
			return s, nil
		}
	}
}

// ScalarSize returns 32.
func (g *Group) ScalarSize() int {
	return encodingSize
}

// ElementSize returns 32.
func (g *Group) ElementSize() int {
	return encodingSize
}
