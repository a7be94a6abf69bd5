package ed25519

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"filippo.io/edwards25519"
	"github.com/f3rmion/tokenmix/group"
)

const (
	encodingSize = 32
	wideSize     = 64
)

var (
	errScalarEncoding = errors.New("edwards25519: non-canonical scalar encoding")
	errPointEncoding  = errors.New("edwards25519: non-canonical point encoding")
	errSubgroup       = errors.New("edwards25519: point has a torsion component")
	errUnexpectedType = errors.New("edwards25519: unexpected implementation type")
	minusOne          = mustMinusOne()
)

func mustMinusOne() *edwards25519.Scalar {
	var b [encodingSize]byte
	b[0] = 1
	one, err := edwards25519.NewScalar().SetCanonicalBytes(b[:])
	if err != nil {
		panic(err)
	}
	return edwards25519.NewScalar().Negate(one)
}

// ScalarImpl is an integer modulo l = 2^252 + 27742317777372353535851937790883648493.
type ScalarImpl struct {
	inner *edwards25519.Scalar
}

func scalarOf(s group.Scalar) *edwards25519.Scalar {
	ss, ok := s.(*ScalarImpl)
	if !ok {
		panic(errUnexpectedType)
	}
	return ss.inner
}

func (s *ScalarImpl) Add(a, b group.Scalar) group.Scalar {
	s.inner.Add(scalarOf(a), scalarOf(b))
	return s
}

func (s *ScalarImpl) Mul(a, b group.Scalar) group.Scalar {
	s.inner.Multiply(scalarOf(a), scalarOf(b))
	return s
}

func (s *ScalarImpl) Negate(a group.Scalar) group.Scalar {
	s.inner.Negate(scalarOf(a))
	return s
}

func (s *ScalarImpl) Invert(a group.Scalar) (group.Scalar, error) {
	if a.IsZero() {
		return nil, errors.New("cannot invert zero scalar")
	}
	s.inner.Invert(scalarOf(a))
	return s, nil
}

func (s *ScalarImpl) Set(a group.Scalar) group.Scalar {
	s.inner.Set(scalarOf(a))
	return s
}

func (s *ScalarImpl) Bytes() []byte {
	return s.inner.Bytes()
}

func (s *ScalarImpl) SetBytes(data []byte) (group.Scalar, error) {
	if len(data) != encodingSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", errScalarEncoding, len(data), encodingSize)
	}
	v, err := edwards25519.NewScalar().SetCanonicalBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errScalarEncoding, err)
	}
	s.inner.Set(v)
	return s, nil
}

func (s *ScalarImpl) Equal(b group.Scalar) bool {
	return s.inner.Equal(scalarOf(b)) == 1
}

func (s *ScalarImpl) IsZero() bool {
	return s.inner.Equal(edwards25519.NewScalar()) == 1
}

// PointImpl is a point in the prime-order subgroup of edwards25519.
type PointImpl struct {
	inner *edwards25519.Point
}

func pointOf(p group.Element) *edwards25519.Point {
	pp, ok := p.(*PointImpl)
	if !ok {
		panic(errUnexpectedType)
	}
	return pp.inner
}

func (p *PointImpl) Add(a, b group.Element) group.Element {
	p.inner.Add(pointOf(a), pointOf(b))
	return p
}

func (p *PointImpl) Negate(a group.Element) group.Element {
	p.inner.Negate(pointOf(a))
	return p
}

// ScalarMult sets p to s * q in constant time and returns p.
func (p *PointImpl) ScalarMult(s group.Scalar, q group.Element) group.Element {
	p.inner.ScalarMult(scalarOf(s), pointOf(q))
	return p
}

func (p *PointImpl) Set(a group.Element) group.Element {
	p.inner.Set(pointOf(a))
	return p
}

func (p *PointImpl) Bytes() []byte {
	return p.inner.Bytes()
}

// SetBytes decodes a point, rejecting the non-canonical encodings that
// edwards25519.Point.SetBytes tolerates and any point with a small-order
// component.
func (p *PointImpl) SetBytes(data []byte) (group.Element, error) {
	if len(data) != encodingSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", errPointEncoding, len(data), encodingSize)
	}
	v, err := new(edwards25519.Point).SetBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errPointEncoding, err)
	}
	if !bytes.Equal(v.Bytes(), data) {
		return nil, errPointEncoding
	}
	// v is in the order-l subgroup iff l*v = 0, i.e. (l-1)*v = -v.
	lhs := new(edwards25519.Point).ScalarMult(minusOne, v)
	rhs := new(edwards25519.Point).Negate(v)
	if lhs.Equal(rhs) != 1 {
		return nil, errSubgroup
	}
	p.inner.Set(v)
	return p, nil
}

func (p *PointImpl) Equal(b group.Element) bool {
	return p.inner.Equal(pointOf(b)) == 1
}

func (p *PointImpl) IsIdentity() bool {
	return p.inner.Equal(edwards25519.NewIdentityPoint()) == 1
}

// CurveImpl implements [group.Group] for the order-l subgroup of edwards25519.
type CurveImpl struct{}

// NewCurve returns the edwards25519 group.
func NewCurve() *CurveImpl {
	return &CurveImpl{}
}

func (c *CurveImpl) Name() string {
	return "edwards25519"
}

func (c *CurveImpl) NewScalar() group.Scalar {
	return &ScalarImpl{inner: edwards25519.NewScalar()}
}

func (c *CurveImpl) NewElement() group.Element {
	return &PointImpl{inner: edwards25519.NewIdentityPoint()}
}

func (c *CurveImpl) Generator() group.Element {
	return &PointImpl{inner: edwards25519.NewGeneratorPoint()}
}

// RandomScalar reduces 64 bytes read from r modulo l.
func (c *CurveImpl) RandomScalar(r io.Reader) (group.Scalar, error) {
	var b [wideSize]byte
	for {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return nil, err
		}
		s, err := edwards25519.NewScalar().SetUniformBytes(b[:])
		if err != nil {
			return nil, err
		}
		out := &ScalarImpl{inner: s}
		if !out.IsZero() {
			return out, nil
		}
	}
}

func (c *CurveImpl) ScalarSize() int {
	return encodingSize
}

func (c *CurveImpl) ElementSize() int {
	return encodingSize
}
