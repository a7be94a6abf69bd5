package bjj

import (
	"crypto/rand"
	"testing"

	"github.com/f3rmion/tokenmix/group"
)

func TestScalar(t *testing.T) {
	g := &BJJ{}

	t.Run("MulInvert", func(t *testing.T) {
		a, _ := g.RandomScalar(rand.Reader)
		aInv, err := g.NewScalar().Invert(a)
		if err != nil {
			t.Fatal(err)
		}

		product := g.NewScalar().Mul(a, aInv)

		// if product = 1, then product * b = b for any b
		b, _ := g.RandomScalar(rand.Reader)
		result := g.NewScalar().Mul(product, b)

		if !result.Equal(b) {
			t.Error("a*a^-1 != 1")
		}
	})

	t.Run("InvertZeroFails", func(t *testing.T) {
		zero := g.NewScalar()
		_, err := g.NewScalar().Invert(zero)
		if err == nil {
			t.Error("expected error inverting zero")
		}
	})

	t.Run("Negate", func(t *testing.T) {
		a, _ := g.RandomScalar(rand.Reader)
		negA := g.NewScalar().Negate(a)

		result := g.NewScalar().Add(a, negA)

		if !result.IsZero() {
			t.Error("negating scalar failed")
		}
	})

	t.Run("BytesRoundtrip", func(t *testing.T) {
		a, _ := g.RandomScalar(rand.Reader)

		bytes := a.Bytes()
		if len(bytes) != g.ScalarSize() {
			t.Fatalf("encoded scalar has %d bytes", len(bytes))
		}
		restored, err := g.NewScalar().SetBytes(bytes)
		if err != nil {
			t.Fatal(err)
		}

		if !restored.Equal(a) {
			t.Error("scalar bytes roundtrip failed")
		}
	})

	t.Run("RejectsOrder", func(t *testing.T) {
		buf := make([]byte, scalarSize)
		curveOrder.FillBytes(buf)
		if _, err := g.NewScalar().SetBytes(buf); err == nil {
			t.Error("scalar equal to the order must be rejected")
		}
		if _, err := g.NewScalar().SetBytes(buf[1:]); err == nil {
			t.Error("short scalar must be rejected")
		}
	})

	t.Run("RandomIsNonZero", func(t *testing.T) {
		for i := 0; i < 32; i++ {
			s, err := g.RandomScalar(rand.Reader)
			if err != nil {
				t.Fatal(err)
			}
			if s.IsZero() {
				t.Fatal("random scalar is zero")
			}
		}
	})

	t.Run("SetZeroWipesWords", func(t *testing.T) {
		s, _ := g.RandomScalar(rand.Reader)
		words := s.(*Scalar).inner.Bits()
		words = words[:cap(words)]

		s.Set(g.NewScalar())
		if !s.IsZero() {
			t.Fatal("scalar is not zero after Set(0)")
		}
		for i, w := range words {
			if w != 0 {
				t.Fatalf("word %d survived the wipe", i)
			}
		}
	})

	t.Run("SetSelf", func(t *testing.T) {
		s, _ := g.RandomScalar(rand.Reader)
		want := s.Bytes()
		s.Set(s)
		if string(s.Bytes()) != string(want) {
			t.Error("Set(s) changed s")
		}
	})
}

func TestElement(t *testing.T) {
	g := &BJJ{}

	t.Run("Negate", func(t *testing.T) {
		s, _ := g.RandomScalar(rand.Reader)
		P := g.NewElement().ScalarMult(s, g.Generator())
		negP := g.NewElement().Negate(P)

		result := g.NewElement().Add(P, negP)

		if !result.IsIdentity() {
			t.Error("P + (-P) != identity")
		}
	})

	t.Run("BytesRoundtrip", func(t *testing.T) {
		s, _ := g.RandomScalar(rand.Reader)
		P := g.NewElement().ScalarMult(s, g.Generator())

		bytes := P.Bytes()
		restored, err := g.NewElement().SetBytes(bytes)
		if err != nil {
			t.Fatal(err)
		}

		if !restored.Equal(P) {
			t.Error("point bytes roundtrip failed")
		}
	})

	t.Run("RejectsWrongLength", func(t *testing.T) {
		P := g.Generator().Bytes()
		if _, err := g.NewElement().SetBytes(P[:31]); err == nil {
			t.Error("expected error for truncated encoding")
		}
	})

	t.Run("MultiplicationCommutes", func(t *testing.T) {
		a, _ := g.RandomScalar(rand.Reader)
		b, _ := g.RandomScalar(rand.Reader)
		P := g.Generator()

		ab := g.NewElement().ScalarMult(b, g.NewElement().ScalarMult(a, P))
		ba := g.NewElement().ScalarMult(g.NewScalar().Mul(a, b), P)
		if !ab.Equal(ba) {
			t.Error("(P*a)*b != P*(a*b)")
		}
	})

	t.Run("IsIdentity", func(t *testing.T) {
		identity := g.NewElement()
		if !identity.IsIdentity() {
			t.Error("new point should be identity")
		}

		gen := g.Generator()
		if gen.IsIdentity() {
			t.Error("generator should not be identity")
		}
	})
}

var _ group.Group = (*BJJ)(nil)
