package mix

import (
	"encoding/hex"
	"errors"
	mrand "math/rand/v2"
	"testing"

	"github.com/f3rmion/tokenmix/bjj"
	"github.com/f3rmion/tokenmix/ed25519"
	"github.com/f3rmion/tokenmix/group"
	"github.com/f3rmion/tokenmix/mixerr"
	"github.com/f3rmion/tokenmix/perm"
	"github.com/f3rmion/tokenmix/ristretto"
	"github.com/stretchr/testify/require"
)

// Multiples of the ristretto255 generator from RFC 9496, Appendix A.1.
var ristrettoMultiples = map[int]string{
	1: "e2f2ae0a6abc4e71a884a961c500515f58e30b6aa582dd8db6a65945e08d2d76",
	2: "6a493210f7499cd17fecb510ae0cea23a110e8d5b901f8acadd3095c73a3b919",
	3: "94741f5d5d52755ece4f23f044ee27d5d1ea1e2bd196b462166b16152a9d0259",
	4: "da80862773358b466ffadfe0b3293ab3d9fd53c5ea6c955358f568322daf6a57",
	5: "e882b131016b52c1d3337080187cf768423efccbb517bb495ab812c4160ff44e",
	6: "f64746d3c92b13050ed8d80236a7f0007c3b3f962f5ba793d19a601ebb1df403",
}

var testGroups = []group.Group{
	ristretto.New(),
	ed25519.NewCurve(),
	&bjj.BJJ{},
}

func multiples(t *testing.T, ks ...int) [][]byte {
	t.Helper()
	out := make([][]byte, len(ks))
	for i, k := range ks {
		b, err := hex.DecodeString(ristrettoMultiples[k])
		require.NoError(t, err)
		out[i] = b
	}
	return out
}

// randomBatch returns n distinct random tokens of g derived from seed.
func randomBatch(t *testing.T, g group.Group, n int, seed byte) Batch {
	t.Helper()
	r := mrand.NewChaCha8([32]byte{seed})
	elems := make([]group.Element, n)
	for i := range elems {
		k, err := g.RandomScalar(r)
		require.NoError(t, err)
		elems[i] = g.NewElement().ScalarMult(k, g.Generator())
	}
	b, err := NewBatch(g, elems)
	require.NoError(t, err)
	return b
}

func TestDecode(t *testing.T) {
	g := ristretto.New()

	t.Run("Valid", func(t *testing.T) {
		enc := multiples(t, 1, 2, 3)
		b, err := Decode(g, enc)
		require.NoError(t, err)
		require.Equal(t, 3, b.Len())
		require.Equal(t, enc, b.Bytes())
		require.Equal(t, "ristretto255", b.Group().Name())
	})

	t.Run("Empty", func(t *testing.T) {
		b, err := Decode(g, nil)
		require.NoError(t, err)
		require.Equal(t, 0, b.Len())
	})

	t.Run("Identity", func(t *testing.T) {
		enc := multiples(t, 1, 2)
		enc = append(enc, make([]byte, 32))
		_, err := Decode(g, enc)

		var verr *mixerr.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, mixerr.KindElement, verr.Kind)
		require.Equal(t, 2, verr.Index)
		require.ErrorIs(t, err, mixerr.ErrIdentityElement)
	})

	t.Run("WrongLength", func(t *testing.T) {
		enc := multiples(t, 1, 2)
		enc[1] = enc[1][:31]
		_, err := Decode(g, enc)

		var verr *mixerr.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, 1, verr.Index)
		require.ErrorIs(t, err, mixerr.ErrInvalidEncoding)
	})

	t.Run("NonCanonical", func(t *testing.T) {
		bad := make([]byte, 32)
		for i := range bad {
			bad[i] = 0xff
		}
		bad[31] = 0x7f
		_, err := Decode(g, [][]byte{bad})

		var verr *mixerr.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, 0, verr.Index)
		require.ErrorIs(t, err, mixerr.ErrInvalidEncoding)
	})

	t.Run("NilGroup", func(t *testing.T) {
		_, err := Decode(nil, multiples(t, 1))
		require.ErrorIs(t, err, mixerr.ErrGroupMismatch)
	})
}

func TestNewBatch(t *testing.T) {
	for _, g := range testGroups {
		t.Run(g.Name(), func(t *testing.T) {
			gen := g.Generator()
			b, err := NewBatch(g, []group.Element{gen})
			require.NoError(t, err)

			// The batch holds its own copy.
			gen.Add(gen, gen)
			require.True(t, b.Element(0).Equal(g.Generator()))

			_, err = NewBatch(g, []group.Element{g.Generator(), g.NewElement()})
			require.ErrorIs(t, err, mixerr.ErrIdentityElement)

			_, err = NewBatch(g, []group.Element{nil})
			require.ErrorIs(t, err, mixerr.ErrInvalidEncoding)
		})
	}
}

func TestBatchEqual(t *testing.T) {
	g := ristretto.New()
	a, err := Decode(g, multiples(t, 1, 2))
	require.NoError(t, err)
	b, err := Decode(g, multiples(t, 1, 2))
	require.NoError(t, err)
	c, err := Decode(g, multiples(t, 2, 1))
	require.NoError(t, err)

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
	require.False(t, a.Equal(Batch{}))
	require.True(t, Batch{}.Equal(Batch{}))
}

func TestBatchPermute(t *testing.T) {
	g := ristretto.New()
	b, err := Decode(g, multiples(t, 1, 2, 3))
	require.NoError(t, err)

	p, err := perm.New([]int{2, 0, 1})
	require.NoError(t, err)
	got, err := b.Permute(p)
	require.NoError(t, err)

	// c[p[i]] = b[i]
	want, err := Decode(g, multiples(t, 2, 3, 1))
	require.NoError(t, err)
	require.True(t, want.Equal(got))

	back, err := got.Permute(p.Inverse())
	require.NoError(t, err)
	require.True(t, b.Equal(back))

	_, err = b.Permute(perm.Identity(2))
	var lerr *mixerr.LengthMismatchError
	require.ErrorAs(t, err, &lerr)
	require.Equal(t, 3, lerr.Want)
	require.Equal(t, 2, lerr.Got)
}

func TestCheckDistinct(t *testing.T) {
	g := ristretto.New()
	b, err := Decode(g, multiples(t, 1, 2, 3))
	require.NoError(t, err)
	require.NoError(t, b.checkDistinct())

	dup, err := Decode(g, multiples(t, 1, 2, 1))
	require.NoError(t, err)
	err = dup.checkDistinct()

	var verr *mixerr.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, 2, verr.Index)
	require.ErrorIs(t, err, mixerr.ErrDuplicateElement)
}
