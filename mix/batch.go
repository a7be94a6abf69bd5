package mix

import (
	"fmt"

	"github.com/f3rmion/tokenmix/group"
	"github.com/f3rmion/tokenmix/mixerr"
	"github.com/f3rmion/tokenmix/perm"
)

// Batch is an ordered, immutable sequence of group elements (a token
// batch). Every element is a valid, non-identity element of the batch's
// group. Transformations return new batches; accessors return copies, so
// a Batch can be shared freely between goroutines.
//
// The zero value is an empty batch with no group.
type Batch struct {
	g     group.Group
	elems []group.Element
}

// Decode parses fixed-size encodings into a Batch of g. It fails on the
// first encoding that has the wrong length, is not canonical, lies outside
// the prime-order subgroup, or is the identity, returning a
// [mixerr.ValidationError] that carries its index. No partial batch is
// returned.
func Decode(g group.Group, encodings [][]byte) (Batch, error) {
	if g == nil {
		return Batch{}, mixerr.Invalid(mixerr.KindBatch, mixerr.NoIndex, mixerr.ErrGroupMismatch)
	}
	elems := make([]group.Element, len(encodings))
	for i, enc := range encodings {
		e, err := decodeElement(g, enc)
		if err != nil {
			return Batch{}, mixerr.Invalid(mixerr.KindElement, i, err)
		}
		elems[i] = e
	}
	return Batch{g: g, elems: elems}, nil
}

// NewBatch builds a Batch from elements of g. Each element is re-encoded
// and decoded into a fresh value, so later changes to the inputs do not
// affect the batch and elements of a different group are rejected.
func NewBatch(g group.Group, elems []group.Element) (Batch, error) {
	encodings := make([][]byte, len(elems))
	for i, e := range elems {
		if e == nil {
			return Batch{}, mixerr.Invalid(mixerr.KindElement, i, mixerr.ErrInvalidEncoding)
		}
		encodings[i] = e.Bytes()
	}
	return Decode(g, encodings)
}

func decodeElement(g group.Group, enc []byte) (group.Element, error) {
	if len(enc) != g.ElementSize() {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", mixerr.ErrInvalidEncoding, len(enc), g.ElementSize())
	}
	e, err := g.NewElement().SetBytes(enc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", mixerr.ErrInvalidEncoding, err)
	}
	if e.IsIdentity() {
		return nil, mixerr.ErrIdentityElement
	}
	return e, nil
}

// Len returns the number of tokens in b.
func (b Batch) Len() int {
	return len(b.elems)
}

// Group returns the group of b, or nil for the zero Batch.
func (b Batch) Group() group.Group {
	return b.g
}

// Element returns a copy of the i-th token.
func (b Batch) Element(i int) group.Element {
	return b.g.NewElement().Set(b.elems[i])
}

// Bytes returns the canonical encodings of the tokens, in order.
func (b Batch) Bytes() [][]byte {
	out := make([][]byte, len(b.elems))
	for i, e := range b.elems {
		out[i] = e.Bytes()
	}
	return out
}

// Equal reports whether b and o hold the same tokens in the same order.
func (b Batch) Equal(o Batch) bool {
	if len(b.elems) != len(o.elems) {
		return false
	}
	if len(b.elems) > 0 && !group.Same(b.g, o.g) {
		return false
	}
	for i := range b.elems {
		if !b.elems[i].Equal(o.elems[i]) {
			return false
		}
	}
	return true
}

// Permute returns the batch c with c[p.At(i)] = b[i]. It is the
// single-goroutine form of [Engine.ApplyPermutation].
func (b Batch) Permute(p perm.Permutation) (Batch, error) {
	if p.Len() != b.Len() {
		return Batch{}, &mixerr.LengthMismatchError{Want: b.Len(), Got: p.Len()}
	}
	out := make([]group.Element, len(b.elems))
	permuteRange(out, b.elems, p, 0, len(b.elems))
	return Batch{g: b.g, elems: out}, nil
}

// permuteRange moves in[lo:hi] to their slots in out. Elements are never
// mutated once in a batch, so the values are shared rather than cloned.
func permuteRange(out, in []group.Element, p perm.Permutation, lo, hi int) {
	for i := lo; i < hi; i++ {
		out[p.At(i)] = in[i]
	}
}

// checkDistinct returns a ValidationError for the first token that
// repeats an earlier one.
func (b Batch) checkDistinct() error {
	seen := make(map[string]int, len(b.elems))
	for i, e := range b.elems {
		key := string(e.Bytes())
		if first, ok := seen[key]; ok {
			return mixerr.Invalid(mixerr.KindElement, i,
				fmt.Errorf("%w: same as index %d", mixerr.ErrDuplicateElement, first))
		}
		seen[key] = i
	}
	return nil
}
