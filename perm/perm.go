package perm

import (
	"fmt"
	"io"

	"github.com/f3rmion/tokenmix/mixerr"
	"github.com/f3rmion/tokenmix/random"
)

// Permutation is a bijection on {0, ..., n-1}. The zero value is the
// empty permutation. Values are immutable and safe to share between
// goroutines.
type Permutation struct {
	idx []int
}

// Identity returns the identity permutation of length n.
func Identity(n int) Permutation {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return Permutation{idx: idx}
}

// New validates indices and returns them as a Permutation. Every value in
// [0, len(indices)) must appear exactly once; otherwise New returns a
// [mixerr.ValidationError] pointing at the first offending position.
// indices is copied.
func New(indices []int) (Permutation, error) {
	n := len(indices)
	seen := make([]bool, n)
	for i, v := range indices {
		if v < 0 || v >= n {
			return Permutation{}, mixerr.Invalid(mixerr.KindPermutation, i,
				fmt.Errorf("%w: %d not in [0, %d)", mixerr.ErrIndexOutOfRange, v, n))
		}
		if seen[v] {
			return Permutation{}, mixerr.Invalid(mixerr.KindPermutation, i,
				fmt.Errorf("%w: %d", mixerr.ErrDuplicateIndex, v))
		}
		seen[v] = true
	}
	idx := make([]int, n)
	copy(idx, indices)
	return Permutation{idx: idx}, nil
}

// Random returns a uniformly random permutation of length n drawn from r.
// See [Generate].
func Random(r io.Reader, n int) (Permutation, error) {
	return Generate(random.NewSource(r), n)
}

// Generate returns a uniformly random permutation of length n drawn from
// src, using Fisher-Yates: position i is swapped with a position drawn
// uniformly from [i, n-1]. The last position has a single candidate and
// consumes no randomness, so n <= 1 reads nothing.
//
// If src fails, Generate returns the [mixerr.RandomnessExhaustedError]
// and no permutation.
func Generate(src *random.Source, n int) (Permutation, error) {
	if n < 0 {
		return Permutation{}, mixerr.Invalid(mixerr.KindPermutation, mixerr.NoIndex,
			fmt.Errorf("negative length %d", n))
	}
	p := Identity(n)
	for i := 0; i < n-1; i++ {
		j, err := src.Intn(n - i)
		if err != nil {
			return Permutation{}, err
		}
		j += i
		p.idx[i], p.idx[j] = p.idx[j], p.idx[i]
	}
	return p, nil
}

// Len returns the number of indices in p.
func (p Permutation) Len() int {
	return len(p.idx)
}

// At returns the image of i under p.
func (p Permutation) At(i int) int {
	return p.idx[i]
}

// Indices returns a copy of the index table.
func (p Permutation) Indices() []int {
	out := make([]int, len(p.idx))
	copy(out, p.idx)
	return out
}

// Inverse returns the permutation q with q.At(p.At(i)) == i.
func (p Permutation) Inverse() Permutation {
	inv := make([]int, len(p.idx))
	for i, v := range p.idx {
		inv[v] = i
	}
	return Permutation{idx: inv}
}

// Equal reports whether p and q map every index identically.
func (p Permutation) Equal(q Permutation) bool {
	if len(p.idx) != len(q.idx) {
		return false
	}
	for i := range p.idx {
		if p.idx[i] != q.idx[i] {
			return false
		}
	}
	return true
}
