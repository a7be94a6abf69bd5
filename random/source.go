package random

import (
	"bufio"
	"crypto/rand"
	"encoding/binary"
	"io"
	"math/bits"

	"github.com/f3rmion/tokenmix/mixerr"
)

// bufferSize amortizes reads from the underlying reader; crypto/rand
// costs one syscall per Read.
const bufferSize = 512

// Source draws uniformly distributed integers from an injected io.Reader.
// A Source is not safe for concurrent use.
type Source struct {
	r   *bufio.Reader
	buf [8]byte
}

// NewSource returns a Source reading from r. A nil r selects
// crypto/rand.Reader.
func NewSource(r io.Reader) *Source {
	if r == nil {
		r = rand.Reader
	}
	return &Source{r: bufio.NewReaderSize(r, bufferSize)}
}

// Uint64 returns 64 uniformly random bits.
func (s *Source) Uint64() (uint64, error) {
	if _, err := io.ReadFull(s.r, s.buf[:]); err != nil {
		return 0, &mixerr.RandomnessExhaustedError{Err: err}
	}
	return binary.LittleEndian.Uint64(s.buf[:]), nil
}

// Uint64n returns a uniformly random value in [0, n). It panics if n is 0.
//
// The draw uses Lemire's multiply-shift reduction: the high word of
// x*n is the candidate and the low word decides rejection. Candidates
// whose low word falls below 2^64 mod n are redrawn, which removes the
// bias that x % n has whenever n does not divide 2^64.
func (s *Source) Uint64n(n uint64) (uint64, error) {
	if n == 0 {
		panic("random: Uint64n called with n == 0")
	}
	if n == 1 {
		return 0, nil
	}
	x, err := s.Uint64()
	if err != nil {
		return 0, err
	}
	hi, lo := bits.Mul64(x, n)
	if lo < n {
		thresh := -n % n
		for lo < thresh {
			x, err = s.Uint64()
			if err != nil {
				return 0, err
			}
			hi, lo = bits.Mul64(x, n)
		}
	}
	return hi, nil
}

// Intn returns a uniformly random value in [0, n). It panics if n <= 0.
func (s *Source) Intn(n int) (int, error) {
	if n <= 0 {
		panic("random: Intn called with n <= 0")
	}
	v, err := s.Uint64n(uint64(n))
	return int(v), err
}
