package mixerr

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidEncoding  = errors.New("invalid encoding")
	ErrIdentityElement  = errors.New("identity element")
	ErrZeroScalar       = errors.New("zero scalar")
	ErrNilScalar        = errors.New("nil scalar")
	ErrGroupMismatch    = errors.New("group mismatch")
	ErrDuplicateIndex   = errors.New("duplicate index")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrDuplicateElement = errors.New("duplicate element")
	ErrSessionConsumed  = errors.New("session already consumed")
)

// Kind names the input that failed validation.
type Kind string

const (
	KindElement     Kind = "element"
	KindScalar      Kind = "scalar"
	KindPermutation Kind = "permutation"
	KindBatch       Kind = "batch"
)

// NoIndex marks a ValidationError that does not refer to a position.
const NoIndex = -1

// ValidationError reports a malformed group element, a malformed or
// non-invertible scalar, or a malformed permutation. Index is the
// offending position, or NoIndex.
type ValidationError struct {
	Kind  Kind
	Index int
	Err   error
}

// Invalid returns a ValidationError for the given input kind and position.
func Invalid(kind Kind, index int, err error) *ValidationError {
	return &ValidationError{Kind: kind, Index: index, Err: err}
}

func (e *ValidationError) Error() string {
	if e.Index == NoIndex {
		return fmt.Sprintf("invalid %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("invalid %s at index %d: %v", e.Kind, e.Index, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// LengthMismatchError reports a batch and a permutation (or two batches)
// whose lengths differ.
type LengthMismatchError struct {
	Want int
	Got  int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("length mismatch: want %d, got %d", e.Want, e.Got)
}

// RandomnessExhaustedError reports that the random source failed. It is
// not recoverable: nothing built from the partial randomness is returned.
type RandomnessExhaustedError struct {
	Err error
}

func (e *RandomnessExhaustedError) Error() string {
	return fmt.Sprintf("randomness source exhausted: %v", e.Err)
}

func (e *RandomnessExhaustedError) Unwrap() error {
	return e.Err
}
