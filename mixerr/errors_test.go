package mixerr

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("blind: %w", Invalid(KindElement, 3, ErrIdentityElement))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, KindElement, verr.Kind)
	require.Equal(t, 3, verr.Index)
	require.ErrorIs(t, err, ErrIdentityElement)
	require.Contains(t, err.Error(), "index 3")

	noIdx := Invalid(KindScalar, NoIndex, ErrZeroScalar)
	require.Equal(t, "invalid scalar: zero scalar", noIdx.Error())
}

func TestRandomnessExhaustedError(t *testing.T) {
	err := error(&RandomnessExhaustedError{Err: io.ErrUnexpectedEOF})
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	var lerr *LengthMismatchError
	require.False(t, errors.As(err, &lerr))
	require.Equal(t, "length mismatch: want 2, got 3", (&LengthMismatchError{Want: 2, Got: 3}).Error())
}
