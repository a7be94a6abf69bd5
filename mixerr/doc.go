// Package mixerr defines the errors shared by the permutation, batch and
// session packages.
//
// Three typed errors make up the taxonomy:
//
//   - [ValidationError]: a malformed element, scalar or permutation
//   - [LengthMismatchError]: inputs whose lengths must agree do not
//   - [RandomnessExhaustedError]: the injected random source failed
//
// Typed errors wrap one of the Err* sentinels where one applies, so
// callers can use either errors.As or errors.Is:
//
//	var verr *mixerr.ValidationError
//	if errors.As(err, &verr) && errors.Is(err, mixerr.ErrZeroScalar) {
//		...
//	}
package mixerr
