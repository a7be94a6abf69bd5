// Package random turns an injected byte source into unbiased integer
// draws for permutation generation.
//
// Randomness is a capability passed in by the caller rather than a
// process-wide singleton: production code hands in crypto/rand.Reader,
// tests hand in a seeded math/rand/v2 ChaCha8. A read failure surfaces as
// [mixerr.RandomnessExhaustedError] and must abort whatever was being
// built from the draws.
package random
