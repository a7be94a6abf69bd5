// Package perm provides the Permutation type used to shuffle token
// batches and the generator that draws permutations uniformly at random.
//
// A [Permutation] can only be obtained from a validating constructor
// ([New], [Identity], [Random], [Generate]), so any value handed to a
// shuffle is already known to cover every index exactly once.
//
// Applying a permutation P to a batch A yields B with B[P.At(i)] = A[i].
package perm
