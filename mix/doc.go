// Package mix implements the blinding and shuffling engine of a blind
// token exchange.
//
// A client blinds a batch of tokens with a secret scalar, a mixing server
// permutes the batch uniformly at random and blinds it again with its own
// scalar, and the client finally removes its own layer:
//
//	blinded, _ := client.Blind(ctx, tokens, kc)          // A[i]*kc
//	mixed, _ := server.ShuffleAndBlind(ctx, blinded, ks) // permuted, *ks
//	out, _ := client.Unblind(ctx, mixed, kc)             // permuted A[i]*ks
//
// The positions of out cannot be matched to the positions of tokens
// without the server's permutation, which is drawn fresh for each call
// and discarded.
//
// # Batches
//
// A [Batch] is an immutable sequence of validated, non-identity elements
// of one group. It is built with [Decode] from encodings or [NewBatch]
// from elements; invalid inputs fail with a [mixerr.ValidationError]
// carrying the index.
//
// # Engine
//
// An [Engine] binds a group, a randomness source, a logger and a worker
// pool. Every operation validates its inputs eagerly, then either
// returns a complete new batch or an error and no batch. Large batches
// are split into disjoint index ranges and processed on up to
// Config.Workers goroutines; the output order never depends on
// scheduling. Cancelling the context aborts the operation and discards
// the partial output.
package mix
