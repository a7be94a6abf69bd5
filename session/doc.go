// Package session provides the two roles of a blind token exchange on top
// of the [mix] engine. It manages the blinding scalars so that callers
// never handle them directly and cannot reuse a client's scalar by
// mistake.
//
// # Client
//
// A client owns one random scalar for one exchange:
//
//	c, err := session.NewClient(engine, rand.Reader)
//	if err != nil {
//		return err
//	}
//
//	blinded, err := c.Blind(ctx, tokens)
//	if err != nil {
//		return err
//	}
//
//	// Send blinded to the mixing server, receive mixed.
//
//	out, err := c.Unblind(ctx, mixed) // consumes the client
//
// Unblind wipes the scalar whether or not it succeeds. A second Blind or
// Unblind returns [mixerr.ErrSessionConsumed].
//
// # Server
//
// A mixing server keeps a long-lived scalar, usually derived from a
// master key with [DeriveKey]:
//
//	k, err := session.DeriveKey(g, masterKey, "")
//	s, err := session.NewServer(engine, k)
//	mixed, err := s.Mix(ctx, blinded)
//
// A [Keyring] rotates keys per epoch, loading each epoch's master key on
// first use, for example from a directory with [DirLoader].
//
// # Transport Agnostic
//
// This package does not handle network communication. Batches are moved
// between client and server with [mix.Batch.Bytes] and [mix.Decode] over
// whatever transport the application uses.
package session
