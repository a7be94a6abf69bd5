package session

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"sync"

	"github.com/f3rmion/tokenmix/group"
	"github.com/f3rmion/tokenmix/mix"
	"github.com/f3rmion/tokenmix/mixerr"
	"golang.org/x/crypto/hkdf"
)

// DefaultKeyInfo is the HKDF info string used by [DeriveKey] when none
// is given.
const DefaultKeyInfo = "BLINDING_KEY"

// Server holds a mixing server's blinding scalar. Unlike a [Client], a
// Server is long-lived: every call to Mix uses the same scalar with a
// fresh permutation. It is safe for concurrent use.
type Server struct {
	engine *mix.Engine

	mu  sync.RWMutex
	key group.Scalar
}

// NewServer creates a server blinding with key. The key is copied; the
// caller may wipe its own value afterwards.
func NewServer(e *mix.Engine, key group.Scalar) (*Server, error) {
	if e == nil {
		return nil, errors.New("session: nil engine")
	}
	if key == nil {
		return nil, mixerr.Invalid(mixerr.KindScalar, mixerr.NoIndex, mixerr.ErrNilScalar)
	}
	if !group.OwnsScalar(e.Group(), key) {
		return nil, mixerr.Invalid(mixerr.KindScalar, mixerr.NoIndex,
			fmt.Errorf("%w: key is not a %s scalar", mixerr.ErrGroupMismatch, e.Group().Name()))
	}
	if key.IsZero() {
		return nil, mixerr.Invalid(mixerr.KindScalar, mixerr.NoIndex, mixerr.ErrZeroScalar)
	}
	k, err := e.Group().NewScalar().SetBytes(key.Bytes())
	if err != nil {
		return nil, mixerr.Invalid(mixerr.KindScalar, mixerr.NoIndex,
			fmt.Errorf("%w: %w", mixerr.ErrInvalidEncoding, err))
	}
	return &Server{engine: e, key: k}, nil
}

// Mix shuffles the batch with a fresh random permutation and blinds it
// with the server's scalar. Repeated tokens are rejected unless the
// engine allows duplicates.
func (s *Server) Mix(ctx context.Context, b mix.Batch) (mix.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.key == nil {
		return mix.Batch{}, fmt.Errorf("%w: server closed", mixerr.ErrSessionConsumed)
	}
	return s.engine.ShuffleAndBlind(ctx, b, s.key)
}

// Close wipes the server's scalar. Later calls to Mix fail.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key == nil {
		return
	}
	s.key.Set(s.engine.Group().NewScalar())
	s.key = nil
}

// DeriveKey derives a blinding scalar of g from a master key with
// HKDF-SHA256. An empty info selects [DefaultKeyInfo]. Different info
// strings yield independent keys from the same master key.
func DeriveKey(g group.Group, masterKey []byte, info string) (group.Scalar, error) {
	if g == nil {
		return nil, errors.New("session: nil group")
	}
	if len(masterKey) == 0 {
		return nil, errors.New("session: empty master key")
	}
	if info == "" {
		info = DefaultKeyInfo
	}
	k, err := g.RandomScalar(hkdf.New(sha256.New, masterKey, nil, []byte(info)))
	if err != nil {
		return nil, fmt.Errorf("session: deriving key: %w", err)
	}
	return k, nil
}
