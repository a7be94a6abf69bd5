package session

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/f3rmion/tokenmix/group"
	"github.com/f3rmion/tokenmix/mix"
	"github.com/f3rmion/tokenmix/mixerr"
	"golang.org/x/sync/singleflight"
)

var errKeyringClosed = fmt.Errorf("session: keyring closed: %w", mixerr.ErrSessionConsumed)

// KeyLoader returns the blinding scalar for an epoch, e.g. a day number.
type KeyLoader func(epoch int) (group.Scalar, error)

// DirLoader returns a KeyLoader that reads the master key for epoch e
// from the file "<e>.key" in dir and derives the blinding scalar from it
// with [DeriveKey] and [DefaultKeyInfo].
func DirLoader(g group.Group, dir string) KeyLoader {
	return func(epoch int) (group.Scalar, error) {
		raw, err := os.ReadFile(filepath.Join(dir, fmt.Sprintf("%d.key", epoch)))
		if err != nil {
			return nil, err
		}
		return DeriveKey(g, raw, "")
	}
}

// Keyring hands out one [Server] per epoch, loading each epoch's key on
// first use. Concurrent requests for the same epoch share a single load,
// and no lock is held while a key is loaded. A load that completes after
// Forget or Close is discarded and its key wiped.
type Keyring struct {
	engine *mix.Engine
	load   KeyLoader
	log    *slog.Logger

	flight singleflight.Group

	mu      sync.Mutex
	servers map[int]*Server
	gens    map[int]uint64 // bumped by Forget
	closed  bool
}

// NewKeyring creates a keyring over e. A nil logger discards.
func NewKeyring(e *mix.Engine, load KeyLoader, logger *slog.Logger) *Keyring {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Keyring{
		engine:  e,
		load:    load,
		log:     logger,
		servers: make(map[int]*Server),
		gens:    make(map[int]uint64),
	}
}

// Server returns the server for epoch, loading its key if needed. A
// failed load is not cached. After Close, Server fails with
// [mixerr.ErrSessionConsumed].
func (r *Keyring) Server(epoch int) (*Server, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, errKeyringClosed
	}
	s, ok := r.servers[epoch]
	r.mu.Unlock()
	if ok {
		return s, nil
	}

	v, err, _ := r.flight.Do(strconv.Itoa(epoch), func() (any, error) {
		r.mu.Lock()
		if r.closed {
			r.mu.Unlock()
			return nil, errKeyringClosed
		}
		if s, ok := r.servers[epoch]; ok {
			r.mu.Unlock()
			return s, nil
		}
		gen := r.gens[epoch]
		r.mu.Unlock()

		key, err := r.load(epoch)
		if err != nil {
			r.log.Warn("loading blinding key failed", "epoch", epoch, "err", err)
			return nil, fmt.Errorf("session: key for epoch %d: %w", epoch, err)
		}
		s, err := NewServer(r.engine, key)
		if group.OwnsScalar(r.engine.Group(), key) {
			key.Set(r.engine.Group().NewScalar())
		}
		if err != nil {
			return nil, fmt.Errorf("session: key for epoch %d: %w", epoch, err)
		}

		r.mu.Lock()
		if r.closed || r.gens[epoch] != gen {
			r.mu.Unlock()
			s.Close()
			return nil, fmt.Errorf("session: key for epoch %d dropped while loading: %w",
				epoch, mixerr.ErrSessionConsumed)
		}
		r.servers[epoch] = s
		r.mu.Unlock()
		r.log.Info("blinding key loaded", "epoch", epoch)
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Server), nil
}

// Forget closes and drops the server for epoch. A load of epoch in
// flight is discarded when it completes.
func (r *Keyring) Forget(epoch int) {
	r.mu.Lock()
	s, ok := r.servers[epoch]
	delete(r.servers, epoch)
	r.gens[epoch]++
	r.mu.Unlock()
	if ok {
		s.Close()
	}
}

// Close closes every loaded server and makes later calls to Server fail.
// Loads in flight are discarded when they complete.
func (r *Keyring) Close() {
	r.mu.Lock()
	servers := r.servers
	r.servers = make(map[int]*Server)
	r.closed = true
	r.mu.Unlock()
	for _, s := range servers {
		s.Close()
	}
}
