package session

import (
	"context"
	"crypto/rand"
	"errors"
	"io"
	"sync"

	"github.com/f3rmion/tokenmix/group"
	"github.com/f3rmion/tokenmix/mix"
	"github.com/f3rmion/tokenmix/mixerr"
)

// Client holds the blinding scalar of one token exchange on the client
// side. A Client blinds exactly one batch and unblinds exactly one mixed
// batch; the scalar is overwritten as soon as Unblind returns.
//
// Create clients using [NewClient].
type Client struct {
	mu       sync.Mutex
	engine   *mix.Engine
	key      group.Scalar
	n        int
	blinded  bool
	consumed bool
}

// NewClient creates a client with a fresh random blinding scalar read
// from rng. A nil rng selects crypto/rand.Reader.
func NewClient(e *mix.Engine, rng io.Reader) (*Client, error) {
	if e == nil {
		return nil, errors.New("session: nil engine")
	}
	if rng == nil {
		rng = rand.Reader
	}
	k, err := e.Group().RandomScalar(rng)
	if err != nil {
		return nil, &mixerr.RandomnessExhaustedError{Err: err}
	}
	return &Client{engine: e, key: k}, nil
}

// Blind blinds the client's tokens. It may succeed only once per client;
// a failed call leaves the client unchanged.
func (c *Client) Blind(ctx context.Context, tokens mix.Batch) (mix.Batch, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.blinded || c.consumed {
		return mix.Batch{}, mixerr.ErrSessionConsumed
	}
	out, err := c.engine.Blind(ctx, tokens, c.key)
	if err != nil {
		return mix.Batch{}, err
	}
	c.n = tokens.Len()
	c.blinded = true
	return out, nil
}

// Unblind removes the client's blinding layer from the batch returned by
// the mixing server. The mixed batch must be as long as the blinded one.
//
// This method consumes the client: the scalar is wiped whether or not
// the call succeeds, and later calls return [mixerr.ErrSessionConsumed].
func (c *Client) Unblind(ctx context.Context, mixed mix.Batch) (mix.Batch, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.consumed {
		return mix.Batch{}, mixerr.ErrSessionConsumed
	}
	if !c.blinded {
		return mix.Batch{}, errors.New("session: Unblind called before Blind")
	}

	c.consumed = true
	defer c.wipe()

	if mixed.Len() != c.n {
		return mix.Batch{}, &mixerr.LengthMismatchError{Want: c.n, Got: mixed.Len()}
	}
	return c.engine.Unblind(ctx, mixed, c.key)
}

// Close wipes the scalar of a client that will not be used again.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.consumed = true
	c.wipe()
}

// IsConsumed reports whether the client has been unblinded or closed.
func (c *Client) IsConsumed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.consumed
}

func (c *Client) wipe() {
	if c.key == nil {
		return
	}
	c.key.Set(c.engine.Group().NewScalar())
	c.key = nil
}
