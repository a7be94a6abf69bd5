package mix

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/f3rmion/tokenmix/group"
	"github.com/f3rmion/tokenmix/mixerr"
	"github.com/f3rmion/tokenmix/perm"
	"github.com/f3rmion/tokenmix/random"
)

// Engine performs the batch transformations of the token exchange over a
// single group. An Engine is safe for concurrent use; every call works on
// its own output slice and only the permutation source is shared.
type Engine struct {
	g   group.Group
	cfg Config
	log *slog.Logger

	mu  sync.Mutex // guards src
	src *random.Source
}

// NewEngine creates an Engine for g. Zero fields of cfg take their
// [DefaultConfig] values.
func NewEngine(g group.Group, cfg Config) (*Engine, error) {
	if g == nil {
		return nil, fmt.Errorf("mix: nil group")
	}
	cfg = cfg.withDefaults()
	return &Engine{
		g:   g,
		cfg: cfg,
		log: cfg.Logger.With("group", g.Name()),
		src: random.NewSource(cfg.Rand),
	}, nil
}

// Group returns the engine's group.
func (e *Engine) Group() group.Group {
	return e.g
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Blind returns the batch whose i-th token is b[i]*k, preserving order.
//
// k must be a non-zero scalar and b must belong to the engine's group;
// both are checked before any element is touched. Blinding is
// deterministic in (b, k).
func (e *Engine) Blind(ctx context.Context, b Batch, k group.Scalar) (Batch, error) {
	start := time.Now()
	if err := e.checkBatch(b); err != nil {
		return Batch{}, err
	}
	key, err := e.copyScalar(k)
	if err != nil {
		return Batch{}, err
	}
	defer e.wipe(key)

	out, err := e.exponentiate(ctx, b.elems, key)
	if err != nil {
		return Batch{}, err
	}
	e.logDone("blind", b.Len(), start)
	return out, nil
}

// Unblind removes a blinding layer: it inverts k and returns
// Blind(b, k^-1). A zero or otherwise non-invertible k is rejected before
// the batch is read.
func (e *Engine) Unblind(ctx context.Context, b Batch, k group.Scalar) (Batch, error) {
	start := time.Now()
	if err := e.checkBatch(b); err != nil {
		return Batch{}, err
	}
	key, err := e.copyScalar(k)
	if err != nil {
		return Batch{}, err
	}
	defer e.wipe(key)

	inv, err := e.g.NewScalar().Invert(key)
	if err != nil {
		return Batch{}, mixerr.Invalid(mixerr.KindScalar, mixerr.NoIndex, err)
	}
	defer e.wipe(inv)

	out, err := e.exponentiate(ctx, b.elems, inv)
	if err != nil {
		return Batch{}, err
	}
	e.logDone("unblind", b.Len(), start)
	return out, nil
}

// ShuffleAndBlind is the server-side mixing step: it draws a fresh
// uniformly random permutation, reorders b with it and blinds the result
// with k. The permutation never leaves the call.
//
// Unless AllowDuplicates is set, a batch containing a repeated token is
// rejected: repeated tokens stay repeated after mixing and would link the
// positions that carry them.
func (e *Engine) ShuffleAndBlind(ctx context.Context, b Batch, k group.Scalar) (Batch, error) {
	start := time.Now()
	if err := e.checkBatch(b); err != nil {
		return Batch{}, err
	}
	key, err := e.copyScalar(k)
	if err != nil {
		return Batch{}, err
	}
	defer e.wipe(key)

	if !e.cfg.AllowDuplicates {
		if err := b.checkDistinct(); err != nil {
			return Batch{}, err
		}
	}

	p, err := e.RandomPermutation(b.Len())
	if err != nil {
		return Batch{}, err
	}
	shuffled, err := e.permute(ctx, b, p)
	if err != nil {
		return Batch{}, err
	}
	out, err := e.exponentiate(ctx, shuffled.elems, key)
	if err != nil {
		return Batch{}, err
	}
	e.logDone("shuffle_and_blind", b.Len(), start)
	return out, nil
}

// ApplyPermutation returns the batch c with c[p.At(i)] = b[i]. The
// lengths of b and p must agree.
func (e *Engine) ApplyPermutation(ctx context.Context, b Batch, p perm.Permutation) (Batch, error) {
	start := time.Now()
	if err := e.checkBatch(b); err != nil {
		return Batch{}, err
	}
	out, err := e.permute(ctx, b, p)
	if err != nil {
		return Batch{}, err
	}
	e.logDone("apply_permutation", b.Len(), start)
	return out, nil
}

// RandomPermutation draws a uniformly random permutation of length n from
// the engine's random source.
func (e *Engine) RandomPermutation(n int) (perm.Permutation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, err := perm.Generate(e.src, n)
	if err != nil {
		e.log.Error("permutation draw failed", "size", n, "err", err)
		return perm.Permutation{}, err
	}
	return p, nil
}

func (e *Engine) permute(ctx context.Context, b Batch, p perm.Permutation) (Batch, error) {
	if p.Len() != b.Len() {
		return Batch{}, &mixerr.LengthMismatchError{Want: b.Len(), Got: p.Len()}
	}
	out := make([]group.Element, b.Len())
	err := e.forEach(ctx, b.Len(), func(lo, hi int) {
		permuteRange(out, b.elems, p, lo, hi)
	})
	if err != nil {
		return Batch{}, err
	}
	return Batch{g: e.g, elems: out}, nil
}

// exponentiate computes in[i]*k for every i. Each index is written by
// exactly one goroutine and k is only read.
func (e *Engine) exponentiate(ctx context.Context, in []group.Element, k group.Scalar) (Batch, error) {
	out := make([]group.Element, len(in))
	err := e.forEach(ctx, len(in), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = e.g.NewElement().ScalarMult(k, in[i])
		}
	})
	if err != nil {
		return Batch{}, err
	}
	return Batch{g: e.g, elems: out}, nil
}

func (e *Engine) checkBatch(b Batch) error {
	if b.g == nil && b.Len() == 0 {
		return nil
	}
	if !group.Same(b.g, e.g) {
		return mixerr.Invalid(mixerr.KindBatch, mixerr.NoIndex,
			fmt.Errorf("%w: batch is %s, engine is %s", mixerr.ErrGroupMismatch, groupName(b.g), e.g.Name()))
	}
	return nil
}

// copyScalar validates k and returns a private copy in the engine's own
// representation, so the caller's value is neither retained nor shared
// with workers.
func (e *Engine) copyScalar(k group.Scalar) (group.Scalar, error) {
	if k == nil {
		return nil, mixerr.Invalid(mixerr.KindScalar, mixerr.NoIndex, mixerr.ErrNilScalar)
	}
	if !group.OwnsScalar(e.g, k) {
		return nil, mixerr.Invalid(mixerr.KindScalar, mixerr.NoIndex,
			fmt.Errorf("%w: scalar is not a %s scalar", mixerr.ErrGroupMismatch, e.g.Name()))
	}
	if k.IsZero() {
		return nil, mixerr.Invalid(mixerr.KindScalar, mixerr.NoIndex, mixerr.ErrZeroScalar)
	}
	c, err := e.g.NewScalar().SetBytes(k.Bytes())
	if err != nil {
		return nil, mixerr.Invalid(mixerr.KindScalar, mixerr.NoIndex,
			fmt.Errorf("%w: %w", mixerr.ErrInvalidEncoding, err))
	}
	return c, nil
}

// wipe overwrites s with zero. Go gives no guarantee that no other copy
// of the value survives in memory.
func (e *Engine) wipe(s group.Scalar) {
	if s != nil {
		s.Set(e.g.NewScalar())
	}
}

func (e *Engine) logDone(op string, n int, start time.Time) {
	e.log.Debug("batch operation done",
		"op", op,
		"size", n,
		"workers", e.workersFor(n),
		"elapsed", time.Since(start),
	)
}

func groupName(g group.Group) string {
	if g == nil {
		return "<nil>"
	}
	return g.Name()
}
