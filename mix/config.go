package mix

import (
	"crypto/rand"
	"io"
	"log/slog"
	"runtime"
)

const (
	// DefaultParallelThreshold is the smallest batch split across workers.
	DefaultParallelThreshold = 256

	// minChunk bounds how finely a batch is split between workers.
	minChunk = 32
	// chunksPerWorker oversubscribes workers so uneven chunks even out.
	chunksPerWorker = 4
)

// Config provides the tuning parameters of an [Engine].
type Config struct {
	// Workers caps the goroutines used by one batch operation.
	// Zero selects runtime.GOMAXPROCS(0).
	Workers int `json:"workers"`

	// ParallelThreshold is the batch size from which work is split over
	// Workers goroutines. Smaller batches run on the calling goroutine.
	ParallelThreshold int `json:"parallel_threshold"`

	// AllowDuplicates disables the rejection of repeated input tokens in
	// ShuffleAndBlind. Duplicates survive mixing as duplicates and so
	// link their owners.
	AllowDuplicates bool `json:"allow_duplicates"`

	// Rand is the source of permutation randomness. Nil selects
	// crypto/rand.Reader.
	Rand io.Reader `json:"-"`

	// Logger receives debug records about batch operations. Secrets and
	// token values are never logged. Nil discards.
	Logger *slog.Logger `json:"-"`
}

// DefaultConfig returns the configuration used by [NewEngine] for zero
// fields.
func DefaultConfig() Config {
	return Config{
		Workers:           runtime.GOMAXPROCS(0),
		ParallelThreshold: DefaultParallelThreshold,
		Rand:              rand.Reader,
		Logger:            slog.New(slog.DiscardHandler),
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Workers <= 0 {
		c.Workers = d.Workers
	}
	if c.ParallelThreshold <= 0 {
		c.ParallelThreshold = d.ParallelThreshold
	}
	if c.Rand == nil {
		c.Rand = d.Rand
	}
	if c.Logger == nil {
		c.Logger = d.Logger
	}
	return c
}
