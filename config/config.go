package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/f3rmion/tokenmix/bjj"
	"github.com/f3rmion/tokenmix/ed25519"
	"github.com/f3rmion/tokenmix/group"
	"github.com/f3rmion/tokenmix/mix"
	"github.com/f3rmion/tokenmix/ristretto"
	"github.com/f3rmion/tokenmix/session"
	"gopkg.in/yaml.v3"
)

// Group names accepted in the group field.
const (
	Ristretto255 = "ristretto255"
	Edwards25519 = "edwards25519"
	BabyJubjub   = "babyjubjub"
)

var groups = map[string]func() group.Group{
	Ristretto255: func() group.Group { return ristretto.New() },
	Edwards25519: func() group.Group { return ed25519.NewCurve() },
	BabyJubjub:   func() group.Group { return &bjj.BJJ{} },
}

// Config is the file form of an engine configuration.
type Config struct {
	Group             string `yaml:"group"`
	Workers           int    `yaml:"workers"`
	ParallelThreshold int    `yaml:"parallel_threshold"`
	AllowDuplicates   bool   `yaml:"allow_duplicates"`
	LogLevel          string `yaml:"log_level"`

	// KeyDir holds per-epoch master key files for a mixing server.
	KeyDir string `yaml:"key_dir"`
}

// Default returns the configuration used for fields a file leaves out.
func Default() *Config {
	return &Config{
		Group:             Ristretto255,
		Workers:           runtime.GOMAXPROCS(0),
		ParallelThreshold: mix.DefaultParallelThreshold,
		LogLevel:          "info",
	}
}

// Load reads and validates a YAML (or JSON) configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML (or JSON) configuration over [Default] and
// validates it. Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if _, ok := groups[c.Group]; !ok {
		return fmt.Errorf("config: unknown group %q", c.Group)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must not be negative, got %d", c.Workers)
	}
	if c.ParallelThreshold < 0 {
		return fmt.Errorf("config: parallel_threshold must not be negative, got %d", c.ParallelThreshold)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// NewGroup returns the configured group.
func (c *Config) NewGroup() (group.Group, error) {
	mk, ok := groups[c.Group]
	if !ok {
		return nil, fmt.Errorf("config: unknown group %q", c.Group)
	}
	return mk(), nil
}

// Level returns the configured log level. An empty level is info.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: log_level: %w", err)
	}
	return l, nil
}

// NewLogger returns a text logger writing to stderr at the configured
// level.
func (c *Config) NewLogger() (*slog.Logger, error) {
	l, err := c.Level()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})), nil
}

// NewEngine builds an engine for the configured group. Permutations are
// drawn from crypto/rand. A nil logger discards.
func (c *Config) NewEngine(logger *slog.Logger) (*mix.Engine, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	g, err := c.NewGroup()
	if err != nil {
		return nil, err
	}
	return mix.NewEngine(g, mix.Config{
		Workers:           c.Workers,
		ParallelThreshold: c.ParallelThreshold,
		AllowDuplicates:   c.AllowDuplicates,
		Logger:            logger,
	})
}

// NewKeyring returns a keyring loading per-epoch master keys from
// KeyDir.
func (c *Config) NewKeyring(e *mix.Engine, logger *slog.Logger) (*session.Keyring, error) {
	if c.KeyDir == "" {
		return nil, errors.New("config: key_dir is not set")
	}
	return session.NewKeyring(e, session.DirLoader(e.Group(), c.KeyDir), logger), nil
}
