package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	g, err := cfg.NewGroup()
	require.NoError(t, err)
	require.Equal(t, Ristretto255, g.Name())

	l, err := cfg.Level()
	require.NoError(t, err)
	require.Equal(t, slog.LevelInfo, l)
}

func TestParseYAML(t *testing.T) {
	cfg, err := Parse([]byte(`
group: babyjubjub
workers: 3
parallel_threshold: 64
allow_duplicates: true
log_level: debug
`))
	require.NoError(t, err)
	require.Equal(t, BabyJubjub, cfg.Group)
	require.Equal(t, 3, cfg.Workers)
	require.Equal(t, 64, cfg.ParallelThreshold)
	require.True(t, cfg.AllowDuplicates)

	l, err := cfg.Level()
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, l)

	e, err := cfg.NewEngine(nil)
	require.NoError(t, err)
	require.Equal(t, "babyjubjub", e.Group().Name())
	require.Equal(t, 3, e.Config().Workers)
	require.Equal(t, 64, e.Config().ParallelThreshold)
	require.True(t, e.Config().AllowDuplicates)
}

func TestParseJSON(t *testing.T) {
	cfg, err := Parse([]byte(`{"group": "edwards25519", "log_level": "warn"}`))
	require.NoError(t, err)
	require.Equal(t, Edwards25519, cfg.Group)

	l, err := cfg.Level()
	require.NoError(t, err)
	require.Equal(t, slog.LevelWarn, l)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"UnknownGroup", "group: secp256k1"},
		{"NegativeWorkers", "workers: -1"},
		{"NegativeThreshold", "parallel_threshold: -5"},
		{"BadLevel", "log_level: loud"},
		{"UnknownField", "threads: 4"},
		{"Malformed", "group: [ristretto255"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in))
			require.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tokenmix.yaml")
	require.NoError(t, os.WriteFile(path, []byte("group: edwards25519\nworkers: 2\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Edwards25519, cfg.Group)
	require.Equal(t, 2, cfg.Workers)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewLogger(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "error"
	logger, err := cfg.NewLogger()
	require.NoError(t, err)
	require.False(t, logger.Enabled(context.Background(), slog.LevelWarn))
	require.True(t, logger.Enabled(context.Background(), slog.LevelError))
}

func TestNewKeyring(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "7.key"), []byte("seven"), 0o600))

	cfg := Default()
	e, err := cfg.NewEngine(nil)
	require.NoError(t, err)

	_, err = cfg.NewKeyring(e, nil)
	require.Error(t, err)

	cfg.KeyDir = dir
	ring, err := cfg.NewKeyring(e, nil)
	require.NoError(t, err)
	defer ring.Close()

	s, err := ring.Server(7)
	require.NoError(t, err)
	require.NotNil(t, s)

	_, err = ring.Server(8)
	require.ErrorIs(t, err, os.ErrNotExist)
}
