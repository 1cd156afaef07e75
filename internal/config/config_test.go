package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromArgsDefaults(t *testing.T) {
	cfg, err := FromArgs("httpserver", nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "127.0.0.1:4221", cfg.Addr)
	assert.Empty(t, cfg.Directory)
}

func TestFromArgs(t *testing.T) {
	dir := t.TempDir()
	cfg, err := FromArgs("httpserver", []string{
		"--directory", dir,
		"--addr", "0.0.0.0:8080",
		"--max-conns", "4",
		"--buffer-size", "4096",
	}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, Config{Addr: "0.0.0.0:8080", Directory: dir, MaxConns: 4, BufferSize: 4096}, cfg)
}

func TestFromArgsErrors(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	for _, args := range [][]string{
		{"--max-conns", "0"},
		{"--buffer-size", "8"},
		{"--addr", ""},
		{"--directory", filepath.Join(t.TempDir(), "missing")},
		{"--directory", file},
		{"--unknown"},
		{"extra"},
	} {
		_, err := FromArgs("httpserver", args, io.Discard)
		assert.Error(t, err, "%v", args)
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	err := Config{MaxConns: 0, BufferSize: 0}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "addr")
	assert.Contains(t, err.Error(), "max-conns")
	assert.Contains(t, err.Error(), "buffer-size")
}
