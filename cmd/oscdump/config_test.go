package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oscdump.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
addr = "0.0.0.0:9000"
network = "tcp"
read_timeout = "500ms"
verbose = true
`)

	cfg := defaultConfig()
	require.NoError(t, loadConfig(path, &cfg))

	assert.Equal(t, "0.0.0.0:9000", cfg.Addr)
	assert.Equal(t, "tcp", cfg.Network)
	assert.Equal(t, 500*time.Millisecond, cfg.ReadTimeout)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfigPartial(t *testing.T) {
	path := writeConfig(t, `addr = ":7000"`)

	// Keys absent from the file keep their defaults.
	cfg := defaultConfig()
	require.NoError(t, loadConfig(path, &cfg))

	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, "udp", cfg.Network)
	assert.Zero(t, cfg.ReadTimeout)
	assert.False(t, cfg.Verbose)
}

func TestLoadConfigInvalid(t *testing.T) {
	for _, tt := range []struct {
		name    string
		content string
	}{
		{"bad_toml", `addr = `},
		{"bad_duration", `read_timeout = "fast"`},
		{"bad_network", `network = "sctp"`},
	} {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			assert.Error(t, loadConfig(writeConfig(t, tt.content), &cfg))
		})
	}
}
