package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadNotInitialized(t *testing.T) {
	viper.Reset()
	path := filepath.Join(t.TempDir(), "config.yaml")

	_, err := Load(path, false)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestLoadAllowMissing(t *testing.T) {
	viper.Reset()
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, EnvLocal, cfg.Env)
	assert.True(t, cfg.Color)
	assert.Equal(t, path, cfg.Path)

	// Умолчания доступны командам через viper
	assert.Equal(t, 45, viper.GetInt("clip.timeout"))
	assert.Equal(t, 20, viper.GetInt("generate.length"))
	assert.Equal(t, "dmenu", viper.GetString("autotype.menu"))
}

func TestWriteAndLoad(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	require.NoError(t, Write(path, "/tmp/db.gpg", "takis@example.com"))

	cfg, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/db.gpg", cfg.Database)
	assert.Equal(t, "takis@example.com", cfg.GPGID)
	assert.Equal(t, dir, cfg.Dir)
}

func TestLoadValidates(t *testing.T) {
	viper.Reset()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: /tmp/db.gpg\n"), 0o600))

	_, err := Load(path, false)
	assert.ErrorContains(t, err, "gpg_id")
}

func TestLoadDiscoversHooks(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, Write(path, "/tmp/db.gpg", "id"))

	hooks := filepath.Join(dir, "hooks")
	require.NoError(t, os.MkdirAll(hooks, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(hooks, "pre-read"), []byte("#!/bin/sh\n"), 0o700))

	cfg, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(hooks, "pre-read"), cfg.PreReadHook)
	assert.Empty(t, cfg.PostWriteHook)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "tilde prefix", path: "~/db.gpg", expected: filepath.Join(home, "db.gpg")},
		{name: "bare tilde", path: "~", expected: home},
		{name: "absolute untouched", path: "/tmp/db.gpg", expected: "/tmp/db.gpg"},
		{name: "tilde in the middle untouched", path: "/tmp/~/db.gpg", expected: "/tmp/~/db.gpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandHome(tt.path))
		})
	}
}
