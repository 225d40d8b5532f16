package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Cyclone1070/spyglass-pinned/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pinned.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://github.com", cfg.Upstream.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 300*time.Second, cfg.Headers.CacheMaxAge)
	assert.Equal(t, "*", cfg.Headers.AllowOrigin)
	assert.Equal(t, []string{"GET"}, cfg.Headers.AllowMethods)
	assert.False(t, cfg.Upstream.Headless)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
  root_redirect: https://example.com/docs
upstream:
  base_url: http://localhost:1234
  timeout: 5s
  headless: true
headers:
  cache_max_age: 1m
log:
  level: debug
  format: json
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "https://example.com/docs", cfg.Server.RootRedirect)
	assert.Equal(t, "http://localhost:1234", cfg.Upstream.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Upstream.Timeout)
	assert.True(t, cfg.Upstream.Headless)
	assert.Equal(t, time.Minute, cfg.Headers.CacheMaxAge)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	// untouched keys keep their defaults
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
}

func TestLoadEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PINNED_UPSTREAM_TIMEOUT", "7s")
	t.Setenv("PORT", "3000")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 7*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoadErrors(t *testing.T) {
	testCases := map[string]string{
		"bad port":       "server:\n  port: 70000\n",
		"zero timeout":   "upstream:\n  timeout: 0s\n",
		"unknown format": "log:\n  format: xml\n",
		"malformed yaml": "server: [\n",
		"negative cache": "headers:\n  cache_max_age: -1s\n",
	}
	for description, content := range testCases {
		t.Run(description, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
