package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8000", c.ServerURL)
	assert.Equal(t, 10*time.Second, c.Timeout)
	assert.NotEmpty(t, c.TokenFile)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTempJSON(t, "", "", map[string]any{
		"server_url": "http://file:1",
		"token_file": "/tmp/file-token",
		"timeout":    "3s",
	})
	t.Setenv(ConfigFileEnv, "")
	t.Setenv("NEWSCTL_SERVER", "http://env:2")
	t.Setenv("NEWSCTL_TOKEN_FILE", "")
	t.Setenv("NEWSCTL_TIMEOUT", "")

	cfg, err := Load(path)
	require.NoError(t, err)

	want := &Config{ServerURL: "http://env:2", TokenFile: "/tmp/file-token", Timeout: 3 * time.Second}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_ConfigFromEnv(t *testing.T) {
	path := writeTempJSON(t, "", "", map[string]any{"server_url": "http://file:1"})
	t.Setenv(ConfigFileEnv, path)
	t.Setenv("NEWSCTL_SERVER", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://file:1", cfg.ServerURL)
}

func TestLoad_BadTimeout(t *testing.T) {
	t.Setenv(ConfigFileEnv, "")
	t.Setenv("NEWSCTL_TIMEOUT", "soon")

	_, err := Load("")
	assert.Error(t, err)
}
