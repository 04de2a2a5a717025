package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	dir := t.TempDir()

	t.Run("overlays present fields only", func(t *testing.T) {
		path := writeTempJSON(t, dir, "partial.json", map[string]any{"timeout": 2000000000})

		cfg := &Config{ServerURL: "http://keep:1", TokenFile: "/keep", Timeout: time.Second}
		require.NoError(t, parseJson(cfg, path))

		assert.Equal(t, "http://keep:1", cfg.ServerURL)
		assert.Equal(t, "/keep", cfg.TokenFile)
		assert.Equal(t, 2*time.Second, cfg.Timeout)
	})

	t.Run("empty path → no changes", func(t *testing.T) {
		cfg := &Config{ServerURL: "http://keep:1"}
		require.NoError(t, parseJson(cfg, ""))
		assert.Equal(t, "http://keep:1", cfg.ServerURL)
	})

	t.Run("invalid JSON → error", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		assert.Error(t, parseJson(&Config{}, bad))
	})

	t.Run("missing file → error", func(t *testing.T) {
		assert.Error(t, parseJson(&Config{}, filepath.Join(dir, "nope.json")))
	})
}
