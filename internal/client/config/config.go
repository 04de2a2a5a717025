package config

import (
	"os"
	"path/filepath"
	"time"
)

// ConfigFileEnv names the JSON config file when --config is not given.
const ConfigFileEnv = "NEWSCTL_CONFIG"

// Config holds runtime settings for the newsctl CLI.
type Config struct {
	// ServerURL is the base URL of the newsroom HTTP API.
	ServerURL string
	// TokenFile is where login stores the access token (mode 0600).
	TokenFile string
	Timeout   time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.TokenFile = defaultTokenFile()
	c.Timeout = 10 * time.Second
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "newsctl", "token")
}

// Load constructs a Config from defaults, the JSON file at path (or
// ConfigFileEnv when path is empty) and the environment. Later sources take
// precedence over earlier ones.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path == "" {
		path = os.Getenv(ConfigFileEnv)
	}
	if err := parseJson(cfg, path); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
