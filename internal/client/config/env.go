package config

import (
	"fmt"
	"os"
	"time"
)

func parseEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("NEWSCTL_SERVER"); ok && v != "" {
		cfg.ServerURL = v
	}
	if v, ok := os.LookupEnv("NEWSCTL_TOKEN_FILE"); ok && v != "" {
		cfg.TokenFile = v
	}
	if v, ok := os.LookupEnv("NEWSCTL_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("NEWSCTL_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	return nil
}
