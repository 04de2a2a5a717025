// Package config loads runtime configuration for the newsctl CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file, named by the --config flag or NEWSCTL_CONFIG.
//  3. Environment variables NEWSCTL_SERVER, NEWSCTL_TOKEN_FILE and
//     NEWSCTL_TIMEOUT.
//  4. Command-line flags, applied by the cli package on top of Load's result.
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so it can be either a
// string like "10s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://localhost:8000",
//	  "token_file": "/home/me/.newsctl/token",
//	  "timeout": "10s"
//	}
package config
