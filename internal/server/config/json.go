package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/newsroom/internal/flagx"
	"github.com/dmitrijs2005/newsroom/internal/timex"
)

// ConfigFileEnv names the environment variable consulted when neither -c nor
// -config is given.
const ConfigFileEnv = "NEWSROOM_CONFIG"

// JsonConfig is the on-disk shape of the configuration file. Durations accept
// strings such as "30m" or integer nanoseconds. Absent fields keep the value
// from the previous layer.
type JsonConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	JWTAlgorithm                string         `json:"jwt_algorithm"`
	JWTIssuer                   string         `json:"jwt_issuer"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	PasswordScheme              string         `json:"password_scheme"`
	BcryptCost                  int            `json:"bcrypt_cost"`
	AdminEmail                  string         `json:"admin_email"`
	AdminPassword               string         `json:"admin_password"`
	LoginRateLimit              *int           `json:"login_rate_limit"`
	LoginRateBurst              *int           `json:"login_rate_burst"`
	LogLevel                    string         `json:"log_level"`
}

// parseJson overlays the file named by -c/-config (or NEWSROOM_CONFIG) onto
// config. No file configured is not an error.
func parseJson(config *Config) error {
	jsonConfigFile := flagx.ConfigFile(ConfigFileEnv)

	// nothing to load
	if jsonConfigFile == "" {
		return nil
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", jsonConfigFile, err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.JWTAlgorithm, c.JWTAlgorithm)
	setString(&config.JWTIssuer, c.JWTIssuer)
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	setString(&config.PasswordScheme, c.PasswordScheme)
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	setString(&config.AdminEmail, c.AdminEmail)
	setString(&config.AdminPassword, c.AdminPassword)
	if c.LoginRateLimit != nil {
		config.LoginRateLimit = *c.LoginRateLimit
	}
	if c.LoginRateBurst != nil {
		config.LoginRateBurst = *c.LoginRateBurst
	}
	setString(&config.LogLevel, c.LogLevel)

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
