package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const envPrefix = "NEWSROOM_"

// parseEnv overlays NEWSROOM_* environment variables onto config.
func parseEnv(config *Config) error {
	strs := map[string]*string{
		"HTTP_ADDR":       &config.EndpointAddrHTTP,
		"GRPC_ADDR":       &config.EndpointAddrGRPC,
		"DATABASE_DSN":    &config.DatabaseDSN,
		"SECRET_KEY":      &config.SecretKey,
		"JWT_ALGORITHM":   &config.JWTAlgorithm,
		"JWT_ISSUER":      &config.JWTIssuer,
		"PASSWORD_SCHEME": &config.PasswordScheme,
		"ADMIN_EMAIL":     &config.AdminEmail,
		"ADMIN_PASSWORD":  &config.AdminPassword,
		"LOG_LEVEL":       &config.LogLevel,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"BCRYPT_COST":      &config.BcryptCost,
		"LOGIN_RATE_LIMIT": &config.LoginRateLimit,
		"LOGIN_RATE_BURST": &config.LoginRateBurst,
	}
	for name, dst := range ints {
		v, ok := os.LookupEnv(envPrefix + name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, name, err)
		}
		*dst = n
	}

	if v, ok := os.LookupEnv(envPrefix + "ACCESS_TOKEN_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sACCESS_TOKEN_TTL: %w", envPrefix, err)
		}
		config.AccessTokenValidityDuration = d
	}

	return nil
}
