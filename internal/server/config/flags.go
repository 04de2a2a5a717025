package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/newsroom/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   HTTP bind address (e.g. ":8000")
//	-g string   gRPC bind address (e.g. ":50051")
//	-d string   PostgreSQL DSN, or "memory"
//	-s string   JWT HMAC secret key
//	-j string   JWT algorithm (HS256, HS384, HS512)
//	-i string   JWT issuer
//	-t int      access token validity, minutes
//	-p string   password scheme (bcrypt, argon2id)
//	-k int      bcrypt cost
//	-u string   bootstrap admin email
//	-w string   bootstrap admin password
//	-l int      login requests per minute per client IP, 0 disables
//	-b int      login burst
//	-v string   log level
//
// os.Args is filtered with flagx.FilterArgs first so that -c/-config and
// unknown flags do not reach this FlagSet.
func parseFlags(config *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-g", "-d", "-s", "-j", "-i", "-t", "-p", "-k", "-u", "-w", "-l", "-b", "-v",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN or \"memory\"")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.JWTAlgorithm, "j", config.JWTAlgorithm, "JWT signing algorithm")
	fs.StringVar(&config.JWTIssuer, "i", config.JWTIssuer, "JWT issuer")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")

	fs.StringVar(&config.PasswordScheme, "p", config.PasswordScheme, "password hashing scheme")
	fs.IntVar(&config.BcryptCost, "k", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.AdminEmail, "u", config.AdminEmail, "bootstrap admin email")
	fs.StringVar(&config.AdminPassword, "w", config.AdminPassword, "bootstrap admin password")
	fs.IntVar(&config.LoginRateLimit, "l", config.LoginRateLimit, "login requests per minute per client IP")
	fs.IntVar(&config.LoginRateBurst, "b", config.LoginRateBurst, "login burst")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// only override when -t was given, so sub-minute values from JSON survive
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
		}
	})

	return nil
}
