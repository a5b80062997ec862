package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays config with environment variables:
//
//	PORT                 HTTP port; the API listens on ":"+PORT
//	DATABASE_DSN         PostgreSQL DSN
//	SECRET_KEY           cookie signing secret
//	SESSION_TTL          session lifetime as a Go duration ("1h")
//	PASSWORD_HASH_COST   bcrypt work factor
//
// Malformed numeric or duration values panic, like a bad config file.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		config.EndpointAddrHTTP = ":" + v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok && v != "" {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("SECRET_KEY"); ok && v != "" {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("SESSION_TTL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.SessionValidityDuration = d
	}
	if v, ok := os.LookupEnv("PASSWORD_HASH_COST"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		config.PasswordHashCost = n
	}
}
