package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/useraccounts/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   HTTP bind address (e.g. ":8080")
//	-g string   gRPC health bind address, empty disables
//	-d string   PostgreSQL DSN
//	-s string   cookie signing secret
//	-t int      session validity, minutes
//	-w int      bcrypt work factor
//	-k string   session cookie name
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-s", "-t", "-w", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run HTTP server")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to run gRPC health server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	sessionValidity := fs.Int("t", int(config.SessionValidityDuration.Minutes()), "session validity duration (in minutes)")
	fs.IntVar(&config.PasswordHashCost, "w", config.PasswordHashCost, "bcrypt work factor")
	fs.StringVar(&config.CookieName, "k", config.CookieName, "session cookie name")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.SessionValidityDuration = time.Duration(*sessionValidity) * time.Minute
		}
	})
}
