package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/dmitrijs2005/lightway/internal/flagx"
)

var serverFlags = []string{
	"-a", "-d", "-s", "-k", "-l",
	"-u", "-p", "-b", "-g", "-e",
	"-log-backend", "-log-level",
}

// parseFlags overlays cfg with command-line flags.
//
//	-a string        gRPC bind address (e.g. ":50051")
//	-d string        PostgreSQL DSN
//	-s string        session token HMAC secret
//	-k string        time-lock master encryption key
//	-l duration      identity lifetime (e.g. "24h")
//	-u string        S3 root user
//	-p string        S3 root password
//	-b string        S3 bucket name
//	-g string        S3 region
//	-e string        S3 base endpoint
//	-log-backend     "slog" or "logrus"
//	-log-level       debug, info, warn or error
//
// Arguments belonging to other parsers (such as -c) are filtered out first.
func parseFlags(cfg *Config) error {
	args := flagx.FilterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("lightway-server", flag.ContinueOnError)

	fs.StringVar(&cfg.EndpointAddrGRPC, "a", cfg.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "session token secret key")
	fs.StringVar(&cfg.EncryptionKey, "k", cfg.EncryptionKey, "master encryption key")
	fs.DurationVar(&cfg.IdentityLifetime, "l", cfg.IdentityLifetime, "facade identity lifetime")

	fs.StringVar(&cfg.S3RootUser, "u", cfg.S3RootUser, "S3 root user")
	fs.StringVar(&cfg.S3RootPassword, "p", cfg.S3RootPassword, "S3 root password")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3Region, "g", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3BaseEndpoint, "e", cfg.S3BaseEndpoint, "S3 base endpoint")

	fs.StringVar(&cfg.LogBackend, "log-backend", cfg.LogBackend, "logger backend (slog, logrus)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
