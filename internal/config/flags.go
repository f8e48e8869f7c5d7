package config

import (
	"flag"
	"os"

	"github.com/gokturk078/cektakip/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-b string   remote backend: github, s3 or postgres
//	-t string   GitHub API token
//	-d string   local cache database path
//	-dsn string PostgreSQL DSN for the postgres backend
//
// Only the flags above are parsed here (via flagx.FilterArgs) so the JSON
// config flag keeps working alongside.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-t", "-d", "-dsn"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "remote backend (github|s3|postgres)")
	fs.StringVar(&cfg.GitHubToken, "t", cfg.GitHubToken, "GitHub API token")
	fs.StringVar(&cfg.CachePath, "d", cfg.CachePath, "local cache database path")
	fs.StringVar(&cfg.DatabaseDSN, "dsn", cfg.DatabaseDSN, "PostgreSQL DSN")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
