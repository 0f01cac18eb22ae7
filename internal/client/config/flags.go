package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/featurevote/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend
//	-d string   session database path
//	-e          keep the session in memory only (-e or -e=true)
//	-t int      cache freshness window (in seconds)
//	-r string   Redis address for the shared cache
//	-l string   log level
//	-i int      health check interval (in seconds), 0 disables it
//
// args is filtered with flagx.FilterArgs so flags owned by other loaders
// (-c/-config) do not break parsing.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-e", "-t", "-r", "-l", "-i"})

	fs := flag.NewFlagSet("fvcli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the featurevote backend")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the session database")
	fs.BoolVar(&cfg.Ephemeral, "e", cfg.Ephemeral, "keep the session in memory only")
	cacheTTL := fs.Int("t", int(cfg.CacheTTL.Seconds()), "cache freshness window (in seconds)")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address for the shared query cache")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	healthInterval := fs.Int("i", int(cfg.HealthCheckInterval.Seconds()), "health check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.CacheTTL = time.Duration(*cacheTTL) * time.Second
		case "i":
			cfg.HealthCheckInterval = time.Duration(*healthInterval) * time.Second
		}
	})
	return nil
}
