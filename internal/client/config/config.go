package config

import "time"

// Config holds runtime settings for the featurevote CLI.
//
// Fields:
//   - APIBaseURL: base URL of the featurevote REST backend.
//   - DatabasePath: SQLite file holding the session.
//   - Ephemeral: keep the session in memory only; DatabasePath is ignored.
//   - CacheTTL: freshness window of cached reads.
//   - RedisAddr: optional host:port of a shared Redis query cache.
//   - LogLevel: debug, info, warn or error.
//   - RequestTimeout: per-request bound; zero keeps the transport default.
//   - HealthCheckInterval: how often the CLI probes backend reachability;
//     zero disables the probe.
type Config struct {
	APIBaseURL     string
	DatabasePath   string
	Ephemeral      bool
	CacheTTL       time.Duration
	RedisAddr      string
	LogLevel       string
	RequestTimeout time.Duration

	HealthCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.DatabasePath = "featurevote.db"
	c.Ephemeral = false
	c.CacheTTL = 5 * time.Minute
	c.RedisAddr = ""
	c.LogLevel = "info"
	c.RequestTimeout = 0
	c.HealthCheckInterval = 30 * time.Second
}

// LoadConfig constructs a Config from args (without the program name):
// defaults, then environment (including a .env file in the working
// directory), then the JSON file named by -c/-config, then flags. Later
// sources take precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	loadDotEnv(".env")
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
