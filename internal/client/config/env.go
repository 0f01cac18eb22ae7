package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	envAPIURL         = "FEATUREVOTE_API_URL"
	envDBPath         = "FEATUREVOTE_DB_PATH"
	envEphemeral      = "FEATUREVOTE_EPHEMERAL"
	envCacheTTL       = "FEATUREVOTE_CACHE_TTL"
	envRedisAddr      = "FEATUREVOTE_REDIS_ADDR"
	envLogLevel       = "FEATUREVOTE_LOG_LEVEL"
	envRequestTimeout = "FEATUREVOTE_REQUEST_TIMEOUT"
	envHealthInterval = "FEATUREVOTE_HEALTH_INTERVAL"
)

// loadDotEnv exports the variables of path into the process environment.
// Variables already set win, and a missing file is not an error.
func loadDotEnv(path string) {
	_ = godotenv.Load(path)
}

// parseEnv overlays cfg with FEATUREVOTE_* variables that are set and
// non-empty. Durations accept "5m" style strings or whole seconds.
func parseEnv(cfg *Config) error {
	if v := os.Getenv(envAPIURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(envDBPath); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv(envRedisAddr); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(envEphemeral); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envEphemeral, err)
		}
		cfg.Ephemeral = b
	}
	if err := envDuration(envCacheTTL, &cfg.CacheTTL); err != nil {
		return err
	}
	if err := envDuration(envRequestTimeout, &cfg.RequestTimeout); err != nil {
		return err
	}
	return envDuration(envHealthInterval, &cfg.HealthCheckInterval)
}

func envDuration(name string, dst *time.Duration) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		*dst = time.Duration(secs) * time.Second
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = d
	return nil
}
