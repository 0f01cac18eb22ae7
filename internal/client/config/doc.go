// Package config loads runtime configuration for the featurevote CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables FEATUREVOTE_*, seeded from an optional .env file.
//  3. Optional JSON file selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend (default http://localhost:8000)
//	-d string   session database path (default featurevote.db)
//	-e          in-memory session only
//	-t int      cache freshness window in seconds (default 300)
//	-r string   Redis address for a shared query cache
//	-l string   log level (default info)
//	-i int      health check interval in seconds (default 30, 0 disables)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "5m" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8000",
//	  "database_path": "featurevote.db",
//	  "cache_ttl": "5m",
//	  "cache_redis_addr": "localhost:6379",
//	  "log_level": "debug",
//	  "request_timeout": "10s",
//	  "health_check_interval": "30s"
//	}
package config
