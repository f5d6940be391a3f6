package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr         string
	LogLevel     string
	APIKey       string
	BaseURL      string
	HTTPTimeout  time.Duration
	CacheBackend string
	CacheTTL     time.Duration
	CacheSize    int
	RedisAddr    string
	MCPTransport string
}

// FromEnv loads configuration from the process environment.
// EIA_API_KEY is checked separately via Validate so that tests and
// offline commands can construct a Config without a credential.
func FromEnv() Config {
	addr := getenv("ADDR", "")
	if addr == "" {
		// PORT is the conventional name on most hosting platforms
		if p := strings.TrimSpace(os.Getenv("PORT")); p != "" {
			addr = ":" + strings.TrimPrefix(p, ":")
		} else {
			addr = ":8000"
		}
	}

	return Config{
		Addr:         addr,
		LogLevel:     getenv("LOG_LEVEL", "info"),
		APIKey:       strings.TrimSpace(os.Getenv("EIA_API_KEY")),
		BaseURL:      getenv("EIA_BASE_URL", "https://api.eia.gov/v2"),
		HTTPTimeout:  getduration("HTTP_TIMEOUT", 30*time.Second),
		CacheBackend: strings.ToLower(getenv("CACHE_BACKEND", "memory")),
		CacheTTL:     getduration("CACHE_TTL", 5*time.Minute),
		CacheSize:    getint("CACHE_SIZE", 256),
		RedisAddr:    getenv("REDIS_ADDR", "localhost:6379"),
		MCPTransport: strings.ToLower(getenv("MCP_TRANSPORT", "stdio")),
	}
}

// Validate checks the parts of the configuration that have no usable default.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("EIA_API_KEY is not set")
	}
	if c.CacheBackend != "memory" && c.CacheBackend != "redis" {
		return errors.New("CACHE_BACKEND must be memory or redis")
	}
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
