package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Remote API
	APIBaseURL string

	// Outbound request limiter
	RequestRate  float64
	RequestBurst int

	// Persisted client state (token + identity)
	StateBackend string
	StateDBPath  string

	// Notifications
	PollInterval time.Duration

	// Transactions list
	PageSize int

	// Caches
	CategoryCacheTTL time.Duration
	ReportCacheTTL   time.Duration
}

func Load() *Config {
	return &Config{
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:8080/api"),

		RequestRate:  getEnvFloat("API_REQUEST_RATE", 10),
		RequestBurst: getEnvInt("API_REQUEST_BURST", 30),

		StateBackend: getEnv("STATE_BACKEND", "sqlite"),
		StateDBPath:  getEnv("STATE_DB_PATH", "./data/finboard.db"),

		PollInterval: getEnvDuration("NOTIFICATION_POLL_INTERVAL", 60*time.Second),

		PageSize: getEnvInt("TRANSACTIONS_PAGE_SIZE", 10),

		CategoryCacheTTL: getEnvDuration("CATEGORY_CACHE_TTL", 5*time.Minute),
		ReportCacheTTL:   getEnvDuration("REPORT_CACHE_TTL", 15*time.Minute),
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errors []string

	if parsed, err := url.Parse(c.APIBaseURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid API base URL '%s': %v", c.APIBaseURL, err))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid API base URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
	} else if parsed.Host == "" {
		errors = append(errors, fmt.Sprintf("invalid API base URL '%s': missing host", c.APIBaseURL))
	}

	if c.RequestRate <= 0 {
		errors = append(errors, fmt.Sprintf("invalid request rate %v: must be positive", c.RequestRate))
	}
	if c.RequestBurst < 1 {
		errors = append(errors, fmt.Sprintf("invalid request burst %d: must be at least 1", c.RequestBurst))
	}

	validBackends := []string{"memory", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.StateBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid state backend '%s': must be one of %v", c.StateBackend, validBackends))
	}

	if c.StateBackend == "sqlite" {
		if c.StateDBPath == "" {
			errors = append(errors, "state database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.StateDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create state database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if c.PollInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid poll interval %v: must be at least 1 second", c.PollInterval))
	} else if c.PollInterval > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid poll interval %v: must be at most 24 hours", c.PollInterval))
	}

	if c.PageSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid page size %d: must be at least 1", c.PageSize))
	} else if c.PageSize > 100 {
		errors = append(errors, fmt.Sprintf("invalid page size %d: must be at most 100", c.PageSize))
	}

	if c.CategoryCacheTTL < 0 {
		errors = append(errors, fmt.Sprintf("invalid category cache TTL %v: must not be negative", c.CategoryCacheTTL))
	}
	if c.ReportCacheTTL < 0 {
		errors = append(errors, fmt.Sprintf("invalid report cache TTL %v: must not be negative", c.ReportCacheTTL))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
