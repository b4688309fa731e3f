// Package config provides centralized configuration management for the roster tools.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Roster   RosterConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string. Empty selects the in-memory store.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 10)
	MaxConns int `env:"DB_MAX_CONNS" default:"10"`

	// MinConns is the minimum number of connections to keep open (default: 1)
	MinConns int `env:"DB_MIN_CONNS" default:"1"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// Enabled reports whether a database is configured.
func (c *DatabaseConfig) Enabled() bool {
	return c.URL != ""
}

// RosterConfig holds import and export settings.
type RosterConfig struct {
	// DefaultFile is imported when no path is given (default: members.csv)
	DefaultFile string `env:"ROSTER_DEFAULT_FILE" default:"members.csv"`

	// ExportFile is written when no path is given (default: members.csv)
	ExportFile string `env:"ROSTER_EXPORT_FILE" default:"members.csv"`

	// OpenAfterExport opens exported files in the system viewer (default: false)
	OpenAfterExport bool `env:"ROSTER_OPEN_AFTER_EXPORT" default:"false"`

	// MaxFileSize is the largest roster accepted, in bytes (default: 10MB)
	MaxFileSize int64 `env:"ROSTER_MAX_FILE_SIZE" default:"10485760"`

	// MaxConcurrent is the maximum number of parallel imports (default: 2)
	MaxConcurrent int `env:"ROSTER_MAX_CONCURRENT" default:"2"`

	// MaxWaitTime is how long an import waits for a slot (default: 10s)
	MaxWaitTime time.Duration `env:"ROSTER_MAX_WAIT_TIME" default:"10s"`

	// HistorySize is how many import runs are kept (default: 50)
	HistorySize int `env:"ROSTER_HISTORY_SIZE" default:"50"`

	// WatchDebounce delays re-imports after a file change (default: 500ms)
	WatchDebounce time.Duration `env:"ROSTER_WATCH_DEBOUNCE" default:"500ms"`
}

// SecurityConfig holds settings for the HTTP server's write endpoints.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of proxy CIDRs whose
	// X-Real-IP and X-Forwarded-For headers are honoured
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// APIKeys protects import and export endpoints when non-empty
	APIKeys []string `env:"API_KEYS"`

	// RequireAPIKey rejects writes that lack a valid key even when no keys
	// are configured (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`
}

// WritesGuarded reports whether write endpoints need an X-API-Key header.
func (c *SecurityConfig) WritesGuarded() bool {
	return c.RequireAPIKey || len(c.APIKeys) > 0
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
