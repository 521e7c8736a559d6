package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrServerAddrRequired     = errors.New("site config: server address is required")
	ErrTimeoutInvalid         = errors.New("site config: timeouts must be zero or positive")
	ErrStorageDriverUnknown   = errors.New("site config: storage driver is invalid")
	ErrStorageDSNRequired     = errors.New("site config: storage dsn is required for sql drivers")
	ErrStorageURIRequired     = errors.New("site config: storage uri is required for mongo")
	ErrStorageDatabaseMissing = errors.New("site config: storage database is required for mongo")
	ErrTemplatesDirRequired   = errors.New("site config: templates directory is required")
	ErrLoggingProviderUnknown = errors.New("site config: logging provider is invalid")
	ErrLoggingLevelInvalid    = errors.New("site config: logging level is invalid")
	ErrLoggingFormatInvalid   = errors.New("site config: logging format is invalid")
	ErrRetryInvalid           = errors.New("site config: retry attempts must be at least one and backoff zero or positive")
	ErrLiveBufferInvalid      = errors.New("site config: live buffer must be positive")
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Config aggregates every setting of the site process.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Templates TemplatesConfig `yaml:"templates"`
	Logging   LoggingConfig   `yaml:"logging"`
	Retry     RetryConfig     `yaml:"retry"`
	Live      LiveConfig      `yaml:"live"`
}

// ServerConfig holds the listener address and HTTP timeouts.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	StaticDir       string        `yaml:"static_dir"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StorageConfig selects the store. DSN is the SQL connection string or the
// MongoDB URI.
type StorageConfig struct {
	Driver             string `yaml:"driver"`
	DSN                string `yaml:"dsn"`
	Database           string `yaml:"database"`
	PostsCollection    string `yaml:"posts_collection"`
	CountersCollection string `yaml:"counters_collection"`
	AutoMigrate        bool   `yaml:"auto_migrate"`
}

// TemplatesConfig locates the page templates.
type TemplatesConfig struct {
	Dir string `yaml:"dir"`
	// Reload watches Dir and drops cached templates on change.
	Reload bool `yaml:"reload"`
}

// LoggingConfig selects the logger provider and level.
type LoggingConfig struct {
	Provider string `yaml:"provider"`
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
}

// RetryConfig bounds store retries.
type RetryConfig struct {
	Attempts int           `yaml:"attempts"`
	Backoff  time.Duration `yaml:"backoff"`
}

// LiveConfig sizes live feed buffers.
type LiveConfig struct {
	Buffer int `yaml:"buffer"`
}

// DefaultConfig returns a valid configuration using the memory store.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:            "127.0.0.1:3000",
			StaticDir:       "public",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			RequestTimeout:  15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Driver:             DriverMemory,
			PostsCollection:    "posts",
			CountersCollection: "counters",
			AutoMigrate:        true,
		},
		Templates: TemplatesConfig{
			Dir: "templates",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Retry: RetryConfig{
			Attempts: 3,
			Backoff:  100 * time.Millisecond,
		},
		Live: LiveConfig{
			Buffer: 16,
		},
	}
}

// Validate performs consistency checks and returns the first failure.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return ErrServerAddrRequired
	}
	for name, d := range map[string]time.Duration{
		"read":     cfg.Server.ReadTimeout,
		"write":    cfg.Server.WriteTimeout,
		"idle":     cfg.Server.IdleTimeout,
		"request":  cfg.Server.RequestTimeout,
		"shutdown": cfg.Server.ShutdownTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("%w: %s", ErrTimeoutInvalid, name)
		}
	}

	switch driver := NormalizeDriver(cfg.Storage.Driver); driver {
	case DriverMemory:
	case DriverSQLite, DriverPostgres:
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return fmt.Errorf("%w: %s", ErrStorageDSNRequired, driver)
		}
	case DriverMongo:
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageURIRequired
		}
		if strings.TrimSpace(cfg.Storage.Database) == "" {
			return ErrStorageDatabaseMissing
		}
	default:
		return fmt.Errorf("%w: %q", ErrStorageDriverUnknown, cfg.Storage.Driver)
	}

	if strings.TrimSpace(cfg.Templates.Dir) == "" {
		return ErrTemplatesDirRequired
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %q", ErrLoggingProviderUnknown, cfg.Logging.Provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}

	if cfg.Retry.Attempts < 1 || cfg.Retry.Backoff < 0 {
		return ErrRetryInvalid
	}
	if cfg.Live.Buffer < 1 {
		return ErrLiveBufferInvalid
	}
	return nil
}

// NormalizeDriver lower-cases the driver and maps common aliases.
func NormalizeDriver(driver string) string {
	switch d := strings.ToLower(strings.TrimSpace(driver)); d {
	case "", "mem":
		return DriverMemory
	case "sqlite3":
		return DriverSQLite
	case "postgresql", "pg":
		return DriverPostgres
	case "mongodb":
		return DriverMongo
	default:
		return d
	}
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
