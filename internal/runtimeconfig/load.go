package runtimeconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SITE_"

// Load builds a Config from defaults, the YAML file at path (optional when
// empty) and SITE_* environment variables, in that order, then validates it.
// envFiles are loaded into the environment first without overriding
// variables that are already set; when none are given an optional .env in
// the working directory is used.
func Load(path string, envFiles ...string) (Config, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("site config: read %s: %w", path, err)
		}
		if err := decodeYAML(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("site config: parse %s: %w", path, err)
		}
	}

	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("site config: load .env: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("site config: load env files: %w", err)
	}
	return nil
}

func decodeYAML(data []byte, cfg *Config) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overrides cfg with SITE_* variables reported by lookup.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"ADDR":                &cfg.Server.Addr,
		"STATIC_DIR":          &cfg.Server.StaticDir,
		"STORAGE_DRIVER":      &cfg.Storage.Driver,
		"STORAGE_DSN":         &cfg.Storage.DSN,
		"STORAGE_DATABASE":    &cfg.Storage.Database,
		"POSTS_COLLECTION":    &cfg.Storage.PostsCollection,
		"COUNTERS_COLLECTION": &cfg.Storage.CountersCollection,
		"TEMPLATES_DIR":       &cfg.Templates.Dir,
		"LOG_PROVIDER":        &cfg.Logging.Provider,
		"LOG_LEVEL":           &cfg.Logging.Level,
		"LOG_FORMAT":          &cfg.Logging.Format,
	}
	for key, target := range strs {
		if v, ok := lookup(EnvPrefix + key); ok {
			*target = v
		}
	}

	bools := map[string]*bool{
		"TEMPLATES_RELOAD":     &cfg.Templates.Reload,
		"STORAGE_AUTO_MIGRATE": &cfg.Storage.AutoMigrate,
	}
	for key, target := range bools {
		if v, ok := lookup(EnvPrefix + key); ok {
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("site config: %s%s: %w", EnvPrefix, key, err)
			}
			*target = parsed
		}
	}

	ints := map[string]*int{
		"RETRY_ATTEMPTS": &cfg.Retry.Attempts,
		"LIVE_BUFFER":    &cfg.Live.Buffer,
	}
	for key, target := range ints {
		if v, ok := lookup(EnvPrefix + key); ok {
			parsed, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("site config: %s%s: %w", EnvPrefix, key, err)
			}
			*target = parsed
		}
	}

	durations := map[string]*time.Duration{
		"RETRY_BACKOFF":    &cfg.Retry.Backoff,
		"REQUEST_TIMEOUT":  &cfg.Server.RequestTimeout,
		"SHUTDOWN_TIMEOUT": &cfg.Server.ShutdownTimeout,
	}
	for key, target := range durations {
		if v, ok := lookup(EnvPrefix + key); ok {
			parsed, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("site config: %s%s: %w", EnvPrefix, key, err)
			}
			*target = parsed
		}
	}
	return nil
}
