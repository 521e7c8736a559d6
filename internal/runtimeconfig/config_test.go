package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/auteur-engineer/website/internal/runtimeconfig"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := map[string]struct {
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		"blank addr": {
			mutate: func(c *runtimeconfig.Config) { c.Server.Addr = " " },
			want:   runtimeconfig.ErrServerAddrRequired,
		},
		"negative timeout": {
			mutate: func(c *runtimeconfig.Config) { c.Server.RequestTimeout = -time.Second },
			want:   runtimeconfig.ErrTimeoutInvalid,
		},
		"unknown driver": {
			mutate: func(c *runtimeconfig.Config) { c.Storage.Driver = "cassandra" },
			want:   runtimeconfig.ErrStorageDriverUnknown,
		},
		"sqlite without dsn": {
			mutate: func(c *runtimeconfig.Config) { c.Storage.Driver = "sqlite" },
			want:   runtimeconfig.ErrStorageDSNRequired,
		},
		"mongo without uri": {
			mutate: func(c *runtimeconfig.Config) { c.Storage.Driver = "mongodb" },
			want:   runtimeconfig.ErrStorageURIRequired,
		},
		"mongo without database": {
			mutate: func(c *runtimeconfig.Config) {
				c.Storage.Driver = "mongo"
				c.Storage.DSN = "mongodb://localhost"
			},
			want: runtimeconfig.ErrStorageDatabaseMissing,
		},
		"no templates": {
			mutate: func(c *runtimeconfig.Config) { c.Templates.Dir = "" },
			want:   runtimeconfig.ErrTemplatesDirRequired,
		},
		"unknown logger": {
			mutate: func(c *runtimeconfig.Config) { c.Logging.Provider = "syslog" },
			want:   runtimeconfig.ErrLoggingProviderUnknown,
		},
		"bad level": {
			mutate: func(c *runtimeconfig.Config) { c.Logging.Level = "loud" },
			want:   runtimeconfig.ErrLoggingLevelInvalid,
		},
		"bad gologger format": {
			mutate: func(c *runtimeconfig.Config) {
				c.Logging.Provider = "gologger"
				c.Logging.Format = "xml"
			},
			want: runtimeconfig.ErrLoggingFormatInvalid,
		},
		"zero attempts": {
			mutate: func(c *runtimeconfig.Config) { c.Retry.Attempts = 0 },
			want:   runtimeconfig.ErrRetryInvalid,
		},
		"zero buffer": {
			mutate: func(c *runtimeconfig.Config) { c.Live.Buffer = 0 },
			want:   runtimeconfig.ErrLiveBufferInvalid,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadMergesFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	yamlDoc := `
server:
  addr: ":8080"
  request_timeout: 5s
storage:
  driver: sqlite
  dsn: "file:site.db"
retry:
  attempts: 5
`
	if err := os.WriteFile(path, []byte(yamlDoc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	envFile := filepath.Join(dir, "test.env")
	if err := os.WriteFile(envFile, []byte("SITE_LOG_LEVEL=debug\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("SITE_LOG_LEVEL", "")
	os.Unsetenv("SITE_LOG_LEVEL")
	t.Setenv("SITE_RETRY_BACKOFF", "250ms")

	cfg, err := runtimeconfig.Load(path, envFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8080" || cfg.Server.RequestTimeout != 5*time.Second {
		t.Fatalf("server section not loaded: %+v", cfg.Server)
	}
	if cfg.Storage.Driver != "sqlite" || cfg.Storage.DSN != "file:site.db" {
		t.Fatalf("storage section not loaded: %+v", cfg.Storage)
	}
	if cfg.Retry.Attempts != 5 || cfg.Retry.Backoff != 250*time.Millisecond {
		t.Fatalf("retry not merged: %+v", cfg.Retry)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected env file level, got %q", cfg.Logging.Level)
	}
	if cfg.Templates.Dir != "templates" {
		t.Fatalf("defaults must survive, got %q", cfg.Templates.Dir)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 80\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	envFile := filepath.Join(dir, "empty.env")
	if err := os.WriteFile(envFile, nil, 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	if _, err := runtimeconfig.Load(path, envFile); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestApplyEnvRejectsBadValues(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	lookup := func(key string) (string, bool) {
		if key == "SITE_RETRY_ATTEMPTS" {
			return "many", true
		}
		return "", false
	}
	if err := runtimeconfig.ApplyEnv(&cfg, lookup); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestNormalizeDriver(t *testing.T) {
	cases := map[string]string{
		"":           runtimeconfig.DriverMemory,
		"SQLite3":    runtimeconfig.DriverSQLite,
		"postgresql": runtimeconfig.DriverPostgres,
		"mongodb":    runtimeconfig.DriverMongo,
	}
	for in, want := range cases {
		if got := runtimeconfig.NormalizeDriver(in); got != want {
			t.Fatalf("NormalizeDriver(%q) = %q, want %q", in, got, want)
		}
	}
}
