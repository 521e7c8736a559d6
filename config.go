package website

import "github.com/auteur-engineer/website/internal/runtimeconfig"

var (
	ErrServerAddrRequired     = runtimeconfig.ErrServerAddrRequired
	ErrTimeoutInvalid         = runtimeconfig.ErrTimeoutInvalid
	ErrStorageDriverUnknown   = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired     = runtimeconfig.ErrStorageDSNRequired
	ErrStorageURIRequired     = runtimeconfig.ErrStorageURIRequired
	ErrStorageDatabaseMissing = runtimeconfig.ErrStorageDatabaseMissing
	ErrTemplatesDirRequired   = runtimeconfig.ErrTemplatesDirRequired
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
	ErrRetryInvalid           = runtimeconfig.ErrRetryInvalid
	ErrLiveBufferInvalid      = runtimeconfig.ErrLiveBufferInvalid
)

type (
	Config          = runtimeconfig.Config
	ServerConfig    = runtimeconfig.ServerConfig
	StorageConfig   = runtimeconfig.StorageConfig
	TemplatesConfig = runtimeconfig.TemplatesConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
	RetryConfig     = runtimeconfig.RetryConfig
	LiveConfig      = runtimeconfig.LiveConfig
)

// DefaultConfig returns the memory store configuration reading templates/ and serving public/.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML file over the defaults and applies SITE_*
// environment overrides. An empty path skips the file.
func LoadConfig(path string, envFiles ...string) (Config, error) {
	return runtimeconfig.Load(path, envFiles...)
}
