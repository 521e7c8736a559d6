package logging

import (
	"context"

	"github.com/auteur-engineer/website/pkg/interfaces"
)

const (
	rootModule     = "site"
	postsModule    = "site.posts"
	countersModule = "site.counters"
	httpModule     = "site.http"
	liveModule     = "site.live"
	markdownModule = "site.markdown"
)

// ModuleLogger returns the logger registered under module, tagged with a
// "module" field. A nil provider yields a no-op logger.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// PostsLogger returns the logger for the posts module.
func PostsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, postsModule)
}

// CountersLogger returns the logger for the counters module.
func CountersLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, countersModule)
}

// HTTPLogger returns the logger for the HTTP layer.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// LiveLogger returns the logger for the live hub.
func LiveLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, liveModule)
}

// MarkdownLogger scopes entries emitted by the markdown importer.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// NoOp returns a logger that discards everything.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
