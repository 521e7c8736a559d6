package logging

import (
	"maps"

	"github.com/auteur-engineer/website/pkg/interfaces"
)

// WithFields attaches fields when the logger implements FieldsLogger and
// returns it untouched otherwise.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}

	return logger
}

// WithRequest scopes a logger to a single HTTP request.
func WithRequest(logger interfaces.Logger, requestID, method, path string) interfaces.Logger {
	fields := map[string]any{
		"method": method,
		"path":   path,
	}
	if requestID != "" {
		fields[RequestIDField] = requestID
	}
	return WithFields(logger, fields)
}
