package logging

import (
	"context"
	"maps"
)

type contextKey string

const contextFieldsKey contextKey = "site.logging.fields"

// RequestIDField is the field name carrying the per-request identifier.
const RequestIDField = "request_id"

// ContextWithFields returns a context carrying fields merged over any fields
// already present on ctx.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil || len(fields) == 0 {
		return ctx
	}

	merged := ContextFields(ctx)
	if merged == nil {
		merged = make(map[string]any, len(fields))
	}
	maps.Copy(merged, fields)
	return context.WithValue(ctx, contextFieldsKey, merged)
}

// ContextFields returns a copy of the fields stored on ctx.
func ContextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, ok := ctx.Value(contextFieldsKey).(map[string]any)
	if !ok || len(fields) == 0 {
		return nil
	}
	return maps.Clone(fields)
}

// RequestID reports the request id stored by ContextWithFields, if any.
func RequestID(ctx context.Context) string {
	fields := ContextFields(ctx)
	if id, ok := fields[RequestIDField].(string); ok {
		return id
	}
	return ""
}
