package logging

import (
	"context"
	"testing"

	"github.com/auteur-engineer/website/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "site.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerAnnotatesModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	PostsLogger(provider).Info("posts.ready")

	if len(provider.requested) != 1 || provider.requested[0] != postsModule {
		t.Fatalf("expected module %s, got %v", postsModule, provider.requested)
	}
	if len(rec.fields) != 1 || rec.fields[0]["module"] != postsModule {
		t.Fatalf("expected module field %s, got %v", postsModule, rec.fields)
	}
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "")

	if provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
}

func TestWithRequestAddsRequestFields(t *testing.T) {
	rec := &recordingLogger{}
	_ = WithRequest(rec, "req-1", "GET", "/api/posts")

	if len(rec.fields) != 1 {
		t.Fatalf("expected one WithFields call, got %d", len(rec.fields))
	}
	got := rec.fields[0]
	if got[RequestIDField] != "req-1" || got["method"] != "GET" || got["path"] != "/api/posts" {
		t.Fatalf("unexpected request fields %v", got)
	}
}

func TestContextFieldsMergeAndCopy(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{RequestIDField: "abc"})
	ctx = ContextWithFields(ctx, map[string]any{"user": "me"})

	fields := ContextFields(ctx)
	if fields[RequestIDField] != "abc" || fields["user"] != "me" {
		t.Fatalf("expected merged fields, got %v", fields)
	}
	fields["user"] = "mutated"
	if ContextFields(ctx)["user"] != "me" {
		t.Fatal("expected ContextFields to return a copy")
	}
	if RequestID(ctx) != "abc" {
		t.Fatalf("expected request id abc, got %q", RequestID(ctx))
	}
}
