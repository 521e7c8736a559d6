package markdowncmd

import (
	"context"
	"errors"
	"testing"

	"github.com/auteur-engineer/website/internal/commands"
	"github.com/auteur-engineer/website/internal/markdown"
	"github.com/auteur-engineer/website/internal/posts"
)

type recordingRegistry struct {
	Handlers []any
	err      error
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	if r.err != nil {
		return r.err
	}
	r.Handlers = append(r.Handlers, handler)
	return nil
}

func TestRegisterImportCommandRegistersHandler(t *testing.T) {
	reg := &recordingRegistry{}
	handler, err := RegisterImportCommand(reg, posts.NewService(posts.NewMemoryRepository()), nil, nil)
	if err != nil {
		t.Fatalf("register import command: %v", err)
	}
	if handler == nil {
		t.Fatal("expected handler returned")
	}
	if len(reg.Handlers) != 1 || reg.Handlers[0] != handler {
		t.Fatalf("expected handler registered, got %#v", reg.Handlers)
	}
}

func TestRegisterImportCommandHandlerOptionsApplied(t *testing.T) {
	applied := false
	_, err := RegisterImportCommand(nil, posts.NewService(posts.NewMemoryRepository()), nil, nil,
		func(h *commands.Handler[ImportDirectoryCommand]) {
			applied = true
		},
	)
	if err != nil {
		t.Fatalf("register import command: %v", err)
	}
	if !applied {
		t.Fatal("expected handler options applied")
	}
}

func TestRegisterImportCommandNilTarget(t *testing.T) {
	if _, err := RegisterImportCommand(nil, nil, nil, nil); err == nil {
		t.Fatal("expected error for nil importer")
	}
}

func TestRegisterImportCommandPropagatesRegistryError(t *testing.T) {
	reg := &recordingRegistry{err: errors.New("duplicate handler")}
	if _, err := RegisterImportCommand(reg, posts.NewService(posts.NewMemoryRepository()), nil, nil); err == nil {
		t.Fatal("expected registry error")
	}
}

func TestRegisteredHandlerDryRunStoresNothing(t *testing.T) {
	svc := posts.NewService(posts.NewMemoryRepository())
	var result *markdown.ImportResult
	handler, err := RegisterImportCommand(nil, svc, nil, func(_ ImportDirectoryCommand, r *markdown.ImportResult) {
		result = r
	})
	if err != nil {
		t.Fatalf("register import command: %v", err)
	}

	if err := handler.Execute(context.Background(), ImportDirectoryCommand{Directory: "../../markdown/testdata", DryRun: true}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result == nil || len(result.Planned) == 0 || len(result.Created) != 0 {
		t.Fatalf("unexpected dry run result %+v", result)
	}
	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("dry run stored %d posts", len(list))
	}
}
