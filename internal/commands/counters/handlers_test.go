package countercmd

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/auteur-engineer/website/internal/counters"
)

func TestIncrementAndDecrementHandlers(t *testing.T) {
	svc := counters.NewService(counters.NewMemoryRepository())
	inc := NewIncrementHandler(svc, nil)
	dec := NewDecrementHandler(svc, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := inc.Execute(ctx, IncrementCounterCommand{ID: "home"}); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}
	if err := dec.Execute(ctx, DecrementCounterCommand{ID: "home"}); err != nil {
		t.Fatalf("decrement: %v", err)
	}

	counter, err := svc.Get(ctx, "home")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if counter.Value != 2 {
		t.Fatalf("expected 2, got %d", counter.Value)
	}
}

func TestHandlersRejectBlankID(t *testing.T) {
	svc := counters.NewService(counters.NewMemoryRepository())
	err := NewIncrementHandler(svc, nil).Execute(context.Background(), IncrementCounterCommand{ID: "  "})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}
