package counters_test

import (
	"context"
	"sync"
	"testing"

	"github.com/auteur-engineer/website/internal/counters"
	"github.com/auteur-engineer/website/internal/storage"
	"github.com/auteur-engineer/website/pkg/testsupport"
)

func TestMemoryRepository(t *testing.T) {
	runCounterContract(t, func(t *testing.T) counters.Repository {
		return counters.NewMemoryRepository()
	})
}

func TestBunRepository(t *testing.T) {
	runCounterContract(t, func(t *testing.T) counters.Repository {
		db, err := testsupport.NewSQLiteBunDB(t.Name())
		if err != nil {
			t.Fatalf("open sqlite: %v", err)
		}
		t.Cleanup(func() { _ = db.Close() })
		if err := storage.Migrate(context.Background(), db); err != nil {
			t.Fatalf("migrate: %v", err)
		}
		return counters.NewBunRepository(db)
	})
}

func runCounterContract(t *testing.T, newRepo func(t *testing.T) counters.Repository) {
	t.Run("missing counter", func(t *testing.T) {
		repo := newRepo(t)
		if _, err := repo.Get(context.Background(), "nope"); !isNotFound(err) {
			t.Fatalf("get: expected not found, got %v", err)
		}
		if _, err := repo.Add(context.Background(), "nope", 1); !isNotFound(err) {
			t.Fatalf("add: expected not found, got %v", err)
		}
	})

	t.Run("ensure is idempotent", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		first, err := repo.Ensure(ctx, "clicks")
		if err != nil {
			t.Fatalf("ensure: %v", err)
		}
		if first.Value != 0 {
			t.Fatalf("expected 0, got %d", first.Value)
		}
		if _, err := repo.Add(ctx, "clicks", 4); err != nil {
			t.Fatalf("add: %v", err)
		}
		again, err := repo.Ensure(ctx, "clicks")
		if err != nil {
			t.Fatalf("ensure again: %v", err)
		}
		if again.Value != 4 {
			t.Fatalf("ensure must not reset, got %d", again.Value)
		}
	})

	t.Run("concurrent adds", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		if _, err := repo.Ensure(ctx, "busy"); err != nil {
			t.Fatalf("ensure: %v", err)
		}

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = repo.Add(ctx, "busy", 1)
			}()
		}
		wg.Wait()

		got, err := repo.Get(ctx, "busy")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Value != 10 {
			t.Fatalf("expected 10, got %d", got.Value)
		}
	})
}
