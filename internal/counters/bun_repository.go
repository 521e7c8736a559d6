package counters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// Record is the SQL row for a counter.
type Record struct {
	bun.BaseModel `bun:"table:counters,alias:c"`

	ID        string    `bun:"id,pk"`
	Value     int64     `bun:"value,notnull"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// BunRepository stores counters in the counters table.
type BunRepository struct {
	db *bun.DB
}

// NewBunRepository returns a repository over db. Tables come from storage.Migrate.
func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{db: db}
}

var _ Repository = (*BunRepository)(nil)

func (r *BunRepository) Get(ctx context.Context, id string) (*Counter, error) {
	record := &Record{}
	err := r.db.NewSelect().Model(record).Where("?TableAlias.id = ?", id).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Key: id}
	}
	if err != nil {
		return nil, fmt.Errorf("counters: get %q: %w", id, err)
	}
	return &Counter{ID: record.ID, Value: record.Value}, nil
}

func (r *BunRepository) Ensure(ctx context.Context, id string) (*Counter, error) {
	record := &Record{ID: id, UpdatedAt: time.Now().UTC()}
	if _, err := r.db.NewInsert().Model(record).On("CONFLICT (id) DO NOTHING").Exec(ctx); err != nil {
		return nil, fmt.Errorf("counters: ensure %q: %w", id, err)
	}
	return r.Get(ctx, id)
}

// Add increments in a single UPDATE, then reads back the new value.
func (r *BunRepository) Add(ctx context.Context, id string, delta int64) (*Counter, error) {
	res, err := r.db.NewUpdate().
		Model((*Record)(nil)).
		Set("value = value + ?", delta).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("counters: add %q: %w", id, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, &NotFoundError{Key: id}
	}
	return r.Get(ctx, id)
}
