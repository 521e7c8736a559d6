package posts

import (
	"context"
	"encoding/json"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"

	"github.com/auteur-engineer/website/internal/blocks"
)

// Record is the SQL row for a post. Title and blocks are JSON columns.
type Record struct {
	bun.BaseModel `bun:"table:posts,alias:p"`

	ID        uuid.UUID       `bun:",pk,type:uuid"`
	Title     blocks.Field    `bun:"title,type:jsonb,notnull"`
	Blocks    []blocks.Tagged `bun:"blocks,type:jsonb,notnull"`
	CreatedAt time.Time       `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time       `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// NewRecordRepository exposes the generic go-repository-bun repository for
// post rows.
func NewRecordRepository(db *bun.DB) repository.Repository[*Record] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Record]{
		NewRecord: func() *Record { return &Record{} },
		GetID: func(r *Record) uuid.UUID {
			return r.ID
		},
		SetID: func(r *Record, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(r *Record) string {
			return r.ID.String()
		},
	})
}

// BunRepository stores posts in SQLite or Postgres through bun.
type BunRepository struct {
	db   *bun.DB
	repo repository.Repository[*Record]
	now  func() time.Time
}

// NewBunRepository returns a repository over db. Tables come from storage.Migrate.
func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{
		db:   db,
		repo: NewRecordRepository(db),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

var _ Repository = (*BunRepository)(nil)

func (r *BunRepository) Create(ctx context.Context, post *Post) (*Post, error) {
	if post.ID != "" {
		return nil, ErrIDAssigned
	}
	now := r.now()
	record := &Record{
		ID:        uuid.New(),
		Title:     post.Title,
		Blocks:    post.Blocks.Tagged(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, storeError("create", err)
	}
	return recordToPost(created)
}

func (r *BunRepository) GetByID(ctx context.Context, id string) (*Post, error) {
	record, err := r.getRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	return recordToPost(record)
}

func (r *BunRepository) List(ctx context.Context) ([]*Post, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.created_at ASC").OrderExpr("?TableAlias.id ASC")
		}),
	)
	if err != nil {
		return nil, storeError("list", err)
	}
	out := make([]*Post, 0, len(records))
	for _, record := range records {
		post, err := recordToPost(record)
		if err != nil {
			return nil, err
		}
		out = append(out, post)
	}
	return out, nil
}

func (r *BunRepository) Replace(ctx context.Context, id string, post *Post) (*Post, error) {
	record, err := r.getRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	record.Title = post.Title
	record.Blocks = post.Blocks.Tagged()
	record.UpdatedAt = r.now()

	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns("title", "blocks", "updated_at"),
	)
	if err != nil {
		return nil, storeError("replace", mapRepositoryError(err, id))
	}
	return recordToPost(updated)
}

// AppendBlock pushes the block with one UPDATE using the dialect's JSON array
// append, so the stored list is never read back and rewritten.
func (r *BunRepository) AppendBlock(ctx context.Context, id string, block blocks.Block) (*Post, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, notFound(id)
	}
	payload, err := json.Marshal(blocks.ToTagged(block))
	if err != nil {
		return nil, err
	}

	res, err := r.db.NewUpdate().
		Model((*Record)(nil)).
		Set("blocks = "+r.appendExpr(), string(payload)).
		Set("updated_at = ?", r.now()).
		Where("id = ?", uid).
		Exec(ctx)
	if err != nil {
		return nil, storeError("append", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, notFound(id)
	}
	return r.GetByID(ctx, id)
}

func (r *BunRepository) appendExpr() string {
	if r.db.Dialect().Name() == dialect.PG {
		return "blocks || jsonb_build_array(?::jsonb)"
	}
	return "json_insert(blocks, '$[#]', json(?))"
}

func (r *BunRepository) getRecord(ctx context.Context, id string) (*Record, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, notFound(id)
	}
	record, err := r.repo.GetByID(ctx, uid.String())
	if err != nil {
		return nil, storeError("get", mapRepositoryError(err, id))
	}
	return record, nil
}

func mapRepositoryError(err error, id string) error {
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return notFound(id)
	}
	return err
}

func recordToPost(record *Record) (*Post, error) {
	list, err := blocks.FromTaggedList(record.Blocks)
	if err != nil {
		return nil, storeError("decode", err)
	}
	return &Post{
		ID:     record.ID.String(),
		Title:  record.Title,
		Blocks: list,
	}, nil
}
