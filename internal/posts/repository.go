package posts

import (
	"context"

	"github.com/auteur-engineer/website/internal/blocks"
)

// Repository is the document store adapter for posts.
//
// Replace overwrites title and blocks of an existing post and keeps its id.
// AppendBlock adds one block to the end of the stored list as a single
// store-side write that touches no other field, so concurrent appends to the
// same post never lose each other's blocks. Both fail with *NotFoundError
// without creating anything when the id is unknown.
type Repository interface {
	Create(ctx context.Context, post *Post) (*Post, error)
	GetByID(ctx context.Context, id string) (*Post, error)
	List(ctx context.Context) ([]*Post, error)
	Replace(ctx context.Context, id string, post *Post) (*Post, error)
	AppendBlock(ctx context.Context, id string, block blocks.Block) (*Post, error)
}

func notFound(id string) error {
	return &NotFoundError{Resource: "post", Key: id}
}
