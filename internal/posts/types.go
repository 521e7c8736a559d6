package posts

import (
	"slices"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/auteur-engineer/website/internal/blocks"
)

// Post is the content document: a title field and an ordered block list.
// An empty ID means the post has not been stored yet.
type Post struct {
	ID     string       `json:"id,omitempty"`
	Title  blocks.Field `json:"title"`
	Blocks blocks.List  `json:"blocks"`
}

// Validate checks the title and every block.
func (p *Post) Validate() error {
	if err := p.Title.Validate(); err != nil {
		return err
	}
	for _, block := range p.Blocks {
		if err := blocks.Validate(block); err != nil {
			return err
		}
	}
	return nil
}

func (p *Post) clone() *Post {
	if p == nil {
		return nil
	}
	copied := *p
	copied.Blocks = slices.Clone(p.Blocks)
	if copied.Blocks == nil {
		copied.Blocks = blocks.List{}
	}
	return &copied
}

// CreatePostRequest is the body accepted by the create endpoint.
type CreatePostRequest struct {
	Title string `json:"title"`
}

const maxTitleLength = 200

// Validate requires a title within the length limit.
func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.RuneLength(1, maxTitleLength)),
	)
}

// NewPost builds an unsaved post whose title field is labelled with title.
func NewPost(title string) *Post {
	field := blocks.TitleField()
	field.Label = title
	field.Hint = ""
	return &Post{Title: field, Blocks: blocks.List{}}
}
