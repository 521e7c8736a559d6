package markdown

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/auteur-engineer/website/internal/blocks"
	"github.com/auteur-engineer/website/internal/logging"
	"github.com/auteur-engineer/website/internal/posts"
	"github.com/auteur-engineer/website/pkg/interfaces"
)

// PostImporter stores a fully built post.
type PostImporter interface {
	Import(ctx context.Context, post *posts.Post) (*posts.Post, error)
}

// ImportOptions controls a directory import.
type ImportOptions struct {
	// DryRun builds the posts without storing them.
	DryRun bool
}

// FileError records a document that could not be imported.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// ImportResult lists what happened to each document. In a dry run Planned
// holds the built posts and Created stays empty.
type ImportResult struct {
	Planned []*posts.Post
	Created []*posts.Post
	Errors  []FileError
}

// ImporterOption configures an Importer.
type ImporterOption func(*Importer)

// WithLogger sets the importer logger.
func WithLogger(logger interfaces.Logger) ImporterOption {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// Importer builds posts from markdown documents and hands them to a
// PostImporter.
type Importer struct {
	loader *Loader
	posts  PostImporter
	logger interfaces.Logger
}

// NewImporter builds posts from loader documents and stores them through target.
func NewImporter(loader *Loader, target PostImporter, opts ...ImporterOption) *Importer {
	i := &Importer{loader: loader, posts: target, logger: logging.NoOp()}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// ImportDirectory builds one post per document under dir. Failures are
// collected per file; only loader and context errors abort the run.
func (i *Importer) ImportDirectory(ctx context.Context, dir string, opts ImportOptions) (*ImportResult, error) {
	docs, err := i.loader.LoadDirectory(ctx, dir)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		post, err := BuildPost(doc)
		if err != nil {
			i.logger.Warn("markdown.import.invalid", "path", doc.Path, "error", err)
			result.Errors = append(result.Errors, FileError{Path: doc.Path, Err: err})
			continue
		}
		result.Planned = append(result.Planned, post)
		if opts.DryRun {
			continue
		}

		created, err := i.posts.Import(ctx, post)
		if err != nil {
			i.logger.Error("markdown.import.failed", "path", doc.Path, "error", err)
			result.Errors = append(result.Errors, FileError{Path: doc.Path, Err: err})
			continue
		}
		i.logger.Info("markdown.import.created", "path", doc.Path, "post_id", created.ID)
		result.Created = append(result.Created, created)
	}
	return result, nil
}

// BuildPost maps a document onto a post. The title comes from frontmatter,
// falling back to the file name; every heading becomes a Header block and a
// copyright key adds a trailing Footer block.
func BuildPost(doc *Document) (*posts.Post, error) {
	title := doc.FrontMatter.Title
	if title == "" {
		title = strings.TrimSuffix(path.Base(doc.Path), path.Ext(doc.Path))
	}
	post := posts.NewPost(title)
	post.Title.Hint = doc.FrontMatter.Hint

	for _, heading := range Headings(doc.Body) {
		post.Blocks = append(post.Blocks, blocks.Header{
			Content: blocks.Field{Label: heading.Text, Hint: "", FormType: blocks.InputArea},
		})
	}
	if doc.FrontMatter.Copyright != "" {
		post.Blocks = append(post.Blocks, blocks.Footer{
			Copyright: blocks.Field{Label: doc.FrontMatter.Copyright, Hint: "", FormType: blocks.InputText},
		})
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}
	return post, nil
}
