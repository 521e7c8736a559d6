package markdown

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Document is one markdown file split into frontmatter and body.
type Document struct {
	Path        string
	FrontMatter FrontMatter
	Body        []byte
	Checksum    string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithPattern limits discovered files to base names matching the glob.
func WithPattern(pattern string) LoaderOption {
	return func(l *Loader) {
		if strings.TrimSpace(pattern) != "" {
			l.pattern = pattern
		}
	}
}

// WithRecursive walks sub-directories as well.
func WithRecursive(recursive bool) LoaderOption {
	return func(l *Loader) {
		l.recursive = recursive
	}
}

// Loader discovers markdown documents inside a filesystem.
type Loader struct {
	fs        fs.FS
	pattern   string
	recursive bool
}

// NewLoader reads markdown documents from filesystem.
func NewLoader(filesystem fs.FS, opts ...LoaderOption) *Loader {
	l := &Loader{fs: filesystem, pattern: "*.md"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFile reads and splits a single document.
func (l *Loader) LoadFile(ctx context.Context, name string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", name, err)
	}
	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("markdown loader %s: %w", name, err)
	}
	sum := sha256.Sum256(data)
	return &Document{
		Path:        name,
		FrontMatter: meta,
		Body:        body,
		Checksum:    hex.EncodeToString(sum[:]),
	}, nil
}

// LoadDirectory returns every matching document under dir sorted by path.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*Document, error) {
	root := path.Clean(strings.TrimPrefix(dir, "./"))
	if root == "" {
		root = "."
	}

	var docs []*Document
	err := fs.WalkDir(l.fs, root, func(name string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if name != root && !l.recursive {
				return fs.SkipDir
			}
			return nil
		}
		if match, _ := path.Match(l.pattern, path.Base(name)); !match {
			return nil
		}
		doc, err := l.LoadFile(ctx, name)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}
