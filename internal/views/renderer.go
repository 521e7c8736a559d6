// Package views renders the site's server-side pages with pongo2 templates.
package views

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/auteur-engineer/website/internal/logging"
	"github.com/auteur-engineer/website/pkg/interfaces"
)

var ErrTemplateDir = errors.New("views: template directory is required")

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the renderer logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Renderer loads templates from a directory and caches parsed templates until
// Reset is called.
type Renderer struct {
	dir    string
	set    *pongo2.TemplateSet
	logger interfaces.Logger

	mu sync.RWMutex
}

var _ interfaces.TemplateRenderer = (*Renderer)(nil)

// NewRenderer loads templates from dir.
func NewRenderer(dir string, opts ...Option) (*Renderer, error) {
	if dir == "" {
		return nil, ErrTemplateDir
	}
	loader, err := pongo2.NewLocalFileSystemLoader(dir)
	if err != nil {
		return nil, fmt.Errorf("views: template loader %s: %w", dir, err)
	}
	r := &Renderer{
		dir:    dir,
		set:    pongo2.NewSet("site", loader),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Dir is the template root.
func (r *Renderer) Dir() string {
	return r.dir
}

// Render executes the named template. Map data becomes the template context;
// any other value is exposed as "data".
func (r *Renderer) Render(name string, data any, out ...io.Writer) (string, error) {
	r.mu.RLock()
	tpl, err := r.set.FromCache(name)
	r.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("views: load %s: %w", name, err)
	}
	return execute(tpl, data, out)
}

// RenderString renders an inline template. When out is given the result is
// also written there.
func (r *Renderer) RenderString(content string, data any, out ...io.Writer) (string, error) {
	tpl, err := r.set.FromString(content)
	if err != nil {
		return "", fmt.Errorf("views: parse inline template: %w", err)
	}
	return execute(tpl, data, out)
}

// GlobalContext merges map data into the context seen by every template.
func (r *Renderer) GlobalContext(data any) error {
	ctx, ok := toContext(data)
	if !ok {
		return fmt.Errorf("views: global context must be a map, got %T", data)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.set.Globals.Update(ctx)
	return nil
}

// Reset drops every cached template so the next render reads from disk.
func (r *Renderer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.set.CleanCache()
}

func execute(tpl *pongo2.Template, data any, out []io.Writer) (string, error) {
	ctx, ok := toContext(data)
	if !ok {
		ctx = pongo2.Context{"data": data}
	}

	writers := make([]io.Writer, 0, len(out))
	for _, w := range out {
		if w != nil {
			writers = append(writers, w)
		}
	}
	if len(writers) > 0 {
		return "", tpl.ExecuteWriter(ctx, io.MultiWriter(writers...))
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func toContext(data any) (pongo2.Context, bool) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, true
	case pongo2.Context:
		return v, true
	case map[string]any:
		return pongo2.Context(v), true
	default:
		return nil, false
	}
}
