// Package website is the entry point of the personal site backend: posts
// made of typed content blocks, the live counter demo and the pages that
// render them.
package website

import (
	"context"
	"net/http"

	"github.com/auteur-engineer/website/internal/blocks"
	"github.com/auteur-engineer/website/internal/counters"
	"github.com/auteur-engineer/website/internal/di"
	sitehttp "github.com/auteur-engineer/website/internal/http"
	"github.com/auteur-engineer/website/internal/logging"
	"github.com/auteur-engineer/website/internal/posts"
	"github.com/auteur-engineer/website/pkg/interfaces"
)

// PostService exports the post service contract.
type PostService = posts.Service

// CounterService exports the counter service contract.
type CounterService = counters.Service

// Post exports the post document.
type Post = posts.Post

// Block exports the content block variant set.
type Block = blocks.Block

// Module represents the top level site runtime.
type Module struct {
	container *di.Container
	handler   http.Handler
}

// New constructs the site using the provided configuration and optional DI
// overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}

	api := sitehttp.NewSiteAPI(
		sitehttp.WithPostService(container.PostService()),
		sitehttp.WithSchemaValidator(container.PostValidator()),
		sitehttp.WithCounterService(container.CounterService()),
		sitehttp.WithCounterCommands(container.IncrementCounterHandler(), container.DecrementCounterHandler()),
		sitehttp.WithHub(container.Hub()),
		sitehttp.WithRenderer(container.TemplateRenderer()),
		sitehttp.WithLogger(logging.HTTPLogger(container.LoggerProvider())),
		sitehttp.WithStaticDir(cfg.Server.StaticDir),
		sitehttp.WithRequestTimeout(cfg.Server.RequestTimeout),
	)
	handler, err := api.Handler()
	if err != nil {
		_ = container.Close(context.Background())
		return nil, err
	}
	return &Module{container: container, handler: handler}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Handler serves every site route.
func (m *Module) Handler() http.Handler {
	return m.handler
}

// Posts returns the post service backing the JSON API and pages.
func (m *Module) Posts() PostService {
	return m.container.PostService()
}

// Counters returns the live counter service.
func (m *Module) Counters() CounterService {
	return m.container.CounterService()
}

// LoggerProvider returns the provider every module logger is built from.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.container.LoggerProvider()
}

// Config returns the configuration the module was built with.
func (m *Module) Config() Config {
	return m.container.Config
}

// Close releases the store handles and template watcher.
func (m *Module) Close(ctx context.Context) error {
	return m.container.Close(ctx)
}
