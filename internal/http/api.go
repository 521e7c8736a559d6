package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	countercmd "github.com/auteur-engineer/website/internal/commands/counters"
	"github.com/auteur-engineer/website/internal/counters"
	"github.com/auteur-engineer/website/internal/live"
	"github.com/auteur-engineer/website/internal/logging"
	"github.com/auteur-engineer/website/internal/posts"
	"github.com/auteur-engineer/website/pkg/interfaces"
)

var ErrPostServiceRequired = errors.New("http: post service is required")

// SiteAPI holds the collaborators the site routes depend on. Only the post
// service is mandatory; routes whose collaborator is missing answer 503.
type SiteAPI struct {
	posts     posts.Service
	validator posts.SchemaValidator
	counters  counters.Service
	increment *countercmd.IncrementHandler
	decrement *countercmd.DecrementHandler
	hub       *live.Hub
	renderer  interfaces.TemplateRenderer
	logger    interfaces.Logger
	staticDir string
	timeout   time.Duration
	upgrader  websocket.Upgrader
}

// SiteOption configures the site API.
type SiteOption func(*SiteAPI)

// WithPostService sets the post service. Register fails without it.
func WithPostService(svc posts.Service) SiteOption {
	return func(api *SiteAPI) {
		api.posts = svc
	}
}

// WithSchemaValidator checks edit bodies against the post JSON Schema before
// they are decoded.
func WithSchemaValidator(v posts.SchemaValidator) SiteOption {
	return func(api *SiteAPI) {
		api.validator = v
	}
}

// WithCounterService enables the counter pages and JSON route.
func WithCounterService(svc counters.Service) SiteOption {
	return func(api *SiteAPI) {
		api.counters = svc
	}
}

// WithCounterCommands sets the handlers used by the counter form.
func WithCounterCommands(increment *countercmd.IncrementHandler, decrement *countercmd.DecrementHandler) SiteOption {
	return func(api *SiteAPI) {
		api.increment = increment
		api.decrement = decrement
	}
}

// WithHub enables the websocket feeds.
func WithHub(hub *live.Hub) SiteOption {
	return func(api *SiteAPI) {
		api.hub = hub
	}
}

// WithRenderer sets the template renderer for HTML pages.
func WithRenderer(renderer interfaces.TemplateRenderer) SiteOption {
	return func(api *SiteAPI) {
		api.renderer = renderer
	}
}

// WithLogger sets the request and error logger.
func WithLogger(logger interfaces.Logger) SiteOption {
	return func(api *SiteAPI) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// WithStaticDir serves files from dir for any path no other route claims.
func WithStaticDir(dir string) SiteOption {
	return func(api *SiteAPI) {
		api.staticDir = strings.TrimSpace(dir)
	}
}

// WithRequestTimeout bounds every non websocket request. Zero disables it.
func WithRequestTimeout(timeout time.Duration) SiteOption {
	return func(api *SiteAPI) {
		api.timeout = max(timeout, 0)
	}
}

// NewSiteAPI builds the site routes from opts.
func NewSiteAPI(opts ...SiteOption) *SiteAPI {
	api := &SiteAPI{
		logger: logging.NoOp(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	for _, opt := range opts {
		opt(api)
	}
	return api
}

// Register mounts every site route on mux.
func (api *SiteAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return errors.New("http: mux is required")
	}
	if api.posts == nil {
		return ErrPostServiceRequired
	}

	api.registerPostRoutes(mux, "/api")
	api.registerPageRoutes(mux)
	api.registerCounterRoutes(mux)
	api.registerLiveRoutes(mux)

	if api.staticDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(api.staticDir)))
	}
	return nil
}

// Handler returns the routes wrapped with request logging and the request
// timeout.
func (api *SiteAPI) Handler() (http.Handler, error) {
	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		return nil, err
	}
	return api.middleware(mux), nil
}
