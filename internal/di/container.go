package di

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/auteur-engineer/website/internal/commands"
	countercmd "github.com/auteur-engineer/website/internal/commands/counters"
	"github.com/auteur-engineer/website/internal/counters"
	"github.com/auteur-engineer/website/internal/live"
	"github.com/auteur-engineer/website/internal/logging"
	"github.com/auteur-engineer/website/internal/logging/console"
	"github.com/auteur-engineer/website/internal/logging/gologger"
	"github.com/auteur-engineer/website/internal/posts"
	"github.com/auteur-engineer/website/internal/runtimeconfig"
	"github.com/auteur-engineer/website/internal/storage"
	"github.com/auteur-engineer/website/internal/validation"
	"github.com/auteur-engineer/website/internal/views"
	"github.com/auteur-engineer/website/pkg/interfaces"
)

const bootstrapTimeout = 15 * time.Second

// Container owns the store handles and services of one site process.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	template       interfaces.TemplateRenderer

	bunDB   *bun.DB
	mongoDB *mongo.Database
	closers []func(context.Context) error

	hub       *live.Hub
	validator *validation.PostValidator

	postRepo    posts.Repository
	counterRepo counters.Repository

	postSvc    posts.Service
	counterSvc counters.Service

	increment *countercmd.IncrementHandler
	decrement *countercmd.DecrementHandler
}

// Option overrides a container dependency.
type Option func(*Container)

// WithBunDB stores posts and counters through db. The container does not
// close an injected handle.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithMongoDatabase stores posts and counters in db. The container does not
// disconnect an injected database.
func WithMongoDatabase(db *mongo.Database) Option {
	return func(c *Container) {
		c.mongoDB = db
	}
}

// WithLoggerProvider replaces the configured logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithTemplateRenderer replaces the pongo2 renderer.
func WithTemplateRenderer(renderer interfaces.TemplateRenderer) Option {
	return func(c *Container) {
		c.template = renderer
	}
}

// WithPostRepository bypasses the configured post store.
func WithPostRepository(repo posts.Repository) Option {
	return func(c *Container) {
		c.postRepo = repo
	}
}

// WithCounterRepository bypasses the configured counter store.
func WithCounterRepository(repo counters.Repository) Option {
	return func(c *Container) {
		c.counterRepo = repo
	}
}

// NewContainer validates cfg and wires every dependency. Explicit
// repositories win over injected store handles, which win over the
// configured driver.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	ctx, cancel := context.WithTimeout(context.Background(), bootstrapTimeout)
	defer cancel()

	steps := []func(context.Context) error{
		c.configureLoggerProvider,
		c.configureStorage,
		c.configureTemplates,
		c.configureServices,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			_ = c.Close(context.Background())
			return nil, err
		}
	}

	logging.ModuleLogger(c.loggerProvider, "site").Info("container.ready",
		"storage_driver", runtimeconfig.NormalizeDriver(cfg.Storage.Driver),
		"templates_dir", cfg.Templates.Dir,
	)
	return c, nil
}

func (c *Container) configureLoggerProvider(context.Context) error {
	if c.loggerProvider != nil {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:  c.Config.Logging.Level,
			Format: c.Config.Logging.Format,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		level := console.ParseLevel(c.Config.Logging.Level)
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: &level})
	}
	return nil
}

func (c *Container) configureStorage(ctx context.Context) error {
	if c.postRepo != nil && c.counterRepo != nil {
		return nil
	}

	driver := runtimeconfig.NormalizeDriver(c.Config.Storage.Driver)
	switch {
	case c.mongoDB != nil:
		c.useMongo()
	case c.bunDB != nil:
		return c.useBun(ctx)
	case driver == runtimeconfig.DriverSQLite || driver == runtimeconfig.DriverPostgres:
		db, err := storage.OpenSQL(ctx, driver, c.Config.Storage.DSN)
		if err != nil {
			return err
		}
		c.bunDB = db
		c.closers = append(c.closers, func(context.Context) error { return db.Close() })
		return c.useBun(ctx)
	case driver == runtimeconfig.DriverMongo:
		db, disconnect, err := storage.OpenMongo(ctx, c.Config.Storage.DSN, c.Config.Storage.Database)
		if err != nil {
			return err
		}
		c.mongoDB = db
		c.closers = append(c.closers, disconnect)
		c.useMongo()
	default:
		c.setRepositories(posts.NewMemoryRepository(), counters.NewMemoryRepository())
	}
	return nil
}

func (c *Container) useBun(ctx context.Context) error {
	if c.Config.Storage.AutoMigrate {
		if err := storage.Migrate(ctx, c.bunDB); err != nil {
			return err
		}
	}
	c.setRepositories(posts.NewBunRepository(c.bunDB), counters.NewBunRepository(c.bunDB))
	return nil
}

func (c *Container) useMongo() {
	c.setRepositories(
		posts.NewMongoRepository(c.mongoDB, c.Config.Storage.PostsCollection),
		counters.NewMongoRepository(c.mongoDB, c.Config.Storage.CountersCollection),
	)
}

func (c *Container) setRepositories(postRepo posts.Repository, counterRepo counters.Repository) {
	if c.postRepo == nil {
		c.postRepo = postRepo
	}
	if c.counterRepo == nil {
		c.counterRepo = counterRepo
	}
}

func (c *Container) configureTemplates(context.Context) error {
	if c.template != nil {
		return nil
	}
	renderer, err := views.NewRenderer(c.Config.Templates.Dir,
		views.WithLogger(logging.ModuleLogger(c.loggerProvider, "site.views")),
	)
	if err != nil {
		return err
	}
	c.template = renderer

	if c.Config.Templates.Reload {
		// The watcher outlives bootstrap; Close stops it.
		stop, err := renderer.Watch(context.Background())
		if err != nil {
			return err
		}
		c.closers = append(c.closers, func(context.Context) error { return stop() })
	}
	return nil
}

func (c *Container) configureServices(context.Context) error {
	validator, err := validation.NewPostValidator()
	if err != nil {
		return fmt.Errorf("di: compile post schema: %w", err)
	}
	c.validator = validator

	c.hub = live.NewHub(
		live.WithBufferSize(c.Config.Live.Buffer),
		live.WithLogger(logging.LiveLogger(c.loggerProvider)),
	)

	c.postSvc = posts.NewService(c.postRepo,
		posts.WithLogger(logging.PostsLogger(c.loggerProvider)),
		posts.WithPublisher(c.hub),
		posts.WithRetryPolicy(posts.RetryPolicy{
			Attempts: c.Config.Retry.Attempts,
			Backoff:  c.Config.Retry.Backoff,
		}),
		posts.WithTimeout(c.Config.Server.RequestTimeout),
	)

	c.counterSvc = counters.NewService(c.counterRepo,
		counters.WithLogger(logging.CountersLogger(c.loggerProvider)),
		counters.WithPublisher(c.hub),
	)

	commandLogger := commands.CommandLogger(c.loggerProvider, "counters")
	c.increment = countercmd.NewIncrementHandler(c.counterSvc, commandLogger)
	c.decrement = countercmd.NewDecrementHandler(c.counterSvc, commandLogger)
	return nil
}

// Close releases the handles the container opened itself, newest first.
func (c *Container) Close(ctx context.Context) error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

// LoggerProvider returns the active provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

func (c *Container) TemplateRenderer() interfaces.TemplateRenderer {
	return c.template
}

func (c *Container) Hub() *live.Hub {
	return c.hub
}

func (c *Container) PostValidator() *validation.PostValidator {
	return c.validator
}

// PostService returns the shared post service.
func (c *Container) PostService() posts.Service {
	return c.postSvc
}

// CounterService returns the shared counter service.
func (c *Container) CounterService() counters.Service {
	return c.counterSvc
}

func (c *Container) IncrementCounterHandler() *countercmd.IncrementHandler {
	return c.increment
}

func (c *Container) DecrementCounterHandler() *countercmd.DecrementHandler {
	return c.decrement
}

// BunDB is nil unless SQL storage is in use.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}
