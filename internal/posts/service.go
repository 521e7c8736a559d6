package posts

import (
	"context"
	"time"

	"github.com/auteur-engineer/website/internal/blocks"
	"github.com/auteur-engineer/website/internal/live"
	"github.com/auteur-engineer/website/internal/logging"
	"github.com/auteur-engineer/website/pkg/interfaces"
)

// Topic is the live hub topic carrying post writes.
const Topic = "posts"

// Service exposes post operations to the HTTP layer and the importer.
type Service interface {
	Create(ctx context.Context, req CreatePostRequest) (*Post, error)
	Import(ctx context.Context, post *Post) (*Post, error)
	Get(ctx context.Context, id string) (*Post, error)
	List(ctx context.Context) ([]*Post, error)
	Replace(ctx context.Context, id string, post Post) (*Post, error)
	AppendBlock(ctx context.Context, id string, block blocks.Block) (*Post, error)
	ApplyEdit(ctx context.Context, id string, edit Edit) (*Post, error)
}

// ServiceOption configures the post service.
type ServiceOption func(*service)

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPublisher sends a live event after every successful write.
func WithPublisher(publisher live.Publisher) ServiceOption {
	return func(s *service) {
		s.publisher = publisher
	}
}

// WithRetryPolicy replaces DefaultRetryPolicy.
func WithRetryPolicy(policy RetryPolicy) ServiceOption {
	return func(s *service) {
		s.retry = policy
	}
}

// WithTimeout bounds every call. Zero disables the bound.
func WithTimeout(timeout time.Duration) ServiceOption {
	return func(s *service) {
		s.timeout = max(timeout, 0)
	}
}

type service struct {
	repo      Repository
	publisher live.Publisher
	logger    interfaces.Logger
	retry     RetryPolicy
	timeout   time.Duration
}

// NewService returns a post service backed by repo.
func NewService(repo Repository, opts ...ServiceOption) Service {
	s := &service{
		repo:    repo,
		logger:  logging.NoOp(),
		retry:   DefaultRetryPolicy(),
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, req CreatePostRequest) (*Post, error) {
	if err := req.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	return s.Import(ctx, NewPost(req.Title))
}

// Import stores a fully built post, blocks included.
func (s *service) Import(ctx context.Context, post *Post) (*Post, error) {
	if post == nil {
		return nil, invalidInput(ErrInvalidEdit)
	}
	if post.ID != "" {
		return nil, invalidInput(ErrIDAssigned)
	}
	if err := post.Validate(); err != nil {
		return nil, invalidInput(err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var created *Post
	err := s.retry.run(ctx, false, func() (err error) {
		created, err = s.repo.Create(ctx, post)
		return err
	})
	if err != nil {
		s.logFailure(ctx, "post.create.failed", "", err)
		return nil, err
	}

	s.logger.WithContext(ctx).Info("post.created", "post_id", created.ID, "blocks", len(created.Blocks))
	s.publish(live.ActionCreate, created)
	return created, nil
}

func (s *service) Get(ctx context.Context, id string) (*Post, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var post *Post
	err := s.retry.run(ctx, true, func() (err error) {
		post, err = s.repo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		s.logFailure(ctx, "post.get.failed", id, err)
		return nil, err
	}
	return post, nil
}

func (s *service) List(ctx context.Context) ([]*Post, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var list []*Post
	err := s.retry.run(ctx, true, func() (err error) {
		list, err = s.repo.List(ctx)
		return err
	})
	if err != nil {
		s.logFailure(ctx, "post.list.failed", "", err)
		return nil, err
	}
	return list, nil
}

func (s *service) Replace(ctx context.Context, id string, post Post) (*Post, error) {
	if err := post.Validate(); err != nil {
		return nil, invalidInput(err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var updated *Post
	err := s.retry.run(ctx, true, func() (err error) {
		updated, err = s.repo.Replace(ctx, id, &post)
		return err
	})
	if err != nil {
		s.logFailure(ctx, "post.replace.failed", id, err)
		return nil, err
	}

	s.logger.WithContext(ctx).Info("post.replaced", "post_id", id, "blocks", len(updated.Blocks))
	s.publish(live.ActionUpdate, updated)
	return updated, nil
}

func (s *service) AppendBlock(ctx context.Context, id string, block blocks.Block) (*Post, error) {
	if err := blocks.Validate(block); err != nil {
		return nil, invalidInput(err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var updated *Post
	err := s.retry.run(ctx, false, func() (err error) {
		updated, err = s.repo.AppendBlock(ctx, id, block)
		return err
	})
	if err != nil {
		s.logFailure(ctx, "post.append.failed", id, err)
		return nil, err
	}

	s.logger.WithContext(ctx).Info("post.block.appended", "post_id", id, "block_type", block.Kind())
	s.publish(live.ActionUpdate, updated)
	return updated, nil
}

// ApplyEdit routes a decoded edit. The id argument always addresses the post.
func (s *service) ApplyEdit(ctx context.Context, id string, edit Edit) (*Post, error) {
	switch e := edit.(type) {
	case ReplaceEdit:
		return s.Replace(ctx, id, e.Post)
	case AppendEdit:
		return s.AppendBlock(ctx, id, e.Block)
	default:
		return nil, invalidInput(ErrInvalidEdit)
	}
}

func (s *service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *service) publish(action string, post *Post) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(live.Event{Topic: Topic, Action: action, Data: post})
}

func (s *service) logFailure(ctx context.Context, msg, id string, err error) {
	logger := s.logger.WithContext(ctx)
	if IsNotFound(err) {
		logger.Debug(msg, "post_id", id, "error", err)
		return
	}
	logger.Error(msg, "post_id", id, "error", err)
}
