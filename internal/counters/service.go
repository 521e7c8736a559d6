package counters

import (
	"context"

	"github.com/auteur-engineer/website/internal/live"
	"github.com/auteur-engineer/website/internal/logging"
	"github.com/auteur-engineer/website/pkg/interfaces"
)

// Service reads and adjusts counters, publishing each change on the hub.
type Service interface {
	// Get fails with *NotFoundError for counters never opened.
	Get(ctx context.Context, id string) (*Counter, error)
	// Open returns the counter, creating it at zero when missing.
	Open(ctx context.Context, id string) (*Counter, error)
	// Adjust adds delta, creating the counter first when missing, and
	// publishes the new value on the counter's topic.
	Adjust(ctx context.Context, id string, delta int64) (*Counter, error)
}

// ServiceOption configures the counter service.
type ServiceOption func(*service)

// WithPublisher sends an Update event after every adjustment.
func WithPublisher(publisher live.Publisher) ServiceOption {
	return func(s *service) {
		s.publisher = publisher
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	repo      Repository
	publisher live.Publisher
	logger    interfaces.Logger
}

// NewService returns a counter service backed by repo.
func NewService(repo Repository, opts ...ServiceOption) Service {
	s := &service{repo: repo, logger: logging.NoOp()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Get(ctx context.Context, id string) (*Counter, error) {
	id, err := NormalizeID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *service) Open(ctx context.Context, id string) (*Counter, error) {
	id, err := NormalizeID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Ensure(ctx, id)
}

func (s *service) Adjust(ctx context.Context, id string, delta int64) (*Counter, error) {
	id, err := NormalizeID(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.Ensure(ctx, id); err != nil {
		return nil, err
	}
	counter, err := s.repo.Add(ctx, id, delta)
	if err != nil {
		s.logger.WithContext(ctx).Error("counter.adjust.failed", "counter_id", id, "error", err)
		return nil, err
	}

	s.logger.WithContext(ctx).Debug("counter.adjusted", "counter_id", id, "delta", delta, "value", counter.Value)
	if s.publisher != nil {
		s.publisher.Publish(live.Event{
			Topic:  Topic(id),
			Action: live.ActionUpdate,
			Data:   Update{ID: id, Count: counter.Value},
		})
	}
	return counter, nil
}
