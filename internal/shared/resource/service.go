package resource

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/validation"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Change describes a committed mutation of one entity.
type Change struct {
	Entity     string
	Action     string
	ResourceID uint
	Data       any
	OccurredAt time.Time
	// Audience restricts delivery to one user id; zero means everyone.
	Audience uint
}

// ChangePublisher receives committed changes.
type ChangePublisher interface {
	PublishChange(ctx context.Context, change Change) error
}

// Transactor runs fn inside one transaction.
type Transactor interface {
	Within(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service runs the create/show/edit/delete cycle of one entity type.
type Service[T any, PT Record[T]] struct {
	entity    string
	repo      Repository[T]
	tx        Transactor
	publisher ChangePublisher
	logger    *slog.Logger
	now       func() time.Time
}

// Option customises a Service.
type Option func(*serviceOptions)

type serviceOptions struct {
	publisher ChangePublisher
	logger    *slog.Logger
	now       func() time.Time
}

// WithPublisher publishes a Change after every committed mutation.
func WithPublisher(p ChangePublisher) Option {
	return func(o *serviceOptions) { o.publisher = p }
}

// WithLogger sets the logger used for publish failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *serviceOptions) { o.logger = l }
}

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *serviceOptions) { o.now = now }
}

// NewService wires a service for the entity named entity ("restaurant", "food", ...).
func NewService[T any, PT Record[T]](entity string, repo Repository[T], tx Transactor, opts ...Option) *Service[T, PT] {
	o := serviceOptions{logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Service[T, PT]{
		entity:    entity,
		repo:      repo,
		tx:        tx,
		publisher: o.publisher,
		logger:    o.logger.With(slog.String("entity", entity)),
		now:       o.now,
	}
}

// Create applies patch onto a zero entity and persists it.
func (s *Service[T, PT]) Create(ctx context.Context, patch Patch[T]) (*T, error) {
	entity := new(T)
	patch.Apply(entity)
	PT(entity).MarkCreated(s.now().UTC())
	if err := validation.Struct(entity); err != nil {
		return nil, err
	}

	err := s.tx.Within(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, entity)
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", s.entity, err)
	}

	s.publish(ctx, ActionCreated, PT(entity).PrimaryKey(), entity)
	return entity, nil
}

// Get loads the entity with the given id.
func (s *Service[T, PT]) Get(ctx context.Context, id uint) (*T, error) {
	entity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.entity, err)
	}
	return entity, nil
}

// Update merges patch onto the stored entity and persists it.
func (s *Service[T, PT]) Update(ctx context.Context, id uint, patch Patch[T]) (*T, error) {
	var entity *T
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		entity, err = s.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		patch.Apply(entity)
		PT(entity).MarkUpdated(s.now().UTC())
		if err := validation.Struct(entity); err != nil {
			return err
		}
		return s.repo.Update(ctx, entity)
	})
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", s.entity, err)
	}

	s.publish(ctx, ActionUpdated, id, entity)
	return entity, nil
}

// Delete removes the entity with the given id.
func (s *Service[T, PT]) Delete(ctx context.Context, id uint) error {
	var entity *T
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		entity, err = s.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		return s.repo.Delete(ctx, entity)
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", s.entity, err)
	}

	s.publish(ctx, ActionDeleted, id, entity)
	return nil
}

func (s *Service[T, PT]) publish(ctx context.Context, action string, id uint, data any) {
	if s.publisher == nil {
		return
	}
	change := Change{
		Entity:     s.entity,
		Action:     action,
		ResourceID: id,
		Data:       data,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.PublishChange(ctx, change); err != nil {
		s.logger.WarnContext(ctx, "publish change failed",
			slog.String("action", action),
			slog.Uint64("id", uint64(id)),
			slog.Any("error", err),
		)
	}
}
