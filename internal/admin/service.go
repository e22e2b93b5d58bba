// Package admin holds the back-office operations behind the admin screens
// and the admin API: form handling, list views and the dashboard.
package admin

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/LangApex/alumni-platform/internal/changes"
	"github.com/LangApex/alumni-platform/internal/guard"
	"github.com/LangApex/alumni-platform/internal/models"
)

// EventStore is the event table as the admin screens use it.
type EventStore interface {
	Create(ctx context.Context, in models.EventInput) (models.Event, error)
	List(ctx context.Context) ([]models.Event, error)
	Get(ctx context.Context, id string) (models.Event, error)
	Update(ctx context.Context, id string, in models.EventInput) (models.Event, error)
	Delete(ctx context.Context, id string) error
}

// GalleryStore is the gallery table as the admin screens use it.
type GalleryStore interface {
	Create(ctx context.Context, in models.GalleryInput) (models.GalleryItem, error)
	List(ctx context.Context) ([]models.GalleryItem, error)
	Get(ctx context.Context, id string) (models.GalleryItem, error)
	Update(ctx context.Context, id string, in models.GalleryInput) (models.GalleryItem, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	events    EventStore
	gallery   GalleryStore
	guard     guard.Guard
	publisher changes.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(events EventStore, gallery GalleryStore, g guard.Guard, publisher changes.Publisher, logger *zap.Logger) *Service {
	return &Service{
		events:    events,
		gallery:   gallery,
		guard:     g,
		publisher: publisher,
		logger:    logger.Named("admin"),
		now:       time.Now,
	}
}

// acquire claims a submission key. A guard backend failure lets the
// submission through rather than blocking the operator.
func (s *Service) acquire(ctx context.Context, key string) error {
	err := s.guard.Acquire(ctx, key)
	if err == nil || errors.Is(err, guard.ErrDuplicate) {
		return err
	}
	s.logger.Warn("Submission guard unavailable", zap.String("submission_id", key), zap.Error(err))
	return nil
}

func (s *Service) release(ctx context.Context, key string) {
	if err := s.guard.Release(ctx, key); err != nil {
		s.logger.Warn("Failed to release submission key", zap.String("submission_id", key), zap.Error(err))
	}
}

// publish sends a change notice. Failures are logged and never reach the
// caller.
func (s *Service) publish(ctx context.Context, noticeType string, payload any) {
	if err := s.publisher.Publish(ctx, noticeType, payload); err != nil {
		s.logger.Warn("Failed to publish change notice", zap.String("type", noticeType), zap.Error(err))
	}
}
