package admin

import (
	"context"

	"go.uber.org/zap"

	"github.com/LangApex/alumni-platform/internal/changes"
	"github.com/LangApex/alumni-platform/internal/models"
)

// ListEvents loads every event newest first. deletedID, when set, is dropped
// from the result even if the store still returns it.
func (s *Service) ListEvents(ctx context.Context, deletedID string) ([]models.Event, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		s.logger.Error("Failed to load events", zap.Error(err))
		return nil, err
	}

	if deletedID != "" {
		kept := events[:0]
		for _, e := range events {
			if e.ID != deletedID {
				kept = append(kept, e)
			}
		}
		events = kept
	}

	models.SortEventsNewestFirst(events)
	return events, nil
}

// ListGallery is ListEvents for gallery items.
func (s *Service) ListGallery(ctx context.Context, deletedID string) ([]models.GalleryItem, error) {
	items, err := s.gallery.List(ctx)
	if err != nil {
		s.logger.Error("Failed to load gallery items", zap.Error(err))
		return nil, err
	}

	if deletedID != "" {
		kept := items[:0]
		for _, g := range items {
			if g.ID != deletedID {
				kept = append(kept, g)
			}
		}
		items = kept
	}

	models.SortGalleryNewestFirst(items)
	return items, nil
}

// DeleteEvent removes an event. Only confirmed deletes reach this point.
func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	if err := s.events.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete event", zap.String("event_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("Event deleted", zap.String("event_id", id))
	s.publish(ctx, changes.EventDeleted, map[string]string{"id": id})
	return nil
}

func (s *Service) DeleteGalleryItem(ctx context.Context, id string) error {
	if err := s.gallery.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete gallery item", zap.String("gallery_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("Gallery item deleted", zap.String("gallery_id", id))
	s.publish(ctx, changes.GalleryDeleted, map[string]string{"id": id})
	return nil
}
