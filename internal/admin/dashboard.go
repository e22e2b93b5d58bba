package admin

import (
	"context"

	"github.com/LangApex/alumni-platform/internal/models"
)

// Dashboard holds the summary counts of the landing page.
type Dashboard struct {
	TotalEvents    int `json:"total_events"`
	UpcomingEvents int `json:"upcoming_events"`
	GalleryItems   int `json:"gallery_items"`
}

func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	items, err := s.gallery.List(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	upcoming, _ := models.SplitByTime(events, s.now())
	return Dashboard{
		TotalEvents:    len(events),
		UpcomingEvents: len(upcoming),
		GalleryItems:   len(items),
	}, nil
}

// PublicEvents splits every event into upcoming and past relative to now.
func (s *Service) PublicEvents(ctx context.Context) (upcoming, past []models.Event, err error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	upcoming, past = models.SplitByTime(events, s.now())
	return upcoming, past, nil
}
