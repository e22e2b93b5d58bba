package admin

import (
	"context"

	"go.uber.org/zap"

	"github.com/LangApex/alumni-platform/internal/changes"
	"github.com/LangApex/alumni-platform/internal/models"
)

// GalleryForm is a gallery form submission as typed.
type GalleryForm struct {
	Title        string `form:"title"`
	Description  string `form:"description"`
	ImageURL     string `form:"image_url"`
	EventName    string `form:"event_name"`
	Date         string `form:"date"`
	SubmissionID string `form:"submission_id"`
}

func GalleryFormFrom(g models.GalleryItem) GalleryForm {
	f := GalleryForm{
		Title:       g.Title,
		Description: g.Description,
		ImageURL:    g.ImageURL,
		Date:        g.Date,
	}
	if g.EventName != nil {
		f.EventName = *g.EventName
	}
	return f
}

// Input converts the submission into a normalized, validated GalleryInput.
func (f GalleryForm) Input() (models.GalleryInput, error) {
	in := models.GalleryInput{
		Title:       f.Title,
		Description: f.Description,
		ImageURL:    f.ImageURL,
		EventName:   models.StringPtr(f.EventName),
		Date:        f.Date,
	}.Normalize()

	if err := in.Validate(); err != nil {
		return models.GalleryInput{}, err
	}
	return in, nil
}

// CreateGalleryItem mirrors CreateEvent for the gallery table.
func (s *Service) CreateGalleryItem(ctx context.Context, submissionID string, in models.GalleryInput) (models.GalleryItem, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return models.GalleryItem{}, err
	}

	if err := s.acquire(ctx, submissionID); err != nil {
		s.logger.Info("Ignoring duplicate gallery submission", zap.String("submission_id", submissionID))
		return models.GalleryItem{}, err
	}

	item, err := s.gallery.Create(ctx, in)
	if err != nil {
		s.release(ctx, submissionID)
		s.logger.Error("Failed to create gallery item", zap.String("title", in.Title), zap.Error(err))
		return models.GalleryItem{}, err
	}

	s.logger.Info("Gallery item created", zap.String("gallery_id", item.ID))
	s.publish(ctx, changes.GalleryCreated, item)
	return item, nil
}

func (s *Service) UpdateGalleryItem(ctx context.Context, id string, in models.GalleryInput) (models.GalleryItem, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return models.GalleryItem{}, err
	}

	item, err := s.gallery.Update(ctx, id, in)
	if err != nil {
		s.logger.Error("Failed to update gallery item", zap.String("gallery_id", id), zap.Error(err))
		return models.GalleryItem{}, err
	}

	s.logger.Info("Gallery item updated", zap.String("gallery_id", id))
	s.publish(ctx, changes.GalleryUpdated, item)
	return item, nil
}

func (s *Service) GetGalleryItem(ctx context.Context, id string) (models.GalleryItem, error) {
	return s.gallery.Get(ctx, id)
}
