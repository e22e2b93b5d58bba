package models

import (
	"strings"
	"time"
)

// GalleryTable is the record store table holding gallery items.
const GalleryTable = "gallery"

// GalleryItem is a row of the gallery table.
type GalleryItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	EventName   *string   `json:"event_name"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GalleryInput holds the writable columns of a gallery item.
type GalleryInput struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	ImageURL    string  `json:"image_url" validate:"required"`
	EventName   *string `json:"event_name"`
	Date        string  `json:"date" validate:"required"`
}

// Input returns the writable part of g.
func (g GalleryItem) Input() GalleryInput {
	return GalleryInput{
		Title:       g.Title,
		Description: g.Description,
		ImageURL:    g.ImageURL,
		EventName:   g.EventName,
		Date:        g.Date,
	}
}

// Normalize trims every field and turns an empty event name into null.
func (in GalleryInput) Normalize() GalleryInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.Date = strings.TrimSpace(in.Date)
	in.EventName = trimmedOrNil(in.EventName)
	return in
}

// Validate checks the required gallery fields.
func (in GalleryInput) Validate() error {
	if blank(in.Title) || blank(in.Description) || blank(in.ImageURL) || blank(in.Date) {
		return &ValidationError{Message: MsgRequiredFields}
	}
	return nil
}
