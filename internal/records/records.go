// Package records gives typed access to the events and gallery tables of the
// record store.
package records

import (
	"context"

	"github.com/LangApex/alumni-platform/internal/clients"
	"github.com/LangApex/alumni-platform/internal/models"
)

// Store is the table-level contract of the record store client.
type Store interface {
	Insert(ctx context.Context, table string, record any, out any) error
	List(ctx context.Context, table string, opts clients.ListOptions, out any) error
	Get(ctx context.Context, table, id string, out any) error
	Update(ctx context.Context, table, id string, patch any, out any) error
	DeleteByID(ctx context.Context, table, id string) error
}

// Events reads and writes the events table.
type Events struct {
	store Store
}

// NewEvents returns an Events repository backed by store.
func NewEvents(store Store) *Events {
	return &Events{store: store}
}

// Create inserts in and returns the stored event.
func (r *Events) Create(ctx context.Context, in models.EventInput) (models.Event, error) {
	var event models.Event
	err := r.store.Insert(ctx, models.EventsTable, in, &event)
	return event, err
}

// List returns every event, newest first.
func (r *Events) List(ctx context.Context) ([]models.Event, error) {
	events := []models.Event{}
	if err := r.store.List(ctx, models.EventsTable, clients.ListOptions{Order: clients.NewestFirst}, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Get returns the event with the given id.
func (r *Events) Get(ctx context.Context, id string) (models.Event, error) {
	var event models.Event
	err := r.store.Get(ctx, models.EventsTable, id, &event)
	return event, err
}

// Update overwrites the writable columns of the event with the given id.
func (r *Events) Update(ctx context.Context, id string, in models.EventInput) (models.Event, error) {
	var event models.Event
	err := r.store.Update(ctx, models.EventsTable, id, in, &event)
	return event, err
}

// Delete removes the event with the given id.
func (r *Events) Delete(ctx context.Context, id string) error {
	return r.store.DeleteByID(ctx, models.EventsTable, id)
}

// Gallery reads and writes the gallery table.
type Gallery struct {
	store Store
}

// NewGallery returns a Gallery repository backed by store.
func NewGallery(store Store) *Gallery {
	return &Gallery{store: store}
}

func (r *Gallery) Create(ctx context.Context, in models.GalleryInput) (models.GalleryItem, error) {
	var item models.GalleryItem
	err := r.store.Insert(ctx, models.GalleryTable, in, &item)
	return item, err
}

func (r *Gallery) List(ctx context.Context) ([]models.GalleryItem, error) {
	items := []models.GalleryItem{}
	if err := r.store.List(ctx, models.GalleryTable, clients.ListOptions{Order: clients.NewestFirst}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Gallery) Get(ctx context.Context, id string) (models.GalleryItem, error) {
	var item models.GalleryItem
	err := r.store.Get(ctx, models.GalleryTable, id, &item)
	return item, err
}

func (r *Gallery) Update(ctx context.Context, id string, in models.GalleryInput) (models.GalleryItem, error) {
	var item models.GalleryItem
	err := r.store.Update(ctx, models.GalleryTable, id, in, &item)
	return item, err
}

func (r *Gallery) Delete(ctx context.Context, id string) error {
	return r.store.DeleteByID(ctx, models.GalleryTable, id)
}
