package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/LangApex/alumni-platform/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const eventColumns = `id, name, guest, type, attendees, format, "time", details, venue, zoom_link, created_at, updated_at`

var eventOrderColumns = map[string]bool{
	"id": true, "name": true, "guest": true, "type": true, "attendees": true,
	"format": true, "time": true, "created_at": true, "updated_at": true,
}

// EventRepository defines the data access of the events table.
type EventRepository interface {
	Create(ctx context.Context, in models.EventInput) (*models.Event, error)
	CreateMany(ctx context.Context, ins []models.EventInput) ([]*models.Event, error)
	GetByID(ctx context.Context, id string) (*models.Event, error)
	Update(ctx context.Context, id string, in models.EventInput) (*models.Event, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q ListQuery) ([]*models.Event, error)
	HasColumn(name string) bool
}

type eventRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sql.DB, log zerolog.Logger) EventRepository {
	return &eventRepository{
		db:  db,
		log: log,
	}
}

func (r *eventRepository) HasColumn(name string) bool {
	return eventOrderColumns[name] || name == "details" || name == "venue" || name == "zoom_link"
}

// Create inserts a new event with a fresh id and timestamps.
func (r *eventRepository) Create(ctx context.Context, in models.EventInput) (*models.Event, error) {
	return r.insert(ctx, r.db, in)
}

// CreateMany inserts every input in one transaction. Either all rows are
// written or none are.
func (r *eventRepository) CreateMany(ctx context.Context, ins []models.EventInput) ([]*models.Event, error) {
	out := make([]*models.Event, 0, len(ins))
	err := inTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, in := range ins {
			row, err := r.insert(ctx, tx, in)
			if err != nil {
				return err
			}
			out = append(out, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *eventRepository) insert(ctx context.Context, ex execer, in models.EventInput) (*models.Event, error) {
	query := `
		INSERT INTO events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	now := time.Now().UTC()
	event := &models.Event{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Guest:     in.Guest,
		Type:      in.Type,
		Attendees: in.Attendees,
		Format:    in.Format,
		Time:      in.Time.UTC(),
		Details:   in.Details,
		Venue:     in.Venue,
		ZoomLink:  in.ZoomLink,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := ex.ExecContext(ctx, query,
		event.ID,
		event.Name,
		event.Guest,
		event.Type,
		event.Attendees,
		string(event.Format),
		event.Time,
		event.Details,
		event.Venue,
		event.ZoomLink,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		r.log.Error().Err(err).Str("event_id", event.ID).Msg("Failed to create event")
		return nil, err
	}

	return event, nil
}

// GetByID retrieves an event by its ID
func (r *eventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		r.log.Error().Err(err).Str("event_id", id).Msg("Failed to get event by ID")
		return nil, err
	}

	return event, nil
}

// Update overwrites the writable columns of an event.
func (r *eventRepository) Update(ctx context.Context, id string, in models.EventInput) (*models.Event, error) {
	query := `
		UPDATE events
		SET name = $1, guest = $2, type = $3, attendees = $4, format = $5, "time" = $6,
			details = $7, venue = $8, zoom_link = $9, updated_at = $10
		WHERE id = $11
	`

	result, err := r.db.ExecContext(ctx, query,
		in.Name,
		in.Guest,
		in.Type,
		in.Attendees,
		string(in.Format),
		in.Time.UTC(),
		in.Details,
		in.Venue,
		in.ZoomLink,
		time.Now().UTC(),
		id,
	)
	if err != nil {
		r.log.Error().Err(err).Str("event_id", id).Msg("Failed to update event")
		return nil, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to get rows affected for event update")
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, ErrEventNotFound
	}

	return r.GetByID(ctx, id)
}

// Delete removes an event from the database
func (r *eventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		r.log.Error().Err(err).Str("event_id", id).Msg("Failed to delete event")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to get rows affected for event delete")
		return err
	}

	if rowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// List returns the events matching q.
func (r *eventRepository) List(ctx context.Context, q ListQuery) ([]*models.Event, error) {
	query, args, err := buildList(`SELECT `+eventColumns+` FROM events`, q, eventOrderColumns)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to list events")
		return nil, err
	}
	defer rows.Close()

	events := []*models.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			r.log.Error().Err(err).Msg("Failed to scan event")
			return nil, err
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*models.Event, error) {
	var (
		event  models.Event
		format string
	)
	if err := row.Scan(
		&event.ID,
		&event.Name,
		&event.Guest,
		&event.Type,
		&event.Attendees,
		&format,
		&event.Time,
		&event.Details,
		&event.Venue,
		&event.ZoomLink,
		&event.CreatedAt,
		&event.UpdatedAt,
	); err != nil {
		return nil, err
	}
	event.Format = models.EventFormat(format)
	return &event, nil
}
