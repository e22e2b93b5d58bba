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

const galleryColumns = `id, title, description, image_url, event_name, date, created_at, updated_at`

var galleryOrderColumns = map[string]bool{
	"id": true, "title": true, "event_name": true, "date": true,
	"created_at": true, "updated_at": true,
}

// GalleryRepository defines the data access of the gallery table.
type GalleryRepository interface {
	Create(ctx context.Context, in models.GalleryInput) (*models.GalleryItem, error)
	CreateMany(ctx context.Context, ins []models.GalleryInput) ([]*models.GalleryItem, error)
	GetByID(ctx context.Context, id string) (*models.GalleryItem, error)
	Update(ctx context.Context, id string, in models.GalleryInput) (*models.GalleryItem, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q ListQuery) ([]*models.GalleryItem, error)
	HasColumn(name string) bool
}

type galleryRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewGalleryRepository creates a new gallery repository
func NewGalleryRepository(db *sql.DB, log zerolog.Logger) GalleryRepository {
	return &galleryRepository{
		db:  db,
		log: log,
	}
}

func (r *galleryRepository) HasColumn(name string) bool {
	return galleryOrderColumns[name] || name == "description" || name == "image_url"
}

func (r *galleryRepository) Create(ctx context.Context, in models.GalleryInput) (*models.GalleryItem, error) {
	return r.insert(ctx, r.db, in)
}

// CreateMany inserts every input in one transaction. Either all rows are
// written or none are.
func (r *galleryRepository) CreateMany(ctx context.Context, ins []models.GalleryInput) ([]*models.GalleryItem, error) {
	out := make([]*models.GalleryItem, 0, len(ins))
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

func (r *galleryRepository) insert(ctx context.Context, ex execer, in models.GalleryInput) (*models.GalleryItem, error) {
	query := `
		INSERT INTO gallery (` + galleryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	now := time.Now().UTC()
	item := &models.GalleryItem{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		EventName:   in.EventName,
		Date:        in.Date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := ex.ExecContext(ctx, query,
		item.ID,
		item.Title,
		item.Description,
		item.ImageURL,
		item.EventName,
		item.Date,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		r.log.Error().Err(err).Str("gallery_id", item.ID).Msg("Failed to create gallery item")
		return nil, err
	}

	return item, nil
}

func (r *galleryRepository) GetByID(ctx context.Context, id string) (*models.GalleryItem, error) {
	query := `SELECT ` + galleryColumns + ` FROM gallery WHERE id = $1`

	item, err := scanGalleryItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGalleryItemNotFound
		}
		r.log.Error().Err(err).Str("gallery_id", id).Msg("Failed to get gallery item by ID")
		return nil, err
	}

	return item, nil
}

func (r *galleryRepository) Update(ctx context.Context, id string, in models.GalleryInput) (*models.GalleryItem, error) {
	query := `
		UPDATE gallery
		SET title = $1, description = $2, image_url = $3, event_name = $4, date = $5, updated_at = $6
		WHERE id = $7
	`

	result, err := r.db.ExecContext(ctx, query,
		in.Title,
		in.Description,
		in.ImageURL,
		in.EventName,
		in.Date,
		time.Now().UTC(),
		id,
	)
	if err != nil {
		r.log.Error().Err(err).Str("gallery_id", id).Msg("Failed to update gallery item")
		return nil, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to get rows affected for gallery update")
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, ErrGalleryItemNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *galleryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM gallery WHERE id = $1`, id)
	if err != nil {
		r.log.Error().Err(err).Str("gallery_id", id).Msg("Failed to delete gallery item")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to get rows affected for gallery delete")
		return err
	}

	if rowsAffected == 0 {
		return ErrGalleryItemNotFound
	}

	return nil
}

func (r *galleryRepository) List(ctx context.Context, q ListQuery) ([]*models.GalleryItem, error) {
	query, args, err := buildList(`SELECT `+galleryColumns+` FROM gallery`, q, galleryOrderColumns)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to list gallery items")
		return nil, err
	}
	defer rows.Close()

	items := []*models.GalleryItem{}
	for rows.Next() {
		item, err := scanGalleryItem(rows)
		if err != nil {
			r.log.Error().Err(err).Msg("Failed to scan gallery item")
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func scanGalleryItem(row rowScanner) (*models.GalleryItem, error) {
	var item models.GalleryItem
	if err := row.Scan(
		&item.ID,
		&item.Title,
		&item.Description,
		&item.ImageURL,
		&item.EventName,
		&item.Date,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}
