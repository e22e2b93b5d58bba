package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/LangApex/alumni-platform/internal/models"
	"github.com/LangApex/alumni-platform/internal/store/repository"
)

// resource is one table exposed over the REST interface. Methods return an
// *apiError for client mistakes and a plain error for storage failures.
type resource interface {
	hasColumn(name string) bool
	list(ctx context.Context, q repository.ListQuery) (any, error)
	insert(ctx context.Context, body []byte) (any, error)
	update(ctx context.Context, id string, body []byte) (any, error)
	delete(ctx context.Context, id string) error
}

type tableRepository[In, Row any] interface {
	CreateMany(ctx context.Context, ins []In) ([]*Row, error)
	GetByID(ctx context.Context, id string) (*Row, error)
	Update(ctx context.Context, id string, in In) (*Row, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q repository.ListQuery) ([]*Row, error)
	HasColumn(name string) bool
}

type table[In, Row any] struct {
	name     string
	repo     tableRepository[In, Row]
	notFound error
	input    func(*Row) In
	// check enforces row constraints beyond the struct tags.
	check func(In) *apiError
}

func eventsTable(repo repository.EventRepository) resource {
	return &table[models.EventInput, models.Event]{
		name:     models.EventsTable,
		repo:     repo,
		notFound: repository.ErrEventNotFound,
		input:    func(e *models.Event) models.EventInput { return e.Input() },
		check: func(in models.EventInput) *apiError {
			if !models.LocationConsistent(in.Format, in.Venue, in.ZoomLink) {
				return newAPIError(http.StatusBadRequest, codeCheck,
					`new row for relation "events" violates check constraint "events_location_matches_format"`)
			}
			return nil
		},
	}
}

func galleryTable(repo repository.GalleryRepository) resource {
	return &table[models.GalleryInput, models.GalleryItem]{
		name:     models.GalleryTable,
		repo:     repo,
		notFound: repository.ErrGalleryItemNotFound,
		input:    func(g *models.GalleryItem) models.GalleryInput { return g.Input() },
	}
}

func (t *table[In, Row]) hasColumn(name string) bool {
	return t.repo.HasColumn(name)
}

func (t *table[In, Row]) list(ctx context.Context, q repository.ListQuery) (any, error) {
	rows, err := t.repo.List(ctx, q)
	if errors.Is(err, repository.ErrUnknownColumn) {
		return nil, newAPIError(http.StatusBadRequest, codeUndefinedCol, "cannot order %s by %s", t.name, q.OrderBy)
	}
	return rows, err
}

// insert accepts a single object or an array of objects. Every row is
// validated before any is written and an array is written atomically.
func (t *table[In, Row]) insert(ctx context.Context, body []byte) (any, error) {
	var raws []json.RawMessage
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			return nil, decodeError(t.name, err)
		}
	} else {
		raws = []json.RawMessage{trimmed}
	}

	inputs := make([]In, 0, len(raws))
	for _, raw := range raws {
		var in In
		if err := t.decode(raw, &in); err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}

	return t.repo.CreateMany(ctx, inputs)
}

// update applies body as a partial patch over the stored row. A missing row
// yields an empty result, not an error.
func (t *table[In, Row]) update(ctx context.Context, id string, body []byte) (any, error) {
	current, err := t.repo.GetByID(ctx, id)
	if errors.Is(err, t.notFound) {
		return []*Row{}, nil
	}
	if err != nil {
		return nil, err
	}

	in := t.input(current)
	if err := t.decode(body, &in); err != nil {
		return nil, err
	}

	row, err := t.repo.Update(ctx, id, in)
	if errors.Is(err, t.notFound) {
		return []*Row{}, nil
	}
	if err != nil {
		return nil, err
	}
	return []*Row{row}, nil
}

func (t *table[In, Row]) delete(ctx context.Context, id string) error {
	err := t.repo.Delete(ctx, id)
	if errors.Is(err, t.notFound) {
		return nil
	}
	return err
}

// decode reads raw over in and validates the result.
func (t *table[In, Row]) decode(raw []byte, in *In) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(in); err != nil {
		return decodeError(t.name, err)
	}
	if err := validate.Struct(in); err != nil {
		return validationError(t.name, err)
	}
	if t.check != nil {
		if apiErr := t.check(*in); apiErr != nil {
			return apiErr
		}
	}
	return nil
}
