package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/LangApex/alumni-platform/internal/models"
	"github.com/LangApex/alumni-platform/internal/store/database"
	"github.com/rs/zerolog"
)

func newTestDB(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.New(context.Background(), database.Config{
		Driver: database.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "records.db"),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func gala() models.EventInput {
	return models.EventInput{
		Name:      "Gala",
		Guest:     "Jane Doe",
		Type:      "Social",
		Attendees: 50,
		Format:    models.FormatOffline,
		Time:      time.Date(2025, 5, 1, 19, 0, 0, 0, time.UTC),
		Venue:     models.StringPtr("Hall A"),
	}
}

func TestEventRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(newTestDB(t).DB(), zerolog.Nop())

	created, err := repo.Create(ctx, gala())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("created = %+v", created)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Gala" || got.Format != models.FormatOffline || got.ZoomLink != nil {
		t.Fatalf("got = %+v", got)
	}
	if got.Venue == nil || *got.Venue != "Hall A" {
		t.Fatalf("venue = %v", got.Venue)
	}
	if !got.Time.Equal(created.Time) {
		t.Fatalf("time = %v, want %v", got.Time, created.Time)
	}

	in := got.Input()
	in.Format = models.FormatOnline
	in.Venue = nil
	in.ZoomLink = models.StringPtr("https://zoom.us/j/1")
	updated, err := repo.Update(ctx, created.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Venue != nil || updated.ZoomLink == nil || updated.Format != models.FormatOnline {
		t.Fatalf("updated = %+v", updated)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("get after delete err = %v", err)
	}
	if err := repo.Delete(ctx, created.ID); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
}

func TestEventRepositoryUpdateMissing(t *testing.T) {
	repo := NewEventRepository(newTestDB(t).DB(), zerolog.Nop())
	if _, err := repo.Update(context.Background(), "missing", gala()); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("err = %v, want ErrEventNotFound", err)
	}
}

func TestEventRepositoryRejectsInconsistentLocation(t *testing.T) {
	repo := NewEventRepository(newTestDB(t).DB(), zerolog.Nop())
	in := gala()
	in.ZoomLink = models.StringPtr("https://zoom.us/j/1")
	if _, err := repo.Create(context.Background(), in); err == nil {
		t.Fatal("expected check constraint failure")
	}
}

func TestEventRepositoryCreateManyIsAtomic(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(newTestDB(t).DB(), zerolog.Nop())

	bad := gala()
	bad.Name = "Broken"
	bad.ZoomLink = models.StringPtr("https://zoom.us/j/1")
	if _, err := repo.CreateMany(ctx, []models.EventInput{gala(), gala(), bad}); err == nil {
		t.Fatal("expected check constraint failure")
	}

	events, err := repo.List(ctx, ListQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("events after failed batch = %d, want 0", len(events))
	}

	created, err := repo.CreateMany(ctx, []models.EventInput{gala(), gala()})
	if err != nil {
		t.Fatalf("create many: %v", err)
	}
	if len(created) != 2 || created[0].ID == created[1].ID {
		t.Fatalf("created = %+v", created)
	}
	if events, _ = repo.List(ctx, ListQuery{}); len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
}

func TestEventRepositoryListOrderAndPaging(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(newTestDB(t).DB(), zerolog.Nop())

	var ids []string
	for _, name := range []string{"first", "second", "third"} {
		in := gala()
		in.Name = name
		e, err := repo.Create(ctx, in)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		ids = append(ids, e.ID)
		time.Sleep(2 * time.Millisecond)
	}

	events, err := repo.List(ctx, ListQuery{OrderBy: "created_at", Descending: true})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 3 || events[0].Name != "third" || events[2].Name != "first" {
		t.Fatalf("order = %v", names(events))
	}

	page, err := repo.List(ctx, ListQuery{OrderBy: "created_at", Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if len(page) != 1 || page[0].Name != "second" {
		t.Fatalf("page = %v", names(page))
	}

	one, err := repo.List(ctx, ListQuery{ID: ids[0]})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(one) != 1 || one[0].ID != ids[0] {
		t.Fatalf("filter = %v", names(one))
	}

	if _, err := repo.List(ctx, ListQuery{OrderBy: "password"}); !errors.Is(err, ErrUnknownColumn) {
		t.Fatalf("unknown column err = %v", err)
	}
}

func TestGalleryRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewGalleryRepository(newTestDB(t).DB(), zerolog.Nop())

	created, err := repo.Create(ctx, models.GalleryInput{
		Title:       "Reunion",
		Description: "Class of 2010",
		ImageURL:    "https://example.com/a.jpg",
		Date:        "2024-06-01",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.EventName != nil {
		t.Fatalf("event_name = %v, want nil", created.EventName)
	}

	in := created.Input()
	in.EventName = models.StringPtr("Gala")
	updated, err := repo.Update(ctx, created.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.EventName == nil || *updated.EventName != "Gala" {
		t.Fatalf("updated = %+v", updated)
	}

	items, err := repo.List(ctx, ListQuery{Descending: true})
	if err != nil || len(items) != 1 {
		t.Fatalf("list = %v, %v", items, err)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, ErrGalleryItemNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestBuildList(t *testing.T) {
	allowed := map[string]bool{"created_at": true}
	query, args, err := buildList("SELECT * FROM t", ListQuery{ID: "x", Descending: true, Offset: 5}, allowed)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := `SELECT * FROM t WHERE id = $1 ORDER BY "created_at" DESC, id DESC LIMIT $2 OFFSET $3`
	if query != want {
		t.Fatalf("query = %q\nwant    %q", query, want)
	}
	if len(args) != 3 || args[0] != "x" || args[2] != 5 {
		t.Fatalf("args = %v", args)
	}
}

func names(events []*models.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Name)
	}
	return out
}
