package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/LangApex/alumni-platform/internal/changes"
	"github.com/LangApex/alumni-platform/internal/guard"
	"github.com/LangApex/alumni-platform/internal/models"
)

type fakeEvents struct {
	rows      []models.Event
	inserts   []models.EventInput
	updates   []models.EventInput
	deleted   []string
	createErr error
	listErr   error
}

func (f *fakeEvents) Create(_ context.Context, in models.EventInput) (models.Event, error) {
	f.inserts = append(f.inserts, in)
	if f.createErr != nil {
		return models.Event{}, f.createErr
	}
	e := models.Event{
		ID: "e" + string(rune('0'+len(f.inserts))), Name: in.Name, Guest: in.Guest, Type: in.Type,
		Attendees: in.Attendees, Format: in.Format, Time: in.Time, Details: in.Details,
		Venue: in.Venue, ZoomLink: in.ZoomLink, CreatedAt: time.Now(),
	}
	f.rows = append(f.rows, e)
	return e, nil
}

func (f *fakeEvents) List(context.Context) ([]models.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Event(nil), f.rows...), nil
}

func (f *fakeEvents) Get(_ context.Context, id string) (models.Event, error) {
	for _, e := range f.rows {
		if e.ID == id {
			return e, nil
		}
	}
	return models.Event{}, errors.New("not found")
}

func (f *fakeEvents) Update(_ context.Context, id string, in models.EventInput) (models.Event, error) {
	f.updates = append(f.updates, in)
	return models.Event{ID: id, Name: in.Name, Format: in.Format, Venue: in.Venue, ZoomLink: in.ZoomLink}, nil
}

func (f *fakeEvents) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeGallery struct {
	rows    []models.GalleryItem
	inserts []models.GalleryInput
}

func (f *fakeGallery) Create(_ context.Context, in models.GalleryInput) (models.GalleryItem, error) {
	f.inserts = append(f.inserts, in)
	item := models.GalleryItem{ID: "g1", Title: in.Title, EventName: in.EventName, CreatedAt: time.Now()}
	f.rows = append(f.rows, item)
	return item, nil
}

func (f *fakeGallery) List(context.Context) ([]models.GalleryItem, error) {
	return append([]models.GalleryItem(nil), f.rows...), nil
}

func (f *fakeGallery) Get(context.Context, string) (models.GalleryItem, error) {
	return models.GalleryItem{}, errors.New("not found")
}

func (f *fakeGallery) Update(_ context.Context, id string, in models.GalleryInput) (models.GalleryItem, error) {
	return models.GalleryItem{ID: id, Title: in.Title}, nil
}

func (f *fakeGallery) Delete(context.Context, string) error { return nil }

type recordingPublisher struct {
	types []string
	err   error
}

func (p *recordingPublisher) Publish(_ context.Context, noticeType string, _ any) error {
	p.types = append(p.types, noticeType)
	return p.err
}

func newTestService() (*Service, *fakeEvents, *fakeGallery, *recordingPublisher) {
	events := &fakeEvents{}
	gallery := &fakeGallery{}
	pub := &recordingPublisher{}
	return NewService(events, gallery, guard.NewMemoryGuard(time.Minute), pub, zap.NewNop()), events, gallery, pub
}

func galaForm() EventForm {
	return EventForm{
		Name:   "Gala",
		Guest:  "Jane Doe",
		Format: "offline",
		Venue:  "Hall A",
		Time:   "2026-06-15T18:00",
		Type:   "Social",
	}
}

func TestEventFormValidationNeverInserts(t *testing.T) {
	tests := []struct {
		name string
		edit func(*EventForm)
		msg  string
	}{
		{"missing name", func(f *EventForm) { f.Name = "" }, models.MsgRequiredFields},
		{"blank guest", func(f *EventForm) { f.Guest = "   " }, models.MsgRequiredFields},
		{"missing time", func(f *EventForm) { f.Time = "" }, models.MsgRequiredFields},
		{"missing type", func(f *EventForm) { f.Type = "" }, models.MsgRequiredFields},
		{"bad time", func(f *EventForm) { f.Time = "soon" }, models.MsgInvalidTime},
		{"bad format", func(f *EventForm) { f.Format = "hybrid" }, models.MsgInvalidFormat},
		{"negative attendees", func(f *EventForm) { f.Attendees = "-3" }, models.MsgNegativeAttendees},
		{"non-numeric attendees", func(f *EventForm) { f.Attendees = "many" }, models.MsgInvalidAttendees},
		{"offline without venue", func(f *EventForm) { f.Venue = " " }, models.MsgVenueRequired},
		{"online without zoom", func(f *EventForm) { f.Format = "online"; f.ZoomLink = "" }, models.MsgZoomLinkRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, events, _, _ := newTestService()
			form := galaForm()
			tt.edit(&form)

			in, err := form.Input(time.UTC)
			if err == nil {
				_, err = svc.CreateEvent(context.Background(), "key", in)
			}

			var verr *models.ValidationError
			if !errors.As(err, &verr) || verr.Message != tt.msg {
				t.Fatalf("err = %v, want %q", err, tt.msg)
			}
			if len(events.inserts) != 0 {
				t.Fatalf("insert called %d times", len(events.inserts))
			}
		})
	}
}

func TestCreateEventRejectsInvalidInputDirectly(t *testing.T) {
	svc, events, _, _ := newTestService()

	_, err := svc.CreateEvent(context.Background(), "", models.EventInput{
		Name: "Talk", Guest: "Guest", Type: "Lecture", Format: models.FormatOnline, Time: time.Now(),
	})
	var verr *models.ValidationError
	if !errors.As(err, &verr) || verr.Message != models.MsgZoomLinkRequired {
		t.Fatalf("err = %v", err)
	}
	if len(events.inserts) != 0 {
		t.Fatal("insert called for invalid input")
	}
}

func TestCreateGalaNullsZoomLink(t *testing.T) {
	svc, events, _, pub := newTestService()

	form := galaForm()
	form.ZoomLink = "https://zoom.us/j/stale"
	in, err := form.Input(time.UTC)
	if err != nil {
		t.Fatalf("input: %v", err)
	}

	event, err := svc.CreateEvent(context.Background(), "key", in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if event.ZoomLink != nil || event.Venue == nil || *event.Venue != "Hall A" {
		t.Fatalf("event = %+v", event)
	}
	if len(events.inserts) != 1 || events.inserts[0].ZoomLink != nil {
		t.Fatalf("inserts = %+v", events.inserts)
	}
	want := time.Date(2026, 6, 15, 18, 0, 0, 0, time.UTC)
	if !events.inserts[0].Time.Equal(want) {
		t.Fatalf("time = %v, want %v", events.inserts[0].Time, want)
	}
	if len(pub.types) != 1 || pub.types[0] != changes.EventCreated {
		t.Fatalf("published = %v", pub.types)
	}
}

func TestCreateEventSubmissionGuard(t *testing.T) {
	svc, events, _, _ := newTestService()
	in, err := galaForm().Input(time.UTC)
	if err != nil {
		t.Fatalf("input: %v", err)
	}

	if _, err := svc.CreateEvent(context.Background(), "sub-1", in); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := svc.CreateEvent(context.Background(), "sub-1", in); !errors.Is(err, guard.ErrDuplicate) {
		t.Fatalf("replay err = %v, want ErrDuplicate", err)
	}
	if len(events.inserts) != 1 {
		t.Fatalf("inserts = %d, want 1", len(events.inserts))
	}
}

func TestCreateEventFailureReleasesKey(t *testing.T) {
	svc, events, _, pub := newTestService()
	events.createErr = errors.New("store down")
	in, _ := galaForm().Input(time.UTC)

	if _, err := svc.CreateEvent(context.Background(), "sub-1", in); err == nil {
		t.Fatal("expected store error")
	}
	if len(pub.types) != 0 {
		t.Fatalf("published after failure: %v", pub.types)
	}

	events.createErr = nil
	if _, err := svc.CreateEvent(context.Background(), "sub-1", in); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	svc, _, _, pub := newTestService()
	pub.err = errors.New("redis down")
	in, _ := galaForm().Input(time.UTC)

	if _, err := svc.CreateEvent(context.Background(), "", in); err != nil {
		t.Fatalf("create: %v", err)
	}
}

func TestUpdateEventRevalidates(t *testing.T) {
	svc, events, _, pub := newTestService()

	in, _ := galaForm().Input(time.UTC)
	in.Format = models.FormatOnline
	if _, err := svc.UpdateEvent(context.Background(), "e1", in); err == nil {
		t.Fatal("expected validation error for online event without zoom link")
	}

	in.ZoomLink = models.StringPtr("https://zoom.us/j/1")
	updated, err := svc.UpdateEvent(context.Background(), "e1", in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Venue != nil {
		t.Fatalf("venue kept after switching online: %v", *updated.Venue)
	}
	if len(events.updates) != 1 || len(pub.types) != 1 || pub.types[0] != changes.EventUpdated {
		t.Fatalf("updates = %d, published = %v", len(events.updates), pub.types)
	}
}

func TestListEventsNewestFirstAndForgetsDeleted(t *testing.T) {
	svc, events, _, _ := newTestService()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	events.rows = []models.Event{
		{ID: "b", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "d", CreatedAt: base.Add(4 * time.Hour)},
		{ID: "a", CreatedAt: base.Add(1 * time.Hour)},
		{ID: "c", CreatedAt: base.Add(3 * time.Hour)},
	}

	list, err := svc.ListEvents(context.Background(), "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got := eventIDs(list); got != "dcba" {
		t.Fatalf("order = %s, want dcba", got)
	}

	list, err = svc.ListEvents(context.Background(), "c")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got := eventIDs(list); got != "dba" {
		t.Fatalf("order after delete = %s, want dba", got)
	}
}

func TestDeleteEventPublishes(t *testing.T) {
	svc, events, _, pub := newTestService()
	if err := svc.DeleteEvent(context.Background(), "e9"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(events.deleted) != 1 || events.deleted[0] != "e9" {
		t.Fatalf("deleted = %v", events.deleted)
	}
	if len(pub.types) != 1 || pub.types[0] != changes.EventDeleted {
		t.Fatalf("published = %v", pub.types)
	}
}

func TestGalleryForm(t *testing.T) {
	svc, _, gallery, _ := newTestService()

	if _, err := (GalleryForm{Title: "Reunion", ImageURL: "https://example.com/a.jpg", Date: "2024-06-01"}).Input(); err == nil {
		t.Fatal("expected required-field error for missing description")
	}

	in, err := GalleryForm{
		Title:       " Reunion ",
		Description: "Class of 2010",
		ImageURL:    "https://example.com/a.jpg",
		EventName:   "   ",
		Date:        "2024-06-01",
	}.Input()
	if err != nil {
		t.Fatalf("input: %v", err)
	}
	if in.Title != "Reunion" || in.EventName != nil {
		t.Fatalf("input = %+v", in)
	}

	if _, err := svc.CreateGalleryItem(context.Background(), "g-sub", in); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateGalleryItem(context.Background(), "g-sub", in); !errors.Is(err, guard.ErrDuplicate) {
		t.Fatalf("replay err = %v", err)
	}
	if len(gallery.inserts) != 1 {
		t.Fatalf("inserts = %d", len(gallery.inserts))
	}
}

func TestEventFormFromRoundTrips(t *testing.T) {
	loc := time.FixedZone("WAT", 3600)
	e := models.Event{
		Name: "Gala", Guest: "Jane Doe", Type: "Social", Attendees: 12,
		Format: models.FormatOffline, Venue: models.StringPtr("Hall A"),
		Time: time.Date(2026, 6, 15, 17, 0, 0, 0, time.UTC),
	}

	form := EventFormFrom(e, loc)
	if form.Time != "2026-06-15T18:00" || form.Attendees != "12" {
		t.Fatalf("form = %+v", form)
	}
	in, err := form.Input(loc)
	if err != nil {
		t.Fatalf("input: %v", err)
	}
	if !in.Time.Equal(e.Time) {
		t.Fatalf("time = %v, want %v", in.Time, e.Time)
	}
}

func TestDashboardCounts(t *testing.T) {
	svc, events, gallery, _ := newTestService()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	events.rows = []models.Event{
		{ID: "past", Time: now.Add(-time.Hour)},
		{ID: "soon", Time: now.Add(time.Hour)},
		{ID: "later", Time: now.Add(48 * time.Hour)},
	}
	gallery.rows = []models.GalleryItem{{ID: "g1"}}

	d, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if d != (Dashboard{TotalEvents: 3, UpcomingEvents: 2, GalleryItems: 1}) {
		t.Fatalf("dashboard = %+v", d)
	}

	upcoming, past, err := svc.PublicEvents(context.Background())
	if err != nil {
		t.Fatalf("public events: %v", err)
	}
	if len(upcoming) != 2 || upcoming[0].ID != "soon" || len(past) != 1 {
		t.Fatalf("upcoming = %v, past = %v", upcoming, past)
	}
}

func TestDashboardStoreFailure(t *testing.T) {
	svc, events, _, _ := newTestService()
	events.listErr = errors.New("store down")
	if _, err := svc.Dashboard(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func eventIDs(events []models.Event) string {
	var s string
	for _, e := range events {
		s += e.ID
	}
	return s
}
