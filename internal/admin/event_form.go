package admin

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/LangApex/alumni-platform/internal/changes"
	"github.com/LangApex/alumni-platform/internal/models"
)

// datetimeLocal is the layout of <input type="datetime-local"> values.
const datetimeLocal = "2006-01-02T15:04"

// EventForm is an event form submission exactly as the operator typed it.
type EventForm struct {
	Name         string `form:"name"`
	Guest        string `form:"guest"`
	Type         string `form:"type"`
	Attendees    string `form:"attendees"`
	Format       string `form:"format"`
	Time         string `form:"time"`
	Details      string `form:"details"`
	Venue        string `form:"venue"`
	ZoomLink     string `form:"zoom_link"`
	SubmissionID string `form:"submission_id"`
}

// NewEventForm returns an empty create form defaulting to an offline event.
func NewEventForm(submissionID string) EventForm {
	return EventForm{Format: string(models.FormatOffline), Attendees: "0", SubmissionID: submissionID}
}

// EventFormFrom prefills the edit form with a stored event.
func EventFormFrom(e models.Event, loc *time.Location) EventForm {
	if loc == nil {
		loc = time.UTC
	}
	f := EventForm{
		Name:      e.Name,
		Guest:     e.Guest,
		Type:      e.Type,
		Attendees: strconv.Itoa(e.Attendees),
		Format:    string(e.Format),
		Time:      e.Time.In(loc).Format(datetimeLocal),
		Details:   e.Details,
	}
	if e.Venue != nil {
		f.Venue = *e.Venue
	}
	if e.ZoomLink != nil {
		f.ZoomLink = *e.ZoomLink
	}
	return f
}

// Input converts the submission into a normalized, validated EventInput.
// Times without an offset are read in loc.
func (f EventForm) Input(loc *time.Location) (models.EventInput, error) {
	if isBlank(f.Name) || isBlank(f.Guest) || isBlank(f.Time) || isBlank(f.Type) {
		return models.EventInput{}, &models.ValidationError{Message: models.MsgRequiredFields}
	}

	t, err := models.ParseEventTime(f.Time, loc)
	if err != nil {
		return models.EventInput{}, &models.ValidationError{Field: "time", Message: models.MsgInvalidTime}
	}

	attendees := 0
	if v := strings.TrimSpace(f.Attendees); v != "" {
		attendees, err = strconv.Atoi(v)
		if err != nil {
			return models.EventInput{}, &models.ValidationError{Field: "attendees", Message: models.MsgInvalidAttendees}
		}
	}

	in := models.EventInput{
		Name:      f.Name,
		Guest:     f.Guest,
		Type:      f.Type,
		Attendees: attendees,
		Format:    models.EventFormat(f.Format),
		Time:      t,
		Details:   f.Details,
		Venue:     models.StringPtr(f.Venue),
		ZoomLink:  models.StringPtr(f.ZoomLink),
	}.Normalize()

	if err := in.Validate(); err != nil {
		return models.EventInput{}, err
	}
	return in, nil
}

// CreateEvent validates in and inserts it once per submission key. A
// validation failure never reaches the store. A replayed key returns
// guard.ErrDuplicate without inserting.
func (s *Service) CreateEvent(ctx context.Context, submissionID string, in models.EventInput) (models.Event, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return models.Event{}, err
	}

	if err := s.acquire(ctx, submissionID); err != nil {
		s.logger.Info("Ignoring duplicate event submission", zap.String("submission_id", submissionID))
		return models.Event{}, err
	}

	event, err := s.events.Create(ctx, in)
	if err != nil {
		s.release(ctx, submissionID)
		s.logger.Error("Failed to create event", zap.String("name", in.Name), zap.Error(err))
		return models.Event{}, err
	}

	s.logger.Info("Event created", zap.String("event_id", event.ID))
	s.publish(ctx, changes.EventCreated, event)
	return event, nil
}

// UpdateEvent re-validates the full record and overwrites the stored event.
func (s *Service) UpdateEvent(ctx context.Context, id string, in models.EventInput) (models.Event, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return models.Event{}, err
	}

	event, err := s.events.Update(ctx, id, in)
	if err != nil {
		s.logger.Error("Failed to update event", zap.String("event_id", id), zap.Error(err))
		return models.Event{}, err
	}

	s.logger.Info("Event updated", zap.String("event_id", id))
	s.publish(ctx, changes.EventUpdated, event)
	return event, nil
}

// GetEvent returns one event for the edit and delete screens.
func (s *Service) GetEvent(ctx context.Context, id string) (models.Event, error) {
	return s.events.Get(ctx, id)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
