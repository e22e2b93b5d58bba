package models

import (
	"strings"
	"time"
)

// EventsTable is the record store table holding events.
const EventsTable = "events"

// EventFormat says whether an event happens at a venue or over a video call.
type EventFormat string

const (
	FormatOnline  EventFormat = "online"
	FormatOffline EventFormat = "offline"
)

// Valid reports whether f is one of the known formats.
func (f EventFormat) Valid() bool {
	return f == FormatOnline || f == FormatOffline
}

// Event is a row of the events table as the store returns it.
type Event struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Guest     string      `json:"guest"`
	Type      string      `json:"type"`
	Attendees int         `json:"attendees"`
	Format    EventFormat `json:"format"`
	Time      time.Time   `json:"time"`
	Details   string      `json:"details"`
	Venue     *string     `json:"venue"`
	ZoomLink  *string     `json:"zoom_link"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// EventInput holds the writable columns of an event. It is the payload of
// inserts and updates; venue and zoom_link are always sent, null when unused.
type EventInput struct {
	Name      string      `json:"name" validate:"required"`
	Guest     string      `json:"guest" validate:"required"`
	Type      string      `json:"type" validate:"required"`
	Attendees int         `json:"attendees" validate:"gte=0"`
	Format    EventFormat `json:"format" validate:"required,oneof=online offline"`
	Time      time.Time   `json:"time" validate:"required"`
	Details   string      `json:"details"`
	Venue     *string     `json:"venue"`
	ZoomLink  *string     `json:"zoom_link"`
}

// Input returns the writable part of e.
func (e Event) Input() EventInput {
	return EventInput{
		Name:      e.Name,
		Guest:     e.Guest,
		Type:      e.Type,
		Attendees: e.Attendees,
		Format:    e.Format,
		Time:      e.Time,
		Details:   e.Details,
		Venue:     e.Venue,
		ZoomLink:  e.ZoomLink,
	}
}

// Location returns the venue for offline events and the zoom link for online
// ones.
func (e Event) Location() string {
	switch e.Format {
	case FormatOffline:
		return deref(e.Venue)
	case FormatOnline:
		return deref(e.ZoomLink)
	}
	return ""
}

// LocationLabel is the location shown to the public: the venue for offline
// events and "Online" otherwise. The zoom link is never part of it.
func (e Event) LocationLabel() string {
	if e.Format == FormatOffline {
		return deref(e.Venue)
	}
	return "Online"
}

// Normalize trims free-text fields and nulls the location field that does not
// match the format, so exactly one of venue and zoom_link is populated.
func (in EventInput) Normalize() EventInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Guest = strings.TrimSpace(in.Guest)
	in.Type = strings.TrimSpace(in.Type)
	in.Details = strings.TrimSpace(in.Details)
	in.Format = EventFormat(strings.ToLower(strings.TrimSpace(string(in.Format))))
	in.Venue = trimmedOrNil(in.Venue)
	in.ZoomLink = trimmedOrNil(in.ZoomLink)

	switch in.Format {
	case FormatOffline:
		in.ZoomLink = nil
	case FormatOnline:
		in.Venue = nil
	}
	return in
}

// Validate applies the admin form rules in the order operators see them.
func (in EventInput) Validate() error {
	if blank(in.Name) || blank(in.Guest) || in.Time.IsZero() || blank(in.Type) {
		return &ValidationError{Message: MsgRequiredFields}
	}
	if !in.Format.Valid() {
		return &ValidationError{Field: "format", Message: MsgInvalidFormat}
	}
	if in.Attendees < 0 {
		return &ValidationError{Field: "attendees", Message: MsgNegativeAttendees}
	}
	if in.Format == FormatOffline && blank(deref(in.Venue)) {
		return &ValidationError{Field: "venue", Message: MsgVenueRequired}
	}
	if in.Format == FormatOnline && blank(deref(in.ZoomLink)) {
		return &ValidationError{Field: "zoom_link", Message: MsgZoomLinkRequired}
	}
	return nil
}

// LocationConsistent reports whether exactly one of venue and zoom_link is
// set and it is the one the format calls for.
func LocationConsistent(format EventFormat, venue, zoomLink *string) bool {
	switch format {
	case FormatOffline:
		return venue != nil && zoomLink == nil
	case FormatOnline:
		return zoomLink != nil && venue == nil
	}
	return false
}

// ParseEventTime accepts the datetime-local values browsers submit as well as
// RFC 3339. Values without an offset are read in loc.
func ParseEventTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	var lastErr error
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02T15:04:05", "2006-01-02 15:04"} {
		t, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
