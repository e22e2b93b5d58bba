package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// storeLayouts are the timestamp shapes a record store may return besides
// RFC 3339: Postgres text output and columns written without an offset.
var storeLayouts = []string{
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z07",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// parseStoreTime reads a timestamp column. Values without an offset are
// taken as UTC. An empty value is the zero time.
func parseStoreTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	for _, layout := range storeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

func parseRowTimes(created, updated *string) (time.Time, time.Time, error) {
	c, err := parseStoreTime(deref(created))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("created_at: %w", err)
	}
	u, err := parseStoreTime(deref(updated))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("updated_at: %w", err)
	}
	return c, u, nil
}

// UnmarshalJSON decodes an events row, accepting timestamps with or without
// a UTC offset.
func (e *Event) UnmarshalJSON(data []byte) error {
	type row Event
	aux := struct {
		*row
		Time      *string `json:"time"`
		CreatedAt *string `json:"created_at"`
		UpdatedAt *string `json:"updated_at"`
	}{row: (*row)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	t, err := parseStoreTime(deref(aux.Time))
	if err != nil {
		return fmt.Errorf("time: %w", err)
	}
	e.Time = t
	e.CreatedAt, e.UpdatedAt, err = parseRowTimes(aux.CreatedAt, aux.UpdatedAt)
	return err
}

// UnmarshalJSON decodes a gallery row, accepting timestamps with or without
// a UTC offset.
func (g *GalleryItem) UnmarshalJSON(data []byte) error {
	type row GalleryItem
	aux := struct {
		*row
		CreatedAt *string `json:"created_at"`
		UpdatedAt *string `json:"updated_at"`
	}{row: (*row)(g)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	g.CreatedAt, g.UpdatedAt, err = parseRowTimes(aux.CreatedAt, aux.UpdatedAt)
	return err
}
