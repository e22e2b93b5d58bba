package models

import (
	"testing"
	"time"
)

func TestGalleryInputValidate(t *testing.T) {
	base := GalleryInput{
		Title:       "Soccer match",
		Description: "Alumni game in Namangan",
		ImageURL:    "https://example.com/1a.jpg",
		Date:        "2025-06-01",
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	for _, mutate := range []func(*GalleryInput){
		func(in *GalleryInput) { in.Title = "" },
		func(in *GalleryInput) { in.Description = " " },
		func(in *GalleryInput) { in.ImageURL = "" },
		func(in *GalleryInput) { in.Date = "" },
	} {
		in := base
		mutate(&in)
		err := in.Validate()
		if err == nil || err.Error() != MsgRequiredFields {
			t.Fatalf("Validate() = %v, want %q", err, MsgRequiredFields)
		}
	}
}

func TestGalleryInputNormalizeNullsEmptyEventName(t *testing.T) {
	in := GalleryInput{Title: " t ", EventName: StringPtr("  ")}.Normalize()
	if in.EventName != nil {
		t.Fatalf("event name = %q, want nil", *in.EventName)
	}
	if in.Title != "t" {
		t.Fatalf("title = %q, want trimmed", in.Title)
	}
}

func TestSortEventsNewestFirst(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	events := []Event{
		{ID: "b", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "a", CreatedAt: base},
		{ID: "d", CreatedAt: base.Add(5 * time.Hour)},
		{ID: "c", CreatedAt: base.Add(3 * time.Hour)},
	}
	SortEventsNewestFirst(events)
	want := []string{"d", "c", "b", "a"}
	for i, id := range want {
		if events[i].ID != id {
			t.Fatalf("events[%d] = %q, want %q", i, events[i].ID, id)
		}
	}
}

func TestSplitByTime(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	events := []Event{
		{ID: "past-old", Time: now.AddDate(0, -6, 0)},
		{ID: "soon", Time: now.AddDate(0, 0, 3)},
		{ID: "past-recent", Time: now.AddDate(0, 0, -1)},
		{ID: "later", Time: now.AddDate(0, 2, 0)},
	}
	upcoming, past := SplitByTime(events, now)
	if len(upcoming) != 2 || upcoming[0].ID != "soon" || upcoming[1].ID != "later" {
		t.Fatalf("upcoming = %+v", upcoming)
	}
	if len(past) != 2 || past[0].ID != "past-recent" || past[1].ID != "past-old" {
		t.Fatalf("past = %+v", past)
	}
}
