package models

import (
	"sort"
	"time"
)

// SortEventsNewestFirst orders events by created_at descending.
func SortEventsNewestFirst(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
}

// SortGalleryNewestFirst orders gallery items by created_at descending.
func SortGalleryNewestFirst(items []GalleryItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

// SplitByTime separates events happening after now from those that already
// happened. Upcoming events are soonest first, past events most recent first.
func SplitByTime(events []Event, now time.Time) (upcoming, past []Event) {
	upcoming = []Event{}
	past = []Event{}
	for _, e := range events {
		if e.Time.After(now) {
			upcoming = append(upcoming, e)
		} else {
			past = append(past, e)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].Time.Before(upcoming[j].Time) })
	sort.SliceStable(past, func(i, j int) bool { return past[i].Time.After(past[j].Time) })
	return upcoming, past
}
