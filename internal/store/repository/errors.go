package repository

import "errors"

var (
	// ErrEventNotFound is returned when no event has the requested id
	ErrEventNotFound = errors.New("event not found")
	// ErrGalleryItemNotFound is returned when no gallery item has the requested id
	ErrGalleryItemNotFound = errors.New("gallery item not found")
	// ErrUnknownColumn is returned when a list query orders by a column the table does not have
	ErrUnknownColumn = errors.New("unknown column")
)
