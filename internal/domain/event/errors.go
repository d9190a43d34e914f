package event

import "errors"

var (
	// ErrEventNotFound indicates the event doesn't exist or belongs to another owner.
	ErrEventNotFound = errors.New("event not found")
	// ErrBabyNotFound indicates an event referenced a baby the caller doesn't own.
	ErrBabyNotFound = errors.New("baby not found")
	// ErrInvalidInput indicates invalid event input.
	ErrInvalidInput = errors.New("invalid event input")
)
