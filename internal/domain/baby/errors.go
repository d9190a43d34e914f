package baby

import "errors"

var (
	// ErrBabyNotFound indicates the baby doesn't exist or belongs to another owner.
	ErrBabyNotFound = errors.New("baby not found")
	// ErrInvalidInput indicates invalid baby input.
	ErrInvalidInput = errors.New("invalid baby input")
)
