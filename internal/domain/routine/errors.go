package routine

import "errors"

var (
	// ErrBabyNotFound indicates the baby doesn't exist or isn't owned by the caller.
	ErrBabyNotFound = errors.New("baby not found")
	// ErrNoSleepData indicates there is no sleep event to anchor a routine on.
	ErrNoSleepData = errors.New("no sleep data for baby")
	// ErrInvalidInput indicates invalid routine input.
	ErrInvalidInput = errors.New("invalid routine input")
)
