package report

import "errors"

var (
	ErrBabyNotFound   = errors.New("baby not found")
	ErrNoEvents       = errors.New("no events recorded for the day")
	ErrReportNotFound = errors.New("report not found")
)
