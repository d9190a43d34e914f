package event

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// CreateRequest describes one event to record.
type CreateRequest struct {
	BabyID    string    `json:"baby_id" validate:"required"`
	Type      Type      `json:"type" validate:"required,oneof=sleep_start sleep_end feed diaper"`
	Timestamp time.Time `json:"timestamp" validate:"required"`
}

// UpdateRequest carries optional replacements for an event.
type UpdateRequest struct {
	Type      *Type      `json:"type,omitempty" validate:"omitempty,oneof=sleep_start sleep_end feed diaper"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

func validateCreate(req CreateRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func validateUpdate(req UpdateRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.Timestamp != nil && req.Timestamp.IsZero() {
		return fmt.Errorf("%w: timestamp must be set", ErrInvalidInput)
	}
	return nil
}

// naiveLayouts are accepted without an offset and read as UTC. Parsing also
// takes an optional fractional second after the seconds field.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp reads an RFC 3339 timestamp, or one without an offset which
// is taken as UTC. The result is always UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid timestamp %q", ErrInvalidInput, s)
}

func parseTimestampField(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	t, err := ParseTimestamp(*raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *CreateRequest) UnmarshalJSON(data []byte) error {
	type plain CreateRequest
	aux := struct {
		*plain
		Timestamp *string `json:"timestamp"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	ts, err := parseTimestampField(aux.Timestamp)
	if err != nil {
		return err
	}
	if ts != nil {
		r.Timestamp = *ts
	}
	return nil
}

func (r *UpdateRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateRequest
	aux := struct {
		*plain
		Timestamp *string `json:"timestamp"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	ts, err := parseTimestampField(aux.Timestamp)
	if err != nil {
		return err
	}
	r.Timestamp = ts
	return nil
}
