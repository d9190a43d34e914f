package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nogmois/nana-back/internal/auth"
	"github.com/nogmois/nana-back/internal/domain/baby"
	"github.com/nogmois/nana-back/internal/domain/event"
	"github.com/nogmois/nana-back/internal/domain/routine"
)

// Handler dispatches MCP tool calls to domain services.
type Handler struct {
	services Services
	now      func() time.Time
}

// NewHandler creates a new MCP handler. A nil now uses the wall clock.
func NewHandler(services Services, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{services: services, now: now}
}

// Handle dispatches a tool call on behalf of ownerID.
func (h *Handler) Handle(ctx context.Context, ownerID, method string, params json.RawMessage) (any, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: no owner for request", auth.ErrUnauthorized)
	}

	switch method {
	case "list_babies":
		babies, err := h.services.Babies.List(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		now := h.now()
		resp := make([]BabySummary, 0, len(babies))
		for _, b := range babies {
			resp = append(resp, BabySummary{
				ID:        b.ID,
				Name:      b.Name,
				BirthDate: b.BirthDate.Format(routine.DateLayout),
				AgeDays:   b.AgeInDays(now),
			})
		}
		return resp, nil
	case "get_today_plan":
		var req BabyParams
		if err := decodeBabyParams(params, &req); err != nil {
			return nil, err
		}
		return h.services.Routines.GetTodayPlan(ctx, ownerID, req.BabyID)
	case "generate_plan":
		var req BabyParams
		if err := decodeBabyParams(params, &req); err != nil {
			return nil, err
		}
		return h.services.Routines.GeneratePlan(ctx, ownerID, req.BabyID)
	case "record_event":
		var req RecordEventParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		ts := h.now()
		if req.Timestamp != "" {
			parsed, err := event.ParseTimestamp(req.Timestamp)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", errInvalidParams, err)
			}
			ts = parsed
		}
		events, err := h.services.Events.Record(ctx, ownerID, []event.CreateRequest{{
			BabyID:    req.BabyID,
			Type:      event.Type(req.Type),
			Timestamp: ts,
		}})
		if err != nil {
			return nil, err
		}
		return events[0], nil
	case "daily_report":
		var req DailyReportParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if strings.TrimSpace(req.BabyID) == "" {
			return nil, fmt.Errorf("%w: baby_id is required", errInvalidParams)
		}
		day := baby.Date(h.now())
		if req.Date != "" {
			parsed, err := time.Parse(routine.DateLayout, req.Date)
			if err != nil {
				return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", errInvalidParams)
			}
			day = parsed
		}
		if req.Generate {
			return h.services.Reports.Generate(ctx, ownerID, req.BabyID, day)
		}
		return h.services.Reports.GetDaily(ctx, ownerID, req.BabyID, day)
	default:
		return nil, fmt.Errorf("%w: unknown tool %q", errInvalidParams, method)
	}
}

func decodeParams(params json.RawMessage, v any) error {
	if len(params) == 0 || string(params) == "null" {
		return nil
	}
	if err := json.Unmarshal(params, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidParams, err)
	}
	return nil
}

func decodeBabyParams(params json.RawMessage, req *BabyParams) error {
	if err := decodeParams(params, req); err != nil {
		return err
	}
	if strings.TrimSpace(req.BabyID) == "" {
		return fmt.Errorf("%w: baby_id is required", errInvalidParams)
	}
	return nil
}
