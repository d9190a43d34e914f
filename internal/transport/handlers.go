package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nogmois/nana-back/internal/domain/baby"
	"github.com/nogmois/nana-back/internal/domain/event"
	"github.com/nogmois/nana-back/internal/domain/report"
	"github.com/nogmois/nana-back/internal/domain/routine"
)

type handler struct {
	services Services
	logger   *slog.Logger
	now      func() time.Time
}

func (h *handler) health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

type createBabyBody struct {
	Name             string `json:"name"`
	BirthDate        string `json:"birth_date"`
	BirthWeightGrams *int   `json:"birth_weight_grams"`
	Gender           string `json:"gender"`
}

func (h *handler) createBaby(c *gin.Context) {
	var body createBabyBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, h.logger, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	birth, err := parseDay(body.BirthDate)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	b, err := h.services.Babies.Create(c.Request.Context(), owner(c), baby.CreateRequest{
		Name:             body.Name,
		BirthDate:        birth,
		BirthWeightGrams: body.BirthWeightGrams,
		Gender:           body.Gender,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *handler) listBabies(c *gin.Context) {
	babies, err := h.services.Babies.List(c.Request.Context(), owner(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if babies == nil {
		babies = []baby.Baby{}
	}
	c.JSON(http.StatusOK, babies)
}

// recordEvents accepts either a single event object or an array of them and
// answers in the same shape.
func (h *handler) recordEvents(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		writeError(c, h.logger, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	raw = bytes.TrimSpace(raw)

	batch := len(raw) > 0 && raw[0] == '['
	var reqs []event.CreateRequest
	if batch {
		err = json.Unmarshal(raw, &reqs)
	} else {
		var req event.CreateRequest
		err = json.Unmarshal(raw, &req)
		reqs = []event.CreateRequest{req}
	}
	if err != nil {
		writeError(c, h.logger, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	events, err := h.services.Events.Record(c.Request.Context(), owner(c), reqs)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if batch {
		c.JSON(http.StatusCreated, events)
		return
	}
	c.JSON(http.StatusCreated, events[0])
}

func (h *handler) listEvents(c *gin.Context) {
	opts, err := listOptions(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	events, err := h.services.Events.List(c.Request.Context(), owner(c), opts)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if events == nil {
		events = []event.Event{}
	}
	c.JSON(http.StatusOK, events)
}

func (h *handler) updateEvent(c *gin.Context) {
	var req event.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	ev, err := h.services.Events.Update(c.Request.Context(), owner(c), c.Param("id"), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ev)
}

func (h *handler) deleteEvent(c *gin.Context) {
	if err := h.services.Events.Delete(c.Request.Context(), owner(c), c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) todayPlan(c *gin.Context) {
	h.plan(c, h.services.Routines.GetTodayPlan)
}

func (h *handler) generatePlan(c *gin.Context) {
	h.plan(c, h.services.Routines.GeneratePlan)
}

func (h *handler) plan(c *gin.Context, fn func(ctx context.Context, ownerID, babyID string) (*routine.Result, error)) {
	babyID, err := requiredQuery(c, "baby_id")
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	res, err := fn(c.Request.Context(), owner(c), babyID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *handler) generateReport(c *gin.Context) {
	babyID, day, err := h.reportParams(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	r, err := h.services.Reports.Generate(c.Request.Context(), owner(c), babyID, day)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *handler) dailyReport(c *gin.Context) {
	babyID, day, err := h.reportParams(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	r, err := h.services.Reports.GetDaily(c.Request.Context(), owner(c), babyID, day)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *handler) reportHistory(c *gin.Context) {
	babyID, err := requiredQuery(c, "baby_id")
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	reports, err := h.services.Reports.History(c.Request.Context(), owner(c), babyID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if reports == nil {
		reports = []report.DailyReport{}
	}
	c.JSON(http.StatusOK, reports)
}

// reportParams reads baby_id and an optional date, defaulting to today in UTC.
func (h *handler) reportParams(c *gin.Context) (string, time.Time, error) {
	babyID, err := requiredQuery(c, "baby_id")
	if err != nil {
		return "", time.Time{}, err
	}
	raw := c.Query("date")
	if raw == "" {
		return babyID, baby.Date(h.now()), nil
	}
	day, err := parseDay(raw)
	if err != nil {
		return "", time.Time{}, err
	}
	return babyID, day, nil
}

func requiredQuery(c *gin.Context, name string) (string, error) {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return "", fmt.Errorf("%w: %s is required", errBadRequest, name)
	}
	return v, nil
}

// parseDay accepts a calendar date or a full RFC 3339 timestamp.
func parseDay(s string) (time.Time, error) {
	if t, err := time.Parse(routine.DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", errBadRequest, s)
	}
	return t, nil
}

func listOptions(c *gin.Context) (event.ListOptions, error) {
	opts := event.ListOptions{
		BabyID:    c.Query("baby_id"),
		Ascending: c.Query("order") == "asc",
	}
	if types := c.Query("type"); types != "" {
		for _, t := range strings.Split(types, ",") {
			opts.Types = append(opts.Types, event.Type(strings.TrimSpace(t)))
		}
	}
	for name, dst := range map[string]**time.Time{"since": &opts.Since, "until": &opts.Until} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		t, err := event.ParseTimestamp(raw)
		if err != nil {
			return opts, fmt.Errorf("%w: invalid %s %q", errBadRequest, name, raw)
		}
		*dst = &t
	}
	for name, dst := range map[string]*int{"limit": &opts.Limit, "offset": &opts.Offset} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return opts, fmt.Errorf("%w: invalid %s %q", errBadRequest, name, raw)
		}
		*dst = n
	}
	return opts, nil
}
