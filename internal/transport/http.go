package transport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nogmois/nana-back/internal/auth"
	"github.com/nogmois/nana-back/internal/domain/baby"
	"github.com/nogmois/nana-back/internal/domain/event"
	"github.com/nogmois/nana-back/internal/domain/report"
	"github.com/nogmois/nana-back/internal/domain/routine"
)

// BabyService defines baby registry operations needed by the API.
type BabyService interface {
	Create(ctx context.Context, ownerID string, req baby.CreateRequest) (*baby.Baby, error)
	List(ctx context.Context, ownerID string) ([]baby.Baby, error)
}

// EventService defines event log operations needed by the API.
type EventService interface {
	Record(ctx context.Context, ownerID string, reqs []event.CreateRequest) ([]event.Event, error)
	List(ctx context.Context, ownerID string, opts event.ListOptions) ([]event.Event, error)
	Update(ctx context.Context, ownerID, id string, req event.UpdateRequest) (*event.Event, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// RoutineService defines plan operations needed by the API.
type RoutineService interface {
	GetTodayPlan(ctx context.Context, ownerID, babyID string) (*routine.Result, error)
	GeneratePlan(ctx context.Context, ownerID, babyID string) (*routine.Result, error)
}

// ReportService defines report operations needed by the API.
type ReportService interface {
	Generate(ctx context.Context, ownerID, babyID string, day time.Time) (*report.DailyReport, error)
	GetDaily(ctx context.Context, ownerID, babyID string, day time.Time) (*report.DailyReport, error)
	History(ctx context.Context, ownerID, babyID string) ([]report.DailyReport, error)
}

// Services contains all domain services needed by the API.
type Services struct {
	Babies   BabyService
	Events   EventService
	Routines RoutineService
	Reports  ReportService
}

// Config contains router configuration.
type Config struct {
	Services Services
	Resolver auth.Resolver
	// MCPHandler is mounted at /mcp when set. It authenticates on its own.
	MCPHandler http.Handler
	Logger     *slog.Logger
	// Now overrides the clock used for default dates.
	Now func() time.Time
}

// NewServer creates the HTTP router with middleware.
func NewServer(cfg Config) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	h := &handler{services: cfg.Services, logger: logger, now: now}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(logger))

	r.GET("/health", h.health)
	if cfg.MCPHandler != nil {
		r.Any("/mcp", gin.WrapH(cfg.MCPHandler))
	}

	api := r.Group("/api")
	api.Use(RequireOwner(cfg.Resolver))
	{
		api.POST("/babies", h.createBaby)
		api.GET("/babies/me", h.listBabies)

		api.POST("/events", h.recordEvents)
		api.GET("/events", h.listEvents)
		api.PUT("/events/:id", h.updateEvent)
		api.DELETE("/events/:id", h.deleteEvent)

		api.GET("/plan/today", h.todayPlan)
		api.POST("/plan/routine/generate", h.generatePlan)

		api.POST("/report/generate", h.generateReport)
		api.GET("/report/daily", h.dailyReport)
		api.GET("/report/history", h.reportHistory)
	}

	return r
}
