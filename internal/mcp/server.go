package mcp

import (
	"context"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nogmois/nana-back/internal/auth"
	"github.com/nogmois/nana-back/internal/domain/baby"
	"github.com/nogmois/nana-back/internal/domain/event"
	"github.com/nogmois/nana-back/internal/domain/report"
	"github.com/nogmois/nana-back/internal/domain/routine"
)

// BabyService defines baby operations needed by MCP.
type BabyService interface {
	List(ctx context.Context, ownerID string) ([]baby.Baby, error)
}

// EventService defines event operations needed by MCP.
type EventService interface {
	Record(ctx context.Context, ownerID string, reqs []event.CreateRequest) ([]event.Event, error)
}

// RoutineService defines plan operations needed by MCP.
type RoutineService interface {
	GetTodayPlan(ctx context.Context, ownerID, babyID string) (*routine.Result, error)
	GeneratePlan(ctx context.Context, ownerID, babyID string) (*routine.Result, error)
}

// ReportService defines report operations needed by MCP.
type ReportService interface {
	Generate(ctx context.Context, ownerID, babyID string, day time.Time) (*report.DailyReport, error)
	GetDaily(ctx context.Context, ownerID, babyID string, day time.Time) (*report.DailyReport, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Babies   BabyService
	Events   EventService
	Routines RoutineService
	Reports  ReportService
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Resolver      auth.Resolver
	AuthEnabled   bool
	DefaultOwner  string
	TransportMode string // "stdio" or "http"
	Logger        *slog.Logger
	Now           func() time.Time
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "nana",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	// Each call wraps the chain built so far, so traffic logging is added
	// first and runs inside auth with the owner already resolved.
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	// Stdio is local only and always runs as the configured owner.
	if cfg.TransportMode == "stdio" || !cfg.AuthEnabled {
		server.AddReceivingMiddleware(noAuthMiddleware(cfg.DefaultOwner))
	} else {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	}

	registerTools(server, NewHandler(cfg.Services, cfg.Now))

	return server
}
