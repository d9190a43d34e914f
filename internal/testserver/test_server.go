// Package testserver runs the full HTTP stack against an in-memory database
// for end-to-end tests.
package testserver

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nogmois/nana-back/internal/auth"
	"github.com/nogmois/nana-back/internal/domain/baby"
	"github.com/nogmois/nana-back/internal/domain/event"
	"github.com/nogmois/nana-back/internal/domain/report"
	"github.com/nogmois/nana-back/internal/domain/routine"
	"github.com/nogmois/nana-back/internal/mcp"
	"github.com/nogmois/nana-back/internal/sqlite"
	"github.com/nogmois/nana-back/internal/transport"
	"github.com/stretchr/testify/require"
)

const jwtSecret = "testserver-secret"

type TestServer struct {
	Server *httptest.Server
	DB     *sqlite.DB
	Babies *baby.Service
	Events *event.Service

	resolver *auth.JWTResolver
}

func New(t *testing.T) *TestServer {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	babyRepo := sqlite.NewBabyRepository(db)
	eventRepo := sqlite.NewEventRepository(db)

	babySvc := baby.NewService(babyRepo, logger)
	eventSvc := event.NewService(eventRepo, babyRepo, logger)
	routineSvc := routine.NewService(babyRepo, eventRepo, sqlite.NewPlanRepository(db), logger)
	reportSvc := report.NewService(sqlite.NewReportRepository(db), eventRepo, babyRepo, logger)

	resolver := auth.NewJWTResolver(jwtSecret)
	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Babies:   babySvc,
			Events:   eventSvc,
			Routines: routineSvc,
			Reports:  reportSvc,
		},
		Resolver:      resolver,
		AuthEnabled:   true,
		TransportMode: "http",
		Logger:        logger,
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: time.Minute},
	)

	gin.SetMode(gin.TestMode)
	router := transport.NewServer(transport.Config{
		Services: transport.Services{
			Babies:   babySvc,
			Events:   eventSvc,
			Routines: routineSvc,
			Reports:  reportSvc,
		},
		Resolver:   resolver,
		MCPHandler: mcpHandler,
		Logger:     logger,
	})
	server := httptest.NewServer(router)

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{
		Server:   server,
		DB:       db,
		Babies:   babySvc,
		Events:   eventSvc,
		resolver: resolver,
	}
}

// Token issues a bearer token for ownerID.
func (ts *TestServer) Token(t *testing.T, ownerID string) string {
	t.Helper()
	token, err := ts.resolver.Issue(ownerID, time.Hour)
	require.NoError(t, err)
	return token
}

// Connect opens an MCP client session on /mcp authenticated as ownerID.
func (ts *TestServer) Connect(t *testing.T, ownerID string) *sdkmcp.ClientSession {
	t.Helper()

	httpClient := &http.Client{Transport: &bearerTransport{
		token: ts.Token(t, ownerID),
		base:  http.DefaultTransport,
	}}
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	session, err := client.Connect(ctx, &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.Server.URL + "/mcp",
		HTTPClient: httpClient,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (b *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+b.token)
	return b.base.RoundTrip(req)
}
