package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nogmois/nana-back/internal/auth"
	"github.com/nogmois/nana-back/internal/mcp"
	"github.com/nogmois/nana-back/internal/scheduler"
	"github.com/nogmois/nana-back/internal/transport"
	"github.com/spf13/cobra"
)

func mcpServices(a *app) mcp.Services {
	return mcp.Services{
		Babies:   a.babies,
		Events:   a.events,
		Routines: a.routines,
		Reports:  a.reports,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp(os.Stdout)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	resolver := a.resolver()
	mcpServer := mcp.NewServer(mcp.Config{
		Services:      mcpServices(a),
		Resolver:      resolver,
		AuthEnabled:   a.cfg.Auth.Enabled,
		DefaultOwner:  a.cfg.MCP.OwnerID,
		TransportMode: "http",
		Logger:        a.logger,
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

	gin.SetMode(gin.ReleaseMode)
	router := transport.NewServer(transport.Config{
		Services: transport.Services{
			Babies:   a.babies,
			Events:   a.events,
			Routines: a.routines,
			Reports:  a.reports,
		},
		Resolver:   resolver,
		MCPHandler: mcpHandler,
		Logger:     a.logger,
	})

	var sched *scheduler.Scheduler
	if a.cfg.Reports.Schedule != "" {
		sched, err = scheduler.New(a.reports, a.cfg.Reports.Schedule, a.logger)
		if err != nil {
			return err
		}
		sched.Start()
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", "addr", addr, "auth", a.cfg.Auth.Enabled)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	return waitForShutdown(cmd.Context(), a.logger, httpServer, sched, errCh)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	// Stdout carries JSON-RPC, so logs go to stderr.
	a, err := newApp(os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.cfg.MCP.OwnerID == "" {
		return errors.New("NANA_MCP_OWNER must be set for stdio mode")
	}

	server := mcp.NewServer(mcp.Config{
		Services:      mcpServices(a),
		DefaultOwner:  a.cfg.MCP.OwnerID,
		TransportMode: "stdio",
		Logger:        a.logger,
	})
	a.logger.Info("starting stdio transport", "owner_id", a.cfg.MCP.OwnerID)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Run blocks until stdin closes or context is canceled
	if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server error: %w", err)
	}
	return nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	a, err := newApp(os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	a.logger.Info("migrations applied", "db", a.cfg.DB.Path)
	return nil
}

func runToken(cmd *cobra.Command, _ []string) error {
	a, err := newApp(os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.cfg.Auth.JWTSecret == "" {
		return errors.New("NANA_JWT_SECRET must be set to issue tokens")
	}
	ttl, err := time.ParseDuration(ttlFlag)
	if err != nil {
		return fmt.Errorf("invalid ttl: %w", err)
	}
	token, err := auth.NewJWTResolver(a.cfg.Auth.JWTSecret).Issue(ownerFlag, ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

func runReports(cmd *cobra.Command, _ []string) error {
	a, err := newApp(os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	schedule := a.cfg.Reports.Schedule
	if schedule == "" {
		schedule = "@daily"
	}
	sched, err := scheduler.New(a.reports, schedule, a.logger)
	if err != nil {
		return err
	}
	n, err := sched.RunOnce(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "generated %d reports\n", n)
	return nil
}

func waitForShutdown(ctx context.Context, logger *slog.Logger, server *http.Server, sched *scheduler.Scheduler, errCh <-chan error) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
		logger.Error("server error", "error", serveErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if sched != nil {
		if err := sched.Stop(shutdownCtx); err != nil {
			logger.Error("scheduler shutdown error", "error", err)
		}
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	return serveErr
}
