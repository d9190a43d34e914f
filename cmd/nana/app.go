package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nogmois/nana-back/internal/auth"
	"github.com/nogmois/nana-back/internal/config"
	"github.com/nogmois/nana-back/internal/domain/baby"
	"github.com/nogmois/nana-back/internal/domain/event"
	"github.com/nogmois/nana-back/internal/domain/report"
	"github.com/nogmois/nana-back/internal/domain/routine"
	"github.com/nogmois/nana-back/internal/sqlite"
)

// app holds the wiring shared by every command.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	db     *sqlite.DB

	babies   *baby.Service
	events   *event.Service
	routines *routine.Service
	reports  *report.Service

	closers []io.Closer
}

// newApp loads configuration, opens the database and builds the services.
// Logs go to logWriter unless a log file is configured.
func newApp(logWriter io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	a := &app{cfg: cfg}
	if cfg.Log.Path != "" {
		fileWriter, err := newLogFileWriter(cfg.Log.Path, maxLogSizeBytes, keepLogSizeBytes)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			a.closers = append(a.closers, fileWriter)
			logWriter = fileWriter
		}
	}
	a.logger = slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		a.Close()
		return nil, fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.db = db
	a.closers = append(a.closers, db)

	if err := db.RunMigrations(); err != nil {
		a.Close()
		return nil, err
	}

	babyRepo := sqlite.NewBabyRepository(db)
	eventRepo := sqlite.NewEventRepository(db)
	planRepo := sqlite.NewPlanRepository(db)
	reportRepo := sqlite.NewReportRepository(db)

	a.babies = baby.NewService(babyRepo, a.logger)
	a.events = event.NewService(eventRepo, babyRepo, a.logger)
	a.routines = routine.NewService(babyRepo, eventRepo, planRepo, a.logger,
		routine.WithHistoryDays(cfg.Routine.HistoryDays))
	a.reports = report.NewService(reportRepo, eventRepo, babyRepo, a.logger)

	return a, nil
}

// resolver returns the bearer token resolver for the configured auth mode.
func (a *app) resolver() auth.Resolver {
	if a.cfg.Auth.Enabled {
		return auth.NewJWTResolver(a.cfg.Auth.JWTSecret)
	}
	return auth.StaticResolver{OwnerID: a.cfg.MCP.OwnerID}
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
	a.closers = nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
