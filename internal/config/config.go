package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	DB      DBConfig      `yaml:"db"`
	Log     LogConfig     `yaml:"log"`
	Auth    AuthConfig    `yaml:"auth"`
	Routine RoutineConfig `yaml:"routine"`
	Reports ReportsConfig `yaml:"reports"`
	MCP     MCPConfig     `yaml:"mcp"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// Path optionally sends logs to a size-capped file instead of stderr.
	Path string `yaml:"path"`
}

type AuthConfig struct {
	Enabled   bool   `yaml:"enabled"`
	JWTSecret string `yaml:"jwt_secret"`
}

type RoutineConfig struct {
	HistoryDays int `yaml:"history_days"`
}

type ReportsConfig struct {
	// Schedule is a standard five-field cron expression. Empty disables the job.
	Schedule string `yaml:"schedule"`
}

type MCPConfig struct {
	// OwnerID is the caller used when no bearer token identifies one, as on stdio.
	OwnerID string `yaml:"owner_id"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "nana.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Auth: AuthConfig{
			Enabled: true,
		},
		Routine: RoutineConfig{
			HistoryDays: 3,
		},
		Reports: ReportsConfig{
			Schedule: "5 0 * * *",
		},
	}

	if path := os.Getenv("NANA_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("NANA_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("NANA_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid NANA_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("NANA_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("NANA_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("NANA_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if enabled := os.Getenv("NANA_AUTH_ENABLED"); enabled != "" {
		v, err := strconv.ParseBool(enabled)
		if err != nil {
			return Config{}, fmt.Errorf("invalid NANA_AUTH_ENABLED: %w", err)
		}
		cfg.Auth.Enabled = v
	}
	if secret := os.Getenv("NANA_JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	if schedule, ok := os.LookupEnv("NANA_REPORT_SCHEDULE"); ok {
		cfg.Reports.Schedule = schedule
	}
	if owner := os.Getenv("NANA_MCP_OWNER"); owner != "" {
		cfg.MCP.OwnerID = owner
	}

	return cfg, nil
}

// Validate reports settings that would prevent the server from starting.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server port out of range: %d", c.Server.Port))
	}
	if c.DB.Path == "" {
		errs = append(errs, errors.New("db path is required"))
	}
	if c.Auth.Enabled && c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth is enabled but no jwt secret is set"))
	}
	if !c.Auth.Enabled && c.MCP.OwnerID == "" {
		errs = append(errs, errors.New("auth is disabled but no default owner is set"))
	}
	if c.Routine.HistoryDays <= 0 {
		errs = append(errs, fmt.Errorf("routine history days must be positive: %d", c.Routine.HistoryDays))
	}
	return errors.Join(errs...)
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
