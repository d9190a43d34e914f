package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "nana.db", cfg.DB.Path)
	require.Equal(t, 3, cfg.Routine.HistoryDays)
	require.True(t, cfg.Auth.Enabled)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nana.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
db:
  path: /data/nana.db
auth:
  jwt_secret: from-file
reports:
  schedule: "0 1 * * *"
mcp:
  owner_id: owner-file
`), 0o600))

	t.Setenv("NANA_CONFIG_PATH", path)
	t.Setenv("NANA_SERVER_PORT", "9100")
	t.Setenv("NANA_REPORT_SCHEDULE", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9100, cfg.Server.Port)
	require.Equal(t, "/data/nana.db", cfg.DB.Path)
	require.Equal(t, "from-file", cfg.Auth.JWTSecret)
	require.Equal(t, "owner-file", cfg.MCP.OwnerID)
	require.Empty(t, cfg.Reports.Schedule)
	require.NoError(t, cfg.Validate())
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("NANA_SERVER_PORT", "eighty")
	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.ErrorContains(t, cfg.Validate(), "jwt secret")

	cfg.Auth.Enabled = false
	require.ErrorContains(t, cfg.Validate(), "default owner")

	cfg.MCP.OwnerID = "owner-1"
	require.NoError(t, cfg.Validate())

	cfg.Server.Port = 0
	require.ErrorContains(t, cfg.Validate(), "port")
}
