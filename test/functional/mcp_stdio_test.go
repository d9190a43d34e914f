package functional_test

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// newStdioSession starts the built binary in stdio mode as owner-1.
func newStdioSession(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()

	binaryPath := "./bin/nana"
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		binaryPath = "../../bin/nana"
		if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
			t.Skip("Server binary not found. Run 'go build -o bin/nana ./cmd/nana' first.")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	cmd := exec.CommandContext(ctx, binaryPath, "mcp")
	cmd.Env = append(os.Environ(),
		"NANA_DB_PATH=:memory:",
		"NANA_MCP_OWNER=owner-1",
		"NANA_LOG_LEVEL=error",
	)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.CommandTransport{Command: cmd}, nil)
	if err != nil {
		cancel()
		t.Fatalf("Failed to connect: %v", err)
	}

	t.Cleanup(func() {
		session.Close()
		cancel()
	})
	return session
}

func TestStdioFunctional_ListsTools(t *testing.T) {
	session := newStdioSession(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)

	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	require.ElementsMatch(t, []string{
		"list_babies", "get_today_plan", "generate_plan", "record_event", "daily_report",
	}, names)
}

func TestStdioFunctional_UnknownBaby(t *testing.T) {
	session := newStdioSession(t)

	listed, isErr := callTool(t, session, "list_babies", nil)
	require.False(t, isErr)
	require.JSONEq(t, `[]`, string(listed))

	out, isErr := callTool(t, session, "get_today_plan", map[string]any{"baby_id": "missing"})
	require.True(t, isErr)
	var apiErr struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(out, &apiErr))
	require.Equal(t, "BABY_NOT_FOUND", apiErr.Code)
}
