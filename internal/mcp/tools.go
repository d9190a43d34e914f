package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

var babyIDProperty = map[string]any{
	"type":        "string",
	"description": "Baby ID (see list_babies)",
}

// buildToolCatalog returns all available MCP tools
func buildToolCatalog() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        "list_babies",
			Description: "List the babies registered to the caller with their age in days",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name:        "get_today_plan",
			Description: "Get today's nap and feed plan, reusing the stored plan while it is still valid",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"baby_id": babyIDProperty,
				},
				"required": []string{"baby_id"},
			},
		},
		{
			Name:        "generate_plan",
			Description: "Force a new nap and feed plan from the latest sleep event",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"baby_id": babyIDProperty,
				},
				"required": []string{"baby_id"},
			},
		},
		{
			Name:        "record_event",
			Description: "Record a sleep_start, sleep_end, feed or diaper event",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"baby_id": babyIDProperty,
					"type": map[string]any{
						"type": "string",
						"enum": []string{"sleep_start", "sleep_end", "feed", "diaper"},
					},
					"timestamp": map[string]any{
						"type":        "string",
						"description": "When it happened, RFC 3339 or without an offset for UTC. Defaults to now",
					},
				},
				"required": []string{"baby_id", "type"},
			},
		},
		{
			Name:        "daily_report",
			Description: "Get the daily sleep and feed summary, optionally regenerating it first",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"baby_id": babyIDProperty,
					"date": map[string]any{
						"type":        "string",
						"description": "Day as YYYY-MM-DD in UTC. Defaults to today",
					},
					"generate": map[string]any{
						"type":        "boolean",
						"description": "Recompute the report from recorded events",
					},
				},
				"required": []string{"baby_id"},
			},
		},
	}
}

func registerTools(server *sdkmcp.Server, h *Handler) {
	for _, def := range buildToolCatalog() {
		name := def.Name
		server.AddTool(&sdkmcp.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.InputSchema,
		}, func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
			var args json.RawMessage
			if req != nil && req.Params != nil {
				args = req.Params.Arguments
			}
			result, err := h.Handle(ctx, getOwnerID(ctx), name, args)
			if err != nil {
				return errorResult(err), nil
			}
			return jsonResult(result)
		})
	}
}

func jsonResult(v any) (*sdkmcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode tool result: %w", err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil
}

func errorResult(err error) *sdkmcp.CallToolResult {
	apiErr := MapError(err)
	data, _ := json.Marshal(apiErr)
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}
}
