package mcp

// ToolDefinition describes a callable tool.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema map[string]any
}

type BabyParams struct {
	BabyID string `json:"baby_id"`
}

type RecordEventParams struct {
	BabyID string `json:"baby_id"`
	Type   string `json:"type"`
	// Timestamp is RFC 3339 or an offset-free UTC time, and defaults to now.
	Timestamp string `json:"timestamp,omitempty"`
}

type DailyReportParams struct {
	BabyID string `json:"baby_id"`
	// Date is YYYY-MM-DD and defaults to today in UTC.
	Date     string `json:"date,omitempty"`
	Generate bool   `json:"generate,omitempty"`
}

type BabySummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
	AgeDays   int    `json:"age_days"`
}
