package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"reqmd/internal/journal"
	"reqmd/internal/validate"
)

// HistoryTool handles reqmd_get_history. It is only registered when the
// journal initialized successfully.
type HistoryTool struct {
	journal *journal.Store
}

// NewHistoryTool creates a HistoryTool.
func NewHistoryTool(jrnl *journal.Store) *HistoryTool {
	return &HistoryTool{journal: jrnl}
}

// Definition returns the MCP tool definition for registration.
func (t *HistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("reqmd_get_history",
		withCommonParams(
			mcp.WithDescription(
				"List the most recent mutating operations recorded for this "+
					"project, newest first.",
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of entries to return (default 20)."),
			),
		)...,
	)
}

// Handle processes the reqmd_get_history tool call.
func (t *HistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectRoot, opDesc := commonArgs(req)
	if err := validate.Common(projectRoot, opDesc); err != nil {
		return result(jsonError(err.Error())), nil
	}

	limit := req.GetInt("limit", 20)
	entries, err := t.journal.Recent(projectRoot, limit)
	if err != nil {
		return result(jsonError(err.Error())), nil
	}

	return result(jsonSuccess(map[string]any{"operations": entries})), nil
}
