package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"reqmd/internal/validate"
	"reqmd/internal/version"
)

// VersionTool handles reqmd_get_version.
type VersionTool struct{}

// NewVersionTool creates a VersionTool.
func NewVersionTool() *VersionTool {
	return &VersionTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *VersionTool) Definition() mcp.Tool {
	return mcp.NewTool("reqmd_get_version",
		withCommonParams(
			mcp.WithDescription("Report the server version."),
		)...,
	)
}

// Handle processes the reqmd_get_version tool call.
func (t *VersionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectRoot, opDesc := commonArgs(req)
	if err := validate.Common(projectRoot, opDesc); err != nil {
		return result(jsonError(err.Error())), nil
	}
	return result(jsonSuccess(map[string]any{"version": version.Version})), nil
}
