package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"reqmd/internal/reqstore"
	"reqmd/internal/validate"
)

// RequirementsTool handles reqmd_get_requirements.
type RequirementsTool struct {
	store *reqstore.Store
}

// NewRequirementsTool creates a RequirementsTool.
func NewRequirementsTool(store *reqstore.Store) *RequirementsTool {
	return &RequirementsTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *RequirementsTool) Definition() mcp.Tool {
	return mcp.NewTool("reqmd_get_requirements",
		withCommonParams(
			mcp.WithDescription(
				"List the requirements of a chapter: index and title of every "+
					"requirement, in document order.",
			),
			mcp.WithString("category",
				mcp.Required(),
				mcp.Description("Category name."),
			),
			mcp.WithString("chapter",
				mcp.Required(),
				mcp.Description("Exact chapter name as returned by reqmd_get_chapters."),
			),
		)...,
	)
}

// Handle processes the reqmd_get_requirements tool call.
func (t *RequirementsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectRoot, opDesc := commonArgs(req)
	if err := validate.Common(projectRoot, opDesc); err != nil {
		return result(jsonError(err.Error())), nil
	}
	category := req.GetString("category", "")
	if err := validate.Category(category); err != nil {
		return result(jsonError(err.Error())), nil
	}
	chapter := req.GetString("chapter", "")
	if err := validate.Chapter(chapter); err != nil {
		return result(jsonError(err.Error())), nil
	}

	requirements, err := t.store.GetRequirements(projectRoot, category, chapter)
	if err != nil {
		return result(jsonError(err.Error())), nil
	}

	return result(jsonSuccess(map[string]any{
		"category":     category,
		"chapter":      chapter,
		"requirements": requirements,
	})), nil
}
