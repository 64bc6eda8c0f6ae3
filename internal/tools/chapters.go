package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"reqmd/internal/reqstore"
	"reqmd/internal/validate"
)

// ChaptersTool handles reqmd_get_chapters.
type ChaptersTool struct {
	store *reqstore.Store
}

// NewChaptersTool creates a ChaptersTool.
func NewChaptersTool(store *reqstore.Store) *ChaptersTool {
	return &ChaptersTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *ChaptersTool) Definition() mcp.Tool {
	return mcp.NewTool("reqmd_get_chapters",
		withCommonParams(
			mcp.WithDescription(
				"List the chapters of a category in document order. Chapters are the "+
					"level-1 headings of the category's markdown file.",
			),
			mcp.WithString("category",
				mcp.Required(),
				mcp.Description("Category name (lowercase letters and underscores)."),
			),
		)...,
	)
}

// Handle processes the reqmd_get_chapters tool call.
func (t *ChaptersTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectRoot, opDesc := commonArgs(req)
	if err := validate.Common(projectRoot, opDesc); err != nil {
		return result(jsonError(err.Error())), nil
	}
	category := req.GetString("category", "")
	if err := validate.Category(category); err != nil {
		return result(jsonError(err.Error())), nil
	}

	chapters, err := t.store.GetChapters(projectRoot, category)
	if err != nil {
		return result(jsonError(err.Error())), nil
	}

	return result(jsonSuccess(map[string]any{
		"category": category,
		"chapters": chapters,
	})), nil
}
