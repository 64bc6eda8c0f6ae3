package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"reqmd/internal/journal"
	"reqmd/internal/reqstore"
	"reqmd/internal/validate"
)

// InsertTool handles reqmd_insert_requirement. The index is minted by the
// server; category and chapter are created on first use.
type InsertTool struct {
	store   *reqstore.Store
	journal *journal.Store
}

// NewInsertTool creates an InsertTool. The journal may be nil.
func NewInsertTool(store *reqstore.Store, jrnl *journal.Store) *InsertTool {
	return &InsertTool{store: store, journal: jrnl}
}

// Definition returns the MCP tool definition for registration.
func (t *InsertTool) Definition() mcp.Tool {
	return mcp.NewTool("reqmd_insert_requirement",
		withCommonParams(
			mcp.WithDescription(
				"Insert a new requirement into a chapter. The category file and the "+
					"chapter heading are created when missing. The requirement index is "+
					"generated by the server and returned. The title must be unique "+
					"within the chapter.",
			),
			mcp.WithString("category",
				mcp.Required(),
				mcp.Description("Category name (lowercase letters and underscores)."),
			),
			mcp.WithString("chapter",
				mcp.Required(),
				mcp.Description("Chapter name (English letters, spaces, colons, hyphens, underscores)."),
			),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("Single-line requirement title, unique within the chapter."),
			),
			mcp.WithString("text",
				mcp.Required(),
				mcp.Description("Requirement body text (markdown, may contain fenced code blocks)."),
			),
		)...,
	)
}

// Handle processes the reqmd_insert_requirement tool call.
func (t *InsertTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
	text := req.GetString("text", "")
	if err := validate.Text(text); err != nil {
		return result(jsonError(err.Error())), nil
	}
	title := req.GetString("title", "")
	if err := validate.Title(title, true); err != nil {
		return result(jsonError(err.Error())), nil
	}

	requirement, err := t.store.InsertRequirement(projectRoot, category, chapter, title, text)
	if err != nil {
		return result(jsonError(err.Error())), nil
	}

	_ = t.journal.Record("reqmd_insert_requirement", opDesc, requirement.Index, category, projectRoot)

	return result(jsonSuccess(requirement)), nil
}
