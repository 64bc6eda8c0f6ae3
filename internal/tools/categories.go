package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"reqmd/internal/reqstore"
	"reqmd/internal/validate"
)

// CategoriesTool handles reqmd_get_categories.
type CategoriesTool struct {
	store *reqstore.Store
}

// NewCategoriesTool creates a CategoriesTool.
func NewCategoriesTool(store *reqstore.Store) *CategoriesTool {
	return &CategoriesTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *CategoriesTool) Definition() mcp.Tool {
	return mcp.NewTool("reqmd_get_categories",
		withCommonParams(
			mcp.WithDescription(
				"List all requirement categories of the project, sorted by name. "+
					"Each category is one markdown file in the requirements directory.",
			),
		)...,
	)
}

// Handle processes the reqmd_get_categories tool call.
func (t *CategoriesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectRoot, opDesc := commonArgs(req)
	if err := validate.Common(projectRoot, opDesc); err != nil {
		return result(jsonError(err.Error())), nil
	}

	dir, err := t.store.Locator().RequirementsDir(projectRoot)
	if err != nil {
		return result(jsonError(err.Error())), nil
	}
	categories, err := t.store.ListCategories(dir)
	if err != nil {
		return result(jsonError(err.Error())), nil
	}

	return result(jsonSuccess(map[string]any{"categories": categories})), nil
}
