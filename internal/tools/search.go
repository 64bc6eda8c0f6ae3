package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"reqmd/internal/reqstore"
	"reqmd/internal/validate"
)

// SearchTool handles reqmd_search_requirements.
type SearchTool struct {
	store *reqstore.Store
}

// NewSearchTool creates a SearchTool.
func NewSearchTool(store *reqstore.Store) *SearchTool {
	return &SearchTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *SearchTool) Definition() mcp.Tool {
	return mcp.NewTool("reqmd_search_requirements",
		withCommonParams(
			mcp.WithDescription(
				"Case-insensitive substring search over every requirement's title "+
					"and body, across all categories. A requirement matches when any "+
					"keyword occurs in either field. Pass a single 'keyword' or a "+
					"'keywords' array (max 100 keywords, each up to 200 characters).",
			),
			mcp.WithString("keyword",
				mcp.Description("Single search keyword."),
			),
			mcp.WithArray("keywords",
				mcp.Description("Multiple search keywords; a requirement matches on any of them."),
				mcp.WithStringItems(),
			),
		)...,
	)
}

// Handle processes the reqmd_search_requirements tool call.
func (t *SearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectRoot, opDesc := commonArgs(req)
	if err := validate.Common(projectRoot, opDesc); err != nil {
		return result(jsonError(err.Error())), nil
	}

	keywords, batch, err := stringList(req, "keywords")
	if err != nil {
		return result(jsonError(err.Error())), nil
	}
	if !batch {
		if kw := req.GetString("keyword", ""); kw != "" {
			keywords = []string{kw}
		}
	}

	filtered, err := validate.Keywords(keywords)
	if err != nil {
		return result(jsonError(err.Error())), nil
	}

	results, err := t.store.SearchRequirements(projectRoot, filtered)
	if err != nil {
		return result(jsonError(err.Error())), nil
	}

	return result(jsonSuccess(map[string]any{
		"keywords": filtered,
		"results":  results,
	})), nil
}
