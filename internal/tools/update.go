package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"reqmd/internal/journal"
	"reqmd/internal/reqdoc"
	"reqmd/internal/reqstore"
	"reqmd/internal/validate"
)

// updateItem is one entry of a batch update. Title is optional; nil keeps the
// existing title.
type updateItem struct {
	Index string
	Text  string
	Title *string
}

// UpdateTool handles reqmd_update_requirement: a single index+text+title, or
// a batch of items.
type UpdateTool struct {
	store   *reqstore.Store
	journal *journal.Store
}

// NewUpdateTool creates an UpdateTool. The journal may be nil.
func NewUpdateTool(store *reqstore.Store, jrnl *journal.Store) *UpdateTool {
	return &UpdateTool{store: store, journal: jrnl}
}

// Definition returns the MCP tool definition for registration.
func (t *UpdateTool) Definition() mcp.Tool {
	return mcp.NewTool("reqmd_update_requirement",
		withCommonParams(
			mcp.WithDescription(
				"Update a requirement's text and optionally its title. Single mode "+
					"takes 'index', 'text' and optional 'title'; batch mode takes "+
					"'items', an array of {index, text, title?} objects (max 100). The "+
					"index, category and chapter of a requirement never change.",
			),
			mcp.WithString("index",
				mcp.Description("Requirement index for a single update."),
			),
			mcp.WithString("text",
				mcp.Description("New requirement body text for a single update."),
			),
			mcp.WithString("title",
				mcp.Description("New title for a single update. Omit to keep the current title."),
			),
			mcp.WithArray("items",
				mcp.Description("Batch update items, each {index, text, title?} (max 100)."),
				mcp.Items(map[string]any{
					"type": "object",
					"properties": map[string]any{
						"index": map[string]any{"type": "string"},
						"text":  map[string]any{"type": "string"},
						"title": map[string]any{"type": "string"},
					},
					"required": []string{"index", "text"},
				}),
			),
		)...,
	)
}

// Handle processes the reqmd_update_requirement tool call.
func (t *UpdateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectRoot, opDesc := commonArgs(req)
	if err := validate.Common(projectRoot, opDesc); err != nil {
		return result(jsonError(err.Error())), nil
	}

	items, batch, err := updateItems(req)
	if err != nil {
		return result(jsonError(err.Error())), nil
	}
	index := req.GetString("index", "")
	single := index != ""

	if single && batch {
		return result(jsonError(
			"Use either index+text+title for single update OR items for batch update, not both")), nil
	}

	if single {
		item := updateItem{Index: index, Text: req.GetString("text", "")}
		if raw, ok := req.GetArguments()["title"]; ok && raw != nil {
			if s, ok := raw.(string); ok {
				item.Title = &s
			}
		}
		requirement, err := t.updateOne(projectRoot, opDesc, item)
		if err != nil {
			return result(jsonError(err.Error())), nil
		}
		return result(jsonSuccess(requirement)), nil
	}

	if !batch {
		return result(jsonError(
			"Use either index+text+title for single update OR items for batch update, not both")), nil
	}

	if len(items) == 0 {
		return result(jsonSuccess([]batchResult{})), nil
	}
	if len(items) > validate.MaxBatchSize {
		return result(jsonError(fmt.Sprintf(
			"Batch update exceeds maximum limit of %d items", validate.MaxBatchSize))), nil
	}

	results := make([]batchResult, 0, len(items))
	for _, item := range items {
		requirement, err := t.updateOne(projectRoot, opDesc, item)
		if err != nil {
			results = append(results, batchErr(err))
			continue
		}
		results = append(results, batchOK(requirement))
	}
	return result(jsonSuccess(results)), nil
}

func (t *UpdateTool) updateOne(projectRoot, opDesc string, item updateItem) (reqdoc.Requirement, error) {
	if err := validate.Index(item.Index); err != nil {
		return reqdoc.Requirement{}, err
	}
	if err := validate.Text(item.Text); err != nil {
		return reqdoc.Requirement{}, err
	}
	if item.Title != nil {
		if err := validate.Title(*item.Title, false); err != nil {
			return reqdoc.Requirement{}, err
		}
	}
	requirement, err := t.store.UpdateRequirement(projectRoot, item.Index, item.Text, item.Title)
	if err != nil {
		return reqdoc.Requirement{}, err
	}
	_ = t.journal.Record("reqmd_update_requirement", opDesc, requirement.Index, requirement.Category, projectRoot)
	return requirement, nil
}

// updateItems coerces the 'items' argument. present is false when the key is
// absent.
func updateItems(req mcp.CallToolRequest) (items []updateItem, present bool, err error) {
	raw, ok := req.GetArguments()["items"]
	if !ok || raw == nil {
		return nil, false, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, false, fmt.Errorf("'items' must be an array of objects")
	}
	items = make([]updateItem, 0, len(list))
	for _, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			return nil, false, fmt.Errorf("'items' must be an array of objects")
		}
		var item updateItem
		if s, ok := obj["index"].(string); ok {
			item.Index = s
		}
		if s, ok := obj["text"].(string); ok {
			item.Text = s
		}
		if raw, ok := obj["title"]; ok && raw != nil {
			s, ok := raw.(string)
			if !ok {
				return nil, false, fmt.Errorf("'items' titles must be strings")
			}
			item.Title = &s
		}
		items = append(items, item)
	}
	return items, true, nil
}
