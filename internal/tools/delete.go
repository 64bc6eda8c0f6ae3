package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"reqmd/internal/journal"
	"reqmd/internal/reqstore"
	"reqmd/internal/validate"
)

// DeleteTool handles reqmd_delete_requirement: a single index or a batch of
// up to validate.MaxBatchSize indices.
type DeleteTool struct {
	store   *reqstore.Store
	journal *journal.Store
}

// NewDeleteTool creates a DeleteTool. The journal may be nil.
func NewDeleteTool(store *reqstore.Store, jrnl *journal.Store) *DeleteTool {
	return &DeleteTool{store: store, journal: jrnl}
}

// Definition returns the MCP tool definition for registration.
func (t *DeleteTool) Definition() mcp.Tool {
	return mcp.NewTool("reqmd_delete_requirement",
		withCommonParams(
			mcp.WithDescription(
				"Delete a requirement by index, or a batch of up to 100 via "+
					"'indices'. Deleting the last requirement of a chapter removes the "+
					"chapter heading too. Requirement numbers are never reused.",
			),
			mcp.WithString("index",
				mcp.Description("Requirement index for a single delete."),
			),
			mcp.WithArray("indices",
				mcp.Description("Requirement indices for a batch delete (max 100)."),
				mcp.WithStringItems(),
			),
		)...,
	)
}

// Handle processes the reqmd_delete_requirement tool call.
func (t *DeleteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectRoot, opDesc := commonArgs(req)
	if err := validate.Common(projectRoot, opDesc); err != nil {
		return result(jsonError(err.Error())), nil
	}

	indices, batch, err := stringList(req, "indices")
	if err != nil {
		return result(jsonError(err.Error())), nil
	}

	if !batch {
		index := req.GetString("index", "")
		if index == "" {
			return result(jsonError("either 'index' or 'indices' is required")), nil
		}
		deleted, err := t.deleteOne(projectRoot, opDesc, index)
		if err != nil {
			return result(jsonError(err.Error())), nil
		}
		return result(jsonSuccess(deleted)), nil
	}

	if len(indices) == 0 {
		return result(jsonSuccess([]batchResult{})), nil
	}
	if len(indices) > validate.MaxBatchSize {
		return result(jsonError(fmt.Sprintf(
			"Batch request exceeds maximum limit of %d indices", validate.MaxBatchSize))), nil
	}

	results := make([]batchResult, 0, len(indices))
	for _, index := range indices {
		deleted, err := t.deleteOne(projectRoot, opDesc, index)
		if err != nil {
			results = append(results, batchErr(err))
			continue
		}
		results = append(results, batchOK(deleted))
	}
	return result(jsonSuccess(results)), nil
}

func (t *DeleteTool) deleteOne(projectRoot, opDesc, index string) (reqstore.DeletedRequirement, error) {
	if err := validate.Index(index); err != nil {
		return reqstore.DeletedRequirement{}, err
	}
	deleted, err := t.store.DeleteRequirement(projectRoot, index)
	if err != nil {
		return reqstore.DeletedRequirement{}, err
	}
	_ = t.journal.Record("reqmd_delete_requirement", opDesc, deleted.Index, deleted.Category, projectRoot)
	return deleted, nil
}
