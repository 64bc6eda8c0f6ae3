package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"reqmd/internal/reqdoc"
	"reqmd/internal/reqstore"
	"reqmd/internal/validate"
)

// RequirementTool handles reqmd_get_requirement: a single index or a batch of
// up to validate.MaxBatchSize indices.
type RequirementTool struct {
	store *reqstore.Store
}

// NewRequirementTool creates a RequirementTool.
func NewRequirementTool(store *reqstore.Store) *RequirementTool {
	return &RequirementTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *RequirementTool) Definition() mcp.Tool {
	return mcp.NewTool("reqmd_get_requirement",
		withCommonParams(
			mcp.WithDescription(
				"Fetch one requirement by index (e.g. 'G.G.1'), or a batch of up to "+
					"100 via 'indices'. Batch results report success or failure per "+
					"index, in input order.",
			),
			mcp.WithString("index",
				mcp.Description("Requirement index for a single fetch."),
			),
			mcp.WithArray("indices",
				mcp.Description("Requirement indices for a batch fetch (max 100)."),
				mcp.WithStringItems(),
			),
		)...,
	)
}

// Handle processes the reqmd_get_requirement tool call.
func (t *RequirementTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
		requirement, err := t.getOne(projectRoot, index)
		if err != nil {
			return result(jsonError(err.Error())), nil
		}
		return result(jsonSuccess(requirement)), nil
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
		requirement, err := t.getOne(projectRoot, index)
		if err != nil {
			results = append(results, batchErr(err))
			continue
		}
		results = append(results, batchOK(requirement))
	}
	return result(jsonSuccess(results)), nil
}

func (t *RequirementTool) getOne(projectRoot, index string) (reqdoc.Requirement, error) {
	if err := validate.Index(index); err != nil {
		return reqdoc.Requirement{}, err
	}
	return t.store.GetRequirement(projectRoot, index)
}
