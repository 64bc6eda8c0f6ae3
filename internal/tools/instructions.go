package tools

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"reqmd/internal/reqstore"
	"reqmd/internal/validate"
)

// InstructionsTool handles reqmd_get_instructions. It returns the project's
// AGENTS.md content with a generated Categories chapter appended, creating
// the instructions file on first use.
type InstructionsTool struct {
	store *reqstore.Store
}

// NewInstructionsTool creates an InstructionsTool.
func NewInstructionsTool(store *reqstore.Store) *InstructionsTool {
	return &InstructionsTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *InstructionsTool) Definition() mcp.Tool {
	return mcp.NewTool("reqmd_get_instructions",
		withCommonParams(
			mcp.WithDescription(
				"Get the mandatory working instructions for this project's requirements "+
					"database, plus the list of existing categories. Call this before any "+
					"other requirements operation.",
			),
		)...,
	)
}

// Handle processes the reqmd_get_instructions tool call.
func (t *InstructionsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectRoot, opDesc := commonArgs(req)
	if err := validate.Common(projectRoot, opDesc); err != nil {
		return result(jsonError(err.Error())), nil
	}

	path, err := t.store.Locator().FindOrCreateInstructions(projectRoot)
	if err != nil {
		return result(jsonError(err.Error())), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return result(jsonError(fmt.Sprintf("reading %s: %v", path, err))), nil
	}
	content := string(data)

	dir, err := t.store.Locator().RequirementsDir(projectRoot)
	if err != nil {
		return result(jsonError(err.Error())), nil
	}
	categories, err := t.store.ListCategories(dir)
	if err != nil {
		return result(jsonError(err.Error())), nil
	}

	content += categoriesChapter(categories)

	return result(jsonSuccess(map[string]any{"content": content})), nil
}

// categoriesChapter renders the generated Categories chapter appended to the
// instructions content.
func categoriesChapter(categories []string) string {
	if len(categories) == 0 {
		return "\n# Categories\n\nNo categories defined yet.\n"
	}
	var b strings.Builder
	b.WriteString("\n# Categories\n\n")
	for i, c := range categories {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %s", c)
	}
	b.WriteByte('\n')
	return b.String()
}
