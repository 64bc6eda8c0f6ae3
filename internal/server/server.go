// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates the concrete store, journal and
// tool implementations and registers them. No business logic lives here —
// only wiring.
package server

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"reqmd/internal/journal"
	"reqmd/internal/reqstore"
	"reqmd/internal/tools"
	"reqmd/internal/version"
)

// New creates and configures the MCP server with every requirements tool
// registered.
//
// The returned cleanup function closes the journal's database connection and
// must be called on shutdown (typically via defer). It is always non-nil and
// safe to call even when journal init failed.
func New(locator *reqstore.Locator, logger *zap.Logger) (*server.MCPServer, func(), error) {
	store := reqstore.New(locator)

	s := server.NewMCPServer(
		"reqmd",
		version.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// The journal is an independent subsystem: if it fails to initialize,
	// the requirements tools keep working and mutations simply go
	// unrecorded. A nil journal store is a valid no-op dependency.
	cleanup := noop
	jrnl, jrnlErr := journal.New(journal.DefaultConfig())
	if jrnlErr != nil {
		logger.Warn("operation journal disabled", zap.Error(jrnlErr))
		jrnl = nil
	} else {
		cleanup = func() {
			if err := jrnl.Close(); err != nil {
				logger.Warn("journal close", zap.Error(err))
			}
		}
	}

	// --- Query tools ---

	instructionsTool := tools.NewInstructionsTool(store)
	s.AddTool(instructionsTool.Definition(), instructionsTool.Handle)

	categoriesTool := tools.NewCategoriesTool(store)
	s.AddTool(categoriesTool.Definition(), categoriesTool.Handle)

	chaptersTool := tools.NewChaptersTool(store)
	s.AddTool(chaptersTool.Definition(), chaptersTool.Handle)

	requirementsTool := tools.NewRequirementsTool(store)
	s.AddTool(requirementsTool.Definition(), requirementsTool.Handle)

	requirementTool := tools.NewRequirementTool(store)
	s.AddTool(requirementTool.Definition(), requirementTool.Handle)

	searchTool := tools.NewSearchTool(store)
	s.AddTool(searchTool.Definition(), searchTool.Handle)

	versionTool := tools.NewVersionTool()
	s.AddTool(versionTool.Definition(), versionTool.Handle)

	// --- Mutation tools ---

	insertTool := tools.NewInsertTool(store, jrnl)
	s.AddTool(insertTool.Definition(), insertTool.Handle)

	updateTool := tools.NewUpdateTool(store, jrnl)
	s.AddTool(updateTool.Definition(), updateTool.Handle)

	deleteTool := tools.NewDeleteTool(store, jrnl)
	s.AddTool(deleteTool.Definition(), deleteTool.Handle)

	// History only makes sense when the journal is recording.
	if jrnl != nil {
		historyTool := tools.NewHistoryTool(jrnl)
		s.AddTool(historyTool.Definition(), historyTool.Handle)
	}

	return s, cleanup, nil
}

// noop is the default cleanup when the journal is disabled.
func noop() {}

// serverInstructions returns the system instructions that tell the AI how to
// use the requirements database effectively.
func serverInstructions() string {
	return `You have access to reqmd, a requirements database MCP server.

The database lives inside the user's project as plain markdown files:
one file per category, level-1 headings as chapters, and level-2
headings of the form "## {index}: {title}" as requirements. Files stay
human-readable and diff-friendly — every tool call edits them in place.

## Workflow

1. ALWAYS call reqmd_get_instructions first for a project. It returns
   the project's working instructions plus the list of existing
   categories. Follow those instructions.
2. Browse with reqmd_get_categories, reqmd_get_chapters and
   reqmd_get_requirements, or search with reqmd_search_requirements.
3. Fetch full requirement text with reqmd_get_requirement (single
   index or a batch of up to 100).
4. Mutate with reqmd_insert_requirement, reqmd_update_requirement and
   reqmd_delete_requirement.

## Indices

Requirement indices look like "G.G.1": category prefix, chapter
prefix, number. Indices are assigned by the server on insert — never
invent one. They are permanent: updates keep the index, and numbers
are never reused after deletion.

## Rules

- Every call takes project_root (absolute path) and
  operation_description (why you are doing this).
- Category names: lowercase English letters and underscores only.
- Chapter names: English letters, spaces, colons, hyphens, underscores.
- Titles are single-line and unique within their chapter.
- Requirement text is markdown; fenced code blocks are fine.
- Prefer batch calls when reading or changing several requirements.`
}
