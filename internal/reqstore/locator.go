// Package reqstore is the filesystem façade over the reqdoc engine.
//
// It resolves the requirements directory inside a project, maintains the
// AGENTS.md instructions file, lists and resolves categories, and orchestrates
// the read-modify-write cycle for every requirement operation. Each operation
// works on one category file at a time: read the whole document, transform it
// in memory, and write the new text only after the transform succeeded.
package reqstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// instructionsPlaceholder seeds a freshly created AGENTS.md. The
// {requirements_directory} token is replaced with the project-relative
// requirements path at creation time.
const instructionsPlaceholder = `# Instructions

These instructions are mandatory for all code operations:

1. Always verify that code matches requirements. If there are discrepancies, propose to the user
   to fix either the code or the requirements.

2. Make maximum effort to find relevant requirements for the code being modified and apply changes
   according to those requirements.

3. Document code thoroughly by leaving references to requirement indices in comments.

4. Requirement index format: ` + "`{CATEGORY}.{CHAPTER}.{NUMBER}`" + ` (e.g., ` + "`G.A.1`, `T.U.2`" + `).
   Requirements are organized hierarchically: **Category** groups related requirements together (e.g., general requirements, testing requirements).
   **Chapter** groups related requirements within a category (e.g., a specific tool or feature). **Requirement** is a single, atomic requirement with a unique index.

5. All requirements must be written in English.

6. Never edit files in {requirements_directory} directly. Always use this MCP server for all
   requirements operations.

7. When making code changes, follow this workflow:
    a. Update requirements if needed, then validate them (completeness, consistency, no redundancy or duplication)
    b. Request user review and confirmation of requirement changes
    c. Implement code changes according to the updated requirements
    d. Validate code changes for correctness and compliance with requirements; fix any issues
    e. Format all code
    f. Run automated checks (tests, code analyzers, etc.); fix any issues found

`

// Locator resolves the requirements directory for a project root. The
// optional relative-path override is an explicit configuration value supplied
// at construction (typically from a CLI flag or environment read in main);
// nothing below the entry point consults ambient state.
type Locator struct {
	relPath string
}

// NewLocator creates a Locator. relPath, when non-empty, is the
// project-relative directory searched (and used for creation) before the
// built-in defaults.
func NewLocator(relPath string) *Locator {
	return &Locator{relPath: relPath}
}

// searchPaths returns candidate AGENTS.md locations in priority order.
func (l *Locator) searchPaths(projectRoot string) []string {
	var paths []string
	if l.relPath != "" {
		paths = append(paths, filepath.Join(projectRoot, l.relPath, "AGENTS.md"))
	}
	return append(paths,
		filepath.Join(projectRoot, "docs", "development", "requirements", "AGENTS.md"),
		filepath.Join(projectRoot, "docs", "dev", "req", "AGENTS.md"),
	)
}

// createPath is where AGENTS.md is created when no candidate exists.
func (l *Locator) createPath(projectRoot string) string {
	if l.relPath != "" {
		return filepath.Join(projectRoot, l.relPath, "AGENTS.md")
	}
	return filepath.Join(projectRoot, "docs", "development", "requirements", "AGENTS.md")
}

// FindOrCreateInstructions returns the path of the project's AGENTS.md,
// creating it (and its parent directories) with placeholder content when it
// doesn't exist yet.
func (l *Locator) FindOrCreateInstructions(projectRoot string) (string, error) {
	for _, path := range l.searchPaths(projectRoot) {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	path := l.createPath(projectRoot)
	rel, err := filepath.Rel(projectRoot, filepath.Dir(path))
	if err != nil {
		rel = ""
	}
	content := strings.ReplaceAll(instructionsPlaceholder, "{requirements_directory}", rel)

	if err := writeFile(path, content); err != nil {
		return "", fmt.Errorf("creating instructions file: %w", err)
	}
	return path, nil
}

// RequirementsDir returns the directory holding the category files,
// creating the AGENTS.md instructions file on first use.
func (l *Locator) RequirementsDir(projectRoot string) (string, error) {
	path, err := l.FindOrCreateInstructions(projectRoot)
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}
