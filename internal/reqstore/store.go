package reqstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"reqmd/internal/reqdoc"
)

// Errors surfaced to the tool layer. Messages are user-visible.
var (
	ErrCategoryNotFound = errors.New("Category not found")
	ErrDuplicateTitle   = errors.New("Title already exists in chapter")
)

// Store performs all requirement operations against a project's requirements
// directory. It is the exclusive writer of category files; there is no
// cross-request locking — overlapping writers race at the filesystem level,
// last write wins.
type Store struct {
	locator *Locator
}

// New creates a Store using the given Locator for path resolution.
func New(locator *Locator) *Store {
	return &Store{locator: locator}
}

// Locator exposes the store's path resolver, used by the instructions tool.
func (s *Store) Locator() *Locator {
	return s.locator
}

// ListCategories returns the sorted category names of the requirements
// directory: every *.md file stem except the reserved AGENTS instructions
// file. Comparison is case-sensitive.
func (s *Store) ListCategories(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading requirements directory %s: %w", dir, err)
	}

	categories := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) != ".md" {
			continue
		}
		stem := strings.TrimSuffix(name, ".md")
		if stem == "AGENTS" {
			continue
		}
		categories = append(categories, stem)
	}

	sort.Strings(categories)
	return categories, nil
}

// ResolveCategory maps an index's category prefix back to a category name by
// recomputing every category's unique prefix against the current sibling set
// and returning the first match. Unlike insert-time allocation this never
// consults stored indices, so renames or new siblings can change the answer
// for historical prefixes.
func (s *Store) ResolveCategory(dir, prefix string) (string, error) {
	categories, err := s.ListCategories(dir)
	if err != nil {
		return "", err
	}
	for _, category := range categories {
		if reqdoc.UniquePrefix(category, categories) == prefix {
			return category, nil
		}
	}
	return "", ErrCategoryNotFound
}

// CategoryPath returns the path of a category's markdown file.
func CategoryPath(dir, category string) string {
	return filepath.Join(dir, category+".md")
}

// readFile reads a whole file as UTF-8 text.
func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// writeFile writes content, creating parent directories as needed.
func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// fileExists reports whether path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
