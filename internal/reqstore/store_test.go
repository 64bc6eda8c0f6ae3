package reqstore

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestFindOrCreateInstructions_CreatesDefaultPath(t *testing.T) {
	root := t.TempDir()
	locator := NewLocator("")

	path, err := locator.FindOrCreateInstructions(root)
	if err != nil {
		t.Fatalf("FindOrCreateInstructions: %v", err)
	}

	want := filepath.Join(root, "docs", "development", "requirements", "AGENTS.md")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading created file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "# Instructions") {
		t.Error("created file should contain the instructions heading")
	}
	if strings.Contains(content, "{requirements_directory}") {
		t.Error("placeholder token should have been replaced")
	}
	if !strings.Contains(content, filepath.Join("docs", "development", "requirements")) {
		t.Error("content should reference the requirements directory")
	}
}

func TestFindOrCreateInstructions_FindsFallbackPath(t *testing.T) {
	root := t.TempDir()
	existing := filepath.Join(root, "docs", "dev", "req", "AGENTS.md")
	if err := os.MkdirAll(filepath.Dir(existing), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(existing, []byte("# Instructions\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	path, err := NewLocator("").FindOrCreateInstructions(root)
	if err != nil {
		t.Fatalf("FindOrCreateInstructions: %v", err)
	}
	if path != existing {
		t.Errorf("path = %q, want existing fallback %q", path, existing)
	}
}

func TestFindOrCreateInstructions_OverrideWins(t *testing.T) {
	root := t.TempDir()

	path, err := NewLocator("req").FindOrCreateInstructions(root)
	if err != nil {
		t.Fatalf("FindOrCreateInstructions: %v", err)
	}
	want := filepath.Join(root, "req", "AGENTS.md")
	if path != want {
		t.Errorf("path = %q, want override path %q", path, want)
	}
}

func TestListCategories(t *testing.T) {
	root := t.TempDir()
	store := New(NewLocator(""))

	dir, err := store.Locator().RequirementsDir(root)
	if err != nil {
		t.Fatalf("RequirementsDir: %v", err)
	}

	for _, name := range []string{"tools.md", "general.md", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(""), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	categories, err := store.ListCategories(dir)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	// AGENTS.md was created by RequirementsDir and must be excluded; the
	// .txt file is not a category; names come back sorted.
	want := []string{"general", "tools"}
	if !reflect.DeepEqual(categories, want) {
		t.Errorf("categories = %v, want %v", categories, want)
	}
}

func TestResolveCategory(t *testing.T) {
	root := t.TempDir()
	store := New(NewLocator(""))

	dir, err := store.Locator().RequirementsDir(root)
	if err != nil {
		t.Fatalf("RequirementsDir: %v", err)
	}
	for _, name := range []string{"general.md", "tools.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(""), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	category, err := store.ResolveCategory(dir, "G")
	if err != nil {
		t.Fatalf("ResolveCategory: %v", err)
	}
	if category != "general" {
		t.Errorf("category = %q, want general", category)
	}

	if _, err := store.ResolveCategory(dir, "X"); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("err = %v, want ErrCategoryNotFound", err)
	}
}

// Resolution recomputes prefixes against the current sibling set, so adding
// a sibling can strand indices allocated under the old, shorter prefix.
func TestResolveCategory_SiblingChangesPrefix(t *testing.T) {
	root := t.TempDir()
	store := New(NewLocator(""))

	if _, err := store.InsertRequirement(root, "general", "Tools", "First", "body"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := store.GetRequirement(root, "G.T.1"); err != nil {
		t.Fatalf("get before sibling: %v", err)
	}

	// A new sibling starting with "g" lengthens general's unique prefix
	// to "GE", so the stored G.* index no longer resolves.
	if _, err := store.InsertRequirement(root, "guidelines", "Style", "Rule", "body"); err != nil {
		t.Fatalf("insert sibling: %v", err)
	}
	if _, err := store.GetRequirement(root, "G.T.1"); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("err = %v, want ErrCategoryNotFound after sibling added", err)
	}
}
