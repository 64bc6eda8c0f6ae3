package journal

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNew_CreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "journal")
	s, err := New(Config{DataDir: dir})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = s.Close() }()

	if _, err := os.Stat(filepath.Join(dir, "journal.db")); err != nil {
		t.Errorf("journal.db should exist: %v", err)
	}
}

func TestRecordAndRecent(t *testing.T) {
	s := newTestStore(t)

	entries := []struct {
		tool, op, index, category, root string
	}{
		{"reqmd_insert_requirement", "adding login requirement", "G.T.1", "general", "/proj/a"},
		{"reqmd_update_requirement", "clarifying wording", "G.T.1", "general", "/proj/a"},
		{"reqmd_delete_requirement", "obsolete", "T.U.3", "testing", "/proj/b"},
	}
	for _, e := range entries {
		if err := s.Record(e.tool, e.op, e.index, e.category, e.root); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	got, err := s.Recent("/proj/a", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2 (project-scoped)", len(got))
	}
	// Newest first.
	if got[0].Tool != "reqmd_update_requirement" || got[1].Tool != "reqmd_insert_requirement" {
		t.Errorf("order = [%s, %s], want newest first", got[0].Tool, got[1].Tool)
	}
	if got[0].Index != "G.T.1" || got[0].Category != "general" {
		t.Errorf("entry = %+v", got[0])
	}
	if got[0].CreatedAt == "" {
		t.Error("CreatedAt should be set")
	}
}

func TestRecent_Limit(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 5; i++ {
		if err := s.Record("reqmd_insert_requirement", "op", "G.T.1", "general", "/p"); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	got, err := s.Recent("/p", 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("got %d entries, want 3", len(got))
	}

	// Non-positive limit falls back to the default.
	got, err = s.Recent("/p", 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 5 {
		t.Errorf("got %d entries, want 5", len(got))
	}
}

func TestRecent_UnknownProject(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Recent("/nowhere", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("entries = %+v, want none", got)
	}
}

func TestNilStore_IsNoOp(t *testing.T) {
	var s *Store

	if err := s.Record("tool", "op", "", "", "/p"); err != nil {
		t.Errorf("nil Record: %v", err)
	}
	entries, err := s.Recent("/p", 10)
	if err != nil {
		t.Errorf("nil Recent: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %+v, want none", entries)
	}
	if err := s.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}
