package validate

import (
	"reflect"
	"strings"
	"testing"
)

func TestCommon(t *testing.T) {
	if err := Common("/home/user/project", "listing categories"); err != nil {
		t.Errorf("valid params rejected: %v", err)
	}

	if err := Common("", "desc"); err == nil || !strings.Contains(err.Error(), "project_root is required") {
		t.Errorf("err = %v, want project_root required", err)
	}
	if err := Common("/p", ""); err == nil || !strings.Contains(err.Error(), "operation_description is required") {
		t.Errorf("err = %v, want operation_description required", err)
	}

	long := strings.Repeat("x", MaxProjectRootLen+1)
	if err := Common(long, "desc"); err == nil || !strings.Contains(err.Error(), "maximum length of 1000") {
		t.Errorf("err = %v, want max length error", err)
	}
}

func TestCategory(t *testing.T) {
	valid := []string{"general", "error_handling", "a"}
	for _, v := range valid {
		if err := Category(v); err != nil {
			t.Errorf("Category(%q) = %v, want nil", v, err)
		}
	}

	invalid := []string{
		"",
		"General",    // uppercase
		"with space", // space
		"dash-ed",    // hyphen
		"dots.",      // punctuation
		"..",         // path traversal
		strings.Repeat("a", MaxCategoryLen+1),
	}
	for _, v := range invalid {
		if err := Category(v); err == nil {
			t.Errorf("Category(%q) = nil, want error", v)
		}
	}
}

func TestChapter(t *testing.T) {
	valid := []string{"Tools", "Command Line: Interface", "multi-word_name"}
	for _, v := range valid {
		if err := Chapter(v); err != nil {
			t.Errorf("Chapter(%q) = %v, want nil", v, err)
		}
	}

	invalid := []string{
		"",
		" Leading space",
		"Trailing space ",
		"Digits 123",
		"Ünïcode",
		strings.Repeat("a", MaxChapterLen+1),
	}
	for _, v := range invalid {
		if err := Chapter(v); err == nil {
			t.Errorf("Chapter(%q) = nil, want error", v)
		}
	}
}

func TestIndexAndText(t *testing.T) {
	if err := Index("G.T.1"); err != nil {
		t.Errorf("Index: %v", err)
	}
	if err := Index(""); err == nil {
		t.Error("empty index accepted")
	}
	if err := Index(strings.Repeat("G", MaxIndexLen+1)); err == nil {
		t.Error("oversized index accepted")
	}

	if err := Text("some body"); err != nil {
		t.Errorf("Text: %v", err)
	}
	if err := Text(""); err == nil {
		t.Error("empty text accepted")
	}
	if err := Text(strings.Repeat("x", MaxTextLen+1)); err == nil {
		t.Error("oversized text accepted")
	}
}

func TestTitle(t *testing.T) {
	if err := Title("A fine title", true); err != nil {
		t.Errorf("Title: %v", err)
	}
	if err := Title("", true); err == nil {
		t.Error("empty required title accepted")
	}
	// Optional titles may be empty (update keeps the existing one).
	if err := Title("", false); err != nil {
		t.Errorf("empty optional title rejected: %v", err)
	}
	if err := Title("multi\nline", true); err == nil {
		t.Error("title with newline accepted")
	}
	if err := Title(strings.Repeat("t", MaxTitleLen+1), false); err == nil {
		t.Error("oversized optional title accepted")
	}
	// Inline markup would not survive the heading round trip.
	if err := Title("*emphasized*", true); err == nil {
		t.Error("markup title accepted")
	}
}

func TestKeywords(t *testing.T) {
	got, err := Keywords([]string{"alpha", "", "beta"})
	if err != nil {
		t.Fatalf("Keywords: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"alpha", "beta"}) {
		t.Errorf("filtered = %v, want empties dropped", got)
	}

	tooMany := make([]string, MaxBatchSize+1)
	for i := range tooMany {
		tooMany[i] = "kw"
	}
	if _, err := Keywords(tooMany); err == nil {
		t.Error("oversized keyword list accepted")
	}

	if _, err := Keywords([]string{strings.Repeat("k", MaxKeywordLen+1)}); err == nil {
		t.Error("oversized keyword accepted")
	}

	got, err = Keywords(nil)
	if err != nil {
		t.Fatalf("Keywords(nil): %v", err)
	}
	if len(got) != 0 {
		t.Errorf("filtered = %v, want empty", got)
	}
}
