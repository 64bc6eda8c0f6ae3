package reqdoc

import (
	"errors"
	"reflect"
	"testing"
)

func TestScan_EventOrderAndOffsets(t *testing.T) {
	doc := "# Alpha\n\n## A.A.1: First\n\nbody\n\n# Beta\n"

	events := Scan(doc)
	if len(events) != 3 {
		t.Fatalf("Scan returned %d events, want 3", len(events))
	}

	if events[0].Kind != EventChapter || events[0].Name != "Alpha" {
		t.Errorf("event 0 = %+v, want chapter Alpha", events[0])
	}
	if events[1].Kind != EventRequirement || events[1].Index != "A.A.1" || events[1].Title != "First" {
		t.Errorf("event 1 = %+v, want requirement A.A.1", events[1])
	}
	if events[2].Kind != EventChapter || events[2].Name != "Beta" {
		t.Errorf("event 2 = %+v, want chapter Beta", events[2])
	}

	// Offsets must reproduce the heading lines exactly.
	if got := doc[events[1].LineStart:events[1].LineEnd]; got != "## A.A.1: First\n" {
		t.Errorf("requirement line span = %q", got)
	}
	if got := doc[events[2].LineStart:events[2].LineEnd]; got != "# Beta\n" {
		t.Errorf("chapter line span = %q", got)
	}
}

func TestScan_IgnoresHeadingsInsideFences(t *testing.T) {
	doc := "# Alpha\n\n## A.A.1: First\n\n```markdown\n# not a chapter\n## X.X.1: not a requirement\n```\n\n## A.A.2: Second\n\nbody\n"

	events := Scan(doc)
	if len(events) != 3 {
		t.Fatalf("Scan returned %d events, want 3: %+v", len(events), events)
	}
	if events[2].Index != "A.A.2" {
		t.Errorf("event 2 index = %q, want A.A.2", events[2].Index)
	}
}

func TestScan_UnterminatedFenceConsumesRest(t *testing.T) {
	doc := "# Alpha\n\n```\n# swallowed\n## A.A.1: swallowed too\n"

	events := Scan(doc)
	if len(events) != 1 {
		t.Fatalf("Scan returned %d events, want 1: %+v", len(events), events)
	}
	if events[0].Name != "Alpha" {
		t.Errorf("event 0 name = %q, want Alpha", events[0].Name)
	}
}

func TestScan_FenceWithLanguageTag(t *testing.T) {
	doc := "# Alpha\n\n```json\n{\"key\": \"# value\"}\n```\n\n# Beta\n"

	events := Scan(doc)
	if len(events) != 2 {
		t.Fatalf("Scan returned %d events, want 2: %+v", len(events), events)
	}
}

func TestListChapters(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{"empty document", "", []string{}},
		{"whitespace only", "\n\n  \n", []string{}},
		{"single", "# Alpha\n", []string{"Alpha"}},
		{"multiple", "# Alpha\n\ntext\n\n# Beta\n", []string{"Alpha", "Beta"}},
		{"duplicates preserved", "# Alpha\n\n# Alpha\n", []string{"Alpha", "Alpha"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ListChapters(tt.doc)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ListChapters(%q) = %v, want %v", tt.doc, got, tt.want)
			}
		})
	}
}

func TestListRequirements(t *testing.T) {
	doc := "## X.X.1: Orphan before any chapter\n\n# Alpha\n\n## A.A.1: First\n\nbody\n\n## A.A.2: Second\n\nbody\n\n# Beta\n\n## A.B.1: Other chapter\n\nbody\n"

	got := ListRequirements(doc, "Alpha")
	want := []RequirementSummary{
		{Index: "A.A.1", Title: "First"},
		{Index: "A.A.2", Title: "Second"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListRequirements(Alpha) = %v, want %v", got, want)
	}

	if got := ListRequirements(doc, "Missing"); len(got) != 0 {
		t.Errorf("ListRequirements(Missing) = %v, want empty", got)
	}
}

func TestFindRequirement_BodyEndsAtNextHeading(t *testing.T) {
	doc := "# Chapter\n## G.G.1: Title\nText before\n# NextChapter\nText after\n"

	req, err := FindRequirement(doc, "general", "G.G.1")
	if err != nil {
		t.Fatalf("FindRequirement: %v", err)
	}
	if req.Text != "Text before" {
		t.Errorf("Text = %q, want %q", req.Text, "Text before")
	}
	if req.Chapter != "Chapter" {
		t.Errorf("Chapter = %q, want %q", req.Chapter, "Chapter")
	}
	if req.Category != "general" {
		t.Errorf("Category = %q, want %q", req.Category, "general")
	}
}

func TestFindRequirement_BodyTrimmedAndFencesKept(t *testing.T) {
	doc := "# Alpha\n\n## A.A.1: First\n\nSome text.\n\n```go\nfunc main() {}\n```\n"

	req, err := FindRequirement(doc, "alpha", "A.A.1")
	if err != nil {
		t.Fatalf("FindRequirement: %v", err)
	}
	want := "Some text.\n\n```go\nfunc main() {}\n```"
	if req.Text != want {
		t.Errorf("Text = %q, want %q", req.Text, want)
	}
}

func TestFindRequirement_NotFound(t *testing.T) {
	doc := "# Alpha\n\n## A.A.1: First\n\nbody\n"

	_, err := FindRequirement(doc, "alpha", "A.A.99")
	if !errors.Is(err, ErrRequirementNotFound) {
		t.Errorf("err = %v, want ErrRequirementNotFound", err)
	}
}
