package reqdoc

import (
	"errors"
	"strings"
)

// Errors returned by document lookups. The tool layer surfaces these messages
// verbatim in its response envelope.
var (
	ErrRequirementNotFound = errors.New("Requirement not found")
	ErrChapterNotFound     = errors.New("Chapter not found")
)

// EventKind discriminates the heading events produced by Scan.
type EventKind int

const (
	// EventChapter is a level-1 chapter heading.
	EventChapter EventKind = iota
	// EventRequirement is a level-2 requirement heading.
	EventRequirement
)

// HeadingEvent is one heading discovered by Scan, with the byte offsets of
// its line. LineStart is the offset of the line's first byte; LineEnd is the
// offset just past its terminating newline (or the document end).
type HeadingEvent struct {
	Kind      EventKind
	Name      string // chapter name, Kind == EventChapter
	Index     string // requirement index, Kind == EventRequirement
	Title     string // requirement title, Kind == EventRequirement
	LineStart int
	LineEnd   int
}

// RequirementSummary is a requirement's identity as listed in a chapter.
type RequirementSummary struct {
	Index string `json:"index"`
	Title string `json:"title"`
}

// Requirement is a fully resolved requirement record.
type Requirement struct {
	Index    string `json:"index"`
	Title    string `json:"title"`
	Text     string `json:"text"`
	Category string `json:"category"`
	Chapter  string `json:"chapter"`
}

// Scan walks doc once and returns every chapter and requirement heading
// outside fenced code blocks, in document order. A line whose trimmed content
// starts with three backticks toggles the fence flag regardless of language
// tag; an unterminated fence consumes the rest of the document.
func Scan(doc string) []HeadingEvent {
	var events []HeadingEvent
	inFence := false

	for start := 0; start < len(doc); {
		var line string
		var lineEnd int
		if nl := strings.IndexByte(doc[start:], '\n'); nl >= 0 {
			line = doc[start : start+nl]
			lineEnd = start + nl + 1
		} else {
			line = doc[start:]
			lineEnd = len(doc)
		}

		switch {
		case strings.HasPrefix(strings.TrimSpace(line), "```"):
			inFence = !inFence
		case inFence:
			// body of a fenced block, never a heading
		default:
			if name, ok := ParseChapterHeading(line); ok {
				events = append(events, HeadingEvent{
					Kind:      EventChapter,
					Name:      name,
					LineStart: start,
					LineEnd:   lineEnd,
				})
			} else if index, title, ok := ParseRequirementHeading(line); ok {
				events = append(events, HeadingEvent{
					Kind:      EventRequirement,
					Index:     index,
					Title:     title,
					LineStart: start,
					LineEnd:   lineEnd,
				})
			}
		}

		start = lineEnd
	}

	return events
}

// ListChapters returns every chapter name in document order, trimmed.
// Duplicate names are preserved as separate entries. An empty or
// whitespace-only document yields an empty list.
func ListChapters(doc string) []string {
	chapters := []string{}
	for _, ev := range Scan(doc) {
		if ev.Kind == EventChapter {
			chapters = append(chapters, strings.TrimSpace(ev.Name))
		}
	}
	return chapters
}

// ListRequirements returns the requirements whose enclosing chapter equals
// chapter, in document order. Requirements before the first chapter heading
// belong to no chapter and are never listed.
func ListRequirements(doc, chapter string) []RequirementSummary {
	requirements := []RequirementSummary{}
	current := ""
	for _, ev := range Scan(doc) {
		switch ev.Kind {
		case EventChapter:
			current = strings.TrimSpace(ev.Name)
		case EventRequirement:
			if current == chapter {
				requirements = append(requirements, RequirementSummary{
					Index: ev.Index,
					Title: ev.Title,
				})
			}
		}
	}
	return requirements
}

// FindRequirement locates the requirement with the given index and resolves
// its full record. The body span starts after the heading line and ends at
// the next level-1 or level-2 heading outside code blocks, whichever comes
// first, or at the end of the document. Leading and trailing whitespace of
// the body is trimmed.
func FindRequirement(doc, category, index string) (Requirement, error) {
	events := Scan(doc)
	chapter := ""
	for i, ev := range events {
		if ev.Kind == EventChapter {
			chapter = strings.TrimSpace(ev.Name)
			continue
		}
		if ev.Index != index {
			continue
		}
		end := len(doc)
		if i+1 < len(events) {
			end = events[i+1].LineStart
		}
		return Requirement{
			Index:    index,
			Title:    ev.Title,
			Text:     strings.TrimSpace(doc[ev.LineEnd:end]),
			Category: category,
			Chapter:  chapter,
		}, nil
	}
	return Requirement{}, ErrRequirementNotFound
}
