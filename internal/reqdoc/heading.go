// Package reqdoc implements the markdown-as-database engine for requirement
// documents.
//
// A category is a single markdown file. Level-1 ATX headings delimit chapters,
// level-2 headings of the form `## {index}: {title}` delimit requirements.
// Everything else — including heading-looking lines inside fenced code
// blocks — is opaque body text. The package works on whole document strings
// and byte offsets: scanning yields ordered heading events, and all list,
// find and mutation operations are reductions over those events. Mutations
// are pure functions from document text to document text; callers own
// persistence.
package reqdoc

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// markdown is the shared goldmark instance used for inline heading content
// extraction. Parse allocates a fresh context per call, and the server
// processes one request at a time anyway.
var markdown = goldmark.New()

// deindent strips 1-3 leading spaces. Four or more leading spaces make the
// line indented code, so it is returned unchanged and the heading prefix
// checks below will reject it.
func deindent(line string) string {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	if n >= 1 && n <= 3 {
		return line[n:]
	}
	return line
}

// headingText parses line as markdown and returns the plain text of a heading
// at exactly the given level. Trailing closing-ATX markers are stripped by the
// parser. A heading whose inline content is anything other than a single
// plain text run (emphasis, code spans, links) is rejected. An empty heading
// yields ("", true).
func headingText(line string, level int) (string, bool) {
	src := []byte(line)
	doc := markdown.Parser().Parse(gmtext.NewReader(src))
	if doc.ChildCount() != 1 {
		return "", false
	}
	h, ok := doc.FirstChild().(*ast.Heading)
	if !ok || h.Level != level {
		return "", false
	}
	var b strings.Builder
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		t, ok := c.(*ast.Text)
		if !ok {
			return "", false
		}
		b.Write(t.Segment.Value(src))
	}
	return b.String(), true
}

// ParseChapterHeading reports whether line is a level-1 chapter heading and
// returns the chapter name. The name of an empty heading is "" with ok=true.
func ParseChapterHeading(line string) (string, bool) {
	t := deindent(line)
	if !strings.HasPrefix(t, "# ") {
		return "", false
	}
	return headingText(t, 1)
}

// ParseRequirementHeading reports whether line is a level-2 requirement
// heading of the form `## {index}: {title}`. Both index and title must be
// non-empty after trimming, otherwise the line is not a requirement heading.
func ParseRequirementHeading(line string) (index, title string, ok bool) {
	t := deindent(line)
	if !strings.HasPrefix(t, "## ") || strings.HasPrefix(t, "###") {
		return "", "", false
	}
	content, ok := headingText(t, 2)
	if !ok {
		return "", "", false
	}
	colon := strings.Index(content, ":")
	if colon < 0 {
		return "", "", false
	}
	index = strings.TrimSpace(content[:colon])
	title = strings.TrimSpace(content[colon+1:])
	if index == "" || title == "" {
		return "", "", false
	}
	return index, title, true
}
