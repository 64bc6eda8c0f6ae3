package reqdoc

import (
	"fmt"
	"strings"
)

// Mutations are pure document transforms. Untouched regions of the input are
// carried over byte-for-byte; only the spliced span and the whitespace
// immediately around it change. Callers persist the result only after the
// whole transform has succeeded.

// AppendChapter appends a chapter heading at the end of doc, separated from
// existing content by one blank line.
func AppendChapter(doc, chapter string) string {
	if doc != "" && !strings.HasSuffix(doc, "\n") {
		doc += "\n"
	}
	return doc + "\n# " + chapter + "\n"
}

// InsertRequirement splices a new requirement block at the end of the named
// chapter: just before the next chapter heading, or at the end of the
// document when the chapter is the last one. The chapter heading must already
// exist (see AppendChapter).
func InsertRequirement(doc, chapter, index, title, text string) (string, error) {
	events := Scan(doc)

	chapterAt := -1
	for i, ev := range events {
		if ev.Kind == EventChapter && strings.TrimSpace(ev.Name) == chapter {
			chapterAt = i
			break
		}
	}
	if chapterAt < 0 {
		return "", ErrChapterNotFound
	}

	insertPos := len(doc)
	for _, ev := range events[chapterAt+1:] {
		if ev.Kind == EventChapter {
			// Splice in front of the newline that precedes the next
			// chapter's heading line.
			insertPos = ev.LineStart - 1
			break
		}
	}

	block := fmt.Sprintf("\n## %s: %s\n\n%s\n", index, title, text)
	return doc[:insertPos] + block + doc[insertPos:], nil
}

// UpdateRequirement rewrites the heading line of the requirement with the
// given index and replaces its body span with text. Exactly one blank line
// separates the rewritten block from a following heading; otherwise the block
// ends with a single newline.
func UpdateRequirement(doc, index, title, text string) (string, error) {
	start, end, _, err := requirementSpan(doc, index)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(doc[:start])
	fmt.Fprintf(&b, "## %s: %s\n\n%s", index, title, text)

	remaining := doc[end:]
	if strings.HasPrefix(remaining, "#") || strings.HasPrefix(remaining, "\n#") {
		b.WriteString("\n\n")
	} else {
		b.WriteString("\n")
	}
	b.WriteString(remaining)

	return b.String(), nil
}

// DeleteRequirement removes the requirement block with the given index,
// collapsing surrounding blank lines so at most one blank line separates the
// preceding and following content. When the enclosing chapter is left without
// requirements, its heading line is removed as well.
func DeleteRequirement(doc, index string) (string, error) {
	start, end, chapter, err := requirementSpan(doc, index)
	if err != nil {
		return "", err
	}

	prefix := strings.TrimRight(doc[:start], "\n")
	remaining := strings.TrimLeft(doc[end:], "\n")

	out := prefix
	if remaining != "" {
		out += "\n\n" + remaining
	}

	return removeChapterIfEmpty(out, chapter), nil
}

// requirementSpan locates the requirement heading with the given index and
// returns the byte span [start, end) covering its heading line and body: end
// is the line start of the next heading of either level outside code blocks,
// or the document length. The enclosing chapter name is returned for delete's
// empty-chapter check.
func requirementSpan(doc, index string) (start, end int, chapter string, err error) {
	events := Scan(doc)
	current := ""
	for i, ev := range events {
		if ev.Kind == EventChapter {
			current = strings.TrimSpace(ev.Name)
			continue
		}
		if ev.Index != index {
			continue
		}
		end = len(doc)
		if i+1 < len(events) {
			end = events[i+1].LineStart
		}
		return ev.LineStart, end, current, nil
	}
	return 0, 0, "", ErrRequirementNotFound
}

// removeChapterIfEmpty removes the heading line of the named chapter when its
// span contains no requirement headings. The newline preceding the next
// chapter heading survives, preserving that heading's line boundary.
func removeChapterIfEmpty(doc, chapter string) string {
	events := Scan(doc)
	for i, ev := range events {
		if ev.Kind != EventChapter || strings.TrimSpace(ev.Name) != chapter {
			continue
		}

		chapterEnd := len(doc)
		empty := true
		for _, next := range events[i+1:] {
			if next.Kind == EventChapter {
				chapterEnd = next.LineStart - 1
				break
			}
			empty = false
		}

		if !empty {
			return doc
		}
		return doc[:ev.LineStart] + doc[chapterEnd:]
	}
	return doc
}
