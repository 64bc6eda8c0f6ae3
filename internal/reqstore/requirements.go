package reqstore

import (
	"fmt"
	"strconv"
	"strings"

	"reqmd/internal/reqdoc"
)

// DeletedRequirement describes a removed requirement.
type DeletedRequirement struct {
	Index    string `json:"index"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Chapter  string `json:"chapter"`
}

// GetChapters lists the chapters of an existing category.
func (s *Store) GetChapters(projectRoot, category string) ([]string, error) {
	dir, err := s.locator.RequirementsDir(projectRoot)
	if err != nil {
		return nil, err
	}
	path := CategoryPath(dir, category)
	if !fileExists(path) {
		return nil, ErrCategoryNotFound
	}
	doc, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return reqdoc.ListChapters(doc), nil
}

// GetRequirements lists the requirement summaries of a chapter. The chapter
// must exist in the category document.
func (s *Store) GetRequirements(projectRoot, category, chapter string) ([]reqdoc.RequirementSummary, error) {
	dir, err := s.locator.RequirementsDir(projectRoot)
	if err != nil {
		return nil, err
	}
	path := CategoryPath(dir, category)
	if !fileExists(path) {
		return nil, ErrCategoryNotFound
	}
	doc, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if !containsChapter(doc, chapter) {
		return nil, reqdoc.ErrChapterNotFound
	}
	return reqdoc.ListRequirements(doc, chapter), nil
}

// GetRequirement resolves an index to its full requirement record. The
// category is resolved from the index's first prefix segment.
func (s *Store) GetRequirement(projectRoot, index string) (reqdoc.Requirement, error) {
	categoryPrefix, _, _, err := reqdoc.ParseIndex(index)
	if err != nil {
		return reqdoc.Requirement{}, err
	}
	dir, err := s.locator.RequirementsDir(projectRoot)
	if err != nil {
		return reqdoc.Requirement{}, err
	}
	category, err := s.ResolveCategory(dir, categoryPrefix)
	if err != nil {
		return reqdoc.Requirement{}, err
	}
	doc, err := readFile(CategoryPath(dir, category))
	if err != nil {
		return reqdoc.Requirement{}, err
	}
	return reqdoc.FindRequirement(doc, category, index)
}

// InsertRequirement creates a new requirement and returns its full record
// with the freshly minted index.
//
// The category file and the chapter heading are created when missing, and
// those two steps persist even when a later step rejects the insert — an
// empty chapter left behind by a duplicate-title rejection is only ever
// cleaned up by a delete.
func (s *Store) InsertRequirement(projectRoot, category, chapter, title, text string) (reqdoc.Requirement, error) {
	dir, err := s.locator.RequirementsDir(projectRoot)
	if err != nil {
		return reqdoc.Requirement{}, err
	}
	path := CategoryPath(dir, category)

	if !fileExists(path) {
		if err := writeFile(path, ""); err != nil {
			return reqdoc.Requirement{}, err
		}
	}

	doc, err := readFile(path)
	if err != nil {
		return reqdoc.Requirement{}, err
	}

	if !containsChapter(doc, chapter) {
		doc = reqdoc.AppendChapter(doc, chapter)
		if err := writeFile(path, doc); err != nil {
			return reqdoc.Requirement{}, err
		}
	}

	if titleExists(doc, chapter, title, "") {
		return reqdoc.Requirement{}, ErrDuplicateTitle
	}

	categories, err := s.ListCategories(dir)
	if err != nil {
		return reqdoc.Requirement{}, err
	}
	index := fmt.Sprintf("%s.%s.%d",
		categoryPrefix(doc, category, categories),
		chapterPrefix(doc, chapter),
		nextNumber(doc, chapter),
	)

	newDoc, err := reqdoc.InsertRequirement(doc, chapter, index, title, text)
	if err != nil {
		return reqdoc.Requirement{}, err
	}
	if err := writeFile(path, newDoc); err != nil {
		return reqdoc.Requirement{}, err
	}

	return reqdoc.Requirement{
		Index:    index,
		Title:    title,
		Text:     text,
		Category: category,
		Chapter:  chapter,
	}, nil
}

// UpdateRequirement replaces a requirement's text and, when title is non-nil,
// its title. Index, category and chapter identity are immutable.
func (s *Store) UpdateRequirement(projectRoot, index, text string, title *string) (reqdoc.Requirement, error) {
	categoryPrefix, _, _, err := reqdoc.ParseIndex(index)
	if err != nil {
		return reqdoc.Requirement{}, err
	}
	dir, err := s.locator.RequirementsDir(projectRoot)
	if err != nil {
		return reqdoc.Requirement{}, err
	}
	category, err := s.ResolveCategory(dir, categoryPrefix)
	if err != nil {
		return reqdoc.Requirement{}, err
	}
	path := CategoryPath(dir, category)

	doc, err := readFile(path)
	if err != nil {
		return reqdoc.Requirement{}, err
	}
	existing, err := reqdoc.FindRequirement(doc, category, index)
	if err != nil {
		return reqdoc.Requirement{}, err
	}

	newTitle := existing.Title
	if title != nil {
		newTitle = *title
		if titleExists(doc, existing.Chapter, newTitle, index) {
			return reqdoc.Requirement{}, ErrDuplicateTitle
		}
	}

	newDoc, err := reqdoc.UpdateRequirement(doc, index, newTitle, text)
	if err != nil {
		return reqdoc.Requirement{}, err
	}
	if err := writeFile(path, newDoc); err != nil {
		return reqdoc.Requirement{}, err
	}

	return reqdoc.Requirement{
		Index:    index,
		Title:    newTitle,
		Text:     text,
		Category: category,
		Chapter:  existing.Chapter,
	}, nil
}

// DeleteRequirement removes a requirement. When it was the last one in its
// chapter, the chapter heading is removed as well.
func (s *Store) DeleteRequirement(projectRoot, index string) (DeletedRequirement, error) {
	categoryPrefix, _, _, err := reqdoc.ParseIndex(index)
	if err != nil {
		return DeletedRequirement{}, err
	}
	dir, err := s.locator.RequirementsDir(projectRoot)
	if err != nil {
		return DeletedRequirement{}, err
	}
	category, err := s.ResolveCategory(dir, categoryPrefix)
	if err != nil {
		return DeletedRequirement{}, err
	}
	path := CategoryPath(dir, category)

	doc, err := readFile(path)
	if err != nil {
		return DeletedRequirement{}, err
	}
	existing, err := reqdoc.FindRequirement(doc, category, index)
	if err != nil {
		return DeletedRequirement{}, err
	}

	newDoc, err := reqdoc.DeleteRequirement(doc, index)
	if err != nil {
		return DeletedRequirement{}, err
	}
	if err := writeFile(path, newDoc); err != nil {
		return DeletedRequirement{}, err
	}

	return DeletedRequirement{
		Index:    index,
		Title:    existing.Title,
		Category: category,
		Chapter:  existing.Chapter,
	}, nil
}

// containsChapter reports whether doc has a chapter with the exact name.
func containsChapter(doc, chapter string) bool {
	for _, name := range reqdoc.ListChapters(doc) {
		if name == chapter {
			return true
		}
	}
	return false
}

// titleExists reports whether a requirement with the exact title already
// exists in the chapter, optionally excluding one index (the requirement
// being updated).
func titleExists(doc, chapter, title, excludeIndex string) bool {
	for _, req := range reqdoc.ListRequirements(doc, chapter) {
		if excludeIndex != "" && req.Index == excludeIndex {
			continue
		}
		if req.Title == title {
			return true
		}
	}
	return false
}

// categoryPrefix reuses the prefix segment anchored by the first requirement
// already in the document; only when no requirement exists yet is a fresh
// unique prefix computed against the sibling categories. Reuse keeps
// historical prefixes stable even when the sibling set has since changed.
func categoryPrefix(doc, category string, siblings []string) string {
	for _, ev := range reqdoc.Scan(doc) {
		if ev.Kind == reqdoc.EventRequirement {
			return strings.Split(ev.Index, ".")[0]
		}
	}
	return reqdoc.UniquePrefix(category, siblings)
}

// chapterPrefix reuses the second index segment of the first requirement in
// the target chapter, falling back to a fresh unique prefix among the
// document's chapters.
func chapterPrefix(doc, chapter string) string {
	current := ""
	for _, ev := range reqdoc.Scan(doc) {
		if ev.Kind == reqdoc.EventChapter {
			current = strings.TrimSpace(ev.Name)
			continue
		}
		if current == chapter {
			if parts := strings.Split(ev.Index, "."); len(parts) >= 2 {
				return parts[1]
			}
		}
	}
	return reqdoc.UniquePrefix(chapter, reqdoc.ListChapters(doc))
}

// nextNumber is the chapter-local maximum requirement number plus one.
// Numbers are monotonic per chapter and never reused after deletion.
func nextNumber(doc, chapter string) int {
	max := 0
	for _, req := range reqdoc.ListRequirements(doc, chapter) {
		parts := strings.Split(req.Index, ".")
		if len(parts) != 3 {
			continue
		}
		if n, err := strconv.Atoi(parts[2]); err == nil && n > max {
			max = n
		}
	}
	return max + 1
}
