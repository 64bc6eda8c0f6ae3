package reqstore

import (
	"strings"

	"reqmd/internal/reqdoc"
)

// SearchRequirements performs a case-insensitive substring search of every
// requirement's title and body against the given keywords. A requirement
// matches when ANY keyword occurs in either field. Scan order is
// category-name-sorted, then document order of chapters and requirements, but
// result order is not part of the contract. A read failure on a single
// category or requirement skips that entry instead of aborting the search.
func (s *Store) SearchRequirements(projectRoot string, keywords []string) ([]reqdoc.Requirement, error) {
	results := []reqdoc.Requirement{}
	if len(keywords) == 0 {
		return results, nil
	}

	dir, err := s.locator.RequirementsDir(projectRoot)
	if err != nil {
		return nil, err
	}
	categories, err := s.ListCategories(dir)
	if err != nil {
		return nil, err
	}

	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}

	for _, category := range categories {
		doc, err := readFile(CategoryPath(dir, category))
		if err != nil {
			continue
		}
		for _, chapter := range reqdoc.ListChapters(doc) {
			for _, summary := range reqdoc.ListRequirements(doc, chapter) {
				req, err := reqdoc.FindRequirement(doc, category, summary.Index)
				if err != nil {
					continue
				}
				if matchesAny(req, lowered) {
					results = append(results, req)
				}
			}
		}
	}

	return results, nil
}

func matchesAny(req reqdoc.Requirement, loweredKeywords []string) bool {
	title := strings.ToLower(req.Title)
	body := strings.ToLower(req.Text)
	for _, kw := range loweredKeywords {
		if strings.Contains(title, kw) || strings.Contains(body, kw) {
			return true
		}
	}
	return false
}
