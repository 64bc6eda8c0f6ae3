// Package validate enforces the parameter contract of the tool layer: length
// ceilings, character classes, reserved names, and markdown-heading safety.
// Required/length rules run through go-playground/validator; the bespoke
// charset and heading checks layer on top, reusing the reqdoc heading
// recognizer so that "valid heading content" means exactly what the parser
// will later accept.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"reqmd/internal/reqdoc"
)

// Parameter limits. Batch and keyword ceilings are shared by every tool that
// accepts plural input.
const (
	MaxProjectRootLen          = 1000
	MaxOperationDescriptionLen = 10000
	MaxCategoryLen             = 100
	MaxChapterLen              = 100
	MaxIndexLen                = 100
	MaxTextLen                 = 10000
	MaxTitleLen                = 100
	MaxBatchSize               = 100
	MaxKeywordLen              = 200
)

var v = validator.New(validator.WithRequiredStructEnabled())

// bounded applies the required/max rules to a single value and translates
// validator's structured errors into the user-visible message format.
func bounded(field, value string, max int) error {
	if err := v.Var(value, fmt.Sprintf("required,max=%d", max)); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "max" {
			return fmt.Errorf("%s exceeds maximum length of %d characters", field, max)
		}
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// ProjectRoot validates the project_root parameter.
func ProjectRoot(value string) error {
	return bounded("project_root", value, MaxProjectRootLen)
}

// OperationDescription validates the operation_description parameter.
func OperationDescription(value string) error {
	return bounded("operation_description", value, MaxOperationDescriptionLen)
}

// Common validates the parameters shared by every tool call.
func Common(projectRoot, operationDescription string) error {
	if err := ProjectRoot(projectRoot); err != nil {
		return err
	}
	return OperationDescription(operationDescription)
}

// Category validates a category name: lowercase English letters and
// underscore only, no surrounding whitespace, not the reserved AGENTS stem.
func Category(value string) error {
	if err := bounded("category", value, MaxCategoryLen); err != nil {
		return err
	}
	if strings.TrimSpace(value) != value {
		return errors.New("category name must not start or end with whitespace")
	}
	for _, c := range value {
		if (c < 'a' || c > 'z') && c != '_' {
			return errors.New("category name must contain only lowercase English letters (a-z) and underscore (_)")
		}
	}
	if value == "AGENTS" {
		return errors.New("category name 'AGENTS' is reserved")
	}
	if value == "." || value == ".." || strings.Contains(value, "..") {
		return errors.New("category name must not be a relative path component")
	}
	return nil
}

// Chapter validates a chapter name: English letters, spaces, colons, hyphens
// and underscores, renderable as a level-1 heading.
func Chapter(value string) error {
	if err := bounded("chapter", value, MaxChapterLen); err != nil {
		return err
	}
	if strings.TrimSpace(value) != value {
		return errors.New("chapter name must not start or end with whitespace")
	}
	for _, c := range value {
		valid := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
			c == ' ' || c == ':' || c == '-' || c == '_'
		if !valid {
			return errors.New("chapter name must contain only English letters (A-Z, a-z), spaces, colons (:), hyphens (-), and underscores (_)")
		}
	}
	if _, ok := reqdoc.ParseChapterHeading("# " + value); !ok {
		return errors.New("chapter name is not valid markdown heading content")
	}
	return nil
}

// Index validates an index parameter's basic constraints. Structural
// three-segment validation happens in reqdoc.ParseIndex.
func Index(value string) error {
	return bounded("index", value, MaxIndexLen)
}

// Text validates a requirement body.
func Text(value string) error {
	return bounded("text", value, MaxTextLen)
}

// Title validates a requirement title. Titles are embedded in a level-2
// heading, so they must survive a round trip through the heading recognizer.
// When required is false an empty value is accepted (update keeps the
// existing title).
func Title(value string, required bool) error {
	if required {
		if err := bounded("title", value, MaxTitleLen); err != nil {
			return err
		}
	} else if err := v.Var(value, fmt.Sprintf("max=%d", MaxTitleLen)); err != nil {
		return fmt.Errorf("title exceeds maximum length of %d characters", MaxTitleLen)
	}
	if value == "" {
		return nil
	}
	if strings.ContainsAny(value, "\n\r") {
		return errors.New("title must not contain newlines (invalid for markdown heading)")
	}
	if _, _, ok := reqdoc.ParseRequirementHeading("## G.G.1: " + value); !ok {
		return errors.New("title is not valid markdown heading content")
	}
	return nil
}

// Keywords enforces the search keyword contract: at most MaxBatchSize
// keywords, each at most MaxKeywordLen characters, with empty strings
// filtered out. The filtered slice is returned.
func Keywords(keywords []string) ([]string, error) {
	if len(keywords) > MaxBatchSize {
		return nil, fmt.Errorf("keywords count exceeds maximum limit of %d", MaxBatchSize)
	}
	filtered := []string{}
	for _, kw := range keywords {
		if len(kw) > MaxKeywordLen {
			return nil, fmt.Errorf("keyword exceeds maximum length of %d characters", MaxKeywordLen)
		}
		if kw != "" {
			filtered = append(filtered, kw)
		}
	}
	return filtered, nil
}
