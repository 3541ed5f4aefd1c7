// Package classifier assigns semantic categories to documents from
// extracted text and filenames.
package classifier

import (
	"fmt"
	"regexp"

	"github.com/berkasflow/berkasflow/internal/model"
)

// Rule weights. Pattern hits carry more signal than bare keyword
// containment.
const (
	keywordWeight = 1
	patternWeight = 2
)

// compiledCategory holds a category with its regex rules pre-compiled.
// Categories are iterated in declaration order everywhere so that argmax
// tie-breaking stays deterministic.
type compiledCategory struct {
	category         model.Category
	patterns         []*regexp.Regexp
	filenamePatterns []*regexp.Regexp
}

// compileCategories validates and compiles the rule set. An invalid regex
// anywhere is a fatal configuration error.
func compileCategories(categories []model.Category) ([]compiledCategory, error) {
	compiled := make([]compiledCategory, 0, len(categories))

	sawCatchAll := false
	for _, cat := range categories {
		if cat.IsCatchAll() {
			sawCatchAll = true
			if len(cat.Keywords) > 0 || len(cat.Patterns) > 0 {
				return nil, fmt.Errorf("catch-all category %q must have an empty rule set", cat.Name)
			}
		}

		cc := compiledCategory{
			category:         cat,
			patterns:         make([]*regexp.Regexp, 0, len(cat.Patterns)),
			filenamePatterns: make([]*regexp.Regexp, 0, len(cat.FilenamePatterns)),
		}

		for _, p := range cat.Patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("category %q: invalid content pattern %q: %w", cat.Name, p, err)
			}
			cc.patterns = append(cc.patterns, re)
		}

		for _, p := range cat.FilenamePatterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("category %q: invalid filename pattern %q: %w", cat.Name, p, err)
			}
			cc.filenamePatterns = append(cc.filenamePatterns, re)
		}

		compiled = append(compiled, cc)
	}

	if !sawCatchAll {
		return nil, fmt.Errorf("category configuration must include the catch-all category %q", model.CatchAllCategory)
	}

	return compiled, nil
}
