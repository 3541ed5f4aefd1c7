// Package model defines the core domain models used throughout the application.
package model

// CatchAllCategory is the reserved category for documents that match no rules.
const CatchAllCategory = "Dokumen Lainnya"

// Category represents a semantic document type with its matching rules.
// Keywords are matched by literal containment (weight 1), patterns by
// regular expression (weight 2). The reserved catch-all category has an
// empty rule set.
type Category struct {
	Name             string   `json:"name" yaml:"name"`
	Keywords         []string `json:"keywords" yaml:"keywords"`
	Patterns         []string `json:"patterns" yaml:"patterns"`
	FilenamePatterns []string `json:"filename_patterns" yaml:"filename_patterns"`
}

// IsCatchAll reports whether this is the reserved fallback category.
func (c Category) IsCatchAll() bool {
	return c.Name == CatchAllCategory
}
