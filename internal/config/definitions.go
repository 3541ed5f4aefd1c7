package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/berkasflow/berkasflow/internal/checklist"
	"github.com/berkasflow/berkasflow/internal/classifier"
	"github.com/berkasflow/berkasflow/internal/common"
	"github.com/berkasflow/berkasflow/internal/model"
)

// Definitions bundles the document categories and checklist templates.
// Either section may be omitted from the file; the built-in defaults
// fill the gap.
type Definitions struct {
	Categories []model.Category          `yaml:"categories"`
	Templates  []model.ChecklistTemplate `yaml:"templates"`
}

// Defaults returns the built-in categories and templates.
func Defaults() *Definitions {
	return &Definitions{
		Categories: classifier.DefaultCategories(),
		Templates:  checklist.DefaultTemplates(),
	}
}

// LoadDefinitions reads categories and templates from a YAML file. An
// empty path yields the built-in defaults. Validation errors are fatal;
// a bad definitions file must not silently degrade classification.
func LoadDefinitions(path string) (*Definitions, error) {
	if path == "" {
		return Defaults(), nil
	}

	data, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("%w: reading definitions file: %v", common.ErrInvalidConfig, err)
	}

	var defs Definitions
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("%w: parsing definitions file: %v", common.ErrInvalidConfig, err)
	}

	if len(defs.Categories) == 0 {
		defs.Categories = classifier.DefaultCategories()
	}
	if len(defs.Templates) == 0 {
		defs.Templates = checklist.DefaultTemplates()
	}

	if err := defs.Validate(); err != nil {
		return nil, err
	}
	return &defs, nil
}

// Validate checks both sections. Template consistency is also enforced
// at store construction; failing here gives a file-level error first.
func (d *Definitions) Validate() error {
	seen := make(map[string]bool, len(d.Categories))
	for _, cat := range d.Categories {
		if cat.Name == "" {
			return fmt.Errorf("%w: category with empty name", common.ErrInvalidConfig)
		}
		if seen[cat.Name] {
			return fmt.Errorf("%w: duplicate category %q", common.ErrInvalidConfig, cat.Name)
		}
		seen[cat.Name] = true
	}

	for _, tmpl := range d.Templates {
		if err := tmpl.Validate(); err != nil {
			return fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
		}
	}
	return nil
}
