// Package checklist implements checklist template storage, completeness
// evaluation, and best-template recommendation.
package checklist

import (
	"fmt"

	"github.com/berkasflow/berkasflow/internal/model"
)

// Store is a fixed-order collection of checklist templates. Order matters:
// the recommender breaks score ties by declaration order, so templates are
// held in a slice, never an unordered map.
type Store struct {
	byName    map[string]int
	templates []model.ChecklistTemplate
}

// NewStore validates the templates and builds a store. Any template whose
// total_required disagrees with its label list, and any duplicate name,
// is a fatal configuration error.
func NewStore(templates []model.ChecklistTemplate) (*Store, error) {
	s := &Store{
		templates: make([]model.ChecklistTemplate, 0, len(templates)),
		byName:    make(map[string]int, len(templates)),
	}

	for _, tmpl := range templates {
		if err := tmpl.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrInvalidTemplate, err)
		}
		if _, exists := s.byName[tmpl.Name]; exists {
			return nil, fmt.Errorf("%w: duplicate checklist template %q", model.ErrInvalidTemplate, tmpl.Name)
		}
		s.byName[tmpl.Name] = len(s.templates)
		s.templates = append(s.templates, tmpl)
	}

	return s, nil
}

// Get returns the template with the given name.
func (s *Store) Get(name string) (model.ChecklistTemplate, bool) {
	idx, ok := s.byName[name]
	if !ok {
		return model.ChecklistTemplate{}, false
	}
	return s.templates[idx], true
}

// All returns every template in declaration order.
func (s *Store) All() []model.ChecklistTemplate {
	out := make([]model.ChecklistTemplate, len(s.templates))
	copy(out, s.templates)
	return out
}

// Names returns every template name in declaration order.
func (s *Store) Names() []string {
	names := make([]string, len(s.templates))
	for i, tmpl := range s.templates {
		names[i] = tmpl.Name
	}
	return names
}

// Len returns the number of registered templates.
func (s *Store) Len() int {
	return len(s.templates)
}
