package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTemplate indicates a checklist template that fails load-time
// validation. Configuration errors are fatal at startup.
var ErrInvalidTemplate = errors.New("invalid checklist template")

// ChecklistTemplate is a named, ordered list of required-document labels
// defining one filing type's checklist. Templates are configuration, loaded
// once and immutable.
type ChecklistTemplate struct {
	Name              string   `json:"name" yaml:"name"`
	Description       string   `json:"description" yaml:"description"`
	RequiredDocuments []string `json:"required_documents" yaml:"required_documents"`
	TotalRequired     int      `json:"total_required" yaml:"total_required"`
}

// Validate checks the template's internal consistency. A TotalRequired that
// disagrees with the label list is a fatal configuration error.
func (t ChecklistTemplate) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("checklist template missing name")
	}
	if t.TotalRequired != len(t.RequiredDocuments) {
		return fmt.Errorf("checklist template %q: total_required is %d but %d required documents are listed",
			t.Name, t.TotalRequired, len(t.RequiredDocuments))
	}
	return nil
}

// RequirementMatch records the outcome of matching one required label
// against the available documents.
type RequirementMatch struct {
	Required        string               `json:"required"`
	MatchedCategory string               `json:"matched_category,omitempty"`
	Files           []ClassifiedDocument `json:"files,omitempty"`
	Confidence      float64              `json:"confidence"`
	Found           bool                 `json:"found"`
}

// EvaluationStatus is the coarse completeness bucket for an evaluation.
type EvaluationStatus string

// Evaluation status constants, ordered from best to worst.
const (
	StatusComplete       EvaluationStatus = "complete"
	StatusNearlyComplete EvaluationStatus = "nearly_complete"
	StatusPartial        EvaluationStatus = "partial"
	StatusIncomplete     EvaluationStatus = "incomplete"
)

// EvaluationResult is the outcome of matching a document set against one
// checklist template.
type EvaluationResult struct {
	EvaluatedAt          time.Time          `json:"evaluation_timestamp"`
	Template             string             `json:"checklist_type"`
	Description          string             `json:"checklist_description"`
	Status               EvaluationStatus   `json:"status"`
	Found                []RequirementMatch `json:"found_documents"`
	Missing              []string           `json:"missing_documents"`
	TotalRequired        int                `json:"total_required"`
	TotalFound           int                `json:"total_found"`
	CompletionPercentage float64            `json:"completion_percentage"`
	AverageConfidence    float64            `json:"average_confidence"`
	AvailableCategories  int                `json:"available_categories_count"`
	AvailableDocuments   int                `json:"available_documents_count"`
}

// Complete reports whether every required label was matched.
func (r EvaluationResult) Complete() bool {
	return len(r.Missing) == 0
}
