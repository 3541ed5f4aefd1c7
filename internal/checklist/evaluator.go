package checklist

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/berkasflow/berkasflow/internal/fuzzy"
	"github.com/berkasflow/berkasflow/internal/model"
)

// maxFilesPerRequirement caps how many matching documents are attached to
// a single requirement.
const maxFilesPerRequirement = 3

// UnknownTemplateError reports an evaluation request for an unregistered
// template name. It carries the valid names so callers can surface them.
type UnknownTemplateError struct {
	Name      string
	Available []string
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("checklist template %q not found (available: %s)",
		e.Name, strings.Join(e.Available, ", "))
}

// Evaluator matches classified documents against checklist templates.
// It is a pure function over its inputs; repeated calls with the same
// arguments produce the same result.
type Evaluator struct {
	store   *Store
	matcher *fuzzy.Matcher
}

// NewEvaluator creates an evaluator over the given template store.
func NewEvaluator(store *Store, matcher *fuzzy.Matcher) *Evaluator {
	return &Evaluator{store: store, matcher: matcher}
}

// Evaluate matches a document set against one template. An unregistered
// template name yields an *UnknownTemplateError; everything else always
// produces a result.
func (e *Evaluator) Evaluate(templateName string, docs []model.ClassifiedDocument) (*model.EvaluationResult, error) {
	tmpl, ok := e.store.Get(templateName)
	if !ok {
		return nil, &UnknownTemplateError{Name: templateName, Available: e.store.Names()}
	}

	// Candidate categories keep document order (duplicates included) so
	// that fuzzy tie-breaking is deterministic over input order.
	available := make([]string, len(docs))
	for i, doc := range docs {
		available[i] = doc.Category
	}

	result := &model.EvaluationResult{
		EvaluatedAt:         time.Now(),
		Template:            tmpl.Name,
		Description:         tmpl.Description,
		TotalRequired:       tmpl.TotalRequired,
		Found:               make([]model.RequirementMatch, 0, len(tmpl.RequiredDocuments)),
		Missing:             make([]string, 0),
		AvailableCategories: countUnique(available),
		AvailableDocuments:  len(docs),
	}

	var totalConfidence float64
	for _, required := range tmpl.RequiredDocuments {
		isMatch, confidence, matchedCategory := e.matcher.Match(available, required)
		if !isMatch {
			result.Missing = append(result.Missing, required)
			continue
		}

		result.Found = append(result.Found, model.RequirementMatch{
			Required:        required,
			Found:           true,
			Confidence:      confidence,
			MatchedCategory: matchedCategory,
			Files:           collectFiles(docs, matchedCategory, required),
		})
		totalConfidence += confidence
		result.TotalFound++
	}

	if tmpl.TotalRequired > 0 {
		result.CompletionPercentage = round1(float64(result.TotalFound) / float64(tmpl.TotalRequired) * 100)
	}
	if result.TotalFound > 0 {
		result.AverageConfidence = round2(totalConfidence / float64(result.TotalFound))
	}
	result.Status = statusFor(result.CompletionPercentage)

	slog.Debug("Evaluated checklist",
		"template", tmpl.Name,
		"found", result.TotalFound,
		"missing", len(result.Missing),
		"completion", result.CompletionPercentage)

	return result, nil
}

// collectFiles picks up to maxFilesPerRequirement documents supporting one
// requirement, in original input order: either the document's category
// equals the fuzzy-matched category, or its filename contains the required
// label as a case-insensitive substring.
func collectFiles(docs []model.ClassifiedDocument, matchedCategory, required string) []model.ClassifiedDocument {
	requiredLower := strings.ToLower(required)

	var files []model.ClassifiedDocument
	for _, doc := range docs {
		if doc.Category == matchedCategory || strings.Contains(strings.ToLower(doc.Filename), requiredLower) {
			files = append(files, doc)
			if len(files) == maxFilesPerRequirement {
				break
			}
		}
	}
	return files
}

// statusFor buckets a completion percentage; the first matching rung wins.
func statusFor(completion float64) model.EvaluationStatus {
	switch {
	case completion == 100:
		return model.StatusComplete
	case completion >= 80:
		return model.StatusNearlyComplete
	case completion >= 50:
		return model.StatusPartial
	default:
		return model.StatusIncomplete
	}
}

func countUnique(values []string) int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}

// Rounding happens only at this boundary; raw similarity scores stay
// unrounded inside the matcher so the completion invariants hold exactly.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
