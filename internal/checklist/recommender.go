package checklist

import (
	"fmt"
	"log/slog"

	"github.com/berkasflow/berkasflow/internal/model"
)

// Recommendation score weights: completeness dominates, match quality
// nudges.
const (
	completionWeight = 0.7
	confidenceWeight = 0.3
)

// Recommender ranks every registered template against a document set.
type Recommender struct {
	store     *Store
	evaluator *Evaluator
}

// NewRecommender creates a recommender over the given store and evaluator.
func NewRecommender(store *Store, evaluator *Evaluator) *Recommender {
	return &Recommender{store: store, evaluator: evaluator}
}

// Recommend evaluates the document set against every template in
// declaration order and picks the strictly best-scoring one; ties keep the
// earlier template. An empty store yields a result with no recommendation
// rather than an error.
func (r *Recommender) Recommend(docs []model.ClassifiedDocument) *model.RecommendationResult {
	result := &model.RecommendationResult{
		Scores: make(map[string]float64, r.store.Len()),
	}

	var best *model.EvaluationResult
	for _, tmpl := range r.store.All() {
		evaluation, err := r.evaluator.Evaluate(tmpl.Name, docs)
		if err != nil {
			// Names come from the store itself, so this should not happen.
			slog.Warn("Skipping template during recommendation", "template", tmpl.Name, "error", err)
			continue
		}

		score := evaluation.CompletionPercentage*completionWeight +
			evaluation.AverageConfidence*100*confidenceWeight
		result.Scores[tmpl.Name] = round1(score)

		if best == nil || score > result.Score {
			result.Score = score
			result.RecommendedTemplate = tmpl.Name
			best = evaluation
		}
	}

	if best == nil {
		result.Reason = "No suitable checklist template found"
		return result
	}

	result.Score = round1(result.Score)
	result.ConfidenceLevel = confidenceLevelFor(result.Score)
	result.Reason = fmt.Sprintf("Best match with %.1f%% confidence", result.Score)
	result.Evaluation = best

	return result
}

func confidenceLevelFor(score float64) model.ConfidenceLevel {
	switch {
	case score >= 80:
		return model.ConfidenceHigh
	case score >= 60:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}
