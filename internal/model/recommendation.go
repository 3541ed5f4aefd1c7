package model

// ConfidenceLevel buckets a recommendation score.
type ConfidenceLevel string

// Confidence level constants.
const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// RecommendationResult is the outcome of ranking every known checklist
// template against a document set. RecommendedTemplate is empty when no
// template could be scored.
type RecommendationResult struct {
	RecommendedTemplate string             `json:"recommended_checklist,omitempty"`
	ConfidenceLevel     ConfidenceLevel    `json:"confidence_level,omitempty"`
	Reason              string             `json:"reason"`
	Scores              map[string]float64 `json:"all_results"`
	Evaluation          *EvaluationResult  `json:"evaluation,omitempty"`
	Score               float64            `json:"score"`
}
