package model

import "time"

// ClassificationMethod indicates how a document was categorized.
type ClassificationMethod string

// Classification method constants.
const (
	MethodContent  ClassificationMethod = "content_analysis"
	MethodFilename ClassificationMethod = "filename_analysis"
	MethodError    ClassificationMethod = "error"
)

// ClassifiedDocument represents one input document after classification.
// It is created once per document and immutable thereafter.
type ClassifiedDocument struct {
	ClassifiedAt   time.Time            `json:"classification_timestamp"`
	FilePath       string               `json:"file_path"`
	Filename       string               `json:"filename"`
	Category       string               `json:"category"`
	Reason         string               `json:"reason"`
	Method         ClassificationMethod `json:"method"`
	FallbackMethod ClassificationMethod `json:"fallback_method,omitempty"`
	Confidence     float64              `json:"confidence"`
	FileSize       int64                `json:"file_size"`
	TextLength     int                  `json:"text_length"`
}

// ClassificationSummary aggregates statistics over a batch of classifications.
type ClassificationSummary struct {
	Categories        map[string]int `json:"categories"`
	Methods           []string       `json:"classification_methods"`
	TotalDocuments    int            `json:"total_documents"`
	AverageConfidence float64        `json:"average_confidence"`
}
