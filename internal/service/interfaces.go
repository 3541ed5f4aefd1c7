// Package service defines the contracts between the engine and its
// I/O-bound collaborators. The engine consumes these interfaces; concrete
// implementations live in extract, storage, upload, and notify.
package service

import (
	"context"
	"io"
	"time"

	"github.com/berkasflow/berkasflow/internal/model"
)

// TextExtractor obtains raw text from a document file. Implementations are
// expected to be slow (OCR, PDF parsing) and must honor context
// cancellation. Callers that must not stall on a single file can wrap an
// implementation with extract.Bounded.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// ResultSink persists evaluation results and classification batches.
// Save returns a location string (file path, database key, object URL)
// describing where the record landed.
type ResultSink interface {
	SaveEvaluation(ctx context.Context, company string, result *model.EvaluationResult) (string, error)
	SaveClassifications(ctx context.Context, company string, docs []model.ClassifiedDocument) (string, error)
}

// Uploader archives an original document in remote or local storage,
// organized by company and category.
type Uploader interface {
	Upload(ctx context.Context, company, category, filename string, data io.Reader) (string, error)
}

// Notifier delivers a human-readable message to compliance staff.
type Notifier interface {
	Send(ctx context.Context, recipient, message string) error
}

// RetryOptions configures retry behavior for collaborator operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
