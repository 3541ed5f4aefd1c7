package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/berkasflow/berkasflow/internal/model"
)

// JSONStorage writes each result as a standalone JSON file. It suits
// workflows that hand results to other tools rather than querying them.
type JSONStorage struct {
	dir string
}

// NewJSONStorage creates a JSON file sink rooted at dir.
func NewJSONStorage(dir string) (*JSONStorage, error) {
	if err := validateString(dir, "dir"); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create results directory: %w", err)
	}
	return &JSONStorage{dir: dir}, nil
}

// SaveEvaluation writes the evaluation to a timestamped JSON file and
// returns its path.
func (j *JSONStorage) SaveEvaluation(ctx context.Context, company string, result *model.EvaluationResult) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateString(company, "company"); err != nil {
		return "", err
	}
	if result == nil {
		return "", fmt.Errorf("%w: result", ErrNilParameter)
	}

	envelope := map[string]any{
		"id":       uuid.NewString(),
		"company":  company,
		"saved_at": time.Now().Format(time.RFC3339),
		"result":   result,
	}
	return j.write(fmt.Sprintf("evaluation_%s", timestampSlug()), envelope)
}

// SaveClassifications writes the classified documents to a timestamped
// JSON file and returns its path.
func (j *JSONStorage) SaveClassifications(ctx context.Context, company string, docs []model.ClassifiedDocument) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateString(company, "company"); err != nil {
		return "", err
	}
	if len(docs) == 0 {
		return "", fmt.Errorf("%w: docs", ErrNilParameter)
	}

	envelope := map[string]any{
		"id":        uuid.NewString(),
		"company":   company,
		"saved_at":  time.Now().Format(time.RFC3339),
		"documents": docs,
	}
	return j.write(fmt.Sprintf("classification_%s", timestampSlug()), envelope)
}

func (j *JSONStorage) write(prefix string, payload any) (string, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}

	// Short random suffix avoids collisions within the same second.
	path := filepath.Join(j.dir, fmt.Sprintf("%s_%s.json", prefix, uuid.NewString()[:8]))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write result file: %w", err)
	}
	return path, nil
}

func timestampSlug() string {
	return time.Now().Format("20060102_150405")
}
