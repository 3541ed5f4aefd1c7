package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"

	"github.com/berkasflow/berkasflow/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage persists evaluation and classification results in a
// local SQLite database.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// SaveEvaluation stores an evaluation result and returns its generated ID.
func (s *SQLiteStorage) SaveEvaluation(ctx context.Context, company string, result *model.EvaluationResult) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateString(company, "company"); err != nil {
		return "", err
	}
	if result == nil {
		return "", fmt.Errorf("%w: result", ErrNilParameter)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal evaluation: %w", err)
	}
	missing, err := json.Marshal(result.Missing)
	if err != nil {
		return "", fmt.Errorf("failed to marshal missing documents: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO evaluations (id, company, template, status, completion, avg_confidence, missing, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, company, result.Template, string(result.Status),
		result.CompletionPercentage, result.AverageConfidence,
		string(missing), string(payload),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save evaluation: %w", err)
	}

	return id, nil
}

// SaveClassifications stores a batch of classified documents under a
// single batch ID, which is returned.
func (s *SQLiteStorage) SaveClassifications(ctx context.Context, company string, docs []model.ClassifiedDocument) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateString(company, "company"); err != nil {
		return "", err
	}
	if len(docs) == 0 {
		return "", fmt.Errorf("%w: docs", ErrNilParameter)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO classifications (batch_id, company, file_path, filename, category, method, confidence, classified_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	batchID := uuid.NewString()
	for i := range docs {
		doc := &docs[i]
		if _, err := stmt.ExecContext(ctx,
			batchID, company, doc.FilePath, doc.Filename,
			doc.Category, string(doc.Method), doc.Confidence, doc.ClassifiedAt,
		); err != nil {
			return "", fmt.Errorf("failed to save classification for %s: %w", doc.Filename, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit classifications: %w", err)
	}

	return batchID, nil
}

// GetEvaluation retrieves a stored evaluation by ID.
func (s *SQLiteStorage) GetEvaluation(ctx context.Context, id string) (*model.EvaluationResult, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM evaluations WHERE id = ?`, id,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("evaluation %s: not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluation: %w", err)
	}

	var result model.EvaluationResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal evaluation %s: %w", id, err)
	}
	return &result, nil
}

// EvaluationRecord is a stored evaluation row without its full payload.
type EvaluationRecord struct {
	ID                   string
	Company              string
	Template             string
	Status               string
	CompletionPercentage float64
	AverageConfidence    float64
}

// ListEvaluations returns stored evaluations for a company, newest first.
func (s *SQLiteStorage) ListEvaluations(ctx context.Context, company string) ([]EvaluationRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(company, "company"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, company, template, status, completion, avg_confidence
		FROM evaluations WHERE company = ? ORDER BY created_at DESC`, company)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []EvaluationRecord
	for rows.Next() {
		var rec EvaluationRecord
		if err := rows.Scan(&rec.ID, &rec.Company, &rec.Template, &rec.Status,
			&rec.CompletionPercentage, &rec.AverageConfidence); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// MissingCount pairs a required-document label with how often it was
// missing across stored evaluations.
type MissingCount struct {
	Label string
	Count int
}

// Statistics summarizes the stored evaluations.
type Statistics struct {
	StatusCounts      map[string]int
	MostCommonMissing []MissingCount
	TotalEvaluations  int
	AverageCompletion float64
	AverageConfidence float64
}

// GetStatistics aggregates status distribution, average completion and
// confidence, and the most frequently missing documents.
func (s *SQLiteStorage) GetStatistics(ctx context.Context) (*Statistics, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	stats := &Statistics{StatusCounts: make(map[string]int)}

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(AVG(completion), 0), COALESCE(AVG(avg_confidence), 0)
		FROM evaluations`,
	).Scan(&stats.TotalEvaluations, &stats.AverageCompletion, &stats.AverageConfidence)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluation totals: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM evaluations GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to query status distribution: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		stats.StatusCounts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	missing, err := s.missingCounts(ctx)
	if err != nil {
		return nil, err
	}
	stats.MostCommonMissing = missing

	return stats, nil
}

// missingCounts tallies missing-document labels across all evaluations.
// The missing column holds a JSON array, so the tally happens in Go.
func (s *SQLiteStorage) missingCounts(ctx context.Context) ([]MissingCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT missing FROM evaluations WHERE missing IS NOT NULL AND missing != ''`)
	if err != nil {
		return nil, fmt.Errorf("failed to query missing documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan missing documents: %w", err)
		}
		var labels []string
		if err := json.Unmarshal([]byte(raw), &labels); err != nil {
			continue
		}
		for _, label := range labels {
			counts[label]++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]MissingCount, 0, len(counts))
	for label, count := range counts {
		out = append(out, MissingCount{Label: label, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out, nil
}
