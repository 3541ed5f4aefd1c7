package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berkasflow/berkasflow/internal/model"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "berkas.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func sampleEvaluation(template string, completion float64, missing []string) *model.EvaluationResult {
	return &model.EvaluationResult{
		EvaluatedAt:          time.Now(),
		Template:             template,
		Status:               model.StatusPartial,
		Missing:              missing,
		TotalRequired:        4,
		TotalFound:           2,
		CompletionPercentage: completion,
		AverageConfidence:    0.75,
	}
}

func TestSQLiteStorage_SaveAndGetEvaluation(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	result := sampleEvaluation("BG PIHK PT", 50.0, []string{"NPWP Perusahaan", "KTP Pengurus"})

	id, err := store.SaveEvaluation(ctx, "PT Contoh", result)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	loaded, err := store.GetEvaluation(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "BG PIHK PT", loaded.Template)
	assert.InDelta(t, 50.0, loaded.CompletionPercentage, 0.001)
	assert.Equal(t, []string{"NPWP Perusahaan", "KTP Pengurus"}, loaded.Missing)
}

func TestSQLiteStorage_GetEvaluationNotFound(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.GetEvaluation(context.Background(), "nonexistent")
	assert.ErrorContains(t, err, "not found")
}

func TestSQLiteStorage_SaveEvaluationValidation(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.SaveEvaluation(ctx, "", sampleEvaluation("X", 0, nil))
	assert.ErrorIs(t, err, ErrEmptyString)

	_, err = store.SaveEvaluation(ctx, "PT Contoh", nil)
	assert.ErrorIs(t, err, ErrNilParameter)
}

func TestSQLiteStorage_ListEvaluations(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.SaveEvaluation(ctx, "PT Contoh", sampleEvaluation("BG PIHK PT", 50, nil))
	require.NoError(t, err)
	_, err = store.SaveEvaluation(ctx, "PT Contoh", sampleEvaluation("BG PPIU PT", 80, nil))
	require.NoError(t, err)
	_, err = store.SaveEvaluation(ctx, "PT Lain", sampleEvaluation("BG PIHK PT", 20, nil))
	require.NoError(t, err)

	records, err := store.ListEvaluations(ctx, "PT Contoh")
	require.NoError(t, err)
	assert.Len(t, records, 2)
	for _, rec := range records {
		assert.Equal(t, "PT Contoh", rec.Company)
	}
}

func TestSQLiteStorage_SaveClassifications(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	docs := []model.ClassifiedDocument{
		{
			ClassifiedAt: time.Now(),
			FilePath:     "/tmp/akta.pdf",
			Filename:     "akta.pdf",
			Category:     "Akta dan SK Kemenkumham",
			Method:       model.MethodContent,
			Confidence:   0.9,
		},
		{
			ClassifiedAt: time.Now(),
			FilePath:     "/tmp/npwp.pdf",
			Filename:     "npwp.pdf",
			Category:     "NIB dan NPWP",
			Method:       model.MethodFilename,
			Confidence:   0.7,
		},
	}

	batchID, err := store.SaveClassifications(ctx, "PT Contoh", docs)
	require.NoError(t, err)
	assert.NotEmpty(t, batchID)

	_, err = store.SaveClassifications(ctx, "PT Contoh", nil)
	assert.ErrorIs(t, err, ErrNilParameter)
}

func TestSQLiteStorage_GetStatistics(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	first := sampleEvaluation("BG PIHK PT", 40, []string{"NPWP Perusahaan", "KTP Pengurus"})
	second := sampleEvaluation("BG PPIU PT", 60, []string{"NPWP Perusahaan"})
	second.Status = model.StatusIncomplete

	_, err := store.SaveEvaluation(ctx, "PT Contoh", first)
	require.NoError(t, err)
	_, err = store.SaveEvaluation(ctx, "PT Lain", second)
	require.NoError(t, err)

	stats, err := store.GetStatistics(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalEvaluations)
	assert.InDelta(t, 50.0, stats.AverageCompletion, 0.001)
	assert.Equal(t, 1, stats.StatusCounts[string(model.StatusPartial)])
	assert.Equal(t, 1, stats.StatusCounts[string(model.StatusIncomplete)])

	require.NotEmpty(t, stats.MostCommonMissing)
	assert.Equal(t, "NPWP Perusahaan", stats.MostCommonMissing[0].Label)
	assert.Equal(t, 2, stats.MostCommonMissing[0].Count)
}

func TestSQLiteStorage_MigrateIdempotent(t *testing.T) {
	store := newTestStorage(t)
	require.NoError(t, store.Migrate(context.Background()))
}
