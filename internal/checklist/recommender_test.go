package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berkasflow/berkasflow/internal/fuzzy"
	"github.com/berkasflow/berkasflow/internal/model"
)

func newTestRecommender(t *testing.T, templates []model.ChecklistTemplate) *Recommender {
	t.Helper()
	store, err := NewStore(templates)
	require.NoError(t, err)
	evaluator := NewEvaluator(store, fuzzy.NewMatcher())
	return NewRecommender(store, evaluator)
}

func TestRecommend_PicksHighestScore(t *testing.T) {
	templates := []model.ChecklistTemplate{
		{Name: "Wide", RequiredDocuments: []string{"Akta", "NPWP"}, TotalRequired: 2},
		{Name: "Narrow", RequiredDocuments: []string{"Akta"}, TotalRequired: 1},
	}
	r := newTestRecommender(t, templates)

	result := r.Recommend([]model.ClassifiedDocument{doc("Akta", "akta.pdf")})

	// Narrow is fully satisfied (score 100), Wide only half (score 65).
	assert.Equal(t, "Narrow", result.RecommendedTemplate)
	assert.Equal(t, model.ConfidenceHigh, result.ConfidenceLevel)
	assert.InDelta(t, 100.0, result.Score, 0.001)
	assert.Greater(t, result.Scores["Narrow"], result.Scores["Wide"])
	require.NotNil(t, result.Evaluation)
	assert.Equal(t, "Narrow", result.Evaluation.Template)
}

func TestRecommend_TieKeepsDeclarationOrder(t *testing.T) {
	templates := []model.ChecklistTemplate{
		{Name: "First", RequiredDocuments: []string{"Akta"}, TotalRequired: 1},
		{Name: "Second", RequiredDocuments: []string{"Akta"}, TotalRequired: 1},
	}
	r := newTestRecommender(t, templates)

	result := r.Recommend([]model.ClassifiedDocument{doc("Akta", "akta.pdf")})

	assert.Equal(t, "First", result.RecommendedTemplate)
	assert.Equal(t, result.Scores["First"], result.Scores["Second"])
}

func TestRecommend_ConfidenceLevels(t *testing.T) {
	// Three requirements matched out of four: completion 75, average
	// confidence 1.0, score 75*0.7 + 100*0.3 = 82.5 -> high. One out of
	// four: 25*0.7 + 30 = 47.5 -> low.
	templates := []model.ChecklistTemplate{
		{
			Name:              "Four",
			RequiredDocuments: []string{"Alpha One", "Bravo Two", "Charlie Three", "Delta Four"},
			TotalRequired:     4,
		},
	}
	r := newTestRecommender(t, templates)

	high := r.Recommend([]model.ClassifiedDocument{
		doc("Alpha One", "a.pdf"), doc("Bravo Two", "b.pdf"), doc("Charlie Three", "c.pdf"),
	})
	assert.Equal(t, model.ConfidenceHigh, high.ConfidenceLevel)
	assert.InDelta(t, 82.5, high.Score, 0.001)

	low := r.Recommend([]model.ClassifiedDocument{doc("Alpha One", "a.pdf")})
	assert.Equal(t, model.ConfidenceLow, low.ConfidenceLevel)
	assert.InDelta(t, 47.5, low.Score, 0.001)
}

func TestRecommend_EmptyStore(t *testing.T) {
	r := newTestRecommender(t, nil)

	result := r.Recommend([]model.ClassifiedDocument{doc("Akta", "akta.pdf")})

	assert.Empty(t, result.RecommendedTemplate)
	assert.Empty(t, result.ConfidenceLevel)
	assert.NotEmpty(t, result.Reason)
	assert.Empty(t, result.Scores)
	assert.Nil(t, result.Evaluation)
}

func TestRecommend_ScoresEveryTemplate(t *testing.T) {
	r := newTestRecommender(t, DefaultTemplates())

	result := r.Recommend([]model.ClassifiedDocument{
		doc("NPWP Perusahaan", "npwp.pdf"),
		doc("KTP Pengurus", "ktp.jpg"),
	})

	assert.Len(t, result.Scores, 3)
	for name, score := range result.Scores {
		assert.GreaterOrEqual(t, score, 0.0, name)
		assert.LessOrEqual(t, score, 100.0, name)
	}
	assert.NotEmpty(t, result.RecommendedTemplate)
}
