package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berkasflow/berkasflow/internal/model"
)

func TestNewStore_ValidatesTotalRequired(t *testing.T) {
	templates := []model.ChecklistTemplate{
		{
			Name:              "Broken",
			RequiredDocuments: []string{"Akta", "NPWP"},
			TotalRequired:     3,
		},
	}

	_, err := NewStore(templates)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidTemplate)
	assert.Contains(t, err.Error(), "total_required")
}

func TestNewStore_RejectsDuplicateNames(t *testing.T) {
	templates := []model.ChecklistTemplate{
		{Name: "A", RequiredDocuments: []string{"X"}, TotalRequired: 1},
		{Name: "A", RequiredDocuments: []string{"Y"}, TotalRequired: 1},
	}

	_, err := NewStore(templates)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestStore_PreservesDeclarationOrder(t *testing.T) {
	store, err := NewStore(DefaultTemplates())
	require.NoError(t, err)

	assert.Equal(t, []string{"BG PIHK PT", "BG PPIU PT", "Laporan Keuangan"}, store.Names())
	assert.Equal(t, 3, store.Len())

	tmpl, ok := store.Get("BG PPIU PT")
	require.True(t, ok)
	assert.Equal(t, 9, tmpl.TotalRequired)

	_, ok = store.Get("Nonexistent")
	assert.False(t, ok)
}

func TestDefaultTemplates_AreInternallyConsistent(t *testing.T) {
	for _, tmpl := range DefaultTemplates() {
		assert.NoError(t, tmpl.Validate(), tmpl.Name)
	}
}
