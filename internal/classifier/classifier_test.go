package classifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berkasflow/berkasflow/internal/model"
)

// stubExtractor returns canned text per path.
type stubExtractor struct {
	texts map[string]string
	err   error
}

func (s *stubExtractor) Extract(_ context.Context, path string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.texts[path], nil
}

func newTestClassifier(t *testing.T, extractor *stubExtractor) *Classifier {
	t.Helper()
	c, err := New(DefaultCategories(), extractor)
	require.NoError(t, err)
	return c
}

func TestClassifyByContent(t *testing.T) {
	c := newTestClassifier(t, &stubExtractor{})

	tests := []struct {
		name           string
		text           string
		wantCategory   string
		wantConfidence float64
	}{
		{
			name:           "empty text returns catch-all with zero confidence",
			text:           "",
			wantCategory:   model.CatchAllCategory,
			wantConfidence: 0,
		},
		{
			name:           "no rule hits returns catch-all with zero confidence",
			text:           "completely unrelated binary gibberish",
			wantCategory:   model.CatchAllCategory,
			wantConfidence: 0,
		},
		{
			// Keywords "akta pendirian" and "notaris" (1 each) plus the
			// akta.*pendirian pattern (2) give score 4.
			name:           "deed text scores keywords plus patterns",
			text:           "akta pendirian notaris perseroan terbatas",
			wantCategory:   "Akta dan SK Kemenkumham",
			wantConfidence: 0.8,
		},
		{
			name:           "score is capped at full confidence",
			text:           "laporan keuangan neraca laba rugi mutasi rekening audited",
			wantCategory:   "Laporan Keuangan",
			wantConfidence: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.ClassifyByContent(tt.text)
			assert.Equal(t, tt.wantCategory, result.Category)
			assert.InDelta(t, tt.wantConfidence, result.Confidence, 0.001)
			assert.Equal(t, model.MethodContent, result.Method)
		})
	}
}

func TestClassifyByContent_TieBreaksByDeclarationOrder(t *testing.T) {
	c := newTestClassifier(t, &stubExtractor{})

	// One keyword hit each for "NIB dan NPWP" and "KTP Pengurus"; the
	// earlier declared category must win.
	result := c.ClassifyByContent("npwp milik pemegang ktp")
	assert.Equal(t, "NIB dan NPWP", result.Category)
}

func TestClassifyByFilename(t *testing.T) {
	c := newTestClassifier(t, &stubExtractor{})

	tests := []struct {
		name           string
		filename       string
		wantCategory   string
		wantConfidence float64
	}{
		{
			name:           "deed filename",
			filename:       "Akta_Pendirian_PT_Maju.pdf",
			wantCategory:   "Akta dan SK Kemenkumham",
			wantConfidence: 0.7,
		},
		{
			name:           "tax id filename",
			filename:       "npwp_perusahaan.pdf",
			wantCategory:   "NIB dan NPWP",
			wantConfidence: 0.7,
		},
		{
			name:           "unknown filename falls back to catch-all",
			filename:       "scan0001.pdf",
			wantCategory:   model.CatchAllCategory,
			wantConfidence: 0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.ClassifyByFilename(tt.filename)
			assert.Equal(t, tt.wantCategory, result.Category)
			assert.InDelta(t, tt.wantConfidence, result.Confidence, 0.001)
			assert.Equal(t, model.MethodFilename, result.Method)
		})
	}
}

func TestClassifyDocument_ContentConfidenceSuppressesFilename(t *testing.T) {
	// The filename says KTP but the content is clearly a financial report
	// with confidence >= 0.5, so the filename classifier must not run.
	extractor := &stubExtractor{texts: map[string]string{
		"/in/ktp_direktur.pdf": "laporan keuangan neraca laba rugi tahun buku",
	}}
	c := newTestClassifier(t, extractor)

	doc := c.ClassifyDocument(context.Background(), "/in/ktp_direktur.pdf")

	assert.Equal(t, "Laporan Keuangan", doc.Category)
	assert.Equal(t, model.MethodContent, doc.Method)
	assert.Empty(t, doc.FallbackMethod)
	assert.GreaterOrEqual(t, doc.Confidence, 0.5)
}

func TestClassifyDocument_FilenameFallbackOnWeakContent(t *testing.T) {
	extractor := &stubExtractor{texts: map[string]string{
		"/in/npwp_perusahaan.pdf": "",
	}}
	c := newTestClassifier(t, extractor)

	doc := c.ClassifyDocument(context.Background(), "/in/npwp_perusahaan.pdf")

	assert.Equal(t, "NIB dan NPWP", doc.Category)
	assert.Equal(t, model.MethodFilename, doc.Method)
	assert.Equal(t, model.MethodFilename, doc.FallbackMethod)
	assert.InDelta(t, 0.7, doc.Confidence, 0.001)
	assert.Zero(t, doc.TextLength)
}

func TestClassifyDocument_FilenameMissCanStillOutrankWeakContent(t *testing.T) {
	// A single keyword hit yields content confidence 0.2, below the
	// filename classifier's 0.3 miss confidence. The higher one wins.
	extractor := &stubExtractor{texts: map[string]string{
		"/in/scan0001.pdf": "dokumen berisi kata neraca saja",
	}}
	c := newTestClassifier(t, extractor)

	doc := c.ClassifyDocument(context.Background(), "/in/scan0001.pdf")

	assert.Equal(t, model.CatchAllCategory, doc.Category)
	assert.InDelta(t, 0.3, doc.Confidence, 0.001)
	assert.Equal(t, model.MethodFilename, doc.Method)
}

func TestClassifyDocument_ExtractionErrorIsNonFatal(t *testing.T) {
	extractor := &stubExtractor{err: errors.New("ocr backend unreachable")}
	c := newTestClassifier(t, extractor)

	doc := c.ClassifyDocument(context.Background(), "/in/akta_pendirian.pdf")

	// Extraction failure degrades to the filename path, not to an error.
	assert.Equal(t, "Akta dan SK Kemenkumham", doc.Category)
	assert.Equal(t, model.MethodFilename, doc.Method)
}

func TestBatchClassify_PreservesInputOrder(t *testing.T) {
	extractor := &stubExtractor{texts: map[string]string{
		"/in/akta.pdf":    "akta pendirian notaris",
		"/in/npwp.pdf":    "npwp : 01.234.567.8-901.000 nomor pokok wajib pajak",
		"/in/lapkeu.pdf":  "laporan keuangan neraca laba rugi",
		"/in/mystery.bin": "",
	}}
	c := newTestClassifier(t, extractor)

	paths := []string{"/in/akta.pdf", "/in/npwp.pdf", "/in/lapkeu.pdf", "/in/mystery.bin"}

	for _, workers := range []int{1, 4} {
		results := c.BatchClassify(context.Background(), paths, BatchOptions{Workers: workers})
		require.Len(t, results, len(paths))

		assert.Equal(t, "/in/akta.pdf", results[0].FilePath)
		assert.Equal(t, "Akta dan SK Kemenkumham", results[0].Category)
		assert.Equal(t, "/in/npwp.pdf", results[1].FilePath)
		assert.Equal(t, "NIB dan NPWP", results[1].Category)
		assert.Equal(t, "/in/lapkeu.pdf", results[2].FilePath)
		assert.Equal(t, "Laporan Keuangan", results[2].Category)
		assert.Equal(t, "/in/mystery.bin", results[3].FilePath)
		assert.Equal(t, model.CatchAllCategory, results[3].Category)
	}
}

func TestBatchClassify_ReportsProgress(t *testing.T) {
	extractor := &stubExtractor{texts: map[string]string{}}
	c := newTestClassifier(t, extractor)

	var calls int
	c.BatchClassify(context.Background(), []string{"/a.pdf", "/b.pdf", "/c.pdf"}, BatchOptions{
		Workers: 2,
		OnProgress: func(done, total int) {
			calls++
			assert.Equal(t, 3, total)
		},
	})

	assert.Equal(t, 3, calls)
}

func TestSummarize(t *testing.T) {
	c := newTestClassifier(t, &stubExtractor{})

	results := []model.ClassifiedDocument{
		{Category: "Akta dan SK Kemenkumham", Confidence: 0.8, Method: model.MethodContent},
		{Category: "Akta dan SK Kemenkumham", Confidence: 0.6, Method: model.MethodContent},
		{Category: model.CatchAllCategory, Confidence: 0.3, Method: model.MethodFilename},
	}

	summary := c.Summarize(results)

	assert.Equal(t, 3, summary.TotalDocuments)
	assert.Equal(t, 2, summary.Categories["Akta dan SK Kemenkumham"])
	assert.Equal(t, 1, summary.Categories[model.CatchAllCategory])
	assert.InDelta(t, (0.8+0.6+0.3)/3, summary.AverageConfidence, 0.001)
	assert.Equal(t, []string{"content_analysis", "filename_analysis"}, summary.Methods)
}

func TestSummarize_Empty(t *testing.T) {
	c := newTestClassifier(t, &stubExtractor{})
	summary := c.Summarize(nil)
	assert.Zero(t, summary.TotalDocuments)
	assert.Zero(t, summary.AverageConfidence)
}

func TestNewWithConfig_RejectsInvalidRules(t *testing.T) {
	categories := []model.Category{
		{Name: "Broken", Patterns: []string{`([unclosed`}},
		{Name: model.CatchAllCategory},
	}

	_, err := New(categories, &stubExtractor{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid content pattern")
}

func TestNewWithConfig_RequiresCatchAll(t *testing.T) {
	categories := []model.Category{
		{Name: "Only One", Keywords: []string{"x"}},
	}

	_, err := New(categories, &stubExtractor{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catch-all")
}
