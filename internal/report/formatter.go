package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/berkasflow/berkasflow/internal/model"
)

// DefaultCriticalDocuments is the fixed set of labels whose absence is
// always flagged first in the recommendations.
func DefaultCriticalDocuments() []string {
	return []string{
		"Akta dan SK Kemenkumham",
		"NPWP Perusahaan",
		"NIB Perusahaan",
		"KTP Pengurus",
	}
}

// Formatter turns engine results into human-readable text. It holds no
// state beyond its configuration and performs no I/O.
type Formatter struct {
	criticalDocuments []string
}

// NewFormatter creates a formatter with the default critical-document set.
func NewFormatter() *Formatter {
	return &Formatter{criticalDocuments: DefaultCriticalDocuments()}
}

// NewFormatterWithCritical creates a formatter with a custom critical set.
func NewFormatterWithCritical(critical []string) *Formatter {
	return &Formatter{criticalDocuments: critical}
}

// StatusMessage returns the user-facing message for a completeness bucket.
func (f *Formatter) StatusMessage(status model.EvaluationStatus) string {
	switch status {
	case model.StatusComplete:
		return "🎉 Semua dokumen lengkap!"
	case model.StatusNearlyComplete:
		return "📋 Hampir lengkap, hanya beberapa dokumen lagi"
	case model.StatusPartial:
		return "📝 Beberapa dokumen sudah tersedia"
	default:
		return "❌ Masih banyak dokumen yang diperlukan"
	}
}

// MissingSummary lists the labels still missing from an evaluation.
func (f *Formatter) MissingSummary(result *model.EvaluationResult) string {
	if len(result.Missing) == 0 {
		return "✅ Semua dokumen yang diperlukan telah tersedia."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "❌ Dokumen yang belum ditemukan (%d):\n", len(result.Missing))
	for i, label := range result.Missing {
		fmt.Fprintf(&b, "%d. %s\n", i+1, label)
	}
	return strings.TrimRight(b.String(), "\n")
}

// AvailableSummary lists the matched requirements with a confidence marker.
func (f *Formatter) AvailableSummary(result *model.EvaluationResult) string {
	if len(result.Found) == 0 {
		return "❌ Tidak ada dokumen yang ditemukan."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✅ Dokumen tersedia (%d):\n", len(result.Found))
	for i, match := range result.Found {
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, match.Required, confidenceMarker(match.Confidence))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Recommendations produces a short, prioritized list of next steps for an
// evaluation: an overall nudge, then critical documents, then financial
// ones.
func (f *Formatter) Recommendations(result *model.EvaluationResult) []string {
	if result.Complete() {
		return []string{"🎉 Semua dokumen lengkap! Siap untuk proses berikutnya."}
	}

	var recommendations []string
	switch {
	case result.CompletionPercentage >= 80:
		recommendations = append(recommendations, "📋 Hampir selesai! Sediakan dokumen-dokumen yang tersisa.")
	case result.CompletionPercentage >= 50:
		recommendations = append(recommendations, "📝 Progress bagus! Fokus pada dokumen-dokumen utama yang masih hilang.")
	default:
		recommendations = append(recommendations, "⚠️ Masih banyak dokumen yang diperlukan. Prioritaskan dokumen-dokumen esensial.")
	}

	if critical := f.missingCritical(result.Missing); len(critical) > 0 {
		recommendations = append(recommendations,
			"🔴 Prioritaskan dokumen-dokumen krusial: "+strings.Join(critical, ", "))
	}

	if hasFinancial(result.Missing) {
		recommendations = append(recommendations, "💰 Siapkan dokumen keuangan dan mutasi rekening.")
	}

	return recommendations
}

// FormatEvaluation renders a complete styled report for one evaluation.
func (f *Formatter) FormatEvaluation(result *model.EvaluationResult) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(fmt.Sprintf("Checklist: %s", result.Template)))
	b.WriteString("\n")
	if result.Description != "" {
		b.WriteString(SubtleStyle.Render(result.Description))
		b.WriteString("\n")
	}

	completion := fmt.Sprintf("%.1f%% (%d/%d)", result.CompletionPercentage, result.TotalFound, result.TotalRequired)
	switch result.Status {
	case model.StatusComplete:
		b.WriteString(SuccessStyle.Render(completion))
	case model.StatusNearlyComplete, model.StatusPartial:
		b.WriteString(WarningStyle.Render(completion))
	default:
		b.WriteString(ErrorStyle.Render(completion))
	}
	b.WriteString("  ")
	b.WriteString(f.StatusMessage(result.Status))
	b.WriteString("\n\n")

	b.WriteString(f.AvailableSummary(result))
	b.WriteString("\n\n")
	b.WriteString(f.MissingSummary(result))
	b.WriteString("\n")

	for _, rec := range f.Recommendations(result) {
		b.WriteString("\n")
		b.WriteString(rec)
	}

	return b.String()
}

// FormatRecommendation renders a styled template recommendation.
func (f *Formatter) FormatRecommendation(result *model.RecommendationResult) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Template recommendation"))
	b.WriteString("\n")

	if result.RecommendedTemplate == "" {
		b.WriteString(ErrorStyle.Render(result.Reason))
		return b.String()
	}

	b.WriteString(BoldStyle.Render(result.RecommendedTemplate))
	fmt.Fprintf(&b, "  score %.1f (%s confidence)\n", result.Score, result.ConfidenceLevel)

	for _, name := range sortedKeys(result.Scores) {
		b.WriteString(SubtleStyle.Render(fmt.Sprintf("  %-24s %.1f", name, result.Scores[name])))
		b.WriteString("\n")
	}

	if result.Evaluation != nil {
		b.WriteString("\n")
		b.WriteString(f.FormatEvaluation(result.Evaluation))
	}

	return b.String()
}

// FormatClassificationSummary renders batch classification statistics.
func (f *Formatter) FormatClassificationSummary(summary model.ClassificationSummary) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(fmt.Sprintf("Classified %d documents", summary.TotalDocuments)))
	b.WriteString("\n")
	for _, category := range sortedKeys(summary.Categories) {
		fmt.Fprintf(&b, "  %-32s %d\n", category, summary.Categories[category])
	}
	fmt.Fprintf(&b, "Average confidence: %.2f\n", summary.AverageConfidence)
	fmt.Fprintf(&b, "Methods: %s", strings.Join(summary.Methods, ", "))

	return b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func confidenceMarker(confidence float64) string {
	switch {
	case confidence >= 0.8:
		return "🟢"
	case confidence >= 0.6:
		return "🟡"
	default:
		return "🔴"
	}
}

func (f *Formatter) missingCritical(missing []string) []string {
	var out []string
	for _, label := range missing {
		for _, critical := range f.criticalDocuments {
			if strings.Contains(label, critical) {
				out = append(out, label)
				break
			}
		}
		if len(out) == 3 {
			break
		}
	}
	return out
}

func hasFinancial(missing []string) bool {
	for _, label := range missing {
		if strings.Contains(label, "Keuangan") ||
			strings.Contains(label, "Laporan") ||
			strings.Contains(label, "Mutasi") {
			return true
		}
	}
	return false
}
