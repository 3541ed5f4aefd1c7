package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/berkasflow/berkasflow/internal/model"
)

// EvaluationMessage formats a WhatsApp alert about a filing's
// completeness, in the style the admins expect.
func EvaluationMessage(company string, result *model.EvaluationResult, now time.Time) string {
	statusEmoji := "⚠️"
	if result.Complete() {
		statusEmoji = "✅"
	}

	var b strings.Builder
	b.WriteString("📂 *Kelengkapan Dokumen Legalitas*\n\n")
	fmt.Fprintf(&b, "🏢 *Perusahaan:* %s\n", company)
	fmt.Fprintf(&b, "📋 *Checklist:* %s\n", result.Template)
	fmt.Fprintf(&b, "%s *Kelengkapan:* %.1f%% (%d/%d)\n", statusEmoji,
		result.CompletionPercentage, result.TotalFound, result.TotalRequired)
	fmt.Fprintf(&b, "📅 *Waktu:* %s", now.Format("02 January 2006 15:04"))

	if len(result.Missing) > 0 {
		fmt.Fprintf(&b, "\n\n❌ *Dokumen Kurang:* %s", strings.Join(result.Missing, ", "))
	} else {
		b.WriteString("\n\n✅ *Semua dokumen lengkap!*")
	}

	b.WriteString("\n\n_Sistem Otomasi Legal Dokumen_")
	return b.String()
}

// ErrorMessage formats a system error alert.
func ErrorMessage(errMsg string, now time.Time) string {
	var b strings.Builder
	b.WriteString("⚠️ *Error Sistem Legal Dokumen*\n\n")
	fmt.Fprintf(&b, "🚨 *Pesan:* %s\n", errMsg)
	fmt.Fprintf(&b, "📅 *Waktu:* %s", now.Format("02 January 2006 15:04"))
	b.WriteString("\n\n_Silakan periksa sistem untuk detail lebih lanjut._")
	return b.String()
}
