package classifier

import "github.com/berkasflow/berkasflow/internal/model"

// DefaultCategories returns the built-in category rules for Indonesian
// business-license documents. Declaration order matters: it is the
// tie-break order for content classification and the probe order for
// filename classification.
func DefaultCategories() []model.Category {
	return []model.Category{
		{
			Name: "Akta dan SK Kemenkumham",
			Keywords: []string{
				"akta pendirian", "akta perubahan", "kemenkumham", "sk",
				"surat keputusan", "pengesahan", "notaris", "akta notaris",
				"anggaran dasar", "ad/art", "perubahan anggaran dasar",
			},
			Patterns: []string{
				`akta.*pendirian`,
				`surat.*keputusan.*kemenkumham`,
				`pengesahan.*kemenkumham`,
				`notaris.*nomor`,
			},
			FilenamePatterns: []string{
				`akta.*pendirian`, `akta.*perubahan`, `sk.*kemenkumham`,
				`pengesahan.*kemenkumham`, `notaris`,
			},
		},
		{
			Name: "NIB dan NPWP",
			Keywords: []string{
				"nib", "nomor induk berusaha", "npwp", "nomor pokok wajib pajak",
				"wajib pajak", "pkp", "pengusaha kena pajak", "nib perusahaan",
			},
			Patterns: []string{
				`nib\s*:?\s*\d+`,
				`npwp\s*:?\s*[\d.]+`,
				`nomor.*induk.*usaha`,
				`nomor.*pokok.*wajib.*pajak`,
			},
			FilenamePatterns: []string{
				`nib`, `npwp`, `nomor.*induk.*usaha`, `nomor.*pokok.*wajib.*pajak`,
			},
		},
		{
			Name: "KTP Pengurus",
			Keywords: []string{
				"ktp", "kartu tanda penduduk", "nik", "nomor induk kependudukan",
				"identitas", "direktur", "komisaris", "pengurus",
			},
			Patterns: []string{
				`nik\s*:?\s*[\d-]+`,
				`kartu.*tanda.*penduduk`,
				`ktp.*direktur`,
				`identitas.*pengurus`,
			},
			FilenamePatterns: []string{
				`ktp.*pengurus`, `ktp.*direktur`, `identitas.*pengurus`,
			},
		},
		{
			Name: "Laporan Keuangan",
			Keywords: []string{
				"laporan keuangan", "neraca", "laba rugi", "spt", "surat pemberitahuan tahunan",
				"mutasi rekening", "laporan audit", "audited", "tahun buku",
				"balance sheet", "income statement", "cash flow",
			},
			Patterns: []string{
				`laporan.*keuangan`,
				`neraca.*per.*\d{4}`,
				`laba.*rugi`,
				`spt.*tahunan`,
				`mutasi.*rekening`,
			},
			FilenamePatterns: []string{
				`laporan.*keuangan`, `neraca`, `laba.*rugi`, `spt.*tahunan`,
				`mutasi.*rekening`, `audit`,
			},
		},
		{
			Name: model.CatchAllCategory,
		},
	}
}
