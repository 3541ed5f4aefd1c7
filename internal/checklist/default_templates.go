package checklist

import "github.com/berkasflow/berkasflow/internal/model"

// DefaultTemplates returns the built-in checklist templates for the
// supported filing types, in declaration order.
func DefaultTemplates() []model.ChecklistTemplate {
	return []model.ChecklistTemplate{
		{
			Name:        "BG PIHK PT",
			Description: "Bank Garansi Penyelenggara Ibadah Haji Khusus",
			RequiredDocuments: []string{
				"Akta dan SK Kemenkumham Pendirian Hingga Perubahan Terakhir",
				"KTP NPWP Pengurus",
				"NPWP Perusahaan",
				"NIB Perusahaan",
				"Laporan Keuangan 2 Tahun",
				"SKT / SKF (Fiskal)",
				"SK PIHK / SK PPIU",
				"Sertifikat Akreditasi PPIU",
				"Lampiran Manifest 1000 Jamaah",
				"Nomor Telepon Direktur dan Nama Ibu Kandung",
				"Kop Surat dan Stempel Perusahaan",
			},
			TotalRequired: 11,
		},
		{
			Name:        "BG PPIU PT",
			Description: "Bank Garansi Penyelenggara Perjalanan Ibadah Umroh",
			RequiredDocuments: []string{
				"Akta dan SK Kemenkumham Pendirian Hingga Perubahan Terakhir",
				"KTP NPWP Pengurus",
				"NPWP Perusahaan",
				"NIB Perusahaan",
				"Laporan Keuangan 2 Tahun",
				"SKT / SKF (Fiskal)",
				"Rekom / SK PPIU",
				"Nomor Telepon Direktur dan Nama Ibu Kandung",
				"Kop Surat dan Stempel Perusahaan",
			},
			TotalRequired: 9,
		},
		{
			Name:        "Laporan Keuangan",
			Description: "Laporan Keuangan Perusahaan",
			RequiredDocuments: []string{
				"Kop Surat",
				"Contoh Stempel",
				"NIB",
				"NPWP Perusahaan",
				"Akta + SK Pendirian",
				"Akta + SK Perubahan",
				"KTP Pengurus",
				"NPWP Pengurus",
				"Mutasi Rekening 2024 Full",
				"Mutasi Rekening 2025 (Jan-Jul)",
				"Foto Kantor",
				"Sampling Invoice Hotel & Tiket Jamaah 2024",
				"Laporan Keuangan 2023",
				"Neraca Laba Rugi / SPT Tahun 2024",
				"Nomor Meteran Listrik Kantor",
			},
			TotalRequired: 15,
		},
	}
}
