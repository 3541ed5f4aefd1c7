package upload

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"PT Contoh Sejahtera", "pt-contoh-sejahtera"},
		{"Akta dan SK Kemenkumham", "akta-dan-sk-kemenkumham"},
		{"  NIB dan NPWP  ", "nib-dan-npwp"},
		{"///", "unknown"},
		{"", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, slug(tt.input))
		})
	}
}

func TestObjectKey(t *testing.T) {
	key := objectKey("PT Contoh", "KTP Pengurus", "/uploads/ktp_direktur.pdf")
	assert.Equal(t, "pt-contoh/ktp-pengurus/ktp_direktur.pdf", key)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", contentType("akta.PDF"))
	assert.Equal(t, "text/plain", contentType("notes.txt"))
	assert.Equal(t, "application/octet-stream", contentType("scan.xyz"))
}

func TestLocalUploader(t *testing.T) {
	base := t.TempDir()
	uploader, err := NewLocalUploader(base)
	require.NoError(t, err)

	key, err := uploader.Upload(context.Background(),
		"PT Contoh", "NIB dan NPWP", "npwp_perusahaan.pdf",
		strings.NewReader("dummy pdf bytes"))
	require.NoError(t, err)
	assert.Equal(t, "pt-contoh/nib-dan-npwp/npwp_perusahaan.pdf", key)

	data, err := os.ReadFile(filepath.Join(base, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, "dummy pdf bytes", string(data))
}

func TestLocalUploaderEmptyPath(t *testing.T) {
	_, err := NewLocalUploader("")
	assert.Error(t, err)
}

func TestNewSelectsBackend(t *testing.T) {
	t.Run("defaults to local", func(t *testing.T) {
		uploader, err := New(Config{LocalPath: t.TempDir()})
		require.NoError(t, err)
		assert.IsType(t, &LocalUploader{}, uploader)
	})

	t.Run("rejects unknown backend", func(t *testing.T) {
		_, err := New(Config{Backend: "ftp"})
		assert.ErrorContains(t, err, "unknown upload backend")
	})

	t.Run("s3 requires a bucket", func(t *testing.T) {
		_, err := New(Config{Backend: "s3"})
		assert.ErrorContains(t, err, "bucket")
	})
}
