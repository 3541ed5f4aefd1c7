package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalUploader archives documents on the local filesystem.
type LocalUploader struct {
	basePath string
}

// NewLocalUploader creates a filesystem archive rooted at basePath.
func NewLocalUploader(basePath string) (*LocalUploader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("local upload path cannot be empty")
	}
	if err := os.MkdirAll(basePath, 0750); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	return &LocalUploader{basePath: basePath}, nil
}

// Upload copies the document into company/category subdirectories and
// returns the archive key.
func (l *LocalUploader) Upload(ctx context.Context, company, category, filename string, data io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := objectKey(company, category, filename)
	fullPath := filepath.Join(l.basePath, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0750); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if _, err := io.Copy(file, data); err != nil {
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return key, nil
}
