package extract

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/berkasflow/berkasflow/internal/common"
)

// maxTextFileBytes caps how much of a plain-text file is read. Filings
// are small; anything past this is noise for keyword matching.
const maxTextFileBytes = 10 << 20

// TextFileExtractor reads plain-text files as-is.
type TextFileExtractor struct{}

// NewTextFileExtractor creates a plain-text extractor.
func NewTextFileExtractor() *TextFileExtractor {
	return &TextFileExtractor{}
}

// Extract reads the file contents, capped at maxTextFileBytes.
func (t *TextFileExtractor) Extract(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: opening %s: %v", common.ErrExtractionFailed, path, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, maxTextFileBytes))
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %v", common.ErrExtractionFailed, path, err)
	}

	return CleanText(string(data)), nil
}
