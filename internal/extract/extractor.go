package extract

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/berkasflow/berkasflow/internal/common"
	"github.com/berkasflow/berkasflow/internal/service"
)

// DefaultTimeout bounds how long a single file may take to extract.
const DefaultTimeout = 30 * time.Second

// Extractor dispatches to a concrete extractor based on file extension.
type Extractor struct {
	byExtension map[string]service.TextExtractor
}

// New creates an extractor handling PDF and plain-text files.
func New() *Extractor {
	return &Extractor{
		byExtension: map[string]service.TextExtractor{
			".pdf": NewPDFExtractor(),
			".txt": NewTextFileExtractor(),
			".md":  NewTextFileExtractor(),
		},
	}
}

// Extract routes the file to a handler for its extension. Unsupported
// extensions yield ErrUnsupportedFile so callers can fall back to
// filename classification.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	handler, ok := e.byExtension[ext]
	if !ok {
		return "", fmt.Errorf("%w: %s", common.ErrUnsupportedFile, ext)
	}
	return handler.Extract(ctx, path)
}

// Supported reports whether files with the given extension can be
// extracted.
func (e *Extractor) Supported(ext string) bool {
	_, ok := e.byExtension[strings.ToLower(ext)]
	return ok
}

// Bounded wraps an extractor with a per-file timeout. A file that hangs
// the parser must not stall a whole batch.
type Bounded struct {
	inner   service.TextExtractor
	timeout time.Duration
	logger  *slog.Logger
}

// NewBounded wraps inner with the given timeout. A non-positive timeout
// falls back to DefaultTimeout.
func NewBounded(inner service.TextExtractor, timeout time.Duration) *Bounded {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Bounded{
		inner:   inner,
		timeout: timeout,
		logger:  slog.Default().With("component", "extract"),
	}
}

// Extract runs the inner extractor under a deadline. The inner call keeps
// running if it ignores cancellation, but its result is discarded.
func (b *Bounded) Extract(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		text, err := b.inner.Extract(ctx, path)
		done <- result{text: text, err: err}
	}()

	select {
	case r := <-done:
		return r.text, r.err
	case <-ctx.Done():
		b.logger.Warn("extraction timed out",
			"path", path,
			"timeout", b.timeout.String(),
		)
		return "", fmt.Errorf("%w: %s: %v", common.ErrExtractionFailed, path, ctx.Err())
	}
}
