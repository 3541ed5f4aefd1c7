package classifier

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/berkasflow/berkasflow/internal/model"
)

// BatchOptions configures batch classification.
type BatchOptions struct {
	// OnProgress is invoked after each document finishes, with the number
	// of completed documents and the batch size. May be nil.
	OnProgress func(done, total int)
	// Workers bounds classification concurrency. Values below 1 mean
	// sequential processing.
	Workers int
}

// BatchClassify classifies every path and returns results one-to-one with
// the input order, regardless of completion order. Per-document failures
// are isolated inside ClassifyDocument and never abort the batch.
func (c *Classifier) BatchClassify(ctx context.Context, paths []string, opts BatchOptions) []model.ClassifiedDocument {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	slog.Info("Starting batch classification", "documents", len(paths), "workers", workers)

	results := make([]model.ClassifiedDocument, len(paths))

	var mu sync.Mutex
	done := 0
	progress := func() {
		if opts.OnProgress == nil {
			return
		}
		mu.Lock()
		done++
		d := done
		mu.Unlock()
		opts.OnProgress(d, len(paths))
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		g.Go(func() error {
			// Results rejoin by input index, never by completion order.
			results[i] = c.ClassifyDocument(ctx, path)
			progress()
			return nil
		})
	}

	// ClassifyDocument never errors, so Wait cannot either.
	_ = g.Wait()

	return results
}
