// Package main contains the berkas CLI commands.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/viper"

	"github.com/berkasflow/berkasflow/internal/checklist"
	"github.com/berkasflow/berkasflow/internal/classifier"
	"github.com/berkasflow/berkasflow/internal/common"
	"github.com/berkasflow/berkasflow/internal/config"
	"github.com/berkasflow/berkasflow/internal/extract"
	"github.com/berkasflow/berkasflow/internal/fuzzy"
	"github.com/berkasflow/berkasflow/internal/service"
	"github.com/berkasflow/berkasflow/internal/storage"
)

// engine bundles the components the commands share.
type engine struct {
	classifier  *classifier.Classifier
	store       *checklist.Store
	evaluator   *checklist.Evaluator
	recommender *checklist.Recommender
}

// buildEngine loads definitions and wires the classifier, evaluator and
// recommender. Definition errors are fatal.
func buildEngine() (*engine, error) {
	defs, err := config.LoadDefinitions(viper.GetString("definitions.path"))
	if err != nil {
		return nil, err
	}

	timeout := viper.GetDuration("extraction.timeout")
	if timeout <= 0 {
		timeout = extract.DefaultTimeout
	}
	extractor := extract.NewBounded(extract.New(), timeout)

	clf, err := classifier.New(defs.Categories, extractor)
	if err != nil {
		return nil, fmt.Errorf("failed to build classifier: %w", err)
	}

	store, err := checklist.NewStore(defs.Templates)
	if err != nil {
		return nil, fmt.Errorf("failed to load checklist templates: %w", err)
	}

	matcher := fuzzy.NewMatcher()
	if threshold := viper.GetInt("matching.threshold"); threshold > 0 {
		matcher = fuzzy.NewMatcherWithConfig(fuzzy.Config{Threshold: threshold})
	}

	evaluator := checklist.NewEvaluator(store, matcher)

	return &engine{
		classifier:  clf,
		store:       store,
		evaluator:   evaluator,
		recommender: checklist.NewRecommender(store, evaluator),
	}, nil
}

// resolvePaths turns positional arguments into a path list; when none are
// given, the configured directory is scanned instead.
func resolvePaths(args []string, dir string) ([]string, error) {
	if len(args) > 0 {
		for _, path := range args {
			if _, err := os.Stat(path); err != nil {
				return nil, fmt.Errorf("cannot read %s: %w", path, err)
			}
		}
		return args, nil
	}
	return collectDocuments(dir)
}

// collectDocuments lists the classifiable files in a directory, sorted by
// name for stable output.
func collectDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no files in %s", common.ErrNoDocuments, dir)
	}
	return paths, nil
}

// initResultSink opens the configured sink ("sqlite" or "json"). The
// cleanup func must be called once the sink is no longer needed.
func initResultSink(ctx context.Context) (sink service.ResultSink, cleanup func(), err error) {
	switch backend := viper.GetString("results.backend"); backend {
	case "", "sqlite":
		dbPath := viper.GetString("results.database")
		if dbPath == "" {
			dbPath = "$HOME/.local/share/berkas/berkas.db"
		}
		db, err := storage.NewSQLiteStorage(config.ExpandPath(dbPath))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := db.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return db, func() { _ = db.Close() }, nil
	case "json":
		dir := viper.GetString("results.directory")
		if dir == "" {
			dir = "$HOME/.local/share/berkas/results"
		}
		js, err := storage.NewJSONStorage(config.ExpandPath(dir))
		if err != nil {
			return nil, nil, err
		}
		return js, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown results backend %q", backend)
	}
}
