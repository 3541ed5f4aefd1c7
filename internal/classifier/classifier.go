package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/berkasflow/berkasflow/internal/model"
	"github.com/berkasflow/berkasflow/internal/service"
)

// Config holds configuration options for the classifier. ScoreDivisor and
// FallbackThreshold are calibration knobs carried over from production;
// they have no documented derivation and should be tuned empirically.
type Config struct {
	// ScoreDivisor normalizes the raw rule score into a confidence:
	// confidence = min(score/ScoreDivisor, 1).
	ScoreDivisor float64
	// FallbackThreshold is the content confidence below which the
	// filename classifier is also consulted.
	FallbackThreshold float64
	// FilenameConfidence is assigned when a filename pattern matches.
	FilenameConfidence float64
	// FilenameMissConfidence is assigned when no filename pattern matches.
	FilenameMissConfidence float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		ScoreDivisor:           5.0,
		FallbackThreshold:      0.5,
		FilenameConfidence:     0.7,
		FilenameMissConfidence: 0.3,
	}
}

// Classifier assigns a category and confidence to documents. It is
// stateless after construction and safe for concurrent use.
type Classifier struct {
	extractor  service.TextExtractor
	categories []compiledCategory
	config     Config
}

// New creates a classifier with the given categories and text extractor.
func New(categories []model.Category, extractor service.TextExtractor) (*Classifier, error) {
	return NewWithConfig(categories, extractor, DefaultConfig())
}

// NewWithConfig creates a classifier with custom configuration.
func NewWithConfig(categories []model.Category, extractor service.TextExtractor, cfg Config) (*Classifier, error) {
	if extractor == nil {
		return nil, fmt.Errorf("classifier requires a text extractor")
	}
	if cfg.ScoreDivisor <= 0 {
		cfg.ScoreDivisor = DefaultConfig().ScoreDivisor
	}

	compiled, err := compileCategories(categories)
	if err != nil {
		return nil, fmt.Errorf("failed to compile category rules: %w", err)
	}

	return &Classifier{
		categories: compiled,
		extractor:  extractor,
		config:     cfg,
	}, nil
}

// Result is a partial classification before file metadata is attached.
type Result struct {
	Category   string
	Reason     string
	Method     model.ClassificationMethod
	Confidence float64
}

// ClassifyByContent scores the extracted text against every category's
// keyword and pattern rules. Keywords count 1 each, patterns 2 each; the
// strictly highest score wins and ties go to the first declared category.
func (c *Classifier) ClassifyByContent(text string) Result {
	if text == "" {
		return Result{
			Category:   model.CatchAllCategory,
			Confidence: 0,
			Reason:     "No text extracted",
			Method:     model.MethodContent,
		}
	}

	textLower := strings.ToLower(text)

	bestScore := 0
	best := Result{
		Category:   model.CatchAllCategory,
		Confidence: 0,
		Reason:     "No matching keywords found",
		Method:     model.MethodContent,
	}

	for _, cc := range c.categories {
		if cc.category.IsCatchAll() {
			continue
		}

		score := 0
		var matchedKeywords []string
		for _, kw := range cc.category.Keywords {
			if strings.Contains(textLower, kw) {
				score += keywordWeight
				matchedKeywords = append(matchedKeywords, kw)
			}
		}
		for _, re := range cc.patterns {
			if re.MatchString(textLower) {
				score += patternWeight
			}
		}

		// Strict comparison keeps the first declared category on ties.
		if score > bestScore {
			bestScore = score
			best = Result{
				Category:   cc.category.Name,
				Confidence: min(float64(score)/c.config.ScoreDivisor, 1.0),
				Reason:     fmt.Sprintf("Matched keywords: %s", strings.Join(matchedKeywords, ", ")),
				Method:     model.MethodContent,
			}
		}
	}

	return best
}

// ClassifyByFilename tests the filename against each category's filename
// patterns in declaration order; the first category with any matching
// pattern wins with fixed confidence.
func (c *Classifier) ClassifyByFilename(filename string) Result {
	filenameLower := strings.ToLower(filename)

	for _, cc := range c.categories {
		for _, re := range cc.filenamePatterns {
			if re.MatchString(filenameLower) {
				return Result{
					Category:   cc.category.Name,
					Confidence: c.config.FilenameConfidence,
					Reason:     fmt.Sprintf("Filename pattern matched: %s", re.String()),
					Method:     model.MethodFilename,
				}
			}
		}
	}

	return Result{
		Category:   model.CatchAllCategory,
		Confidence: c.config.FilenameMissConfidence,
		Reason:     "No filename pattern matched",
		Method:     model.MethodFilename,
	}
}

// ClassifyDocument classifies a single document. Extraction failures fall
// back to filename classification; any other internal failure is converted
// into a catch-all, zero-confidence result. This method never returns an
// error so that one bad document cannot abort a batch.
func (c *Classifier) ClassifyDocument(ctx context.Context, path string) (doc model.ClassifiedDocument) {
	filename := filepath.Base(path)

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Classification panicked", "path", path, "panic", r)
			doc = model.ClassifiedDocument{
				ClassifiedAt: time.Now(),
				FilePath:     path,
				Filename:     filename,
				Category:     model.CatchAllCategory,
				Confidence:   0,
				Reason:       fmt.Sprintf("Classification error: %v", r),
				Method:       model.MethodError,
			}
		}
	}()

	text, err := c.extractor.Extract(ctx, path)
	if err != nil {
		// Non-fatal: an empty text means the filename path decides.
		slog.Warn("Text extraction failed", "path", path, "error", err)
		text = ""
	}

	final := c.ClassifyByContent(text)
	var fallback model.ClassificationMethod

	if final.Confidence < c.config.FallbackThreshold {
		byName := c.ClassifyByFilename(filename)
		// Content wins ties.
		if byName.Confidence > final.Confidence {
			final = byName
			fallback = model.MethodFilename
		}
	}

	var size int64
	if info, statErr := os.Stat(path); statErr == nil {
		size = info.Size()
	}

	return model.ClassifiedDocument{
		ClassifiedAt:   time.Now(),
		FilePath:       path,
		Filename:       filename,
		Category:       final.Category,
		Confidence:     final.Confidence,
		Reason:         final.Reason,
		Method:         final.Method,
		FallbackMethod: fallback,
		FileSize:       size,
		TextLength:     len(text),
	}
}

// Summarize aggregates statistics over a batch of classification results.
func (c *Classifier) Summarize(results []model.ClassifiedDocument) model.ClassificationSummary {
	summary := model.ClassificationSummary{
		Categories:     make(map[string]int),
		TotalDocuments: len(results),
	}

	methods := make(map[model.ClassificationMethod]struct{})
	var totalConfidence float64

	for _, r := range results {
		summary.Categories[r.Category]++
		totalConfidence += r.Confidence
		methods[r.Method] = struct{}{}
	}

	if len(results) > 0 {
		summary.AverageConfidence = totalConfidence / float64(len(results))
	}

	for m := range methods {
		summary.Methods = append(summary.Methods, string(m))
	}
	sort.Strings(summary.Methods)

	return summary
}
