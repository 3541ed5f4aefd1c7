// Package upload stores classified documents in an archive, organized
// by company and category so a filing can be assembled per checklist.
package upload

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/berkasflow/berkasflow/internal/service"
)

// Config selects and configures the archive backend.
type Config struct {
	Backend   string `mapstructure:"backend" yaml:"backend"`
	LocalPath string `mapstructure:"local_path" yaml:"local_path"`
	S3Bucket  string `mapstructure:"s3_bucket" yaml:"s3_bucket"`
	S3Region  string `mapstructure:"s3_region" yaml:"s3_region"`
	AccessKey string `mapstructure:"access_key" yaml:"access_key"`
	SecretKey string `mapstructure:"secret_key" yaml:"secret_key"`
}

// New creates the uploader named by cfg.Backend ("local" or "s3").
func New(cfg Config) (service.Uploader, error) {
	switch cfg.Backend {
	case "", "local":
		return NewLocalUploader(cfg.LocalPath)
	case "s3":
		return NewS3Uploader(cfg)
	default:
		return nil, fmt.Errorf("unknown upload backend %q", cfg.Backend)
	}
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9._-]+`)

// slug normalizes a path segment so company and category names are safe
// as directory names on every backend.
func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = unsafeChars.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "unknown"
	}
	return s
}

// objectKey builds the archive key for a document.
func objectKey(company, category, filename string) string {
	return path.Join(slug(company), slug(category), filepath.Base(filename))
}

// contentType maps a filename to its MIME type for remote backends.
func contentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".txt", ".md":
		return "text/plain"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
