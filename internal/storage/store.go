// Package storage persists uploaded resume files on local disk or in an
// S3-compatible bucket such as Cloudflare R2.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/skill-matcher/internal/config"
)

// ErrNotFound is returned when no object exists under a key.
var ErrNotFound = errors.New("object not found")

// Store reads and writes resume files by key.
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// NewFromConfig builds the Store selected by cfg.Backend.
func NewFromConfig(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case config.StorageLocal, "":
		return NewLocalStore(cfg.Dir)
	case config.StorageS3:
		return NewS3Store(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// ResumeKey names a stored resume as <userID>_<unix millis><ext>. The
// extension is lowercased and reduced to ASCII letters and digits; the
// original file name is otherwise discarded.
func ResumeKey(userID uuid.UUID, filename string, now time.Time) string {
	return fmt.Sprintf("%s_%d%s", userID, now.UnixMilli(), cleanExt(filepath.Ext(filename)))
}

func cleanExt(ext string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		}
		return -1
	}, strings.ToLower(ext))
	if clean == "" {
		return ""
	}
	return "." + clean
}

func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("storage key is empty")
	}
	if strings.Contains(key, "..") || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("invalid storage key %q", key)
	}
	return nil
}
