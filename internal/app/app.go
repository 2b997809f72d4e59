// Package app assembles the contact store and preview fetcher from a loaded config.
package app

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/csheth/webmodels/internal/config"
	"github.com/csheth/webmodels/internal/contact"
	"github.com/csheth/webmodels/internal/db"
	"github.com/csheth/webmodels/internal/preview"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenStore returns the configured contact store and the handle that releases it.
func OpenStore(cfg config.StoreConfig) (contact.Store, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating store directory: %w", err)
	}
	switch cfg.Kind {
	case config.StoreSQLite:
		repo, err := db.Open(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("[app] sqlite store at %s", cfg.Path)
		return repo, repo, nil
	case config.StoreJSON:
		log.Printf("[app] json store at %s", cfg.Path)
		return contact.NewFileStore(cfg.Path), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store kind %q", cfg.Kind)
	}
}

// NewFetcher builds a preview fetcher with an on-disk cache. A cache that cannot be
// created disables caching rather than failing.
func NewFetcher(cfg config.PreviewConfig) *preview.Fetcher {
	opts := []preview.Option{
		preview.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	dir := cfg.CacheDir
	if dir == "" {
		dir = preview.DefaultCacheDir()
	}
	cache, err := preview.NewCache(dir, cfg.CacheTTL)
	switch {
	case err == nil:
		opts = append(opts, preview.WithCache(cache))
	case errors.Is(err, os.ErrPermission):
		log.Printf("[app] preview cache disabled, %s is not writable", dir)
	default:
		log.Printf("[app] preview cache disabled: %v", err)
	}
	return preview.NewFetcher(opts...)
}
