package preview

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

const (
	cacheEnvVar     = "WEBMODELS_PREVIEW_CACHE"
	cacheSubdir     = "webmodels/preview"
	DefaultCacheTTL = 30 * time.Minute
	bodySuffix      = ".body"
	metaSuffix      = ".meta"
	partialSuffix   = ".part"
)

// ErrCacheMiss is returned by Cache.Load when nothing is stored for a URL.
var ErrCacheMiss = errors.New("preview: cache miss")

// Meta describes a cached response.
type Meta struct {
	URL          string    `json:"url"`
	ContentType  string    `json:"contentType"`
	ETag         string    `json:"etag"`
	LastModified string    `json:"lastModified"`
	CachedAt     time.Time `json:"cachedAt"`
	Size         int64     `json:"size"`
}

// Entry is a cached body with its metadata.
type Entry struct {
	Meta Meta
	Body []byte
}

// Cache stores decoded response bodies on disk, keyed by the sha1 of the URL.
type Cache struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// DefaultCacheDir honours WEBMODELS_PREVIEW_CACHE and falls back to the user cache dir.
func DefaultCacheDir() string {
	if dir := os.Getenv(cacheEnvVar); dir != "" {
		return dir
	}
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(os.TempDir(), "webmodels-cache")
	}
	return filepath.Join(base, cacheSubdir)
}

// NewCache creates dir if needed. A non-positive ttl uses DefaultCacheTTL.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if dir == "" {
		dir = DefaultCacheDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{dir: dir, ttl: ttl, now: time.Now}, nil
}

func (c *Cache) Dir() string {
	return c.dir
}

// Fresh reports whether meta is younger than the TTL.
func (c *Cache) Fresh(meta Meta) bool {
	if meta.CachedAt.IsZero() {
		return false
	}
	return c.now().Sub(meta.CachedAt) < c.ttl
}

func (c *Cache) Load(rawURL string) (*Entry, error) {
	bodyPath, metaPath, _ := c.pathsFor(cacheKey(rawURL))
	meta, err := readMeta(metaPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	body, err := os.ReadFile(bodyPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	return &Entry{Meta: meta, Body: body}, nil
}

// Store writes body then meta. CachedAt and Size are filled in.
func (c *Cache) Store(rawURL string, body []byte, meta Meta) (Meta, error) {
	bodyPath, metaPath, partialPath := c.pathsFor(cacheKey(rawURL))
	if err := os.WriteFile(partialPath, body, 0o644); err != nil {
		return Meta{}, err
	}
	if err := os.Rename(partialPath, bodyPath); err != nil {
		return Meta{}, err
	}
	meta.URL = rawURL
	meta.CachedAt = c.now().UTC()
	meta.Size = int64(len(body))
	if err := writeMeta(metaPath, meta); err != nil {
		return Meta{}, err
	}
	return meta, nil
}

// Touch marks an entry as revalidated without rewriting the body.
func (c *Cache) Touch(rawURL string, meta Meta) (Meta, error) {
	_, metaPath, _ := c.pathsFor(cacheKey(rawURL))
	meta.CachedAt = c.now().UTC()
	return meta, writeMeta(metaPath, meta)
}

func (c *Cache) pathsFor(key string) (string, string, string) {
	return filepath.Join(c.dir, key+bodySuffix), filepath.Join(c.dir, key+metaSuffix), filepath.Join(c.dir, key+partialSuffix)
}

func cacheKey(rawURL string) string {
	sum := sha1.Sum([]byte(rawURL))
	return hex.EncodeToString(sum[:])
}

func readMeta(path string) (Meta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Meta{}, err
	}
	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return Meta{}, err
	}
	return meta, nil
}

func writeMeta(path string, meta Meta) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
