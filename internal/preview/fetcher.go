// Package preview fetches a demo site and renders it as text for the in-terminal browser.
package preview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultHTTPTimeout = 20 * time.Second
	defaultUserAgent   = "webmodels-preview/1.0"
	maxBodyBytes       = 8 << 20
)

// ErrInvalidURL is returned for anything that is not an absolute http(s) URL.
var ErrInvalidURL = errors.New("preview: invalid url")

// Fetcher downloads pages through a disk Cache.
type Fetcher struct {
	client    *http.Client
	cache     *Cache
	userAgent string
}

type Option func(*Fetcher)

func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

func WithCache(cache *Cache) Option {
	return func(f *Fetcher) {
		f.cache = cache
	}
}

func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// NewFetcher builds a Fetcher. Without WithCache every call hits the network.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{Timeout: defaultHTTPTimeout},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns a fresh cached copy when one exists, otherwise revalidates or downloads.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	return f.fetch(ctx, rawURL, false)
}

// Reload ignores the cache TTL but still sends conditional headers.
func (f *Fetcher) Reload(ctx context.Context, rawURL string) (*Page, error) {
	return f.fetch(ctx, rawURL, true)
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string, force bool) (*Page, error) {
	target, err := normalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	var cached *Entry
	if f.cache != nil {
		cached, err = f.cache.Load(target)
		if err != nil && !errors.Is(err, ErrCacheMiss) {
			log.Printf("[preview] cache read %s: %v", target, err)
		}
		if cached != nil && !force && f.cache.Fresh(cached.Meta) {
			return fromEntry(target, cached, false)
		}
	}

	body, meta, notModified, err := f.download(ctx, target, cached)
	if err != nil {
		if cached != nil {
			log.Printf("[preview] serving stale %s: %v", target, err)
			return fromEntry(target, cached, true)
		}
		return nil, err
	}
	if notModified {
		if touched, err := f.cache.Touch(target, cached.Meta); err == nil {
			cached.Meta = touched
		}
		return fromEntry(target, cached, false)
	}
	if f.cache != nil {
		if _, err := f.cache.Store(target, body, meta); err != nil {
			log.Printf("[preview] cache write %s: %v", target, err)
		}
	}
	return Extract(target, body)
}

func (f *Fetcher) download(ctx context.Context, target string, cached *Entry) ([]byte, Meta, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, Meta{}, false, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/pdf;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", acceptEncoding)
	if cached != nil {
		if cached.Meta.ETag != "" {
			req.Header.Set("If-None-Match", cached.Meta.ETag)
		}
		if cached.Meta.LastModified != "" {
			req.Header.Set("If-Modified-Since", cached.Meta.LastModified)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, Meta{}, false, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotModified && cached != nil:
		return nil, Meta{}, true, nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
	default:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, Meta{}, false, fmt.Errorf("preview fetch failed: %s (%s)", resp.Status, strings.TrimSpace(string(snippet)))
	}

	reader, release, err := decodeBody(resp.Header.Get("Content-Encoding"), resp.Body)
	if err != nil {
		return nil, Meta{}, false, err
	}
	defer release()

	body, err := io.ReadAll(io.LimitReader(reader, maxBodyBytes))
	if err != nil {
		return nil, Meta{}, false, fmt.Errorf("reading body: %w", err)
	}
	meta := Meta{
		ContentType:  resp.Header.Get("Content-Type"),
		ETag:         resp.Header.Get("Etag"),
		LastModified: resp.Header.Get("Last-Modified"),
	}
	return body, meta, false, nil
}

func fromEntry(target string, entry *Entry, stale bool) (*Page, error) {
	page, err := Extract(target, entry.Body)
	if err != nil {
		return nil, err
	}
	page.FromCache = true
	page.Stale = stale
	return page, nil
}

func normalizeURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	u.Fragment = ""
	return u.String(), nil
}
