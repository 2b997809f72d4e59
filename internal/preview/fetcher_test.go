package preview

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const demoHTML = `<html><head><title>Studio</title></head><body><p>Réservez en ligne</p></body></html>`

func newTestFetcher(t *testing.T, server *httptest.Server, ttl time.Duration) (*Fetcher, *Cache) {
	t.Helper()
	cache, err := NewCache(t.TempDir(), ttl)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	return NewFetcher(WithHTTPClient(server.Client()), WithCache(cache)), cache
}

func TestFetchUsesFreshCache(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(demoHTML))
	}))
	t.Cleanup(server.Close)

	fetcher, _ := newTestFetcher(t, server, time.Hour)
	ctx := context.Background()

	page, err := fetcher.Fetch(ctx, server.URL+"/#hero")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if page.Title != "Studio" || page.FromCache {
		t.Fatalf("unexpected first page %+v", page)
	}

	page, err = fetcher.Fetch(ctx, server.URL+"/")
	if err != nil {
		t.Fatalf("second Fetch: %v", err)
	}
	if !page.FromCache {
		t.Fatal("second fetch should be served from cache")
	}
	if hits.Load() != 1 {
		t.Fatalf("expected one network hit, got %d", hits.Load())
	}
}

func TestReloadRevalidatesWithETag(t *testing.T) {
	var hits, conditional atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Header.Get("If-None-Match") == `"v1"` {
			conditional.Add(1)
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("Etag", `"v1"`)
		_, _ = w.Write([]byte(demoHTML))
	}))
	t.Cleanup(server.Close)

	fetcher, _ := newTestFetcher(t, server, time.Hour)
	ctx := context.Background()
	if _, err := fetcher.Fetch(ctx, server.URL); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	page, err := fetcher.Reload(ctx, server.URL)
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if hits.Load() != 2 || conditional.Load() != 1 {
		t.Fatalf("hits=%d conditional=%d", hits.Load(), conditional.Load())
	}
	if !page.FromCache || page.Stale || page.Title != "Studio" {
		t.Fatalf("unexpected page after 304: %+v", page)
	}
}

func TestFetchFallsBackToStaleCopy(t *testing.T) {
	var fail atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			http.Error(w, "down", http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(demoHTML))
	}))
	t.Cleanup(server.Close)

	fetcher, _ := newTestFetcher(t, server, time.Hour)
	ctx := context.Background()
	if _, err := fetcher.Fetch(ctx, server.URL); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	fail.Store(true)
	page, err := fetcher.Reload(ctx, server.URL)
	if err != nil {
		t.Fatalf("Reload should fall back to the cache: %v", err)
	}
	if !page.Stale {
		t.Fatal("fallback page should be marked stale")
	}
}

func TestFetchErrorsWithoutCache(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	fetcher := NewFetcher(WithHTTPClient(server.Client()))
	_, err := fetcher.Fetch(context.Background(), server.URL+"/nope")
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected a 404 error, got %v", err)
	}
}

func TestFetchRejectsInvalidURLs(t *testing.T) {
	fetcher := NewFetcher()
	for _, raw := range []string{"", "ftp://example.test/", "/relative", "https://"} {
		if _, err := fetcher.Fetch(context.Background(), raw); !errors.Is(err, ErrInvalidURL) {
			t.Fatalf("Fetch(%q) error = %v, want ErrInvalidURL", raw, err)
		}
	}
}

func TestFetchDecodesContentEncodings(t *testing.T) {
	encoders := map[string]func(*bytes.Buffer) (func([]byte), func()){
		"br": func(buf *bytes.Buffer) (func([]byte), func()) {
			w := brotli.NewWriter(buf)
			return func(p []byte) { _, _ = w.Write(p) }, func() { _ = w.Close() }
		},
		"gzip": func(buf *bytes.Buffer) (func([]byte), func()) {
			w := gzip.NewWriter(buf)
			return func(p []byte) { _, _ = w.Write(p) }, func() { _ = w.Close() }
		},
		"zstd": func(buf *bytes.Buffer) (func([]byte), func()) {
			w, err := zstd.NewWriter(buf)
			if err != nil {
				t.Fatalf("zstd writer: %v", err)
			}
			return func(p []byte) { _, _ = w.Write(p) }, func() { _ = w.Close() }
		},
	}

	for name, encoder := range encoders {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			write, closeFn := encoder(&buf)
			write([]byte(demoHTML))
			closeFn()
			payload := buf.Bytes()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if !strings.Contains(r.Header.Get("Accept-Encoding"), name) {
					t.Errorf("Accept-Encoding %q does not advertise %s", r.Header.Get("Accept-Encoding"), name)
				}
				w.Header().Set("Content-Encoding", name)
				_, _ = w.Write(payload)
			}))
			t.Cleanup(server.Close)

			page, err := NewFetcher(WithHTTPClient(server.Client())).Fetch(context.Background(), server.URL)
			if err != nil {
				t.Fatalf("Fetch: %v", err)
			}
			if page.Title != "Studio" || !strings.Contains(page.Text, "Réservez en ligne") {
				t.Fatalf("unexpected page %+v", page)
			}
		})
	}
}

func TestDecodeBodyRejectsUnknownEncoding(t *testing.T) {
	if _, _, err := decodeBody("compress", strings.NewReader("x")); err == nil {
		t.Fatal("expected an error for an unknown encoding")
	}
}
