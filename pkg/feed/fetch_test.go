package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/skillboard/skillboard/pkg/cache"
	"github.com/skillboard/skillboard/pkg/errors"
)

func TestFetchParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["Go", "Rust"]`))
	}))
	defer srv.Close()

	f := NewFetcher(cache.NewNullCache(), 0)
	labels, err := f.Fetch(context.Background(), srv.URL, false)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(labels) != 2 || labels[0] != "Go" {
		t.Errorf("unexpected labels: %v", labels)
	}
}

func TestFetchUsesCache(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`["Go"]`))
	}))
	defer srv.Close()

	backend, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	f := NewFetcher(backend, time.Hour)

	ctx := context.Background()
	if _, err := f.Fetch(ctx, srv.URL, false); err != nil {
		t.Fatalf("first Fetch: %v", err)
	}
	if _, err := f.Fetch(ctx, srv.URL, false); err != nil {
		t.Fatalf("second Fetch: %v", err)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("server hit %d times, want 1", n)
	}

	// refresh bypasses the cache.
	if _, err := f.Fetch(ctx, srv.URL, true); err != nil {
		t.Fatalf("refresh Fetch: %v", err)
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("server hit %d times after refresh, want 2", n)
	}
}

func TestFetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	f := NewFetcher(cache.NewNullCache(), 0)
	_, err := f.Fetch(context.Background(), srv.URL, false)
	if !errors.Is(err, errors.ErrCodeFeedNotFound) {
		t.Errorf("expected FEED_NOT_FOUND, got %v", err)
	}
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`["Go"]`))
	}))
	defer srv.Close()

	f := NewFetcher(cache.NewNullCache(), 0)
	labels, err := f.Fetch(context.Background(), srv.URL, false)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(labels) != 1 {
		t.Errorf("unexpected labels: %v", labels)
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("server hit %d times, want 2", n)
	}
}

func TestFetchBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unrelated": true}`))
	}))
	defer srv.Close()

	f := NewFetcher(cache.NewNullCache(), 0)
	_, err := f.Fetch(context.Background(), srv.URL, false)
	if !errors.Is(err, errors.ErrCodeInvalidFeed) {
		t.Errorf("expected INVALID_FEED, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.json")
	if err := os.WriteFile(path, []byte(`["Go", "Rust"]`), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	labels, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if len(labels) != 2 {
		t.Errorf("unexpected labels: %v", labels)
	}

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("expected FILE_NOT_FOUND, got %v", err)
	}
}

func TestLoadDispatchesBySource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["remote"]`))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "skills.json")
	if err := os.WriteFile(path, []byte(`["local"]`), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f := NewFetcher(cache.NewNullCache(), 0)
	ctx := context.Background()

	remote, err := f.Load(ctx, srv.URL, false)
	if err != nil || len(remote) != 1 || remote[0] != "remote" {
		t.Errorf("URL load: labels=%v err=%v", remote, err)
	}
	local, err := f.Load(ctx, path, false)
	if err != nil || len(local) != 1 || local[0] != "local" {
		t.Errorf("file load: labels=%v err=%v", local, err)
	}
}
