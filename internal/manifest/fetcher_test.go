package manifest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ralt/apprepogen/internal/models"
)

const testManifest = `{
  "id": "org.example.foo",
  "title": "Foo",
  "version": "1.2.3",
  "type": "web",
  "ipkUrl": "foo_1.2.3_all.ipk",
  "ipkHash": {"sha256": "abc"}
}`

func TestObtainOnline(t *testing.T) {
	lastModified := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Last-Modified", lastModified.Format(http.TimeFormat))
		w.Write([]byte(testManifest))
	}))
	defer server.Close()

	f := NewFetcher(t.TempDir(), 5*time.Second)
	manifest, got := f.Obtain(context.Background(), "org.example.foo", models.ChannelRelease, server.URL+"/dist/foo.manifest.json", false)

	if manifest == nil {
		t.Fatal("Expected manifest")
	}
	if manifest.Version != "1.2.3" {
		t.Errorf("Expected version 1.2.3, got %s", manifest.Version)
	}
	if want := server.URL + "/dist/foo_1.2.3_all.ipk"; manifest.IpkURL != want {
		t.Errorf("Expected ipkUrl %s, got %s", want, manifest.IpkURL)
	}
	if !got.Equal(lastModified) {
		t.Errorf("Expected last modified %v, got %v", lastModified, got)
	}
}

func TestObtainWithoutLastModifiedUsesNow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testManifest))
	}))
	defer server.Close()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	f := NewFetcher(t.TempDir(), 5*time.Second)
	f.now = func() time.Time { return now }

	_, got := f.Obtain(context.Background(), "org.example.foo", models.ChannelBeta, server.URL, false)
	if !got.Equal(now) {
		t.Errorf("Expected %v, got %v", now, got)
	}
}

func TestObtainOfflineUsesCache(t *testing.T) {
	lastModified := time.Date(2023, 3, 4, 5, 6, 7, 0, time.UTC)
	var requests atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Last-Modified", lastModified.Format(http.TimeFormat))
		w.Write([]byte(testManifest))
	}))
	defer server.Close()

	cacheDir := t.TempDir()
	f := NewFetcher(cacheDir, 5*time.Second)

	// Populate the cache
	if m, _ := f.Obtain(context.Background(), "org.example.foo", models.ChannelRelease, server.URL, false); m == nil {
		t.Fatal("Expected manifest from server")
	}

	manifest, got := f.Obtain(context.Background(), "org.example.foo", models.ChannelRelease, server.URL, true)
	if manifest == nil {
		t.Fatal("Expected cached manifest")
	}
	if n := requests.Load(); n != 1 {
		t.Errorf("Offline lookup should not hit the network, got %d requests", n)
	}
	if !got.Equal(lastModified) {
		t.Errorf("Expected cached last modified %v, got %v", lastModified, got)
	}
}

func TestObtainFallsBackToCacheOnServerError(t *testing.T) {
	var fail atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(testManifest))
	}))
	defer server.Close()

	f := NewFetcher(t.TempDir(), 5*time.Second)
	f.Obtain(context.Background(), "org.example.foo", models.ChannelRelease, server.URL, false)

	fail.Store(true)
	manifest, got := f.Obtain(context.Background(), "org.example.foo", models.ChannelRelease, server.URL, false)
	if manifest == nil || got.IsZero() {
		t.Fatalf("Expected cached manifest after server failure")
	}
}

func TestObtainNothingAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	f := NewFetcher(t.TempDir(), 5*time.Second)
	manifest, got := f.Obtain(context.Background(), "org.example.foo", models.ChannelRelease, server.URL, false)
	if manifest != nil || !got.IsZero() {
		t.Errorf("Expected no manifest, got %+v at %v", manifest, got)
	}

	manifest, got = f.Obtain(context.Background(), "org.example.other", models.ChannelRelease, server.URL, true)
	if manifest != nil || !got.IsZero() {
		t.Errorf("Expected no manifest offline without cache")
	}
}
