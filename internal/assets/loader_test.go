package assets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoader(t *testing.T, root string) *Loader {
	t.Helper()
	return NewLoader(root, 2*time.Second, zerolog.Nop())
}

func TestLoad_RemoteSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("image-bytes"))
	}))
	defer server.Close()

	loader := newTestLoader(t, t.TempDir())
	data := loader.Load(context.Background(), NewCache(), server.URL+"/photo.jpg")

	assert.Equal(t, []byte("image-bytes"), data)
}

func TestLoad_RemoteNon2xxIsAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	loader := newTestLoader(t, t.TempDir())
	assert.Nil(t, loader.Load(context.Background(), NewCache(), server.URL+"/missing.jpg"))
}

func TestLoad_UnreachableURLIsAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	loader := newTestLoader(t, t.TempDir())
	assert.Nil(t, loader.Load(context.Background(), NewCache(), url+"/gone.jpg"))
}

func TestLoad_CacheHitSkipsIO(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte("logo"))
	}))
	defer server.Close()

	loader := newTestLoader(t, t.TempDir())
	cache := NewCache()
	url := server.URL + "/logo.png"

	first := loader.Load(context.Background(), cache, url)
	second := loader.Load(context.Background(), cache, url)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, 1, cache.Len())
}

func TestLoad_AbsentResultIsCachedToo(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	loader := newTestLoader(t, t.TempDir())
	cache := NewCache()
	url := server.URL + "/broken.jpg"

	assert.Nil(t, loader.Load(context.Background(), cache, url))
	assert.Nil(t, loader.Load(context.Background(), cache, url))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestLoad_LocalFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "hall.jpg"), []byte("local-bytes"), 0o644))

	loader := newTestLoader(t, root)
	data := loader.Load(context.Background(), NewCache(), "hall.jpg")

	assert.Equal(t, []byte("local-bytes"), data)
}

func TestLoad_LegacyPrefixNormalization(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "photos"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "photos", "dock.jpg"), []byte("dock"), 0o644))

	loader := newTestLoader(t, root)
	for _, ref := range []string{
		"/api/v1/uploads/photos/dock.jpg",
		"/api/uploads/photos/dock.jpg",
		"/uploads/photos/dock.jpg",
		"uploads/photos/dock.jpg",
	} {
		assert.Equal(t, []byte("dock"), loader.Load(context.Background(), NewCache(), ref), "ref %s", ref)
	}
}

func TestLoad_MissingFileIsAbsent(t *testing.T) {
	loader := newTestLoader(t, t.TempDir())
	assert.Nil(t, loader.Load(context.Background(), NewCache(), "nope.jpg"))
}

func TestLoad_EmptyRef(t *testing.T) {
	loader := newTestLoader(t, t.TempDir())
	cache := NewCache()
	assert.Nil(t, loader.Load(context.Background(), cache, ""))
	assert.Zero(t, cache.Len())
}
