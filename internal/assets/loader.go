package assets

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Legacy upload references kept their API prefix when they were stored;
// all of them live under the same storage root on disk.
var legacyPrefixes = []string{
	"/api/v1/uploads/",
	"/api/uploads/",
	"/uploads/",
	"uploads/",
}

// Loader resolves a string reference (local storage path or http(s) URL)
// to raw bytes. Every failure resolves to nil ("absent"); a missing photo
// must never fail the document.
type Loader struct {
	root   string
	client *http.Client
	log    zerolog.Logger
}

func NewLoader(storageRoot string, timeout time.Duration, log zerolog.Logger) *Loader {
	return &Loader{
		root:   storageRoot,
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// Load resolves ref through the per-call cache. A cache hit is returned as
// is, even when the cached result is absent.
func (l *Loader) Load(ctx context.Context, cache *Cache, ref string) []byte {
	if ref == "" {
		return nil
	}
	if data, ok := cache.get(ref); ok {
		return data
	}

	var data []byte
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		data = l.fetchRemote(ctx, ref)
	} else {
		data = l.readLocal(ref)
	}

	cache.put(ref, data)
	return data
}

func (l *Loader) fetchRemote(ctx context.Context, url string) []byte {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		l.log.Debug().Err(err).Str("url", url).Msg("asset request build failed")
		return nil
	}
	resp, err := l.client.Do(req)
	if err != nil {
		l.log.Debug().Err(err).Str("url", url).Msg("asset fetch failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		l.log.Debug().Int("status", resp.StatusCode).Str("url", url).Msg("asset fetch non-2xx")
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		l.log.Debug().Err(err).Str("url", url).Msg("asset body read failed")
		return nil
	}
	return data
}

func (l *Loader) readLocal(ref string) []byte {
	data, err := os.ReadFile(l.localPath(ref))
	if err != nil {
		l.log.Debug().Err(err).Str("ref", ref).Msg("asset file read failed")
		return nil
	}
	return data
}

func (l *Loader) localPath(ref string) string {
	for _, prefix := range legacyPrefixes {
		if strings.HasPrefix(ref, prefix) {
			return filepath.Join(l.root, strings.TrimPrefix(ref, prefix))
		}
	}
	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(l.root, ref)
}
