// Package remote fetches shared manifests over HTTP and keeps a local copy
// so generation keeps working when the network does not.
//
// A successful fetch replaces the cache. A failed fetch falls back to the
// cache and reports a [*StaleError] alongside the cached bytes.
package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"tools.zach/dev/colorset/internal/atomicfile"
)

// MaxBodyBytes caps the size of a fetched manifest.
const MaxBodyBytes = 1 << 20

// defaultClient is shared by every [Fetch] call. Initialized once.
var (
	defaultClient     *retryablehttp.Client
	defaultClientOnce sync.Once
)

// DefaultClient returns the shared retryable HTTP client.
func DefaultClient() *retryablehttp.Client {
	defaultClientOnce.Do(func() {
		defaultClient = retryablehttp.NewClient()
		defaultClient.RetryMax = 2
		defaultClient.HTTPClient.Timeout = 10 * time.Second
		defaultClient.Logger = nil
	})
	return defaultClient
}

// IsURL reports whether s names an http or https resource.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// ///////////////////////////////////////////////
// Errors
// ///////////////////////////////////////////////

// StaleError is returned together with cached bytes when the live fetch
// failed. Callers may continue with the data and report the error.
type StaleError struct {
	URL string
	Err error
}

func (e *StaleError) Error() string {
	return fmt.Sprintf("using cached copy of %s: %v", e.URL, e.Err)
}

func (e *StaleError) Unwrap() error { return e.Err }

// IsStale reports whether err only signals a cache fallback.
func IsStale(err error) bool {
	var se *StaleError
	return errors.As(err, &se)
}

// ///////////////////////////////////////////////
// Fetcher
// ///////////////////////////////////////////////

// Fetcher downloads a URL and mirrors it to a cache file.
type Fetcher struct {
	// Client defaults to [DefaultClient].
	Client *retryablehttp.Client
}

// Fetch downloads url and writes it to cachePath. When the download fails,
// the cached copy is returned with a [*StaleError]. When both fail, the error
// names both causes and no data is returned.
func (f *Fetcher) Fetch(ctx context.Context, url, cachePath string) ([]byte, error) {
	body, err := f.get(ctx, url)
	if err == nil {
		if cacheErr := writeCache(cachePath, body); cacheErr != nil {
			slog.Warn("failed to write remote cache", "path", cachePath, "error", cacheErr)
		}
		return body, nil
	}
	slog.Warn("remote fetch failed, trying cache", "url", url, "error", err)

	cached, cacheErr := os.ReadFile(cachePath)
	if cacheErr == nil {
		return cached, &StaleError{URL: url, Err: err}
	}
	return nil, fmt.Errorf("fetch %s: %w; cache: %w", url, err, cacheErr)
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = DefaultClient()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", url, err)
	}
	if len(body) > MaxBodyBytes {
		return nil, fmt.Errorf("response from %s exceeds %d bytes", url, MaxBodyBytes)
	}
	return body, nil
}

func writeCache(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return atomicfile.Write(path, data, 0o644)
}

// Fetch calls [Fetcher.Fetch] with the default client.
func Fetch(ctx context.Context, url, cachePath string) ([]byte, error) {
	return (&Fetcher{}).Fetch(ctx, url, cachePath)
}
