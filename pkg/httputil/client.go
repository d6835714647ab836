package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/arborlab/phylograph/pkg/cache"
	apperrors "github.com/arborlab/phylograph/pkg/errors"
	"github.com/arborlab/phylograph/pkg/observability"
)

const httpTimeout = 30 * time.Second

// NewHTTPClient creates an HTTP client with a standard timeout for
// document fetches.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// IsURL reports whether input looks like a remote http(s) document
// rather than a local file path.
func IsURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// Client fetches remote graph documents over HTTP.
// It handles caching, retry logic, and common request headers.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	keyer   cache.Keyer
	headers map[string]string
}

// NewClient creates a Client backed by the given cache and keyer.
// A nil cache disables caching (NullCache) and a nil keyer falls back to
// the default key scheme. Pass nil for headers if no default headers are
// needed.
func NewClient(c cache.Cache, k cache.Keyer, headers map[string]string) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	if k == nil {
		k = cache.NewDefaultKeyer()
	}
	return &Client{
		http:    NewHTTPClient(),
		cache:   c,
		keyer:   k,
		headers: headers,
	}
}

// Fetch retrieves the document at url, consulting the cache first.
// If refresh is true the cache is bypassed and the document is always
// re-fetched. The returned bool reports whether the result came from
// cache. Transient failures (network errors, 5xx, 429) are retried with
// exponential backoff before giving up.
func (c *Client) Fetch(ctx context.Context, url string, refresh bool) ([]byte, bool, error) {
	key := c.keyer.SourceKey(url)
	if !refresh {
		if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
			observability.Cache().OnCacheHit(ctx, "source")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "source")
	}

	var data []byte
	err := cache.RetryWithBackoff(ctx, func() error {
		var fetchErr error
		data, fetchErr = c.doRequest(ctx, url)
		return fetchErr
	})
	if err != nil {
		return nil, false, err
	}

	if err := c.cache.Set(ctx, key, data, cache.TTLSource); err == nil {
		observability.Cache().OnCacheSet(ctx, "source", len(data))
	}
	return data, false, nil
}

func (c *Client) doRequest(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	observability.HTTP().OnRequest(ctx, http.MethodGet, req.URL.Host, req.URL.Path)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodGet, req.URL.Host, req.URL.Path, err)
		return nil, cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, http.MethodGet, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode, resp.Header); err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}

func checkStatus(code int, header http.Header) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return cache.ErrNotFound
	case code == http.StatusTooManyRequests:
		retryAfter, _ := strconv.Atoi(header.Get("Retry-After"))
		return cache.Retryable(&apperrors.RateLimitedError{RetryAfter: retryAfter})
	case code >= 500:
		return cache.Retryable(fmt.Errorf("%w: status %d", cache.ErrNetwork, code))
	default:
		return fmt.Errorf("%w: status %d", cache.ErrNetwork, code)
	}
}
