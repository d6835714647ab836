// Package httputil fetches remote graph documents over HTTP.
//
// # Overview
//
// This package provides the transport layer used whenever a pipeline or
// CLI input is an http(s) URL instead of a local file:
//
//   - [Client]: cached, retrying document fetches
//   - [IsURL]: input classification for load paths
//
// # Caching
//
// [Client.Fetch] reads through a [cache.Cache] keyed by the source URL,
// so repeated renders of the same remote document skip the network
// entirely. Fetched documents are stored with [cache.TTLSource]; pass
// refresh=true to bypass the cache and force a re-fetch.
//
// Usage:
//
//	client := httputil.NewClient(fileCache, nil, nil)
//	data, cached, err := client.Fetch(ctx, "https://example.org/arg.nwk", false)
//
// # Retry
//
// Transient failures are retried with exponential backoff via
// [cache.RetryWithBackoff]:
//
//   - Network errors (timeouts, connection failures)
//   - 5xx server errors
//   - 429 rate limit responses
//
// Non-transient failures return immediately: a 404 maps to
// [cache.ErrNotFound] and other 4xx responses wrap [cache.ErrNetwork]
// without retrying.
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Request timeout: 30 seconds
//   - Source TTL: 24 hours
//   - Max retries: 3
//   - Base backoff: 1 second
//
// The cache can be cleared via `phylograph cache clear` or by deleting
// the cache directory.
package httputil
