package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arborlab/phylograph/pkg/cache"
	apperrors "github.com/arborlab/phylograph/pkg/errors"
)

func TestNewClient(t *testing.T) {
	c, _ := cache.NewFileCache(t.TempDir())
	defer c.Close()

	headers := map[string]string{"Authorization": "Bearer token"}
	client := NewClient(c, nil, headers)

	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	if client.http == nil {
		t.Error("NewClient() http client is nil")
	}
	if client.cache != c {
		t.Error("NewClient() cache not set correctly")
	}
	if client.keyer == nil {
		t.Error("NewClient() should default nil keyer")
	}
	if client.headers["Authorization"] != "Bearer token" {
		t.Error("NewClient() headers not set correctly")
	}
}

func TestNewClientNilCache(t *testing.T) {
	client := NewClient(nil, nil, nil)
	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	if client.cache == nil {
		t.Error("NewClient() should default nil cache to NullCache")
	}
}

func TestClientFetch(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.Write([]byte("((A:1,B:2):3);"))
	}))
	defer server.Close()

	c, _ := cache.NewFileCache(t.TempDir())
	defer c.Close()

	client := NewClient(c, nil, nil)
	client.http = server.Client()

	data, cached, err := client.Fetch(context.Background(), server.URL, false)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if cached {
		t.Error("first Fetch() should not be cached")
	}
	if string(data) != "((A:1,B:2):3);" {
		t.Errorf("Fetch() = %q, want newick document", data)
	}

	// Second fetch hits the cache and never reaches the server.
	data, cached, err = client.Fetch(context.Background(), server.URL, false)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if !cached {
		t.Error("second Fetch() should be cached")
	}
	if string(data) != "((A:1,B:2):3);" {
		t.Errorf("cached Fetch() = %q, want newick document", data)
	}
	if requests != 1 {
		t.Errorf("server requests = %d, want 1", requests)
	}
}

func TestClientFetchRefresh(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte("(A:1);"))
	}))
	defer server.Close()

	c, _ := cache.NewFileCache(t.TempDir())
	defer c.Close()

	client := NewClient(c, nil, nil)
	client.http = server.Client()

	ctx := context.Background()
	if _, _, err := client.Fetch(ctx, server.URL, false); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	_, cached, err := client.Fetch(ctx, server.URL, true)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if cached {
		t.Error("refresh Fetch() should bypass the cache")
	}
	if requests != 2 {
		t.Errorf("server requests = %d, want 2", requests)
	}
}

func TestClientFetchHeaders(t *testing.T) {
	var receivedHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedHeader = r.Header.Get("Accept")
		w.Write([]byte("(A:1);"))
	}))
	defer server.Close()

	client := NewClient(nil, nil, map[string]string{"Accept": "text/plain"})
	client.http = server.Client()

	if _, _, err := client.Fetch(context.Background(), server.URL, false); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if receivedHeader != "text/plain" {
		t.Errorf("Accept header = %q, want %q", receivedHeader, "text/plain")
	}
}

func TestClientFetch404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(nil, nil, nil)
	client.http = server.Client()

	_, _, err := client.Fetch(context.Background(), server.URL, false)
	if !errors.Is(err, cache.ErrNotFound) {
		t.Errorf("Fetch() error = %v, want ErrNotFound", err)
	}
}

func TestClientFetch400(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(nil, nil, nil)
	client.http = server.Client()

	_, _, err := client.Fetch(context.Background(), server.URL, false)
	if !errors.Is(err, cache.ErrNetwork) {
		t.Errorf("Fetch() error = %v, want ErrNetwork", err)
	}
	if cache.IsRetryable(err) {
		t.Error("4xx errors should not be retryable")
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		name       string
		code       int
		wantErr    bool
		wantType   error
		isRetryErr bool
	}{
		{
			name:    "200 OK",
			code:    200,
			wantErr: false,
		},
		{
			name:     "404 Not Found",
			code:     404,
			wantErr:  true,
			wantType: cache.ErrNotFound,
		},
		{
			name:       "429 Too Many Requests",
			code:       429,
			wantErr:    true,
			isRetryErr: true,
		},
		{
			name:       "500 Internal Server Error",
			code:       500,
			wantErr:    true,
			isRetryErr: true,
		},
		{
			name:       "502 Bad Gateway",
			code:       502,
			wantErr:    true,
			isRetryErr: true,
		},
		{
			name:       "503 Service Unavailable",
			code:       503,
			wantErr:    true,
			isRetryErr: true,
		},
		{
			name:    "400 Bad Request",
			code:    400,
			wantErr: true,
		},
		{
			name:    "403 Forbidden",
			code:    403,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkStatus(tt.code, http.Header{})

			if tt.wantErr {
				if err == nil {
					t.Error("checkStatus() should return error")
				}
				if tt.wantType != nil && !errors.Is(err, tt.wantType) {
					t.Errorf("checkStatus() error = %v, want %v", err, tt.wantType)
				}
				if tt.isRetryErr && !cache.IsRetryable(err) {
					t.Errorf("checkStatus() error should be retryable, got %T", err)
				}
			} else {
				if err != nil {
					t.Errorf("checkStatus() unexpected error: %v", err)
				}
			}
		})
	}
}

func TestCheckStatusRateLimited(t *testing.T) {
	header := http.Header{}
	header.Set("Retry-After", "60")

	err := checkStatus(http.StatusTooManyRequests, header)
	if err == nil {
		t.Fatal("checkStatus() should return error for 429")
	}

	var rle *apperrors.RateLimitedError
	if !errors.As(err, &rle) {
		t.Fatalf("checkStatus() error should be RateLimitedError, got %T", err)
	}
	if rle.RetryAfter != 60 {
		t.Errorf("RetryAfter = %d, want 60", rle.RetryAfter)
	}
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"http", "http://example.org/arg.nwk", true},
		{"https", "https://example.org/arg.nwk", true},
		{"relative path", "testdata/arg.nwk", false},
		{"absolute path", "/tmp/arg.nwk", false},
		{"ftp", "ftp://example.org/arg.nwk", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsURL(tt.input); got != tt.want {
				t.Errorf("IsURL(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewHTTPClient(t *testing.T) {
	client := NewHTTPClient()
	if client == nil {
		t.Fatal("NewHTTPClient() returned nil")
	}
	if client.Timeout != httpTimeout {
		t.Errorf("Timeout = %v, want %v", client.Timeout, httpTimeout)
	}
}
