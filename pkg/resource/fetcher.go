package resource

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	stdnet "l14ui/std/net"
)

// Fetcher retrieves resources by URI.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) (body []byte, contentType string, err error)
}

// DefaultFetcher fetches resources over HTTP/HTTPS or from the local file
// system, resolving relative URIs against a base URL.
type DefaultFetcher struct {
	baseURL string
	client  *stdnet.Client
	timeout time.Duration
	logger  *zap.Logger

	group singleflight.Group
	wg    sync.WaitGroup
}

// NewFetcher creates a DefaultFetcher with the given base URL.
// Relative URIs passed to Fetch will be resolved against this base.
func NewFetcher(baseURL string, client *stdnet.Client, timeout time.Duration, logger *zap.Logger) *DefaultFetcher {
	if client == nil {
		client = stdnet.NewClient(timeout, "")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultFetcher{
		baseURL: baseURL,
		client:  client,
		timeout: timeout,
		logger:  logger.Named("fetch"),
	}
}

// Resolve returns the absolute form of uri.
func (f *DefaultFetcher) Resolve(uri string) string {
	if stdnet.IsNetworkURL(uri) || stdnet.IsFileURL(uri) || f.baseURL == "" {
		return uri
	}
	return stdnet.ResolveURL(f.baseURL, uri)
}

// Fetch retrieves the resource at the given URI.
// Relative URIs are resolved against the fetcher's base URL.
func (f *DefaultFetcher) Fetch(ctx context.Context, uri string) ([]byte, string, error) {
	resolved := f.Resolve(uri)
	switch {
	case stdnet.IsNetworkURL(resolved):
		return f.client.Fetch(ctx, resolved)
	case stdnet.IsFileURL(resolved):
		u, err := url.Parse(resolved)
		if err != nil {
			return nil, "", fmt.Errorf("parsing %s: %w", resolved, err)
		}
		return readFile(u.Path)
	case resolved != "" && !strings.Contains(resolved, "://"):
		return readFile(resolved)
	}
	return nil, "", fmt.Errorf("cannot fetch URI: %s", resolved)
}

func readFile(path string) ([]byte, string, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}
	return body, "", nil
}

// FetchText fetches uri and returns its text content. Concurrent requests for
// the same resolved URI share one fetch. Returns an error if the content type
// does not look like text.
func (f *DefaultFetcher) FetchText(ctx context.Context, uri string) (string, error) {
	resolved := f.Resolve(uri)
	v, err, shared := f.group.Do(resolved, func() (any, error) {
		body, contentType, err := f.Fetch(ctx, resolved)
		if err != nil {
			return "", err
		}
		if !isTextual(contentType) {
			return "", fmt.Errorf("unexpected content type for %s: %s", resolved, contentType)
		}
		return string(body), nil
	})
	if shared {
		f.logger.Debug("shared fetch", zap.String("url", resolved))
	}
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// FetchTextAsync runs FetchText on its own goroutine and calls done exactly
// once with the result. done runs off the caller's goroutine; callers marshal
// the result back themselves.
func (f *DefaultFetcher) FetchTextAsync(ctx context.Context, uri string, done func(text string, err error)) {
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		if f.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, f.timeout)
			defer cancel()
		}
		start := time.Now()
		text, err := f.FetchText(ctx, uri)
		if err != nil {
			f.logger.Warn("fetch failed", zap.String("url", uri), zap.Error(err))
		} else {
			f.logger.Debug("fetched", zap.String("url", uri), zap.Int("bytes", len(text)), zap.Duration("took", time.Since(start)))
		}
		done(text, err)
	}()
}

// Wait blocks until every asynchronous fetch has delivered its result.
func (f *DefaultFetcher) Wait() {
	f.wg.Wait()
}

func isTextual(contentType string) bool {
	ct := strings.ToLower(contentType)
	if ct == "" || strings.HasPrefix(ct, "text/") {
		return true
	}
	for _, s := range []string{"javascript", "ecmascript", "json", "css"} {
		if strings.Contains(ct, s) {
			return true
		}
	}
	return false
}
