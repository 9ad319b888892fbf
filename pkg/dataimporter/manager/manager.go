package manager

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/findmybus/findmybus/pkg/config"
	"github.com/imroc/req/v3"
	"github.com/rs/zerolog/log"
)

var ErrFeedNotConfigured = errors.New("feed url is not configured")

// Fetcher downloads a whole feed into memory
type Fetcher interface {
	Fetch(ctx context.Context, source string) ([]byte, error)
}

type HTTPFetcher struct {
	client *req.Client
}

func NewHTTPFetcher(httpConfig config.HTTPConfig) *HTTPFetcher {
	timeout := httpConfig.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}

	userAgent := httpConfig.UserAgent
	if userAgent == "" {
		userAgent = config.DefaultUserAgent
	}

	// Feeds are often served through CDNs that happily hand back stale copies
	client := req.C().
		SetTimeout(timeout).
		SetUserAgent(userAgent).
		SetCommonHeaders(map[string]string{
			"Cache-Control": "no-cache, no-store, must-revalidate",
			"Pragma":        "no-cache",
			"Expires":       "0",
		})

	return &HTTPFetcher{client: client}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	if source == "" {
		return nil, ErrFeedNotConfigured
	}
	if !isValidUrl(source) {
		return nil, fmt.Errorf("invalid feed url %q", source)
	}

	startTime := time.Now()

	resp, err := f.client.R().
		SetContext(ctx).
		Get(source)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", source, err)
	}

	if !resp.IsSuccessState() {
		return nil, fmt.Errorf("download %s: unexpected status %d", source, resp.StatusCode)
	}

	body, err := resp.ToBytes()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}

	log.Info().
		Str("source", source).
		Str("size", fmt.Sprintf("%.2fMB", float64(len(body))/1024/1024)).
		Str("length", time.Since(startTime).String()).
		Msg("Downloaded feed")

	return body, nil
}

func isValidUrl(toTest string) bool {
	_, err := url.ParseRequestURI(toTest)
	if err != nil {
		return false
	}

	u, err := url.Parse(toTest)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}
