package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/iconidentify/shortsnext/internal/config"
	"github.com/iconidentify/shortsnext/internal/domain"
)

// HTTPFetcher implements Fetcher using plain HTTP requests.
type HTTPFetcher struct {
	client Doer
	cfg    config.FetchConfig
	logger *slog.Logger
}

// NewHTTPFetcher creates a fetcher backed by an http.Client with the
// configured timeout.
func NewHTTPFetcher(cfg config.FetchConfig) *HTTPFetcher {
	return NewHTTPFetcherWithDoer(&http.Client{Timeout: cfg.Timeout}, cfg)
}

// NewHTTPFetcherWithDoer creates a fetcher that sends requests through client.
func NewHTTPFetcherWithDoer(client Doer, cfg config.FetchConfig) *HTTPFetcher {
	return &HTTPFetcher{
		client: client,
		cfg:    cfg,
		logger: slog.Default(),
	}
}

// SetLogger sets the logger used for request tracing.
func (f *HTTPFetcher) SetLogger(logger *slog.Logger) {
	f.logger = logger
}

// FetchPage GETs the page. Any status code is accepted; only transport
// failures are reported as errors.
func (f *HTTPFetcher) FetchPage(ctx context.Context, rawURL, cookies string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", domain.ErrFetchFailed, err)
	}

	// Set headers to mimic a desktop browser
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", f.cfg.AcceptLanguage)
	if cookies == "" {
		cookies = f.cfg.Cookies
	}
	if cookies != "" {
		req.Header.Set("Cookie", cookies)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", domain.ErrFetchFailed, err)
	}

	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	f.logger.Debug("page fetched",
		"url", rawURL,
		"final_url", finalURL,
		"status", resp.StatusCode,
		"size", len(body),
	)

	return &Page{
		FinalURL:   finalURL,
		StatusCode: resp.StatusCode,
		HTML:       string(body),
	}, nil
}

// PostJSON POSTs payload and returns the body of a 2xx response.
func (f *HTTPFetcher) PostJSON(ctx context.Context, rawURL string, payload any) ([]byte, error) {
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", domain.ErrInnerTubeFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept-Language", f.cfg.AcceptLanguage)
	req.Header.Set("Origin", "https://www.youtube.com")
	req.Header.Set("Referer", "https://www.youtube.com/")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInnerTubeFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("%w: HTTP %d: %s", domain.ErrInnerTubeFailed, resp.StatusCode, snippet)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", domain.ErrInnerTubeFailed, err)
	}
	return body, nil
}
