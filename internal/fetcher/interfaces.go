package fetcher

import (
	"context"
	"net/http"
)

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher retrieves Shorts pages and replays InnerTube calls.
type Fetcher interface {
	// FetchPage GETs rawURL with browser headers. cookies overrides the
	// configured consent cookie when non-empty.
	FetchPage(ctx context.Context, rawURL, cookies string) (*Page, error)

	// PostJSON POSTs payload as JSON and returns the raw response body.
	PostJSON(ctx context.Context, rawURL string, payload any) ([]byte, error)
}

// Page is a fetched HTML document.
type Page struct {
	// FinalURL is the URL after redirects.
	FinalURL   string
	StatusCode int
	HTML       string
}
