package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/iconidentify/shortsnext/internal/config"
	"github.com/iconidentify/shortsnext/internal/domain"
	"github.com/iconidentify/shortsnext/internal/extract"
	"github.com/iconidentify/shortsnext/internal/fetcher"
)

// NextRequest asks for the videos that follow a Shorts URL.
type NextRequest struct {
	URL     string
	Cookies string

	// Strategy overrides the configured default when overrides are allowed.
	Strategy extract.Strategy
}

// ShortsService runs the validate, fetch, extract pipeline.
type ShortsService struct {
	fetcher  fetcher.Fetcher
	registry *extract.Registry
	cfg      config.ExtractConfig
	logger   *slog.Logger
}

// NewShortsService creates a new shorts service.
func NewShortsService(
	f fetcher.Fetcher,
	registry *extract.Registry,
	cfg config.ExtractConfig,
	logger *slog.Logger,
) *ShortsService {
	return &ShortsService{
		fetcher:  f,
		registry: registry,
		cfg:      cfg,
		logger:   logger,
	}
}

// NewShortsServiceFromConfig wires an HTTP fetcher and every extraction
// strategy from cfg. client may be nil to use a default http.Client.
func NewShortsServiceFromConfig(cfg *config.Config, client fetcher.Doer, logger *slog.Logger) *ShortsService {
	var f *fetcher.HTTPFetcher
	if client == nil {
		f = fetcher.NewHTTPFetcher(cfg.Fetch)
	} else {
		f = fetcher.NewHTTPFetcherWithDoer(client, cfg.Fetch)
	}
	f.SetLogger(logger)

	registry := extract.NewRegistry(
		extract.NewSequenceExtractor(logger),
		extract.NewIDScanExtractor(cfg.Extract.ScanBoundary),
		extract.NewRPCReplayExtractor(f, cfg.InnerTube, logger),
	)
	return NewShortsService(f, registry, cfg.Extract, logger)
}

// DefaultStrategy returns the configured extraction strategy.
func (s *ShortsService) DefaultStrategy() extract.Strategy {
	return extract.Strategy(s.cfg.Strategy)
}

// Strategies lists the available extraction strategies.
func (s *ShortsService) Strategies() []extract.Strategy {
	return s.registry.Strategies()
}

// Next fetches the Shorts page and returns the recommended next videos.
// The source video is never part of the result.
func (s *ShortsService) Next(ctx context.Context, req NextRequest) (*domain.NextResult, error) {
	if err := validateShortsURL(req.URL); err != nil {
		return nil, err
	}

	strategy := s.DefaultStrategy()
	if req.Strategy != "" && s.cfg.AllowOverride {
		strategy = req.Strategy
	}
	extractor, err := s.registry.Get(strategy)
	if err != nil {
		return nil, err
	}

	current := extract.VideoIDFromURL(req.URL)
	start := time.Now()

	page, err := s.fetcher.FetchPage(ctx, req.URL, req.Cookies)
	if err != nil {
		return nil, err
	}

	if s.cfg.ConsentCheck && extract.IsConsentPage(page.FinalURL, page.HTML) {
		s.logger.Warn("consent page served",
			"url", req.URL,
			"final_url", page.FinalURL,
		)
		return nil, domain.ErrConsentRequired
	}

	result, err := extractor.Extract(ctx, &extract.Page{
		URL:            req.URL,
		CurrentVideoID: current,
		HTML:           page.HTML,
	})
	if err != nil {
		return nil, err
	}

	result = excludeVideo(result, current)

	s.logger.Info("extracted next videos",
		"strategy", strategy,
		"video_id", current,
		"page_status", page.StatusCode,
		"count", result.Count,
		"duration", time.Since(start),
	)

	return result, nil
}

// validateShortsURL rejects anything that is not an http(s) Shorts URL.
func validateShortsURL(raw string) error {
	if !extract.IsShortsURL(raw) {
		return domain.ErrInvalidShortsURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidShortsURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", domain.ErrInvalidShortsURL, u.Scheme)
	}
	return nil
}

// excludeVideo drops id from the result, keeping Count consistent.
func excludeVideo(res *domain.NextResult, id domain.VideoID) *domain.NextResult {
	if id == "" {
		return res
	}
	kept := make([]domain.NextVideo, 0, len(res.NextVideos))
	for _, v := range res.NextVideos {
		if v.VideoID != id {
			kept = append(kept, v)
		}
	}
	return domain.NewNextResult(kept, res.CurrentVideoID)
}
