package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"

	"github.com/iconidentify/shortsnext/internal/config"
	"github.com/iconidentify/shortsnext/internal/domain"
)

// Keys reported in ExtractionError.DebugKeys when credentials are missing.
const (
	DebugKeyAPIKey         = "apiKey"
	DebugKeySequenceParams = "sequenceParams"
)

var (
	apiKeyPattern         = regexp.MustCompile(`"INNERTUBE_API_KEY"\s*:\s*"([^"]+)"`)
	clientVersionPattern  = regexp.MustCompile(`"INNERTUBE_CLIENT_VERSION"\s*:\s*"([^"]+)"`)
	sequenceParamsPattern = regexp.MustCompile(`"sequenceParams"\s*:\s*"([^"]+)"`)
)

// JSONPoster sends a JSON POST and returns the response body.
type JSONPoster interface {
	PostJSON(ctx context.Context, rawURL string, payload any) ([]byte, error)
}

// Credentials are the page values needed to replay the sequence RPC.
type Credentials struct {
	APIKey         string
	ClientVersion  string
	SequenceParams string
}

type reelSequenceRequest struct {
	Context innertubeContext `json:"context"`
	Params  string           `json:"params"`
}

type innertubeContext struct {
	Client innertubeClient `json:"client"`
}

type innertubeClient struct {
	ClientName    string `json:"clientName"`
	ClientVersion string `json:"clientVersion"`
	HL            string `json:"hl"`
	GL            string `json:"gl"`
}

// RPCReplayExtractor pulls InnerTube credentials from the page and replays
// the reel_watch_sequence call that the Shorts player makes.
type RPCReplayExtractor struct {
	poster JSONPoster
	cfg    config.InnerTubeConfig
	logger *slog.Logger
}

// NewRPCReplayExtractor creates a new RPCReplayExtractor.
func NewRPCReplayExtractor(poster JSONPoster, cfg config.InnerTubeConfig, logger *slog.Logger) *RPCReplayExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &RPCReplayExtractor{
		poster: poster,
		cfg:    cfg,
		logger: logger,
	}
}

// Strategy implements Extractor.
func (e *RPCReplayExtractor) Strategy() Strategy {
	return StrategyRPC
}

// Extract implements Extractor.
func (e *RPCReplayExtractor) Extract(ctx context.Context, page *Page) (*domain.NextResult, error) {
	creds, err := e.Credentials(page.HTML)
	if err != nil {
		return nil, err
	}

	endpoint := e.cfg.Endpoint + "?key=" + url.QueryEscape(creds.APIKey)
	payload := reelSequenceRequest{
		Context: innertubeContext{
			Client: innertubeClient{
				ClientName:    e.cfg.ClientName,
				ClientVersion: creds.ClientVersion,
				HL:            e.cfg.HL,
				GL:            e.cfg.GL,
			},
		},
		Params: creds.SequenceParams,
	}

	e.logger.Debug("replaying reel watch sequence",
		"client_version", creds.ClientVersion,
		"video_id", page.CurrentVideoID,
	)

	body, err := e.poster.PostJSON(ctx, endpoint, payload)
	if err != nil {
		return nil, domain.NewExtractionError(string(StrategyRPC), "reel watch sequence", err)
	}

	var resp sequenceResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, domain.NewExtractionError(string(StrategyRPC), "parse reel watch sequence",
			fmt.Errorf("%w: %w", domain.ErrMalformedJSON, err))
	}

	return domain.NewNextResult(normalizeEntries(resp.Entries, labelMetadata), page.CurrentVideoID), nil
}

// Credentials extracts the API key, client version and continuation token.
// Script bodies are searched first, then the hex-decoded page, since the
// token usually sits inside the escaped sequence variable.
func (e *RPCReplayExtractor) Credentials(html string) (*Credentials, error) {
	scripts := scriptText(html)
	decoded := DecodeHexEscapes(html)

	creds := &Credentials{
		APIKey:         findFirst(apiKeyPattern, scripts, decoded),
		ClientVersion:  findFirst(clientVersionPattern, scripts, decoded),
		SequenceParams: findFirst(sequenceParamsPattern, scripts, decoded),
	}
	if creds.ClientVersion == "" {
		creds.ClientVersion = e.cfg.FallbackVersion
	}

	if creds.APIKey != "" && creds.SequenceParams != "" {
		return creds, nil
	}

	var err error
	switch {
	case creds.APIKey == "" && creds.SequenceParams == "":
		err = fmt.Errorf("%w; %w", domain.ErrAPIKeyNotFound, domain.ErrContinuationNotFound)
	case creds.APIKey == "":
		err = domain.ErrAPIKeyNotFound
	default:
		err = domain.ErrContinuationNotFound
	}

	extErr := domain.NewExtractionError(string(StrategyRPC), "extract credentials", err)
	extErr.DebugKeys = map[string]bool{
		DebugKeyAPIKey:         creds.APIKey != "",
		DebugKeySequenceParams: creds.SequenceParams != "",
	}
	return nil, extErr
}
