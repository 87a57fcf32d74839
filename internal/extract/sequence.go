package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/iconidentify/shortsnext/internal/domain"
)

var sequenceVarPattern = regexp.MustCompile(`var ytInitialReelWatchSequenceResponse\s*=\s*'([^']+)';`)

// SequenceExtractor reads the hex-escaped ytInitialReelWatchSequenceResponse
// variable embedded in the watch page.
type SequenceExtractor struct {
	logger *slog.Logger
}

// NewSequenceExtractor creates a new SequenceExtractor.
func NewSequenceExtractor(logger *slog.Logger) *SequenceExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &SequenceExtractor{logger: logger}
}

// Strategy implements Extractor.
func (e *SequenceExtractor) Strategy() Strategy {
	return StrategySequence
}

// Extract implements Extractor.
func (e *SequenceExtractor) Extract(ctx context.Context, page *Page) (*domain.NextResult, error) {
	m := sequenceVarPattern.FindStringSubmatch(page.HTML)
	if len(m) < 2 {
		return nil, domain.NewExtractionError(string(StrategySequence), "locate sequence", domain.ErrSequenceNotFound)
	}

	resp, err := e.parse(DecodeHexEscapes(m[1]))
	if err != nil {
		return nil, domain.NewExtractionError(string(StrategySequence), "parse sequence", err)
	}

	current := page.CurrentVideoID
	if resp.ReplacementEndpoint != nil && resp.ReplacementEndpoint.ReelWatchEndpoint != nil &&
		resp.ReplacementEndpoint.ReelWatchEndpoint.VideoID != "" {
		current = domain.VideoID(resp.ReplacementEndpoint.ReelWatchEndpoint.VideoID)
	}

	return domain.NewNextResult(normalizeEntries(resp.Entries, placeholderMetadata), current), nil
}

// parse decodes the sequence JSON, retrying once after collapsing escaped
// quotes and backslashes.
func (e *SequenceExtractor) parse(data string) (*sequenceResponse, error) {
	var resp sequenceResponse
	err := json.Unmarshal([]byte(data), &resp)
	if err == nil {
		return &resp, nil
	}

	e.logger.Debug("sequence JSON invalid, retrying with unescape fallback", "error", err)

	resp = sequenceResponse{}
	if err := json.Unmarshal([]byte(unescapeJSONFallback(data)), &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedJSON, err)
	}
	return &resp, nil
}
