package extract

import (
	"context"
	"regexp"

	"github.com/iconidentify/shortsnext/internal/domain"
)

var (
	// scanBoundedPattern requires a closing quote or backslash after the ID.
	scanBoundedPattern = regexp.MustCompile(`shorts(?:\\/|/)([A-Za-z0-9_-]{11})["\\]`)
	scanLoosePattern   = regexp.MustCompile(`shorts(?:\\/|/)([A-Za-z0-9_-]{11})`)
)

// IDScanExtractor scans the whole page for shorts/<id> references.
// Only IDs are recoverable this way, so records carry no title or author.
type IDScanExtractor struct {
	pattern *regexp.Regexp
}

// NewIDScanExtractor creates a scanner. With boundary set, a match must be
// followed by a quote or backslash.
func NewIDScanExtractor(boundary bool) *IDScanExtractor {
	p := scanLoosePattern
	if boundary {
		p = scanBoundedPattern
	}
	return &IDScanExtractor{pattern: p}
}

// Strategy implements Extractor.
func (e *IDScanExtractor) Strategy() Strategy {
	return StrategyScan
}

// Extract implements Extractor.
func (e *IDScanExtractor) Extract(ctx context.Context, page *Page) (*domain.NextResult, error) {
	ids := e.scan(page.HTML, page.CurrentVideoID)

	videos := make([]domain.NextVideo, 0, len(ids))
	for _, id := range ids {
		videos = append(videos, domain.NextVideo{
			VideoID:   id,
			URL:       domain.ShortsURL(id),
			Thumbnail: domain.ThumbnailURL(id),
		})
	}
	return domain.NewNextResult(videos, page.CurrentVideoID), nil
}

// scan returns the unique matched IDs in first-seen order, never including
// exclude.
func (e *IDScanExtractor) scan(html string, exclude domain.VideoID) []domain.VideoID {
	seen := make(map[domain.VideoID]bool)
	var ids []domain.VideoID
	for _, m := range e.pattern.FindAllStringSubmatch(html, -1) {
		id := domain.VideoID(m[1])
		if id == exclude || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}
