package extract

import (
	"strings"

	"github.com/iconidentify/shortsnext/internal/domain"
)

// sequenceResponse is the reel watch sequence document, both as embedded in
// the page and as returned by the InnerTube endpoint.
type sequenceResponse struct {
	Entries             []sequenceEntry `json:"entries"`
	ReplacementEndpoint *struct {
		ReelWatchEndpoint *reelWatchEndpoint `json:"reelWatchEndpoint"`
	} `json:"replacementEndpoint"`
}

type sequenceEntry struct {
	ReelWatchEndpoint *reelWatchEndpoint `json:"reelWatchEndpoint"`
	Command           *struct {
		ReelWatchEndpoint *reelWatchEndpoint `json:"reelWatchEndpoint"`
	} `json:"command"`
	UnserializedPrefetchData *struct {
		PlayerResponse *struct {
			VideoDetails *videoDetails `json:"videoDetails"`
		} `json:"playerResponse"`
	} `json:"unserializedPrefetchData"`
	Accessibility *accessibility `json:"accessibility"`
}

type reelWatchEndpoint struct {
	VideoID   string `json:"videoId"`
	Thumbnail struct {
		Thumbnails []struct {
			URL    string `json:"url"`
			Width  int    `json:"width"`
			Height int    `json:"height"`
		} `json:"thumbnails"`
	} `json:"thumbnail"`
	SequenceParams string         `json:"sequenceParams"`
	Accessibility  *accessibility `json:"accessibility"`
	Overlay        *struct {
		ReelPlayerOverlayRenderer *struct {
			Accessibility *accessibility `json:"accessibility"`
		} `json:"reelPlayerOverlayRenderer"`
	} `json:"overlay"`
}

type videoDetails struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	ViewCount string `json:"viewCount"`
}

type accessibility struct {
	AccessibilityData struct {
		Label string `json:"label"`
	} `json:"accessibilityData"`
}

func (a *accessibility) label() string {
	if a == nil {
		return ""
	}
	return strings.TrimSpace(a.AccessibilityData.Label)
}

// endpoint returns the entry's watch endpoint from either known location.
func (e *sequenceEntry) endpoint() *reelWatchEndpoint {
	if e.ReelWatchEndpoint != nil {
		return e.ReelWatchEndpoint
	}
	if e.Command != nil {
		return e.Command.ReelWatchEndpoint
	}
	return nil
}

func (e *sequenceEntry) details() *videoDetails {
	if e.UnserializedPrefetchData == nil || e.UnserializedPrefetchData.PlayerResponse == nil {
		return nil
	}
	return e.UnserializedPrefetchData.PlayerResponse.VideoDetails
}

// accessibilityLabel joins the distinct labels found on the entry.
func (e *sequenceEntry) accessibilityLabel() string {
	var labels []string
	seen := make(map[string]bool)
	add := func(l string) {
		if l != "" && !seen[l] {
			seen[l] = true
			labels = append(labels, l)
		}
	}

	add(e.Accessibility.label())
	if ep := e.endpoint(); ep != nil {
		add(ep.Accessibility.label())
		if ep.Overlay != nil && ep.Overlay.ReelPlayerOverlayRenderer != nil {
			add(ep.Overlay.ReelPlayerOverlayRenderer.Accessibility.label())
		}
	}
	return strings.Join(labels, " - ")
}

// bestThumbnail returns the last thumbnail, which YouTube lists largest last.
func (ep *reelWatchEndpoint) bestThumbnail() string {
	thumbs := ep.Thumbnail.Thumbnails
	if len(thumbs) == 0 {
		return ""
	}
	return thumbs[len(thumbs)-1].URL
}

// metadataMode controls what fills in for missing prefetched details.
type metadataMode int

const (
	// placeholderMetadata emits "Unknown Title" style placeholders.
	placeholderMetadata metadataMode = iota
	// labelMetadata emits the accessibility label as a description snippet.
	labelMetadata
)

// normalizeEntries converts sequence entries into next videos. Entries
// without a watch endpoint or video ID are dropped.
func normalizeEntries(entries []sequenceEntry, mode metadataMode) []domain.NextVideo {
	videos := make([]domain.NextVideo, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		ep := entry.endpoint()
		if ep == nil || ep.VideoID == "" {
			continue
		}

		id := domain.VideoID(ep.VideoID)
		v := domain.NextVideo{
			VideoID:        id,
			URL:            domain.ShortsURL(id),
			Thumbnail:      ep.bestThumbnail(),
			SequenceParams: ep.SequenceParams,
		}

		details := entry.details()
		switch {
		case mode == placeholderMetadata:
			v.Title, v.Author, v.ViewCount = domain.UnknownTitle, domain.UnknownAuthor, domain.UnknownViewCount
			if details != nil {
				v.Title = orDefault(details.Title, domain.UnknownTitle)
				v.Author = orDefault(details.Author, domain.UnknownAuthor)
				v.ViewCount = orDefault(details.ViewCount, domain.UnknownViewCount)
			}
		case details != nil:
			v.Title = details.Title
			v.Author = details.Author
			v.ViewCount = details.ViewCount
		default:
			v.DescriptionSnippet = entry.accessibilityLabel()
		}

		videos = append(videos, v)
	}
	return videos
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
