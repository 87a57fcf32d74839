package extract

import (
	"regexp"
	"strings"

	"github.com/iconidentify/shortsnext/internal/domain"
)

// ShortsMarker must appear in every accepted request URL.
const ShortsMarker = "youtube.com/shorts"

var shortsIDPattern = regexp.MustCompile(`shorts/([A-Za-z0-9_-]{11})`)

// IsShortsURL reports whether raw references a Shorts watch page.
func IsShortsURL(raw string) bool {
	return raw != "" && strings.Contains(raw, ShortsMarker)
}

// VideoIDFromURL returns the 11 character ID following "shorts/", or "".
func VideoIDFromURL(raw string) domain.VideoID {
	m := shortsIDPattern.FindStringSubmatch(raw)
	if len(m) < 2 {
		return ""
	}
	return domain.VideoID(m[1])
}
