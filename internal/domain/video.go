package domain

import "regexp"

// Placeholders used when a sequence entry carries no prefetched video details.
const (
	UnknownTitle     = "Unknown Title"
	UnknownAuthor    = "Unknown Author"
	UnknownViewCount = "0"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// VideoID is a YouTube video identifier.
type VideoID string

// String returns the string representation of the VideoID.
func (id VideoID) String() string {
	return string(id)
}

// Valid reports whether the ID has the 11 URL-safe character shape.
func (id VideoID) Valid() bool {
	return videoIDPattern.MatchString(string(id))
}

// ShortsURL returns the canonical Shorts watch URL for id.
func ShortsURL(id VideoID) string {
	return "https://www.youtube.com/shorts/" + id.String()
}

// ThumbnailURL returns the templated high quality thumbnail URL for id.
func ThumbnailURL(id VideoID) string {
	return "https://i.ytimg.com/vi/" + id.String() + "/hqdefault.jpg"
}

// NextVideo is one recommended video in the Shorts autoplay queue.
// Optional fields are only filled by strategies that can recover them.
type NextVideo struct {
	VideoID            VideoID `json:"videoId"`
	URL                string  `json:"url"`
	Thumbnail          string  `json:"thumbnail,omitempty"`
	Title              string  `json:"title,omitempty"`
	Author             string  `json:"author,omitempty"`
	ViewCount          string  `json:"viewCount,omitempty"`
	DescriptionSnippet string  `json:"description_snippet,omitempty"`
	SequenceParams     string  `json:"sequenceParams,omitempty"`
}

// NextResult is the normalized payload returned for a Shorts URL.
type NextResult struct {
	Count          int         `json:"count"`
	NextVideos     []NextVideo `json:"nextVideos"`
	CurrentVideoID VideoID     `json:"currentVideoId,omitempty"`
}

// NewNextResult builds a result whose Count always matches its videos.
func NewNextResult(videos []NextVideo, current VideoID) *NextResult {
	if videos == nil {
		videos = []NextVideo{}
	}
	return &NextResult{
		Count:          len(videos),
		NextVideos:     videos,
		CurrentVideoID: current,
	}
}
