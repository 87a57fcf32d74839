package extract

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// testLogger returns a silent logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// hexEscape encodes JSON punctuation the way YouTube embeds it in pages.
func hexEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '{', '}', '"', ':', '=', '&', '\'', '\\', '/':
			fmt.Fprintf(&b, `\x%02x`, r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// sequencePage wraps a sequence JSON document in a minimal watch page.
func sequencePage(json string) string {
	return `<html><head><script nonce="abc">var ytInitialReelWatchSequenceResponse = '` +
		hexEscape(json) + `';</script></head><body></body></html>`
}

// fakePoster records the last JSON POST and replies with a canned body.
type fakePoster struct {
	body    []byte
	err     error
	url     string
	payload any
	calls   int
}

func (p *fakePoster) PostJSON(ctx context.Context, rawURL string, payload any) ([]byte, error) {
	p.calls++
	p.url = rawURL
	p.payload = payload
	if p.err != nil {
		return nil, p.err
	}
	return p.body, nil
}
