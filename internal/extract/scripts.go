package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// scriptText concatenates the bodies of all <script> elements in html.
// It returns "" when the document cannot be parsed.
func scriptText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	var b strings.Builder
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		b.WriteString(s.Text())
		b.WriteByte('\n')
	})
	return b.String()
}

// findFirst returns the first capture of pattern across sources, in order.
func findFirst(pattern *regexp.Regexp, sources ...string) string {
	for _, src := range sources {
		if src == "" {
			continue
		}
		if m := pattern.FindStringSubmatch(src); len(m) > 1 && m[1] != "" {
			return m[1]
		}
	}
	return ""
}
