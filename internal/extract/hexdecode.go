package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var hexEscapePattern = regexp.MustCompile(`\\x([0-9A-Fa-f]{2})`)

// DecodeHexEscapes replaces every \xHH escape with the character U+00HH.
// Text without escapes is returned unchanged.
func DecodeHexEscapes(s string) string {
	if !strings.Contains(s, `\x`) {
		return s
	}
	return hexEscapePattern.ReplaceAllStringFunc(s, func(m string) string {
		n, err := strconv.ParseUint(m[2:], 16, 8)
		if err != nil {
			return m
		}
		return string(rune(n))
	})
}

// unescapeJSONFallback collapses escaped quotes, then escaped backslashes.
func unescapeJSONFallback(s string) string {
	s = strings.ReplaceAll(s, `\"`, `"`)
	return strings.ReplaceAll(s, `\\`, `\`)
}
