package extract

import (
	"net/url"
	"strings"
)

const consentHost = "consent.youtube.com"

// IsConsentPage reports whether YouTube answered with its consent
// interstitial instead of the watch page.
func IsConsentPage(finalURL, html string) bool {
	if u, err := url.Parse(finalURL); err == nil && u.Hostname() == consentHost {
		return true
	}
	return strings.Contains(html, consentHost)
}
