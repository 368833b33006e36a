package enrich

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// FaviconService is the favicon lookup endpoint keyed by domain.
const FaviconService = "https://www.google.com/s2/favicons"

// NormalizeURL canonicalizes a URL found on a page. Protocol-relative URLs
// get the https scheme and root-relative URLs are resolved against base.
// It returns false when the result is not an http(s) URL or is too long.
func NormalizeURL(raw, base string) (string, bool) {
	u := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(u, "//"):
		u = "https:" + u
	case strings.HasPrefix(u, "/"):
		b, err := url.Parse(base)
		if err != nil {
			return "", false
		}
		ref, err := url.Parse(u)
		if err != nil {
			return "", false
		}
		u = b.ResolveReference(ref).String()
	}

	if !strings.HasPrefix(u, "http") || utf8.RuneCountInString(u) >= MaxURLLength {
		return "", false
	}
	return u, true
}

// IsHTTPURL reports whether raw has an explicit http or https scheme.
func IsHTTPURL(raw string) bool {
	return strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://")
}

// FaviconURL returns the favicon service URL for the domain of pageURL.
// Malformed input yields an empty domain rather than an error.
func FaviconURL(pageURL string) string {
	return FaviconService + "?domain=" + url.QueryEscape(Netloc(pageURL))
}

// Netloc returns the network location of rawURL: optional userinfo, host
// and port. It returns "" when rawURL has no authority component.
func Netloc(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	if u.User != nil {
		return u.User.String() + "@" + u.Host
	}
	return u.Host
}

// Truncate returns at most n characters of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// CharCount returns the number of characters in s.
func CharCount(s string) int {
	return utf8.RuneCountInString(s)
}
