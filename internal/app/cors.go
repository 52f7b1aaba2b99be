package app

import (
	"net/url"
	"strings"
)

// originHost strips the scheme from an Origin header value, leaving
// "host[:port]". A value that does not parse as a URL is returned as is.
func originHost(origin string) string {
	u, err := url.Parse(origin)
	if err == nil && u.Host != "" {
		return u.Host
	}
	return origin
}

// originAllowed reports whether host matches any configured pattern.
// "*.example.com" matches subdomains, "localhost:*" matches any port,
// anything else must match exactly.
func originAllowed(patterns []string, host string) bool {
	for _, pattern := range patterns {
		switch {
		case pattern == host:
			return true
		case strings.HasPrefix(pattern, "*."):
			if strings.HasSuffix(host, pattern[1:]) {
				return true
			}
		case strings.HasSuffix(pattern, ":*"):
			if strings.HasPrefix(host, strings.TrimSuffix(pattern, "*")) {
				return true
			}
		}
	}
	return false
}
