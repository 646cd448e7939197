// Package urlnorm reduces website URLs to a canonical duplicate-detection
// key. Two submissions whose URLs normalize to the same key point at the
// same effective website.
package urlnorm

import (
	"fmt"
	"net/url"
	"strings"
)

// Normalize canonicalizes a URL: host lowercased, leading "www." stripped,
// scheme dropped (http and https compare equal), trailing slashes removed
// from the path. Query and fragment are ignored.
func Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty URL")
	}

	// Bare domains are accepted from form intake
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	if host == "" {
		return "", fmt.Errorf("URL has no host")
	}

	path := strings.TrimRight(u.Path, "/")

	return host + path, nil
}
