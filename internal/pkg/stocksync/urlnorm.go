package stocksync

import (
	"net/url"
	"slices"
	"strings"
)

// noiseParams are query keys dropped before comparing order URLs. Vendors
// append tracking and affiliate parameters that differ between the stored
// order_url and the URL reported by the inventory feed.
var noiseParams = map[string]struct{}{
	"currency":     {},
	"lang":         {},
	"locale":       {},
	"utm_source":   {},
	"utm_medium":   {},
	"utm_campaign": {},
	"ref":          {},
	"refid":        {},
	"aff":          {},
	"affid":        {},
}

// URLCandidates returns the comparison forms of a URL for exact-match
// lookups, most specific first: the raw input, a normalized form with
// noise parameters dropped and the rest sorted, and the bare
// scheme://host/path. Duplicates are suppressed, first-seen order wins.
func URLCandidates(raw string) []string {
	var candidates []string
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return candidates
	}
	candidates = append(candidates, raw)

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return candidates
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme == "" {
		scheme = "http"
	}
	host := strings.ToLower(u.Host)
	base := scheme + "://" + host + u.Path

	filtered := url.Values{}
	for key, vals := range u.Query() {
		if _, noisy := noiseParams[strings.ToLower(key)]; noisy {
			continue
		}
		filtered[key] = vals
	}
	// Encode sorts by key, matching the stored-URL normalization
	norm := base
	if q := filtered.Encode(); q != "" {
		norm = base + "?" + q
	}
	for _, c := range []string{norm, base} {
		if !slices.Contains(candidates, c) {
			candidates = append(candidates, c)
		}
	}
	return candidates
}

// URLParts carries the pieces of a feed URL the matcher's fallback tiers
// and the vendor-host safeguard need.
type URLParts struct {
	Host string
	Path string
	PID  string
}

// ParseURLParts extracts lower-cased host, path and the pid query
// parameter from a URL. ok is false when the string has no host.
func ParseURLParts(raw string) (URLParts, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return URLParts{}, false
	}
	return URLParts{
		Host: strings.ToLower(u.Host),
		Path: u.Path,
		PID:  u.Query().Get("pid"),
	}, true
}

// LikeHostPath returns the "%host/path%" pattern for prefix/suffix
// tolerant LIKE lookups, or "" when there is nothing to match on.
func (p URLParts) LikeHostPath() string {
	if p.Host == "" && p.Path == "" {
		return ""
	}
	return "%" + p.Host + p.Path + "%"
}

// NormalizedHost strips a leading www. for vendor-host comparison.
func NormalizedHost(host string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(host)), "www.")
}
