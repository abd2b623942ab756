package stocksync

import (
	"net/url"

	"github.com/vpsdeals/vpsdeals/app/models"
	"github.com/vpsdeals/vpsdeals/app/repository"
)

// Matcher resolves one feed item to the stored plans it describes.
//
// For match_on == "url" it walks a fallback chain from most to least
// specific and stops at the first tier that yields rows:
//
//	tier 1: order_url equals any URL candidate (exact, unambiguous)
//	tier 2: order_url contains host+path and the same pid parameter
//	tier 3: order_url contains host+path
//	tier 4: exact title equality using the item's title/name field
//
// Tiers 2-4 are fuzzy, so when requireVendorHost is set their results are
// filtered to plans whose owning vendor's website hostname equals the feed
// URL's hostname. Tier 1 hits skip the safeguard: an exact stored-URL
// equality is already unambiguous.
type Matcher struct {
	plans             repository.PlanRepository
	requireVendorHost bool
}

// NewMatcher creates a matcher over the plan repository.
func NewMatcher(plans repository.PlanRepository, requireVendorHost bool) *Matcher {
	return &Matcher{plans: plans, requireVendorHost: requireVendorHost}
}

// Match returns the candidate plan rows for a feed item whose resolved
// match key is key. An empty key never reaches the matcher; the
// orchestrator skips those items beforehand.
func (m *Matcher) Match(item Item, matchOn, key string) ([]models.Plan, error) {
	switch matchOn {
	case "url":
		return m.matchURL(item, key)
	case "name", "title":
		return m.plans.FindByTitle(key)
	default:
		// Custom feed schemas without full URL fidelity get a reduced
		// two-step lookup: exact order_url, then exact title.
		plans, err := m.plans.FindByOrderURLs([]string{key})
		if err != nil || len(plans) > 0 {
			return plans, err
		}
		return m.plans.FindByTitle(key)
	}
}

func (m *Matcher) matchURL(item Item, key string) ([]models.Plan, error) {
	// Tier 1: exact candidate equality, no vendor-host check.
	plans, err := m.plans.FindByOrderURLs(URLCandidates(key))
	if err != nil || len(plans) > 0 {
		return plans, err
	}

	parts, ok := ParseURLParts(key)
	if !ok {
		return nil, nil
	}
	like := parts.LikeHostPath()

	// Tier 2: host+path plus pid, only when the feed URL carries one.
	if parts.PID != "" {
		plans, err = m.plans.FindByHostPath(like, parts.PID)
		if err != nil {
			return nil, err
		}
		if plans = m.applyVendorHostGuard(plans, parts.Host); len(plans) > 0 {
			return plans, nil
		}
	}

	// Tier 3: host+path only.
	plans, err = m.plans.FindByHostPath(like, "")
	if err != nil {
		return nil, err
	}
	if plans = m.applyVendorHostGuard(plans, parts.Host); len(plans) > 0 {
		return plans, nil
	}

	// Tier 4: title fallback from the item itself.
	title := itemTitle(item)
	if title == "" {
		return nil, nil
	}
	plans, err = m.plans.FindByTitle(title)
	if err != nil {
		return nil, err
	}
	return m.applyVendorHostGuard(plans, parts.Host), nil
}

// applyVendorHostGuard drops plans whose vendor website hostname differs
// from the feed URL's hostname. Prevents a generic path fragment or title
// from cross-matching an unrelated vendor's plan.
func (m *Matcher) applyVendorHostGuard(plans []models.Plan, feedHost string) []models.Plan {
	if !m.requireVendorHost || feedHost == "" {
		return plans
	}
	want := NormalizedHost(feedHost)
	kept := plans[:0]
	for _, p := range plans {
		host := vendorHost(p.Vendor.Website)
		if host != "" && host == want {
			kept = append(kept, p)
		}
	}
	return kept
}

// vendorHost extracts the comparable hostname from a vendor website value,
// which may be stored with or without a scheme.
func vendorHost(website string) string {
	if website == "" {
		return ""
	}
	if u, err := url.Parse(website); err == nil && u.Host != "" {
		return NormalizedHost(u.Host)
	}
	if u, err := url.Parse("http://" + website); err == nil && u.Host != "" {
		return NormalizedHost(u.Host)
	}
	return ""
}

// itemTitle pulls a display title from the item for the tier 4 fallback.
func itemTitle(item Item) string {
	for _, field := range []string{"title", "name"} {
		if v := item.StringAt(field); v != "" {
			return v
		}
	}
	return ""
}
