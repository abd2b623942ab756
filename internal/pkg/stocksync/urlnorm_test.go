package stocksync

import (
	"reflect"
	"testing"
)

func TestURLCandidates_FiltersAndSortsQuery(t *testing.T) {
	t.Parallel()

	got := URLCandidates("https://x.com/buy?ref=123&pid=5&b=2")
	want := []string{
		"https://x.com/buy?ref=123&pid=5&b=2",
		"https://x.com/buy?b=2&pid=5",
		"https://x.com/buy",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("URLCandidates = %v, want %v", got, want)
	}
}

func TestURLCandidates_AllNoiseDropped(t *testing.T) {
	t.Parallel()

	// All params are noise, so the normalized form collapses into the
	// bare base and duplicates are suppressed.
	got := URLCandidates("HTTPS://X.com/Offer?utm_source=z&ref=a&currency=usd")
	want := []string{
		"HTTPS://X.com/Offer?utm_source=z&ref=a&currency=usd",
		"https://x.com/Offer",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("URLCandidates = %v, want %v", got, want)
	}
}

func TestURLCandidates_EmptyAndGarbage(t *testing.T) {
	t.Parallel()

	if got := URLCandidates("   "); len(got) != 0 {
		t.Fatalf("expected no candidates for blank input, got %v", got)
	}
	// Not a URL: the raw value is still the first (and only) candidate.
	if got := URLCandidates("not a url"); len(got) != 1 || got[0] != "not a url" {
		t.Fatalf("expected raw-only candidates, got %v", got)
	}
}

func TestParseURLParts(t *testing.T) {
	t.Parallel()

	parts, ok := ParseURLParts("https://V.com/a?pid=9&ref=z")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if parts.Host != "v.com" || parts.Path != "/a" || parts.PID != "9" {
		t.Fatalf("unexpected parts: %+v", parts)
	}
	if got := parts.LikeHostPath(); got != "%v.com/a%" {
		t.Fatalf("LikeHostPath = %q", got)
	}

	if _, ok := ParseURLParts("no-host-here"); ok {
		t.Fatal("expected parse to fail without a host")
	}
}

func TestNormalizedHost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "WWW.Vendor.com", want: "vendor.com"},
		{in: "vendor.com", want: "vendor.com"},
		{in: " www.a.b ", want: "a.b"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		if got := NormalizedHost(tt.in); got != tt.want {
			t.Fatalf("NormalizedHost(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
