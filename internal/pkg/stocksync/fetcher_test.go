package stocksync

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestParseAuthHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want [][2]string
	}{
		{name: "empty", raw: "", want: nil},
		{
			name: "bare token wrapped",
			raw:  "Bearer abc123",
			want: [][2]string{{"Authorization", "Bearer abc123"}},
		},
		{
			name: "full header verbatim",
			raw:  "X-Api-Key: secret",
			want: [][2]string{{"X-Api-Key", "secret"}},
		},
		{
			name: "mixed lines with CRLF",
			raw:  "X-Api-Key: secret\r\n\r\ntoken-without-colon",
			want: [][2]string{{"X-Api-Key", "secret"}, {"Authorization", "token-without-colon"}},
		},
	}
	for _, tt := range tests {
		if got := ParseAuthHeader(tt.raw); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("%s: ParseAuthHeader = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFetcher_GETAppendsQuery(t *testing.T) {
	t.Parallel()

	var gotURL, gotMethod, gotAuth, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	f := NewFetcher()
	status, body, err := f.Fetch(context.Background(), FeedConfig{
		Endpoint:   srv.URL + "/feed?x=1",
		Method:     "GET",
		Query:      "token=t&b=2",
		AuthHeader: "my-token",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if string(body) != `{"items":[]}` {
		t.Fatalf("body = %s", body)
	}
	if gotMethod != "GET" || gotURL != "/feed?x=1&token=t&b=2" {
		t.Fatalf("request was %s %s", gotMethod, gotURL)
	}
	if gotAuth != "my-token" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if gotUA != userAgent {
		t.Fatalf("User-Agent = %q", gotUA)
	}
}

func TestFetcher_POSTSendsFormBody(t *testing.T) {
	t.Parallel()

	var gotBody, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	f := NewFetcher()
	_, _, err := f.Fetch(context.Background(), FeedConfig{
		Endpoint: srv.URL,
		Method:   "POST",
		Query:    "action=list&type=vps",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBody != "action=list&type=vps" {
		t.Fatalf("body = %q", gotBody)
	}
	if gotContentType != "application/x-www-form-urlencoded" {
		t.Fatalf("Content-Type = %q", gotContentType)
	}
}

func TestFetcher_HTTPErrorIsFeedError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer srv.Close()

	f := NewFetcher()
	status, _, err := f.Fetch(context.Background(), FeedConfig{Endpoint: srv.URL, Method: "GET"})
	var feedErr *FeedError
	if !errors.As(err, &feedErr) {
		t.Fatalf("expected FeedError, got %v", err)
	}
	if status != http.StatusForbidden || feedErr.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d / %d", status, feedErr.StatusCode)
	}
}

func TestFetcher_RetriesSelfSignedTLS(t *testing.T) {
	t.Parallel()

	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{"url":"https://a.com"}]}`))
	}))
	defer srv.Close()

	f := NewFetcher()
	status, _, err := f.Fetch(context.Background(), FeedConfig{Endpoint: srv.URL, Method: "GET"})
	if err != nil {
		t.Fatalf("expected relaxed retry to succeed, got %v", err)
	}
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}

	// With the retry disabled the certificate error must surface.
	f.AllowInsecureRetry = false
	_, _, err = f.Fetch(context.Background(), FeedConfig{Endpoint: srv.URL, Method: "GET"})
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestFetcher_ConnectionRefused(t *testing.T) {
	t.Parallel()

	f := NewFetcher()
	_, _, err := f.Fetch(context.Background(), FeedConfig{
		Endpoint: "http://127.0.0.1:1/feed",
		Method:   "GET",
	})
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}
