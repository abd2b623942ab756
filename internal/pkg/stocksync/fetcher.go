package stocksync

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const (
	fetchTimeout = 20 * time.Second
	userAgent    = "VPS-Deals/1.0 (+stock-sync)"
)

// headerLineRe recognizes a full "Name: value" header line in the
// auth_header setting. Anything else is treated as a bare token and
// wrapped into an Authorization header.
var headerLineRe = regexp.MustCompile(`^[A-Za-z0-9-]+\s*:`)

// Fetcher performs the configured feed request. On a transport error that
// looks like a TLS/certificate problem it retries exactly once with peer
// verification disabled; vendor inventory endpoints are routinely served
// with self-signed certificates. Set AllowInsecureRetry to false in policy
// layers where that trust relaxation is unacceptable.
type Fetcher struct {
	Client             *http.Client
	InsecureClient     *http.Client
	AllowInsecureRetry bool
}

// NewFetcher creates a fetcher with the standard 20 second timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		Client: &http.Client{Timeout: fetchTimeout},
		InsecureClient: &http.Client{
			Timeout: fetchTimeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
		AllowInsecureRetry: true,
	}
}

// Fetch executes one feed request and returns status code and body.
// Transport failures are TransportError; an HTTP status of 400 or above is
// a FeedError and is not retried.
func (f *Fetcher) Fetch(ctx context.Context, cfg FeedConfig) (int, []byte, error) {
	req, err := f.buildRequest(ctx, cfg)
	if err != nil {
		return 0, nil, &TransportError{Reason: "bad request", Err: err}
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		if f.AllowInsecureRetry && looksLikeTLSError(err) {
			retryReq, rerr := f.buildRequest(ctx, cfg)
			if rerr != nil {
				return 0, nil, &TransportError{Reason: "bad request", Err: rerr}
			}
			resp, err = f.InsecureClient.Do(retryReq)
		}
		if err != nil {
			return 0, nil, &TransportError{Reason: "connect", Err: err}
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &TransportError{Reason: "read body", Err: err}
	}
	if resp.StatusCode >= 400 {
		return resp.StatusCode, body, &FeedError{StatusCode: resp.StatusCode, Reason: snippet(body, 200)}
	}
	return resp.StatusCode, body, nil
}

// buildRequest assembles the request from the feed config: GET appends the
// raw query string to the endpoint, POST sends it as a form body.
func (f *Fetcher) buildRequest(ctx context.Context, cfg FeedConfig) (*http.Request, error) {
	target := cfg.Endpoint
	var body io.Reader

	if cfg.Method == "GET" && cfg.Query != "" {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + cfg.Query
	} else if cfg.Method == "POST" && cfg.Query != "" {
		body = strings.NewReader(cfg.Query)
	}

	req, err := http.NewRequestWithContext(ctx, cfg.Method, target, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	if cfg.Method == "POST" && cfg.Query != "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, h := range ParseAuthHeader(cfg.AuthHeader) {
		req.Header.Set(h[0], h[1])
	}
	return req, nil
}

// ParseAuthHeader splits the auth_header setting line by line. A line
// shaped like "Name: value" is used verbatim; any other non-empty line is
// a bare token and becomes "Authorization: <line>". Supports both paste a
// full header and paste a token admin workflows.
func ParseAuthHeader(raw string) [][2]string {
	var headers [][2]string
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if headerLineRe.MatchString(line) {
			parts := strings.SplitN(line, ":", 2)
			headers = append(headers, [2]string{strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])})
			continue
		}
		headers = append(headers, [2]string{"Authorization", line})
	}
	return headers
}

// looksLikeTLSError sniffs a transport error message for certificate
// trouble worth the relaxed retry.
func looksLikeTLSError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "tls") ||
		strings.Contains(msg, "ssl") ||
		strings.Contains(msg, "certificate") ||
		strings.Contains(msg, "x509")
}
