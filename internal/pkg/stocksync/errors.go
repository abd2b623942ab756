package stocksync

import "fmt"

// Result codes reported by a reconciliation run. They mirror the codes the
// admin panel and the stock_logs table use.
const (
	CodeOK       = 0
	CodeConfig   = 400
	CodeConflict = 409
	CodeFeed     = 500
)

// ConfigError marks operator mistakes: missing endpoint, malformed field
// map, a feed response without items. Not retried.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return e.Reason
}

// TransportError marks connection failures, timeouts and TLS failures that
// survive the relaxed-verification retry.
type TransportError struct {
	Reason string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request failed: %s: %v", e.Reason, e.Err)
	}
	return "request failed: " + e.Reason
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// FeedError marks a reachable but misbehaving vendor feed: HTTP status of
// 400 or above, or a body that is not valid JSON.
type FeedError struct {
	StatusCode int
	Reason     string
}

func (e *FeedError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("http error %d: %s", e.StatusCode, e.Reason)
	}
	return e.Reason
}

// RunOptions controls one reconciliation run.
// Limit caps processed feed items, 0 means unlimited.
type RunOptions struct {
	DryRun bool
	Limit  int
}

// RunResult is the outcome of one reconciliation run.
type RunResult struct {
	RunID      string `json:"run_id"`
	Code       int    `json:"code"`
	Message    string `json:"message"`
	Updated    int    `json:"updated"`
	Unknown    int    `json:"unknown"`
	Skipped    int    `json:"skipped"`
	DurationMS int    `json:"duration_ms"`
}

// ChangeEvent records one plan whose persisted stock status actually
// flipped during a run. It is the unit sent to the webhook.
type ChangeEvent struct {
	PlanID    uint   `json:"plan_id"`
	Title     string `json:"title"`
	OrderURL  string `json:"order_url"`
	Prev      string `json:"prev"`
	Curr      string `json:"curr"`
	CheckedAt string `json:"checked_at"`
}
