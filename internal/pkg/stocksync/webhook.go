package stocksync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const webhookTimeout = 10 * time.Second

// webhookPayload is the body POSTed to the configured webhook.
type webhookPayload struct {
	Events []ChangeEvent `json:"events"`
}

// Notifier delivers change events to the configured webhook. Delivery is
// best effort: failures are reported to the caller for logging but never
// change a run's outcome.
type Notifier struct {
	Client *http.Client
}

// NewNotifier creates a notifier with the standard 10 second timeout.
func NewNotifier() *Notifier {
	return &Notifier{Client: &http.Client{Timeout: webhookTimeout}}
}

// Send POSTs the events as {"events":[...]} with any configured extra
// header lines attached.
func (n *Notifier) Send(ctx context.Context, cfg WebhookConfig, events []ChangeEvent) error {
	payload, err := json.Marshal(webhookPayload{Events: events})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for _, h := range ParseAuthHeader(cfg.AuthHeader) {
		req.Header.Set(h[0], h[1])
	}

	resp, err := n.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
