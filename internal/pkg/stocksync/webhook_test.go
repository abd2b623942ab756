package stocksync

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNotifier_SendPostsEvents(t *testing.T) {
	t.Parallel()

	var gotMethod, gotContentType, gotAuth, gotExtra, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		gotAuth = r.Header.Get("Authorization")
		gotExtra = r.Header.Get("X-Env")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewNotifier()
	err := n.Send(context.Background(), WebhookConfig{
		Enabled:    true,
		URL:        srv.URL,
		AuthHeader: "Bearer hook-token\r\nX-Env: prod",
	}, []ChangeEvent{{
		PlanID:    7,
		Title:     "VPS S",
		OrderURL:  "https://v.com/buy?pid=5",
		Prev:      "out",
		Curr:      "in",
		CheckedAt: "2026-08-28 12:00:00",
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Fatalf("method = %s", gotMethod)
	}
	if gotContentType != "application/json" {
		t.Fatalf("Content-Type = %q", gotContentType)
	}
	if gotAuth != "Bearer hook-token" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if gotExtra != "prod" {
		t.Fatalf("X-Env = %q", gotExtra)
	}

	// The receiver contract pins the exact field names.
	want := `{"events":[{"plan_id":7,"title":"VPS S","order_url":"https://v.com/buy?pid=5",` +
		`"prev":"out","curr":"in","checked_at":"2026-08-28 12:00:00"}]}`
	if gotBody != want {
		t.Fatalf("body = %s\nwant   %s", gotBody, want)
	}
	var payload struct {
		Events []map[string]interface{} `json:"events"`
	}
	if err := json.Unmarshal([]byte(gotBody), &payload); err != nil || len(payload.Events) != 1 {
		t.Fatalf("body did not decode as an events envelope: %v", err)
	}
}

func TestNotifier_HTTPErrorIsReturned(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := NewNotifier()
	err := n.Send(context.Background(), WebhookConfig{Enabled: true, URL: srv.URL}, []ChangeEvent{{PlanID: 1}})
	if err == nil {
		t.Fatal("expected an error for a 500 response")
	}
}
