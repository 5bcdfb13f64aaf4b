package slack

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPostWithoutWebhook(t *testing.T) {
	t.Parallel()

	client := NewClient(Config{})
	err := client.Post(context.Background(), "hello")
	if !errors.Is(err, ErrNoWebhook) {
		t.Fatalf("expected ErrNoWebhook, got %v", err)
	}
}

func TestPostSendsTextPayload(t *testing.T) {
	t.Parallel()

	var gotBody []byte
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotContentType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client := NewClient(Config{WebhookURL: srv.URL})
	if err := client.Post(context.Background(), "price drop"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotContentType != "application/json" {
		t.Fatalf("unexpected content type: %s", gotContentType)
	}
	var payload map[string]string
	if err := json.Unmarshal(gotBody, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload["text"] != "price drop" {
		t.Fatalf("unexpected payload: %v", payload)
	}
}

func TestPostNonSuccessStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no_service", http.StatusGone)
	}))
	defer srv.Close()

	client := NewClient(Config{WebhookURL: srv.URL})
	err := client.Post(context.Background(), "hello")
	if err == nil || !strings.Contains(err.Error(), "status=410") {
		t.Fatalf("expected status error, got %v", err)
	}
}
