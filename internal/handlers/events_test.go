package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/savioomio/sistema-notas-posto/internal/events"
)

func TestEventsStream(t *testing.T) {
	hub := events.NewHub()
	h := NewEventsHandler(hub, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	r := httptest.NewRequest(http.MethodGet, "/api/events", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.Stream(w, r)
		close(done)
	}()

	// Keep publishing until the handler has had a chance to subscribe, then
	// close the connection from the client side.
	deadline := time.After(2 * time.Second)
	for i := 0; i < 20; i++ {
		hub.Publish(events.Event{Entity: events.EntityClient, Action: events.ActionCreated, ID: 1})
		time.Sleep(10 * time.Millisecond)
	}
	cancel()
	select {
	case <-done:
	case <-deadline:
		t.Fatal("handler did not stop after context cancellation")
	}

	body := w.Body.String()
	if !strings.Contains(body, ": connected") {
		t.Fatalf("expected connection preamble, got %q", body)
	}
	if !strings.Contains(body, `data: {"entity":"client","action":"created","id":1}`) {
		t.Fatalf("expected event payload in stream, got %q", body)
	}
	if got := w.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Fatalf("content type: %q", got)
	}
}
