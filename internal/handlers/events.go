package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/savioomio/sistema-notas-posto/internal/events"
)

// EventsHandler streams change notifications over Server-Sent Events so the
// desktop views can refresh without polling.
type EventsHandler struct {
	hub    *events.Hub
	logger *zap.Logger
}

func NewEventsHandler(hub *events.Hub, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{hub: hub, logger: logger}
}

// Stream: GET /api/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming não suportado", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// Tell the client it is connected before the first event arrives.
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	ch := h.hub.Subscribe()
	defer h.hub.Unsubscribe(ch)

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-ch:
			if !open {
				return
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				h.logger.Warn("failed to encode event", zap.Error(err))
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
