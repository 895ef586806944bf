package web

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"academia/internal/adapters/http/middleware"
)

// handleEvents relays backend push notifications to the browser as an
// event stream. Pages open it with EventSource and silently reload their
// active view (keeping filters and page) when a relevant topic arrives.
// The relay never calls the backend itself, so no bearer context is built.
func handleEvents(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetSessionFromContext(r.Context()); !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	topic := r.URL.Query().Get("tipo")
	if topic == "" {
		topic = "*"
	}

	notifications, unsubscribe := services.Hub.Subscribe(topic)
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	slog.Debug("push_event", "event", "relay_opened", "topic", topic)
	for {
		select {
		case <-r.Context().Done():
			slog.Debug("push_event", "event", "relay_closed", "topic", topic)
			return
		case n := <-notifications:
			payload, err := json.Marshal(n)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", n.Topic, payload)
			flusher.Flush()
		}
	}
}
