package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"jobboard-engine/internal/events"
	"jobboard-engine/internal/secrets"
)

type HealthHandler struct{}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

type ScrapeHandler struct {
	Status     *Status
	TriggerRun func() bool
}

func (h ScrapeHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Status.Snapshot())
}

func (h ScrapeHandler) Run(w http.ResponseWriter, r *http.Request) {
	if !h.TriggerRun() {
		WriteError(w, r, http.StatusConflict, "already_running", "a scrape run is already in progress")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"ok": true})
}

// TokenHandler manages the API token stored in the OS keyring. Changes take
// effect on the next engine start.
type TokenHandler struct{}

func (h TokenHandler) Set(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Token == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "expected {\"token\": \"...\"}")
		return
	}
	if err := secrets.SetAPIToken(body.Token); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "keyring_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h TokenHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := secrets.DeleteAPIToken(); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "keyring_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

type EventsHandler struct {
	Hub *events.Hub
}

func (h EventsHandler) ServeSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, r, http.StatusInternalServerError, "stream_unsupported", "streaming unsupported")
		return
	}

	ch := h.Hub.Subscribe()
	defer h.Hub.Unsubscribe(ch)

	ping := events.Make("ping", nil)
	fmt.Fprintf(w, "event: message\ndata: %s\n\n", ping)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg := <-ch:
			fmt.Fprintf(w, "event: message\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
