package httpapi

import "net/http"

// NewMux wires the ops endpoints. Middleware is applied by the caller via Chain.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	sch := ScrapeHandler{Status: d.Status, TriggerRun: d.TriggerRun}
	mux.HandleFunc("/scrape/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sch.GetStatus,
	}))
	mux.HandleFunc("/scrape/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sch.Run,
	}))

	th := TokenHandler{}
	mux.HandleFunc("/secrets/token", methodMux(map[string]http.HandlerFunc{
		http.MethodPost:   th.Set,
		http.MethodDelete: th.Delete,
	}))

	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}
