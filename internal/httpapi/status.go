package httpapi

import (
	"sync"
	"time"

	"jobboard-engine/internal/scrape"
)

// Status tracks the most recent run for the dashboard.
type Status struct {
	mu sync.Mutex
	s  StatusSnapshot
}

type StatusSnapshot struct {
	LastRunAt string `json:"last_run_at"`
	LastOkAt  string `json:"last_ok_at"`
	LastError string `json:"last_error"`
	LastFound int    `json:"last_found"`
	LastSaved int    `json:"last_saved"`
	Running   bool   `json:"running"`
}

func (st *Status) SetRunning(running bool) {
	st.mu.Lock()
	st.s.Running = running
	st.mu.Unlock()
}

func (st *Status) Record(report scrape.Report, err error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	st.s.LastRunAt = now
	st.s.Running = false
	if err != nil {
		st.s.LastError = err.Error()
		return
	}
	st.s.LastError = ""
	st.s.LastOkAt = now
	st.s.LastFound = report.TotalFound
	st.s.LastSaved = report.TotalSaved
}

func (st *Status) Snapshot() StatusSnapshot {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.s
}
