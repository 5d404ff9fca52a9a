// Package events fans run lifecycle events out to SSE subscribers.
package events

import (
	"encoding/json"
	"time"
)

const (
	TypeRunStarted  = "run_started"
	TypeRunFinished = "run_finished"
	TypeCompanyDone = "company_processed"
)

type Event struct {
	Type string          `json:"type"`
	At   time.Time       `json:"at"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Make serializes an event for the wire. Payload marshal failures degrade to
// an event without data rather than an error.
func Make(typ string, data any) string {
	var raw json.RawMessage
	if data != nil {
		if b, err := json.Marshal(data); err == nil {
			raw = b
		}
	}
	b, _ := json.Marshal(Event{Type: typ, At: time.Now().UTC(), Data: raw})
	return string(b)
}
