package httpapi

import (
	"go.uber.org/zap"

	"jobboard-engine/internal/events"
)

// Deps carries everything the handlers need. main() owns construction.
type Deps struct {
	Logger *zap.SugaredLogger
	Hub    *events.Hub
	Status *Status

	// TriggerRun kicks off an aggregation run in the background. Returns
	// false when a run is already in flight.
	TriggerRun func() bool

	// APIToken guards mutating endpoints when non-empty.
	APIToken string
}
