// Package store persists normalized jobs and the per-run scrape log. Two
// implementations share one contract: SQLite for local/single-node use and
// Postgres for the hosted site database.
package store

import (
	"context"
	"time"

	"jobboard-engine/internal/domain"
)

// RunStatus is the three-valued outcome recorded per company per run.
type RunStatus string

const (
	StatusSuccess RunStatus = "success"
	StatusPartial RunStatus = "partial"
	StatusError   RunStatus = "error"
)

// LogEntry is one append-only scrape-log record. The pipeline writes these
// and never reads them back.
type LogEntry struct {
	RunID       string
	CompanySlug string
	Status      RunStatus
	JobsFound   int
	Error       string
}

// JobStore is the upsert contract the aggregator relies on. Upsert is keyed
// by (job.ExternalID, company slug): first sighting creates the row with
// is_active=true; later sightings refresh every mutable field plus the update
// timestamp and leave creation metadata alone. Rows are never deleted here —
// DeactivateStale flips is_active off for rows not refreshed within the
// window.
type JobStore interface {
	Upsert(ctx context.Context, co domain.Company, job domain.Job) error
	DeactivateStale(ctx context.Context, olderThan time.Duration) (int64, error)
}

// ScrapeLog appends run-outcome entries.
type ScrapeLog interface {
	Append(ctx context.Context, e LogEntry) error
}
