package types

import (
	"context"
	"fmt"

	"jobboard-engine/internal/domain"
)

// Result is what an adapter hands back to the aggregator. Adapters never
// return a Go error across this boundary: failure is data (OK=false plus a
// message), so one broken board cannot abort a run.
type Result struct {
	OK   bool
	Jobs []domain.Job
	Err  string
}

// Errorf builds a failed Result.
func Errorf(format string, args ...any) Result {
	return Result{OK: false, Err: fmt.Sprintf(format, args...)}
}

// Scraper is the common adapter contract. Implementations do no persistence
// and no logging; they only fetch, filter and normalize.
type Scraper interface {
	Name() string
	Scrape(ctx context.Context, co domain.Company) Result
}
