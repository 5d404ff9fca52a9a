// Package scrape orchestrates one aggregation run: dispatch each configured
// company to its ATS adapter, persist the normalized jobs, record a scrape
// log entry per company, and age out postings no provider reaffirmed.
package scrape

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/scrape/greenhouse"
	"jobboard-engine/internal/scrape/types"
	"jobboard-engine/internal/scrape/util"
	"jobboard-engine/internal/scrape/workday"
	"jobboard-engine/internal/store"
)

const (
	defaultCompanyInterval = 500 * time.Millisecond
	defaultStaleAfter      = 24 * time.Hour
	// only the first few upsert errors make it into a company outcome
	maxUpsertErrors = 3
)

// Directory supplies the ordered company list for a run. Injected so runs
// can be driven from config files in production and fixtures in tests.
type Directory interface {
	Companies(ctx context.Context) ([]domain.Company, error)
}

// Outcome is the per-company result of a run.
type Outcome struct {
	CompanySlug string          `json:"companySlug"`
	Status      store.RunStatus `json:"status"`
	JobsFound   int             `json:"jobsFound"`
	JobsSaved   int             `json:"jobsSaved"`
	Message     string          `json:"message,omitempty"`
}

// Report aggregates a whole run.
type Report struct {
	RunID       string    `json:"runId"`
	StartedAt   time.Time `json:"startedAt"`
	FinishedAt  time.Time `json:"finishedAt"`
	Outcomes    []Outcome `json:"outcomes"`
	TotalFound  int       `json:"totalJobsFound"`
	TotalSaved  int       `json:"totalJobsSaved"`
	Deactivated int64     `json:"deactivated"`
}

// Aggregator runs the pipeline. Companies are processed strictly in list
// order, one at a time; no failure of one company or one record aborts the
// run.
type Aggregator struct {
	Directory Directory
	Jobs      store.JobStore
	Log       store.ScrapeLog
	Scrapers  map[domain.ATSType]types.Scraper

	// CompanyInterval spaces companies within a run; StaleAfter is the
	// freshness window for the end-of-run deactivation sweep.
	CompanyInterval time.Duration
	StaleAfter      time.Duration

	Logger *zap.SugaredLogger
}

func New(dir Directory, jobs store.JobStore, log store.ScrapeLog, logger *zap.SugaredLogger) *Aggregator {
	return &Aggregator{
		Directory: dir,
		Jobs:      jobs,
		Log:       log,
		Scrapers: map[domain.ATSType]types.Scraper{
			domain.ATSGreenhouse: greenhouse.New(),
			domain.ATSWorkday:    workday.New(),
		},
		CompanyInterval: defaultCompanyInterval,
		StaleAfter:      defaultStaleAfter,
		Logger:          logger,
	}
}

// Run scrapes every company with a supported ATS type and finishes with the
// unconditional staleness sweep. The only run-level error is a directory
// load failure; everything downstream is contained per company.
func (a *Aggregator) Run(ctx context.Context) (Report, error) {
	companies, err := a.Directory.Companies(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("load company directory: %w", err)
	}

	report := Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}

	eligible := companies[:0:0]
	for _, co := range companies {
		if co.ATS.Supported() {
			eligible = append(eligible, co)
		} else {
			a.Logger.Infow("skipping company without adapter", "company", co.Slug, "ats", co.ATS)
		}
	}

	pacer := util.NewPacer(a.CompanyInterval)
	for _, co := range eligible {
		if err := pacer.Wait(ctx); err != nil {
			break // run cancelled; sweep still happens below
		}
		out := a.processCompany(ctx, report.RunID, co)
		report.Outcomes = append(report.Outcomes, out)
		report.TotalFound += out.JobsFound
		report.TotalSaved += out.JobsSaved

		a.Logger.Infow("company processed",
			"company", co.Slug, "status", out.Status,
			"found", out.JobsFound, "saved", out.JobsSaved)
	}

	// Unconditional: stale postings age out even when every company failed,
	// including postings of companies absent from this run's list.
	n, err := a.Jobs.DeactivateStale(ctx, a.StaleAfter)
	if err != nil {
		a.Logger.Warnw("staleness sweep failed", "err", err)
	}
	report.Deactivated = n
	report.FinishedAt = time.Now().UTC()

	a.Logger.Infow("run finished",
		"run_id", report.RunID, "companies", len(report.Outcomes),
		"found", report.TotalFound, "saved", report.TotalSaved,
		"deactivated", report.Deactivated)
	return report, nil
}

// ScrapeCompany processes a single company outside an aggregate run. A
// company whose ATS type has no adapter yields an error outcome.
func (a *Aggregator) ScrapeCompany(ctx context.Context, co domain.Company) Outcome {
	return a.processCompany(ctx, uuid.NewString(), co)
}

func (a *Aggregator) processCompany(ctx context.Context, runID string, co domain.Company) Outcome {
	scraper, ok := a.Scrapers[co.ATS]
	if !ok {
		out := Outcome{
			CompanySlug: co.Slug,
			Status:      store.StatusError,
			Message:     fmt.Sprintf("no adapter for ATS type %q", co.ATS),
		}
		a.appendLog(ctx, runID, store.StatusError, out)
		return out
	}

	res := safeScrape(ctx, scraper, co)
	found := len(res.Jobs)

	if !res.OK {
		out := Outcome{
			CompanySlug: co.Slug,
			Status:      store.StatusError,
			Message:     res.Err,
		}
		a.appendLog(ctx, runID, store.StatusError, out)
		return out
	}

	// Log status tracks the adapter result alone: did the provider have
	// anything for us. Whether records persisted is the outcome's concern.
	logStatus := store.StatusPartial
	if found > 0 {
		logStatus = store.StatusSuccess
	}

	saved := 0
	var upsertErrs []string
	for _, job := range res.Jobs {
		if err := a.Jobs.Upsert(ctx, co, job); err != nil {
			if len(upsertErrs) < maxUpsertErrors {
				upsertErrs = append(upsertErrs, err.Error())
			}
			continue
		}
		saved++
	}

	out := Outcome{
		CompanySlug: co.Slug,
		JobsFound:   found,
		JobsSaved:   saved,
	}
	switch {
	case saved > 0:
		out.Status = store.StatusSuccess
	case found > 0:
		// provider had jobs but none persisted; distinct from an empty board
		out.Status = store.StatusPartial
		out.Message = "no records saved"
	default:
		out.Status = store.StatusPartial
	}
	if len(upsertErrs) > 0 {
		msg := fmt.Sprintf("%d upsert failure(s): %s", found-saved, strings.Join(upsertErrs, "; "))
		if out.Message != "" {
			msg = out.Message + "; " + msg
		}
		out.Message = msg
	}

	a.appendLog(ctx, runID, logStatus, out)
	return out
}

// appendLog writes one scrape-log entry. Log failures are reported but never
// abort the run.
func (a *Aggregator) appendLog(ctx context.Context, runID string, status store.RunStatus, out Outcome) {
	err := a.Log.Append(ctx, store.LogEntry{
		RunID:       runID,
		CompanySlug: out.CompanySlug,
		Status:      status,
		JobsFound:   out.JobsFound,
		Error:       out.Message,
	})
	if err != nil {
		a.Logger.Warnw("scrape log append failed", "company", out.CompanySlug, "err", err)
	}
}

// safeScrape guards against an adapter breaking its never-fail contract.
func safeScrape(ctx context.Context, s types.Scraper, co domain.Company) (res types.Result) {
	defer func() {
		if r := recover(); r != nil {
			res = types.Errorf("%s adapter panic: %v", s.Name(), r)
		}
	}()
	return s.Scrape(ctx, co)
}
