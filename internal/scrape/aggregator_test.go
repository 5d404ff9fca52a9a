package scrape_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/scrape"
	"jobboard-engine/internal/scrape/types"
	"jobboard-engine/internal/store"
)

// ── fakes ─────────────────────────────────────────────────────────────────

type fakeDirectory struct {
	companies []domain.Company
	err       error
}

func (d *fakeDirectory) Companies(ctx context.Context) ([]domain.Company, error) {
	return d.companies, d.err
}

// fakeScraper returns canned results per company slug.
type fakeScraper struct {
	results map[string]types.Result
	panics  map[string]bool
}

func (s *fakeScraper) Name() string { return "fake" }

func (s *fakeScraper) Scrape(ctx context.Context, co domain.Company) types.Result {
	if s.panics[co.Slug] {
		panic("adapter bug")
	}
	if r, ok := s.results[co.Slug]; ok {
		return r
	}
	return types.Result{OK: true}
}

type upsertCall struct {
	slug string
	job  domain.Job
}

type fakeJobStore struct {
	upserts     []upsertCall
	failIDs     map[string]bool
	sweepCalls  int
	sweepWindow time.Duration
	deactivated int64
}

func (f *fakeJobStore) Upsert(ctx context.Context, co domain.Company, j domain.Job) error {
	if f.failIDs[j.ExternalID] {
		return errors.New("constraint violation")
	}
	f.upserts = append(f.upserts, upsertCall{slug: co.Slug, job: j})
	return nil
}

func (f *fakeJobStore) DeactivateStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	f.sweepCalls++
	f.sweepWindow = olderThan
	return f.deactivated, nil
}

type fakeLog struct {
	entries []store.LogEntry
}

func (f *fakeLog) Append(ctx context.Context, e store.LogEntry) error {
	f.entries = append(f.entries, e)
	return nil
}

// ── helpers ───────────────────────────────────────────────────────────────

func ghCompany(slug string) domain.Company {
	return domain.Company{
		Name: slug, Slug: slug, ATS: domain.ATSGreenhouse,
		Greenhouse: &domain.GreenhouseConfig{BoardToken: slug},
	}
}

func jobs(n int) []domain.Job {
	out := make([]domain.Job, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.Job{
			ExternalID:     fmt.Sprintf("gh-%d", i),
			Title:          "Software Engineer",
			EmploymentType: domain.EmploymentFullTime,
			ApplyURL:       "https://example.com",
			Category:       domain.CategorySoftware,
		})
	}
	return out
}

func newAggregator(dir scrape.Directory, js store.JobStore, sl store.ScrapeLog, fs *fakeScraper) *scrape.Aggregator {
	a := scrape.New(dir, js, sl, zap.NewNop().Sugar())
	a.CompanyInterval = 0
	a.Scrapers = map[domain.ATSType]types.Scraper{
		domain.ATSGreenhouse: fs,
		domain.ATSWorkday:    fs,
	}
	return a
}

// ── tests ─────────────────────────────────────────────────────────────────

// Mixed run: alpha returns 5 jobs (all saved), beta fails at transport,
// gamma succeeds with nothing. One log entry per company in order; run
// totals 5/5.
func TestRun_MixedOutcomes(t *testing.T) {
	dir := &fakeDirectory{companies: []domain.Company{
		ghCompany("alpha"), ghCompany("beta"), ghCompany("gamma"),
	}}
	fs := &fakeScraper{results: map[string]types.Result{
		"alpha": {OK: true, Jobs: jobs(5)},
		"beta":  {OK: false, Err: "greenhouse: API returned status 502"},
		"gamma": {OK: true},
	}}
	js := &fakeJobStore{}
	sl := &fakeLog{}

	report, err := newAggregator(dir, js, sl, fs).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(report.Outcomes) != 3 {
		t.Fatalf("got %d outcomes, want 3", len(report.Outcomes))
	}

	wantStatuses := []store.RunStatus{store.StatusSuccess, store.StatusError, store.StatusPartial}
	for i, want := range wantStatuses {
		if report.Outcomes[i].Status != want {
			t.Errorf("outcome[%d].Status = %q, want %q", i, report.Outcomes[i].Status, want)
		}
	}
	a := report.Outcomes[0]
	if a.JobsFound != 5 || a.JobsSaved != 5 {
		t.Errorf("alpha found/saved = %d/%d, want 5/5", a.JobsFound, a.JobsSaved)
	}
	b := report.Outcomes[1]
	if b.JobsFound != 0 || b.JobsSaved != 0 || !strings.Contains(b.Message, "502") {
		t.Errorf("beta outcome = %+v, want 0/0 with transport message", b)
	}
	if report.TotalFound != 5 || report.TotalSaved != 5 {
		t.Errorf("totals = %d/%d, want 5/5", report.TotalFound, report.TotalSaved)
	}

	if len(sl.entries) != 3 {
		t.Fatalf("got %d log entries, want 3", len(sl.entries))
	}
	for i, want := range wantStatuses {
		e := sl.entries[i]
		if e.Status != want {
			t.Errorf("log[%d].Status = %q, want %q", i, e.Status, want)
		}
		if e.RunID != report.RunID {
			t.Errorf("log[%d].RunID = %q, want %q", i, e.RunID, report.RunID)
		}
	}
	if sl.entries[0].CompanySlug != "alpha" || sl.entries[1].CompanySlug != "beta" || sl.entries[2].CompanySlug != "gamma" {
		t.Error("log entries must preserve company order")
	}

	if js.sweepCalls != 1 {
		t.Errorf("staleness sweep ran %d times, want 1", js.sweepCalls)
	}
	if js.sweepWindow != 24*time.Hour {
		t.Errorf("sweep window = %v, want 24h", js.sweepWindow)
	}
}

func TestRun_SkipsUnsupportedATS(t *testing.T) {
	dir := &fakeDirectory{companies: []domain.Company{
		{Name: "Legacy", Slug: "legacy", ATS: domain.ATSCustom},
		ghCompany("alpha"),
	}}
	fs := &fakeScraper{results: map[string]types.Result{
		"alpha": {OK: true, Jobs: jobs(1)},
	}}
	sl := &fakeLog{}

	report, err := newAggregator(dir, &fakeJobStore{}, sl, fs).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Outcomes) != 1 || report.Outcomes[0].CompanySlug != "alpha" {
		t.Errorf("outcomes = %+v, want only alpha (legacy skipped)", report.Outcomes)
	}
	if len(sl.entries) != 1 {
		t.Errorf("skipped companies must not produce log entries, got %d", len(sl.entries))
	}
}

func TestRun_SweepRunsWhenEverythingFails(t *testing.T) {
	dir := &fakeDirectory{companies: []domain.Company{ghCompany("alpha")}}
	fs := &fakeScraper{results: map[string]types.Result{
		"alpha": {OK: false, Err: "boom"},
	}}
	js := &fakeJobStore{deactivated: 7}

	report, err := newAggregator(dir, js, &fakeLog{}, fs).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if js.sweepCalls != 1 {
		t.Error("sweep must run even when every company failed")
	}
	if report.Deactivated != 7 {
		t.Errorf("Deactivated = %d, want 7", report.Deactivated)
	}
}

func TestRun_DirectoryErrorIsFatal(t *testing.T) {
	dir := &fakeDirectory{err: errors.New("yaml: bad file")}
	_, err := newAggregator(dir, &fakeJobStore{}, &fakeLog{}, &fakeScraper{}).Run(context.Background())
	if err == nil {
		t.Fatal("Run succeeded with a broken directory")
	}
}

func TestScrapeCompany_UnsupportedATSIsError(t *testing.T) {
	a := newAggregator(&fakeDirectory{}, &fakeJobStore{}, &fakeLog{}, &fakeScraper{})
	out := a.ScrapeCompany(context.Background(), domain.Company{Slug: "legacy", ATS: domain.ATSCustom})
	if out.Status != store.StatusError {
		t.Errorf("Status = %q, want error for unsupported ATS", out.Status)
	}
	if !strings.Contains(out.Message, "custom") {
		t.Errorf("Message %q should name the ATS type", out.Message)
	}
}

func TestScrapeCompany_PanickingAdapterIsContained(t *testing.T) {
	fs := &fakeScraper{panics: map[string]bool{"alpha": true}}
	a := newAggregator(&fakeDirectory{}, &fakeJobStore{}, &fakeLog{}, fs)

	out := a.ScrapeCompany(context.Background(), ghCompany("alpha"))
	if out.Status != store.StatusError {
		t.Errorf("Status = %q, want error after adapter panic", out.Status)
	}
	if !strings.Contains(out.Message, "panic") {
		t.Errorf("Message %q should mention the panic", out.Message)
	}
}

func TestProcess_UpsertFailuresAreIsolatedAndCapped(t *testing.T) {
	dir := &fakeDirectory{companies: []domain.Company{ghCompany("alpha")}}
	fs := &fakeScraper{results: map[string]types.Result{
		"alpha": {OK: true, Jobs: jobs(6)},
	}}
	js := &fakeJobStore{failIDs: map[string]bool{
		"gh-0": true, "gh-1": true, "gh-2": true, "gh-3": true,
	}}
	sl := &fakeLog{}

	report, err := newAggregator(dir, js, sl, fs).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	out := report.Outcomes[0]
	if out.JobsFound != 6 || out.JobsSaved != 2 {
		t.Errorf("found/saved = %d/%d, want 6/2", out.JobsFound, out.JobsSaved)
	}
	if out.Status != store.StatusSuccess {
		t.Errorf("Status = %q, want success (at least one record saved)", out.Status)
	}
	// four failures, but the message carries at most three
	if n := strings.Count(out.Message, "constraint violation"); n != 3 {
		t.Errorf("message carries %d upsert errors, want 3: %q", n, out.Message)
	}
	// log status reflects the adapter result, not persistence
	if sl.entries[0].Status != store.StatusSuccess {
		t.Errorf("log status = %q, want success", sl.entries[0].Status)
	}
}

func TestProcess_FoundButNoneSavedIsPartial(t *testing.T) {
	fs := &fakeScraper{results: map[string]types.Result{
		"alpha": {OK: true, Jobs: jobs(2)},
	}}
	js := &fakeJobStore{failIDs: map[string]bool{"gh-0": true, "gh-1": true}}
	a := newAggregator(&fakeDirectory{}, js, &fakeLog{}, fs)

	out := a.ScrapeCompany(context.Background(), ghCompany("alpha"))
	if out.Status != store.StatusPartial {
		t.Errorf("Status = %q, want partial when nothing persisted", out.Status)
	}
	if !strings.Contains(out.Message, "no records saved") {
		t.Errorf("Message %q should flag that persistence failed, not the provider", out.Message)
	}
}
