// Package workday scrapes a Workday-style tenant job-search API and
// normalizes its postings.
package workday

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"jobboard-engine/internal/classify"
	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/scrape/types"
	"jobboard-engine/internal/scrape/util"
)

const (
	pageSize = 20
	// hard ceiling across all pages of one company
	maxJobs          = 500
	localeSegment    = "en-US"
	defaultPageDelay = 100 * time.Millisecond
)

type Scraper struct {
	// PageInterval spaces successive page requests. Zero means the default;
	// tests set a negative value to disable pacing.
	PageInterval time.Duration
	hc           *http.Client
}

func New() *Scraper {
	return &Scraper{hc: &http.Client{Timeout: 20 * time.Second}}
}

func (s *Scraper) Name() string { return "workday" }

type wdRequest struct {
	AppliedFacets map[string]any `json:"appliedFacets"`
	Limit         int            `json:"limit"`
	Offset        int            `json:"offset"`
	SearchText    string         `json:"searchText"`
}

type wdResponse struct {
	Total       int         `json:"total"`
	JobPostings []wdPosting `json:"jobPostings"`
}

type wdPosting struct {
	Title         string   `json:"title"`
	ExternalPath  string   `json:"externalPath"`
	LocationsText string   `json:"locationsText"`
	PostedOn      string   `json:"postedOn"`
	BulletFields  []string `json:"bulletFields"`
}

// Scrape pages through the tenant's job-search endpoint until it runs out of
// postings or hits the safety ceiling. A failure on the first page is fatal;
// a failure on a later page returns whatever was gathered so far.
func (s *Scraper) Scrape(ctx context.Context, co domain.Company) types.Result {
	wd := co.Workday
	if wd == nil || strings.TrimSpace(wd.BaseURL) == "" ||
		strings.TrimSpace(wd.Tenant) == "" || strings.TrimSpace(wd.Site) == "" {
		return types.Errorf("workday: company %q is missing base_url, tenant or site", co.Slug)
	}

	base := strings.TrimRight(strings.TrimSpace(wd.BaseURL), "/")
	endpoint := fmt.Sprintf("%s/wday/cxs/%s/%s/jobs", base, wd.Tenant, wd.Site)

	interval := s.PageInterval
	if interval == 0 {
		interval = defaultPageDelay
	}
	pacer := util.NewPacer(interval)

	var jobs []domain.Job
	scraped := 0
	offset := 0

	for {
		if err := pacer.Wait(ctx); err != nil {
			return types.Errorf("workday: %v", err)
		}

		page, err := s.fetchPage(ctx, endpoint, offset)
		if err != nil {
			if offset == 0 {
				return types.Errorf("workday: %v", err)
			}
			// later pages degrade to a partial-but-successful scrape
			break
		}

		if len(page.JobPostings) == 0 {
			break
		}

		for _, p := range page.JobPostings {
			scraped++
			if j, ok := s.normalize(base, wd.Site, p); ok {
				jobs = append(jobs, j)
			}
		}

		if len(page.JobPostings) < pageSize {
			break
		}
		offset += pageSize
		if page.Total > 0 && offset >= page.Total {
			break
		}
		if scraped >= maxJobs {
			break
		}
	}

	return types.Result{OK: true, Jobs: jobs}
}

func (s *Scraper) fetchPage(ctx context.Context, endpoint string, offset int) (*wdResponse, error) {
	payload, _ := json.Marshal(wdRequest{
		AppliedFacets: map[string]any{},
		Limit:         pageSize,
		Offset:        offset,
		SearchText:    "",
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "jobboard-engine/1.0")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	res, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post jobs offset=%d: %w", offset, err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("API returned status %d at offset %d", res.StatusCode, offset)
	}

	var body wdResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode page offset=%d: %w", offset, err)
	}
	return &body, nil
}

func (s *Scraper) normalize(base, site string, p wdPosting) (domain.Job, bool) {
	title := util.CleanText(p.Title)
	if !classify.IsTechRole(title) {
		return domain.Job{}, false
	}

	loc := util.CleanText(p.LocationsText)
	path := strings.TrimSpace(p.ExternalPath)
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return domain.Job{
		ExternalID:     "wd-" + jobRef(path),
		Title:          title,
		Location:       loc,
		EmploymentType: employmentFromBullets(p.BulletFields),
		Remote:         classify.IsRemote(loc, title),
		PostedAt:       parsePostedOn(p.PostedOn, time.Now()),
		ApplyURL:       fmt.Sprintf("%s/%s/%s%s", base, localeSegment, site, path),
		Category:       classify.Categorize(title),
		Tags:           classify.ExtractTags(title, ""),
	}, true
}

// employmentFromBullets scans the free-text bullet fields for the first one
// that normalizes to something other than the Full-time default.
func employmentFromBullets(bullets []string) domain.EmploymentType {
	for _, b := range bullets {
		if et := classify.NormalizeEmploymentType(b); et != domain.EmploymentFullTime {
			return et
		}
	}
	return domain.EmploymentFullTime
}

var jobRefRe = regexp.MustCompile(`/job/(?:[^/]+/)*([^/]+)`)

// jobRef extracts the job-reference token from a Workday external path. When
// the expected /job/<token> shape is absent the raw path is used, folded into
// a key-safe form.
func jobRef(path string) string {
	if m := jobRefRe.FindStringSubmatch(path); m != nil {
		return m[1]
	}
	safe := strings.Trim(path, "/")
	return strings.ReplaceAll(safe, "/", "-")
}

var daysAgoRe = regexp.MustCompile(`posted\s+(\d+)\+?\s+days?\s+ago`)

// parsePostedOn converts Workday's relative posted strings ("Posted Today",
// "Posted Yesterday", "Posted 30+ Days Ago") into absolute timestamps.
// Unparseable input yields nil, never an error.
func parsePostedOn(s string, now time.Time) *time.Time {
	l := strings.ToLower(util.CleanText(s))
	switch {
	case l == "":
		return nil
	case strings.Contains(l, "posted today"):
		t := now
		return &t
	case strings.Contains(l, "posted yesterday"):
		t := now.AddDate(0, 0, -1)
		return &t
	}
	if m := daysAgoRe.FindStringSubmatch(l); m != nil {
		var n int
		_, _ = fmt.Sscanf(m[1], "%d", &n)
		t := now.AddDate(0, 0, -n)
		return &t
	}
	return nil
}
