// Package greenhouse scrapes a Greenhouse-style public job board API and
// normalizes its postings.
package greenhouse

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"jobboard-engine/internal/classify"
	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/scrape/types"
	"jobboard-engine/internal/scrape/util"
)

const defaultBaseURL = "https://boards-api.greenhouse.io"

type Scraper struct {
	// BaseURL lets tests point at a fake board API. Empty means production.
	BaseURL string
	hc      *http.Client
}

func New() *Scraper {
	return &Scraper{
		hc: &http.Client{Timeout: 20 * time.Second},
	}
}

func (s *Scraper) Name() string { return "greenhouse" }

type ghResponse struct {
	Jobs []ghJob `json:"jobs"`
}

type ghJob struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
	AbsoluteURL string       `json:"absolute_url"`
	UpdatedAt   string       `json:"updated_at"`
	Content     string       `json:"content"` // HTML-escaped description
	Metadata    []ghMetadata `json:"metadata"`
}

type ghMetadata struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Scrape fetches the full board in one call (the listing endpoint does not
// paginate) and keeps only technical roles.
func (s *Scraper) Scrape(ctx context.Context, co domain.Company) types.Result {
	if co.Greenhouse == nil || strings.TrimSpace(co.Greenhouse.BoardToken) == "" {
		return types.Errorf("greenhouse: company %q has no board token configured", co.Slug)
	}
	token := strings.TrimSpace(co.Greenhouse.BoardToken)

	base := s.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	endpoint := fmt.Sprintf("%s/v1/boards/%s/jobs?content=true", base, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return types.Errorf("greenhouse: build request: %v", err)
	}
	req.Header.Set("User-Agent", "jobboard-engine/1.0")
	req.Header.Set("Cache-Control", "max-age=3600")

	res, err := s.hc.Do(req)
	if err != nil {
		return types.Errorf("greenhouse: get board: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return types.Errorf("greenhouse: API returned status %d", res.StatusCode)
	}

	var body ghResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return types.Errorf("greenhouse: decode response: %v", err)
	}

	var jobs []domain.Job
	for _, j := range body.Jobs {
		title := util.CleanText(j.Title)
		if !classify.IsTechRole(title) {
			continue
		}

		loc := util.CleanText(j.Location.Name)
		desc := util.HTMLToText(html.UnescapeString(j.Content))

		jobs = append(jobs, domain.Job{
			ExternalID:     fmt.Sprintf("gh-%d", j.ID),
			Title:          title,
			Location:       loc,
			EmploymentType: employmentFromMetadata(j.Metadata),
			Remote:         classify.IsRemote(loc, title),
			PostedAt:       parseUpdatedAt(j.UpdatedAt),
			ApplyURL:       strings.TrimSpace(j.AbsoluteURL),
			Category:       classify.Categorize(title),
			Tags:           classify.ExtractTags(title, desc),
		})
	}

	return types.Result{OK: true, Jobs: jobs}
}

// employmentFromMetadata looks for a type hint among the board's free-form
// metadata fields. Any key mentioning "employment" or "type" counts.
func employmentFromMetadata(meta []ghMetadata) domain.EmploymentType {
	for _, m := range meta {
		key := strings.ToLower(m.Name)
		if !strings.Contains(key, "employment") && !strings.Contains(key, "type") {
			continue
		}
		if v, ok := m.Value.(string); ok && strings.TrimSpace(v) != "" {
			return classify.NormalizeEmploymentType(v)
		}
	}
	return domain.EmploymentFullTime
}

func parseUpdatedAt(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	return nil
}
