package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"jobboard-engine/internal/domain"
)

// Postgres backs the job store and scrape log with the site's relational
// database. Same contract as SQLite; chosen when DATABASE_URL is set.
type Postgres struct {
	Pool *pgxpool.Pool
}

func OpenPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	p := &Postgres{Pool: pool}
	if err := p.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

func (p *Postgres) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}

func (p *Postgres) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS jobs (
  id BIGSERIAL PRIMARY KEY,
  external_id TEXT NOT NULL,
  company_slug TEXT NOT NULL,
  title TEXT NOT NULL,
  location TEXT NOT NULL DEFAULT '',
  employment_type TEXT NOT NULL,
  remote BOOLEAN NOT NULL DEFAULT FALSE,
  salary TEXT NOT NULL DEFAULT '',
  posted_at TIMESTAMPTZ,
  apply_url TEXT NOT NULL,
  category TEXT NOT NULL,
  tags JSONB NOT NULL DEFAULT '[]',
  source TEXT NOT NULL DEFAULT '',
  is_active BOOLEAN NOT NULL DEFAULT TRUE,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (external_id, company_slug)
)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_active_updated ON jobs (is_active, updated_at)`,
		`CREATE TABLE IF NOT EXISTS scrape_logs (
  id BIGSERIAL PRIMARY KEY,
  run_id TEXT NOT NULL,
  company_slug TEXT NOT NULL,
  status TEXT NOT NULL,
  jobs_found INT NOT NULL DEFAULT 0,
  error TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	}
	for _, q := range stmts {
		if _, err := p.Pool.Exec(ctx, q); err != nil {
			return fmt.Errorf("postgres migrate: %w", err)
		}
	}
	return nil
}

func (p *Postgres) Upsert(ctx context.Context, co domain.Company, j domain.Job) error {
	tagsB, _ := json.Marshal(j.Tags)

	var postedAt *time.Time
	if j.PostedAt != nil {
		t := j.PostedAt.UTC()
		postedAt = &t
	}

	_, err := p.Pool.Exec(ctx, `
INSERT INTO jobs (external_id, company_slug, title, location, employment_type,
                  remote, salary, posted_at, apply_url, category, tags, source,
                  is_active, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,TRUE,now(),now())
ON CONFLICT (external_id, company_slug) DO UPDATE SET
  title = EXCLUDED.title,
  location = EXCLUDED.location,
  employment_type = EXCLUDED.employment_type,
  remote = EXCLUDED.remote,
  salary = EXCLUDED.salary,
  posted_at = EXCLUDED.posted_at,
  apply_url = EXCLUDED.apply_url,
  category = EXCLUDED.category,
  tags = EXCLUDED.tags,
  is_active = TRUE,
  updated_at = now();`,
		j.ExternalID, co.Slug, j.Title, j.Location, string(j.EmploymentType),
		j.Remote, j.Salary, postedAt, j.ApplyURL, string(j.Category),
		string(tagsB), string(co.ATS),
	)
	if err != nil {
		return fmt.Errorf("upsert job %s/%s: %w", co.Slug, j.ExternalID, err)
	}
	return nil
}

func (p *Postgres) DeactivateStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	tag, err := p.Pool.Exec(ctx, `
UPDATE jobs
SET is_active = FALSE
WHERE is_active = TRUE
  AND updated_at < now() - $1::interval;`,
		fmt.Sprintf("%d seconds", int64(olderThan.Seconds())),
	)
	if err != nil {
		return 0, fmt.Errorf("deactivate stale jobs: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (p *Postgres) Append(ctx context.Context, e LogEntry) error {
	_, err := p.Pool.Exec(ctx, `
INSERT INTO scrape_logs (run_id, company_slug, status, jobs_found, error)
VALUES ($1,$2,$3,$4,$5);`,
		e.RunID, e.CompanySlug, string(e.Status), e.JobsFound, e.Error,
	)
	if err != nil {
		return fmt.Errorf("append scrape log for %s: %w", e.CompanySlug, err)
	}
	return nil
}
