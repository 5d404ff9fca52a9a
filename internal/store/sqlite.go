package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"jobboard-engine/internal/domain"
)

// SQLite backs the job store and scrape log with a single local database
// file.
type SQLite struct {
	Pool *sql.DB
}

func OpenSQLite(path string) (*SQLite, error) {
	// modernc sqlite DSN: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	pool.SetMaxOpenConns(1) // sqlite wants a single writer
	pool.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, err
	}

	s := &SQLite{Pool: pool}
	if err := s.migrate(); err != nil {
		_ = pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) Close() error {
	if s == nil || s.Pool == nil {
		return nil
	}
	return s.Pool.Close()
}

func (s *SQLite) migrate() error {
	tx, err := s.Pool.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS jobs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  external_id TEXT NOT NULL,
  company_slug TEXT NOT NULL,
  title TEXT NOT NULL,
  location TEXT NOT NULL DEFAULT '',
  employment_type TEXT NOT NULL,
  remote INTEGER NOT NULL DEFAULT 0,
  salary TEXT NOT NULL DEFAULT '',
  posted_at TEXT,
  apply_url TEXT NOT NULL,
  category TEXT NOT NULL,
  tags TEXT NOT NULL DEFAULT '[]',
  source TEXT NOT NULL DEFAULT '',
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_jobs_external_company
ON jobs(external_id, company_slug);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_jobs_active_updated
ON jobs(is_active, updated_at);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS scrape_logs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  run_id TEXT NOT NULL,
  company_slug TEXT NOT NULL,
  status TEXT NOT NULL,
  jobs_found INTEGER NOT NULL DEFAULT 0,
  error TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLite) Upsert(ctx context.Context, co domain.Company, j domain.Job) error {
	tagsB, _ := json.Marshal(j.Tags)
	now := time.Now().UTC().Format(time.RFC3339)

	var postedAt any
	if j.PostedAt != nil {
		postedAt = j.PostedAt.UTC().Format(time.RFC3339)
	}

	_, err := s.Pool.ExecContext(ctx, `
INSERT INTO jobs (external_id, company_slug, title, location, employment_type,
                  remote, salary, posted_at, apply_url, category, tags, source,
                  is_active, created_at, updated_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,1,?,?)
ON CONFLICT(external_id, company_slug) DO UPDATE SET
  title = excluded.title,
  location = excluded.location,
  employment_type = excluded.employment_type,
  remote = excluded.remote,
  salary = excluded.salary,
  posted_at = excluded.posted_at,
  apply_url = excluded.apply_url,
  category = excluded.category,
  tags = excluded.tags,
  is_active = 1,
  updated_at = excluded.updated_at;`,
		j.ExternalID, co.Slug, j.Title, j.Location, string(j.EmploymentType),
		boolToInt(j.Remote), j.Salary, postedAt, j.ApplyURL, string(j.Category),
		string(tagsB), string(co.ATS), now, now,
	)
	if err != nil {
		return fmt.Errorf("upsert job %s/%s: %w", co.Slug, j.ExternalID, err)
	}
	return nil
}

func (s *SQLite) DeactivateStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan).Format(time.RFC3339)
	res, err := s.Pool.ExecContext(ctx, `
UPDATE jobs
SET is_active = 0
WHERE is_active = 1
  AND updated_at < ?;`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("deactivate stale jobs: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (s *SQLite) Append(ctx context.Context, e LogEntry) error {
	_, err := s.Pool.ExecContext(ctx, `
INSERT INTO scrape_logs (run_id, company_slug, status, jobs_found, error, created_at)
VALUES (?,?,?,?,?,?);`,
		e.RunID, e.CompanySlug, string(e.Status), e.JobsFound, e.Error,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("append scrape log for %s: %w", e.CompanySlug, err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
