package reports

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRepo implements Repo on a local SQLite file. It is the durable
// single-node alternative to Postgres for small deployments.
type SQLiteRepo struct {
	db *sql.DB
}

// NewSQLiteRepo opens (or creates) the database at path, applies the WAL
// pragmas and bootstraps the schema.
func NewSQLiteRepo(path string) (*SQLiteRepo, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("sqlite: create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite: pragma %q: %w", p, err)
		}
	}

	const schema = `
CREATE TABLE IF NOT EXISTS report_jobs (
	id            TEXT PRIMARY KEY,
	status        TEXT NOT NULL,
	record        TEXT NOT NULL,
	report        TEXT,
	error_code    TEXT,
	error_message TEXT,
	started_at    TIMESTAMP,
	completed_at  TIMESTAMP,
	created_at    TIMESTAMP NOT NULL,
	updated_at    TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_report_jobs_created_at ON report_jobs (created_at DESC);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: bootstrap schema: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

// Close closes the underlying database.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// Create inserts a new report job.
func (r *SQLiteRepo) Create(ctx context.Context, job Job) error {
	record, err := json.Marshal(job.Record)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO report_jobs (id, status, record, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`,
		job.ID, job.Status, string(record), job.CreatedAt, job.UpdatedAt)
	return err
}

// GetByID returns a report job by ID.
func (r *SQLiteRepo) GetByID(ctx context.Context, jobID string) (Job, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, status, record, report, error_code, error_message,
       started_at, completed_at, created_at, updated_at
FROM report_jobs
WHERE id = ?
LIMIT 1`, jobID)

	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	return job, nil
}

// UpdateStatus updates status, report and error fields plus timestamps.
func (r *SQLiteRepo) UpdateStatus(ctx context.Context, jobID, status string, report *Report, errorCode, errorMessage *string, startedAt, completedAt *time.Time) error {
	now := time.Now().UTC()
	if status == StatusProcessing && startedAt == nil {
		startedAt = &now
	}
	if (status == StatusCompleted || status == StatusFailed) && completedAt == nil {
		completedAt = &now
	}

	var payload any
	if report != nil {
		data, err := json.Marshal(report)
		if err != nil {
			return err
		}
		payload = string(data)
	}

	res, err := r.db.ExecContext(ctx, `
UPDATE report_jobs
SET status = ?,
    report = COALESCE(?, report),
    error_code = COALESCE(?, error_code),
    error_message = COALESCE(?, error_message),
    started_at = COALESCE(?, started_at),
    completed_at = COALESCE(?, completed_at),
    updated_at = ?
WHERE id = ?`,
		status, payload, errorCode, errorMessage, startedAt, completedAt, now, jobID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns report jobs ordered newest-first with limit/offset.
func (r *SQLiteRepo) List(ctx context.Context, limit, offset int) ([]Job, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, status, record, report, error_code, error_message,
       started_at, completed_at, created_at, updated_at
FROM report_jobs
ORDER BY created_at DESC, id
LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

var _ Repo = (*SQLiteRepo)(nil)
