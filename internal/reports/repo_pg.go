package reports

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new report job.
func (r *PGRepo) Create(ctx context.Context, job Job) error {
	const query = `
INSERT INTO report_jobs (id, status, record, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)`

	record, err := json.Marshal(job.Record)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		job.ID,
		job.Status,
		record,
		job.CreatedAt,
		job.UpdatedAt,
	)
	return err
}

// GetByID returns a report job by ID.
func (r *PGRepo) GetByID(ctx context.Context, jobID string) (Job, error) {
	const query = `
SELECT id, status, record, report, error_code, error_message,
       started_at, completed_at, created_at, updated_at
FROM report_jobs
WHERE id = $1
LIMIT 1`

	row := r.DB.QueryRowContext(ctx, query, jobID)
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
func (r *PGRepo) UpdateStatus(ctx context.Context, jobID, status string, report *Report, errorCode, errorMessage *string, startedAt, completedAt *time.Time) error {
	const query = `
UPDATE report_jobs
SET status = $1,
    report = COALESCE($2::jsonb, report),
    error_code = COALESCE($3::text, error_code),
    error_message = COALESCE($4::text, error_message),
    started_at = CASE
        WHEN $5::timestamptz IS NOT NULL THEN $5::timestamptz
        WHEN $1 = 'processing' AND started_at IS NULL THEN now()
        ELSE started_at
    END,
    completed_at = CASE
        WHEN $6::timestamptz IS NOT NULL THEN $6::timestamptz
        WHEN ($1 = 'completed' OR $1 = 'failed') AND completed_at IS NULL THEN now()
        ELSE completed_at
    END,
    updated_at = now()
WHERE id = $7`

	var payload any
	if report != nil {
		data, err := json.Marshal(report)
		if err != nil {
			return err
		}
		payload = data
	}

	res, err := r.DB.ExecContext(ctx, query, status, payload, errorCode, errorMessage, startedAt, completedAt, jobID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns report jobs ordered newest-first with limit/offset.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Job, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	const query = `
SELECT id, status, record, report, error_code, error_message,
       started_at, completed_at, created_at, updated_at
FROM report_jobs
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (Job, error) {
	var job Job
	var record []byte
	var report sql.NullString
	var errorCode sql.NullString
	var errorMessage sql.NullString
	var startedAt sql.NullTime
	var completedAt sql.NullTime

	if err := row.Scan(
		&job.ID,
		&job.Status,
		&record,
		&report,
		&errorCode,
		&errorMessage,
		&startedAt,
		&completedAt,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		return Job{}, err
	}

	if len(record) > 0 {
		if err := json.Unmarshal(record, &job.Record); err != nil {
			return Job{}, err
		}
	}
	if report.Valid {
		var parsed Report
		if err := json.Unmarshal([]byte(report.String), &parsed); err != nil {
			return Job{}, err
		}
		job.Report = &parsed
	}
	if errorCode.Valid {
		job.ErrorCode = &errorCode.String
	}
	if errorMessage.Valid {
		job.ErrorMessage = &errorMessage.String
	}
	if startedAt.Valid {
		job.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		job.CompletedAt = &completedAt.Time
	}
	return job, nil
}

var _ Repo = (*PGRepo)(nil)
