package reports

import (
	"context"
	"time"
)

// Repo defines persistence operations for report jobs.
type Repo interface {
	Create(ctx context.Context, job Job) error
	GetByID(ctx context.Context, jobID string) (Job, error)
	UpdateStatus(ctx context.Context, jobID, status string, report *Report, errorCode, errorMessage *string, startedAt, completedAt *time.Time) error
	List(ctx context.Context, limit, offset int) ([]Job, error)
}
