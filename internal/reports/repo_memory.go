package reports

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores jobs in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Job
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Job)}
}

// Create stores the job.
func (r *MemoryRepo) Create(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[job.ID] = job
	return nil
}

// GetByID returns a job by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, jobID string) (Job, error) {
	if err := ctx.Err(); err != nil {
		return Job{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.byID[jobID]
	if !ok {
		return Job{}, ErrNotFound
	}
	return job, nil
}

// UpdateStatus updates status, report and error fields plus timestamps.
func (r *MemoryRepo) UpdateStatus(ctx context.Context, jobID, status string, report *Report, errorCode, errorMessage *string, startedAt, completedAt *time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.byID[jobID]
	if !ok {
		return ErrNotFound
	}
	job.Status = status
	if report != nil {
		job.Report = report
	}
	if errorCode != nil {
		job.ErrorCode = errorCode
	}
	if errorMessage != nil {
		job.ErrorMessage = errorMessage
	}
	if startedAt != nil {
		job.StartedAt = startedAt
	} else if status == StatusProcessing && job.StartedAt == nil {
		now := time.Now().UTC()
		job.StartedAt = &now
	}
	if completedAt != nil {
		job.CompletedAt = completedAt
	} else if (status == StatusCompleted || status == StatusFailed) && job.CompletedAt == nil {
		now := time.Now().UTC()
		job.CompletedAt = &now
	}
	job.UpdatedAt = time.Now().UTC()
	r.byID[jobID] = job
	return nil
}

// List returns jobs newest first with limit/offset.
func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	jobs := make([]Job, 0, len(r.byID))
	for _, job := range r.byID {
		jobs = append(jobs, job)
	}
	r.mu.RUnlock()

	sort.Slice(jobs, func(i, j int) bool {
		if jobs[i].CreatedAt.Equal(jobs[j].CreatedAt) {
			return jobs[i].ID < jobs[j].ID
		}
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})

	if offset >= len(jobs) {
		return []Job{}, nil
	}
	end := len(jobs)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return jobs[offset:end], nil
}

var _ Repo = (*MemoryRepo)(nil)
