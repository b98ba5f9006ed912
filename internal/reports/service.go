package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"readiness-backend/internal/assessment"
	"readiness-backend/internal/queue"
	"readiness-backend/internal/shared/metrics"
	"readiness-backend/internal/shared/storage/object"
	"readiness-backend/internal/shared/telemetry"
)

// Service contains business logic for report jobs.
type Service struct {
	Repo   Repo
	Engine Engine
	Store  object.ObjectStore
	Queue  queue.Client
}

// Create normalizes the submission, enqueues a report job and kicks off
// generation. With a queue configured the job is handed to the worker;
// otherwise it completes on a background goroutine in-process.
func (s *Service) Create(ctx context.Context, sub assessment.Submission) (Job, error) {
	rec, err := assessment.Normalize(sub)
	if err != nil {
		return Job{}, err
	}

	job := Job{
		ID:        uuid.NewString(),
		Status:    StatusQueued,
		Record:    rec,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, job); err != nil {
		return Job{}, err
	}

	if s.Queue != nil {
		msg := queue.Message{
			ReportID:   job.ID,
			RequestID:  requestIDFromContext(ctx),
			EnqueuedAt: job.CreatedAt.Format(time.RFC3339),
			Version:    1,
		}
		if err := s.Queue.Send(ctx, msg); err != nil {
			s.failJob(ctx, job.ID, fmt.Errorf("queue send: %w", err), nil)
			return Job{}, err
		}
		return job, nil
	}

	go s.completeAsync(backgroundWithRequestID(ctx), job.ID)
	return job, nil
}

// Get returns a job by ID.
func (s *Service) Get(ctx context.Context, jobID string) (Job, error) {
	if jobID == "" {
		return Job{}, errors.New("jobID is required")
	}
	return s.Repo.GetByID(ctx, jobID)
}

// List returns jobs ordered newest-first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Job, error) {
	return s.Repo.List(ctx, limit, offset)
}

// Complete runs the report pipeline for a queued job. It is called by the
// in-process goroutine and by the queue worker.
func (s *Service) Complete(ctx context.Context, jobID string) error {
	startedAt := time.Now().UTC()
	if err := s.Repo.UpdateStatus(ctx, jobID, StatusProcessing, nil, nil, nil, &startedAt, nil); err != nil {
		s.failJob(ctx, jobID, fmt.Errorf("set processing failed: %w", err), &startedAt)
		return err
	}

	job, err := s.Repo.GetByID(ctx, jobID)
	if err != nil {
		s.failJob(ctx, jobID, fmt.Errorf("job lookup: %w", err), &startedAt)
		return err
	}
	metrics.IncReportStarted()
	telemetry.Info("report.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"report_id":         job.ID,
		"status":            StatusProcessing,
		"status_transition": "queued->processing",
	})

	report, llmDown, err := s.Engine.Generate(ctx, job.Record, job.ID, time.Now().UTC())
	if err != nil {
		s.failJob(ctx, jobID, err, &startedAt)
		return err
	}
	if llmDown {
		metrics.IncLLMFallback()
		telemetry.Warn("report.llm_fallback", map[string]any{
			"request_id": requestIDFromContext(ctx),
			"report_id":  job.ID,
		})
	}

	if s.Store != nil {
		if err := s.snapshot(ctx, report); err != nil {
			s.failJob(ctx, jobID, fmt.Errorf("snapshot write: %w", err), &startedAt)
			return err
		}
	}

	completedAt := time.Now().UTC()
	if err := s.Repo.UpdateStatus(ctx, jobID, StatusCompleted, report, nil, nil, nil, &completedAt); err != nil {
		s.failJob(ctx, jobID, fmt.Errorf("set report result failed: %w", err), &startedAt)
		return err
	}
	metrics.IncReportCompleted()
	metrics.ObserveReportDurationMs(durationMs(&startedAt, &completedAt))
	telemetry.Info("report.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"report_id":         job.ID,
		"status":            StatusCompleted,
		"status_transition": "processing->completed",
		"duration_ms":       durationMs(&startedAt, &completedAt),
	})
	return nil
}

func (s *Service) completeAsync(ctx context.Context, jobID string) {
	defer func() {
		if r := recover(); r != nil {
			s.failJob(ctx, jobID, fmt.Errorf("panic: %v", r), nil)
		}
	}()
	_ = s.Complete(ctx, jobID)
}

// snapshot writes the report JSON to the object store under a stable key.
func (s *Service) snapshot(ctx context.Context, report *Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return err
	}
	key := SnapshotKey(report.ID)
	return s.Store.Put(ctx, key, "application/json", bytes.NewReader(payload))
}

// SnapshotKey is the object-store key for a report's JSON snapshot.
func SnapshotKey(reportID string) string {
	return "reports/" + reportID + ".json"
}

func (s *Service) failJob(ctx context.Context, jobID string, err error, startedAt *time.Time) {
	code := classifyFailure(err)
	msg := sanitizeError(err)
	completedAt := time.Now().UTC()
	if updateErr := s.Repo.UpdateStatus(context.Background(), jobID, StatusFailed, nil, &code, &msg, nil, &completedAt); updateErr != nil {
		telemetry.Error("report.fail_update", map[string]any{
			"report_id": jobID,
			"error":     updateErr.Error(),
			"cause":     msg,
		})
	}
	metrics.IncReportFailed()
	if startedAt != nil {
		metrics.ObserveReportDurationMs(durationMs(startedAt, &completedAt))
	}
	telemetry.Info("report.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"report_id":         jobID,
		"status":            StatusFailed,
		"status_transition": "processing->failed",
		"duration_ms":       durationMs(startedAt, &completedAt),
	})
}

func durationMs(startedAt, completedAt *time.Time) float64 {
	if startedAt == nil || completedAt == nil {
		return 0
	}
	return float64(completedAt.Sub(*startedAt).Microseconds()) / 1000.0
}

func classifyFailure(err error) string {
	if err == nil {
		return ErrorCodeInternal
	}
	var cerr *ConsistencyError
	if errors.As(err, &cerr) {
		return ErrorCodeConsistency
	}
	var verr *assessment.ValidationError
	if errors.As(err, &verr) {
		return ErrorCodeValidation
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "snapshot") || strings.Contains(msg, "storage") ||
		strings.Contains(msg, "set processing") || strings.Contains(msg, "set report result") ||
		strings.Contains(msg, "job lookup") || strings.Contains(msg, "queue send") {
		return ErrorCodeStorage
	}
	return ErrorCodeInternal
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}
