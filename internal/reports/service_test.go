package reports

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"readiness-backend/internal/assessment"
	"readiness-backend/internal/queue"
	"readiness-backend/internal/shared/storage/object/local"
)

type captureQueue struct {
	msgs []queue.Message
	err  error
}

func (q *captureQueue) Send(ctx context.Context, msg queue.Message) error {
	if q.err != nil {
		return q.err
	}
	q.msgs = append(q.msgs, msg)
	return nil
}

func validSubmission() assessment.Submission {
	return assessment.Submission{
		CompanyName: "Acme Logistics",
		Industry:    "manufacturing",
		CompanySize: "11-50",
		Role:        "coo",
		Challenges:  []string{"manual-processes"},
		Timeline:    "6-months",
	}
}

func TestCreateEnqueuesWithQueue(t *testing.T) {
	q := &captureQueue{}
	svc := &Service{Repo: NewMemoryRepo(), Engine: testEngine(), Queue: q}

	job, err := svc.Create(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if job.Status != StatusQueued {
		t.Fatalf("status = %q, want queued", job.Status)
	}
	if len(q.msgs) != 1 || q.msgs[0].ReportID != job.ID {
		t.Fatalf("queue messages = %+v", q.msgs)
	}

	stored, err := svc.Get(context.Background(), job.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Status != StatusQueued {
		t.Fatalf("stored status = %q", stored.Status)
	}
}

func TestCreateRejectsInvalidSubmission(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo(), Engine: testEngine(), Queue: &captureQueue{}}

	sub := validSubmission()
	sub.Industry = "space-mining"
	if _, err := svc.Create(context.Background(), sub); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestCompleteProducesReportAndSnapshot(t *testing.T) {
	store := local.New(t.TempDir())
	svc := &Service{Repo: NewMemoryRepo(), Engine: testEngine(), Store: store, Queue: &captureQueue{}}

	job, err := svc.Create(context.Background(), validSubmission())
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Complete(context.Background(), job.ID); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	done, err := svc.Get(context.Background(), job.ID)
	if err != nil {
		t.Fatal(err)
	}
	if done.Status != StatusCompleted {
		t.Fatalf("status = %q, want completed", done.Status)
	}
	if done.Report == nil || done.Report.ID != job.ID {
		t.Fatalf("missing report: %+v", done)
	}
	if done.StartedAt == nil || done.CompletedAt == nil {
		t.Fatal("timestamps not set")
	}

	body, err := store.Open(context.Background(), SnapshotKey(job.ID))
	if err != nil {
		t.Fatalf("snapshot missing: %v", err)
	}
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatal(err)
	}
	var snap Report
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("snapshot not valid JSON: %v", err)
	}
	if snap.ID != job.ID {
		t.Fatalf("snapshot id = %q", snap.ID)
	}
}

func TestCompleteMissingJobFails(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo(), Engine: testEngine()}

	if err := svc.Complete(context.Background(), "no-such-job"); err == nil {
		t.Fatal("expected error for unknown job")
	}
}

func TestCreateWithoutQueueCompletesInProcess(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo(), Engine: testEngine()}

	job, err := svc.Create(context.Background(), validSubmission())
	if err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		got, err := svc.Get(context.Background(), job.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.Status == StatusCompleted {
			if got.Report == nil {
				t.Fatal("completed without report")
			}
			return
		}
		if got.Status == StatusFailed {
			t.Fatalf("job failed: %v %v", got.ErrorCode, got.ErrorMessage)
		}
		if time.Now().After(deadline) {
			t.Fatalf("job stuck in status %q", got.Status)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestClassifyFailure(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&ConsistencyError{Issues: []string{"x"}}, ErrorCodeConsistency},
		{&assessment.ValidationError{}, ErrorCodeValidation},
		{errFromMsg("snapshot write: disk full"), ErrorCodeStorage},
		{errFromMsg("job lookup: not found"), ErrorCodeStorage},
		{errFromMsg("something else"), ErrorCodeInternal},
	}
	for _, tc := range cases {
		if got := classifyFailure(tc.err); got != tc.want {
			t.Errorf("classifyFailure(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

type errFromMsg string

func (e errFromMsg) Error() string { return string(e) }
