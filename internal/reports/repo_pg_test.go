package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"readiness-backend/internal/assessment"
)

func TestPGRepoCreateInsertsRecordJSON(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	job := Job{
		ID:     "job-1",
		Status: StatusQueued,
		Record: assessment.Record{
			CompanyName: "Acme Logistics",
			Industry:    "manufacturing",
			CompanySize: "11-50",
		},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO report_jobs").
		WithArgs(
			job.ID,
			job.Status,
			sqlmock.AnyArg(), // record json
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), job); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDScansNullableColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	created := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "status", "record", "report", "error_code", "error_message",
		"started_at", "completed_at", "created_at", "updated_at",
	}).AddRow(
		"job-1", StatusQueued, []byte(`{"companyName":"Acme Logistics"}`),
		nil, nil, nil,
		nil, nil, created, created,
	)

	mock.ExpectQuery("SELECT id, status, record").
		WithArgs("job-1").
		WillReturnRows(rows)

	job, err := repo.GetByID(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if job.ID != "job-1" || job.Status != StatusQueued {
		t.Fatalf("unexpected job: %+v", job)
	}
	if job.Record.CompanyName != "Acme Logistics" {
		t.Fatalf("expected record to round-trip, got %+v", job.Record)
	}
	if job.Report != nil || job.ErrorCode != nil || job.StartedAt != nil {
		t.Fatalf("expected nullable fields to stay nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDRejectsCorruptReportJSON(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	created := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "status", "record", "report", "error_code", "error_message",
		"started_at", "completed_at", "created_at", "updated_at",
	}).AddRow(
		"job-1", StatusCompleted, []byte(`{"companyName":"Acme Logistics"}`),
		"{not-json", nil, nil,
		nil, nil, created, created,
	)

	mock.ExpectQuery("SELECT id, status, record").
		WithArgs("job-1").
		WillReturnRows(rows)

	if _, err := repo.GetByID(context.Background(), "job-1"); err == nil {
		t.Fatal("expected an error for a corrupt stored report")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT id, status, record").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "status", "record", "report", "error_code", "error_message",
			"started_at", "completed_at", "created_at", "updated_at",
		}))

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoUpdateStatusNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("UPDATE report_jobs").
		WithArgs(StatusProcessing, nil, nil, nil, nil, nil, "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateStatus(context.Background(), "missing", StatusProcessing, nil, nil, nil, nil, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListAppliesLimitBounds(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT id, status, record").
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "status", "record", "report", "error_code", "error_message",
			"started_at", "completed_at", "created_at", "updated_at",
		}))

	jobs, err := repo.List(context.Background(), 0, -5)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected empty list, got %d", len(jobs))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
