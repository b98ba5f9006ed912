package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(api)
	return r
}

func TestStartAssessmentAccepted(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo(), Engine: testEngine(), Queue: &captureQueue{}}
	router := newTestRouter(svc)

	body, _ := json.Marshal(validSubmission())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		ReportID string `json:"reportId"`
		Status   string `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.ReportID == "" || resp.Status != StatusQueued {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestStartAssessmentValidationDetails(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo(), Engine: testEngine(), Queue: &captureQueue{}}
	router := newTestRouter(svc)

	sub := validSubmission()
	sub.Budget = "one-billion"
	body, _ := json.Marshal(sub)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Error struct {
			Code    string              `json:"code"`
			Details []map[string]string `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error.Code != "validation_error" || len(resp.Error.Details) == 0 {
		t.Fatalf("unexpected error payload: %s", w.Body.String())
	}
	if resp.Error.Details[0]["field"] != "budget" {
		t.Fatalf("details = %+v", resp.Error.Details)
	}
}

func TestStartAssessmentMalformedBody(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo(), Engine: testEngine(), Queue: &captureQueue{}}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments", bytes.NewReader([]byte("{nope")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestGetReportLifecycle(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo(), Engine: testEngine(), Queue: &captureQueue{}}
	router := newTestRouter(svc)

	job, err := svc.Create(context.Background(), validSubmission())
	if err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/"+job.ID, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var queued struct {
		Status string          `json:"status"`
		Report json.RawMessage `json:"report"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &queued); err != nil {
		t.Fatal(err)
	}
	if queued.Status != StatusQueued || queued.Report != nil {
		t.Fatalf("queued response: %s", w.Body.String())
	}

	if err := svc.Complete(context.Background(), job.ID); err != nil {
		t.Fatal(err)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/"+job.ID, nil))
	var completed struct {
		Status string  `json:"status"`
		Report *Report `json:"report"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &completed); err != nil {
		t.Fatal(err)
	}
	if completed.Status != StatusCompleted || completed.Report == nil {
		t.Fatalf("completed response: %s", w.Body.String())
	}
}

func TestGetReportNotFound(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo(), Engine: testEngine()}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestListReportsNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo, Engine: testEngine(), Queue: &captureQueue{}}
	router := newTestRouter(svc)

	older := Job{ID: "older", Status: StatusQueued, Record: record(t, nil), CreatedAt: time.Now().UTC().Add(-time.Hour), UpdatedAt: time.Now().UTC()}
	newer := Job{ID: "newer", Status: StatusQueued, Record: record(t, nil), CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC()}
	if err := repo.Create(context.Background(), older); err != nil {
		t.Fatal(err)
	}
	if err := repo.Create(context.Background(), newer); err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports?limit=10", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp []struct {
		ReportID string `json:"reportId"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp) != 2 || resp[0].ReportID != "newer" || resp[1].ReportID != "older" {
		t.Fatalf("unexpected order: %+v", resp)
	}
}
