package reports

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"readiness-backend/internal/assessment"
	"readiness-backend/internal/shared/server/middleware"
	"readiness-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the reports service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches assessment and report routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/assessments", h.startAssessment)
	rg.GET("/reports", h.listReports)
	rg.GET("/reports/:id", h.getReport)
}

func (h *Handler) startAssessment(c *gin.Context) {
	var sub assessment.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	job, err := h.Svc.Create(WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c)), sub)
	if err != nil {
		var verr *assessment.ValidationError
		if errors.As(err, &verr) {
			details := make([]map[string]string, 0, len(verr.Issues))
			for _, issue := range verr.Issues {
				details = append(details, map[string]string{
					"field": issue.Field,
					"issue": issue.Reason,
				})
			}
			respond.Error(c, http.StatusBadRequest, "validation_error", "submission failed validation", details)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start assessment", nil)
		return
	}

	respond.Accepted(c, gin.H{
		"reportId": job.ID,
		"status":   job.Status,
	})
}

func (h *Handler) getReport(c *gin.Context) {
	jobID := c.Param("id")
	if jobID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "report id is required", nil)
		return
	}

	job, err := h.Svc.Get(c.Request.Context(), jobID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "report not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch report", nil)
		}
		return
	}

	resp := gin.H{
		"id":        job.ID,
		"status":    job.Status,
		"createdAt": job.CreatedAt,
	}
	switch job.Status {
	case StatusCompleted:
		if job.Report != nil {
			resp["report"] = job.Report
		}
	case StatusFailed:
		if job.ErrorCode != nil {
			resp["errorCode"] = *job.ErrorCode
		}
		if job.ErrorMessage != nil {
			resp["errorMessage"] = *job.ErrorMessage
		}
	}

	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) listReports(c *gin.Context) {
	limit := 20
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	jobs, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list reports", nil)
		return
	}

	resp := make([]gin.H, 0, len(jobs))
	for _, job := range jobs {
		item := gin.H{
			"reportId":    job.ID,
			"companyName": job.Record.CompanyName,
			"status":      job.Status,
			"createdAt":   job.CreatedAt,
		}
		if job.Status == StatusCompleted && job.Report != nil {
			item["readinessScore"] = job.Report.Scores.Aggregate
			item["readinessLevel"] = job.Report.Scores.Level
		}
		resp = append(resp, item)
	}

	respond.JSON(c, http.StatusOK, resp)
}
