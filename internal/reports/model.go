package reports

import (
	"time"

	"readiness-backend/internal/assessment"
	"readiness-backend/internal/opportunity"
	"readiness-backend/internal/risk"
	"readiness-backend/internal/roadmap"
	"readiness-backend/internal/scoring"
	"readiness-backend/internal/toolrec"
)

// Job tracks one report generation from submission to completion.
type Job struct {
	ID           string            `json:"id"`
	Status       string            `json:"status"`
	Record       assessment.Record `json:"record"`
	Report       *Report           `json:"report,omitempty"`
	ErrorCode    *string           `json:"errorCode,omitempty"`
	ErrorMessage *string           `json:"errorMessage,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	StartedAt    *time.Time        `json:"startedAt,omitempty"`
	CompletedAt  *time.Time        `json:"completedAt,omitempty"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// Report is the assembled readiness report.
type Report struct {
	ID            string                              `json:"id"`
	GeneratedAt   time.Time                           `json:"generatedAt"`
	CompanyName   string                              `json:"companyName"`
	Industry      string                              `json:"industry"`
	CompanySize   string                              `json:"companySize"`
	Scores        scoring.Set                         `json:"scores"`
	Analysis      scoring.Analysis                    `json:"analysis"`
	Opportunities []opportunity.Opportunity           `json:"opportunities"`
	Tools         map[string][]toolrec.Recommendation `json:"tools"`
	Risks         []risk.Item                         `json:"risks"`
	Roadmap       []roadmap.Phase                     `json:"roadmap"`
	ROI           ROISummary                          `json:"roi"`
	Notes         []string                            `json:"notes,omitempty"`
}

// ROISummary totals the opportunity ROI ranges and states the expected
// payback horizon for the record's stated timeline.
type ROISummary struct {
	TotalLow      int `json:"totalLow"`
	TotalHigh     int `json:"totalHigh"`
	PaybackMonths int `json:"paybackMonths"`
}
