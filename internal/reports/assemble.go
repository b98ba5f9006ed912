package reports

import (
	"fmt"
	"time"

	"readiness-backend/internal/assessment"
	"readiness-backend/internal/opportunity"
	"readiness-backend/internal/risk"
	"readiness-backend/internal/roadmap"
	"readiness-backend/internal/scoring"
	"readiness-backend/internal/toolrec"
)

// Parts are the pipeline outputs handed to Assemble.
type Parts struct {
	ID            string
	GeneratedAt   time.Time
	Record        assessment.Record
	Scores        scoring.Set
	Analysis      scoring.Analysis
	Opportunities []opportunity.Opportunity
	Tools         map[string][]toolrec.Recommendation
	Risks         []risk.Item
	Roadmap       []roadmap.Phase
	ROI           ROISummary
	Notes         []string
}

// Assemble builds the final report and verifies its internal references:
// every tool and roadmap entry must point at an opportunity in the report,
// opportunity ranks must be contiguous from one, and the ROI totals must
// match the opportunity ranges. A violation returns a *ConsistencyError.
func Assemble(parts Parts) (*Report, error) {
	var issues []string

	known := make(map[string]struct{}, len(parts.Opportunities))
	for i, opp := range parts.Opportunities {
		if opp.Rank != i+1 {
			issues = append(issues, fmt.Sprintf("opportunity %s has rank %d at position %d", opp.ID, opp.Rank, i+1))
		}
		if _, dup := known[opp.ID]; dup {
			issues = append(issues, fmt.Sprintf("duplicate opportunity %s", opp.ID))
		}
		known[opp.ID] = struct{}{}
	}

	for oppID, recs := range parts.Tools {
		if _, ok := known[oppID]; !ok {
			issues = append(issues, fmt.Sprintf("tools reference unknown opportunity %s", oppID))
		}
		for _, rec := range recs {
			if rec.OpportunityID != oppID {
				issues = append(issues, fmt.Sprintf("tool %s filed under %s but references %s", rec.Tool, oppID, rec.OpportunityID))
			}
			if parts.Record.HasCurrentTool(rec.Tool) {
				issues = append(issues, fmt.Sprintf("tool %s is already in use", rec.Tool))
			}
		}
	}

	for _, phase := range parts.Roadmap {
		for _, oppID := range phase.OpportunityIDs {
			if _, ok := known[oppID]; !ok {
				issues = append(issues, fmt.Sprintf("roadmap phase %q references unknown opportunity %s", phase.Name, oppID))
			}
		}
	}

	totalLow, totalHigh := 0, 0
	for _, opp := range parts.Opportunities {
		totalLow += opp.ROILow
		totalHigh += opp.ROIHigh
	}
	if parts.ROI.TotalLow != totalLow || parts.ROI.TotalHigh != totalHigh {
		issues = append(issues, fmt.Sprintf("roi totals %d..%d do not match opportunity sum %d..%d",
			parts.ROI.TotalLow, parts.ROI.TotalHigh, totalLow, totalHigh))
	}

	if len(issues) > 0 {
		return nil, &ConsistencyError{Issues: issues}
	}

	return &Report{
		ID:            parts.ID,
		GeneratedAt:   parts.GeneratedAt,
		CompanyName:   parts.Record.CompanyName,
		Industry:      parts.Record.Industry,
		CompanySize:   parts.Record.CompanySize,
		Scores:        parts.Scores,
		Analysis:      parts.Analysis,
		Opportunities: parts.Opportunities,
		Tools:         parts.Tools,
		Risks:         parts.Risks,
		Roadmap:       parts.Roadmap,
		ROI:           parts.ROI,
		Notes:         parts.Notes,
	}, nil
}
