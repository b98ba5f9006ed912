package reports

import (
	"context"
	"time"

	"readiness-backend/internal/assessment"
	"readiness-backend/internal/catalog"
	"readiness-backend/internal/llm"
	"readiness-backend/internal/opportunity"
	"readiness-backend/internal/risk"
	"readiness-backend/internal/roadmap"
	"readiness-backend/internal/rules"
	"readiness-backend/internal/scoring"
	"readiness-backend/internal/toolrec"
)

// Engine runs the full report pipeline over a normalized record. With an
// unavailable LLM its output is a pure function of the record and rules, so
// reruns produce identical reports.
type Engine struct {
	Rules     rules.Rules
	Catalog   *catalog.Catalog
	Templates opportunity.TemplateSet
	Risks     risk.Table
	LLM       llm.Client
}

// Generate produces a complete report. The second return reports whether
// external tool suggestions were skipped because the LLM was unavailable.
func (e Engine) Generate(ctx context.Context, rec assessment.Record, id string, at time.Time) (*Report, bool, error) {
	scores := scoring.Compute(rec, e.Rules.Scoring)
	opps := e.Templates.Generate(rec, e.Rules.ROI)

	recommender := toolrec.Recommender{Catalog: e.Catalog, Templates: e.Templates, LLM: e.LLM}
	tools, llmDown := recommender.Recommend(ctx, rec, opps)

	risks := e.Risks.Assess(rec)
	phases := roadmap.Build(rec, opps)

	var notes []string
	if llmDown {
		notes = append(notes, "External tool suggestions were unavailable; showing approved catalog tools only.")
	}

	report, err := Assemble(Parts{
		ID:            id,
		GeneratedAt:   at.UTC(),
		Record:        rec,
		Scores:        scores,
		Analysis:      scoring.Analyze(scores),
		Opportunities: opps,
		Tools:         tools,
		Risks:         risks,
		Roadmap:       phases,
		ROI:           summarizeROI(rec, opps, e.Rules.Payback),
		Notes:         notes,
	})
	if err != nil {
		return nil, llmDown, err
	}
	return report, llmDown, nil
}

// summarizeROI totals the opportunity ranges and resolves the payback horizon
// from the record's timeline.
func summarizeROI(rec assessment.Record, opps []opportunity.Opportunity, payback rules.PaybackRules) ROISummary {
	summary := ROISummary{PaybackMonths: payback.DefaultMonths}
	if months, ok := payback.ByTimeline[rec.Timeline]; ok {
		summary.PaybackMonths = months
	}
	for _, opp := range opps {
		summary.TotalLow += opp.ROILow
		summary.TotalHigh += opp.ROIHigh
	}
	return summary
}
