package toolrec

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"readiness-backend/internal/assessment"
	"readiness-backend/internal/catalog"
	"readiness-backend/internal/llm"
	"readiness-backend/internal/opportunity"
)

const (
	// SourceCatalog marks a recommendation drawn from the approved catalog.
	SourceCatalog = "catalog"
	// SourceExternal marks a recommendation suggested by the LLM.
	SourceExternal = "external"

	maxPerOpportunity = 3
	minPerOpportunity = 2
)

// Recommendation is one tool suggestion attached to an opportunity.
type Recommendation struct {
	Tool          string `json:"tool"`
	Source        string `json:"source"`
	OpportunityID string `json:"opportunityId"`
	Rationale     string `json:"rationale"`
	PriceBand     string `json:"priceBand,omitempty"`
}

// Recommender pairs the approved catalog with an optional LLM for external
// suggestions. The LLM is consulted only when the catalog cannot fill an
// opportunity; any LLM failure degrades silently to catalog-only output.
type Recommender struct {
	Catalog   *catalog.Catalog
	Templates opportunity.TemplateSet
	LLM       llm.Client
}

// Recommend returns up to three tools per opportunity, keyed by opportunity
// ID. The second return reports whether the LLM was needed but unavailable,
// so callers can count the fallback.
func (r Recommender) Recommend(ctx context.Context, rec assessment.Record, opps []opportunity.Opportunity) (map[string][]Recommendation, bool) {
	out := make(map[string][]Recommendation, len(opps))
	llmDown := false

	for _, opp := range opps {
		recs := r.fromCatalog(rec, opp)
		if len(recs) < minPerOpportunity && !llmDown {
			external, err := r.fromLLM(ctx, rec, opp, recs)
			if err != nil {
				llmDown = true
			} else {
				recs = append(recs, external...)
			}
		}
		if len(recs) > maxPerOpportunity {
			recs = recs[:maxPerOpportunity]
		}
		out[opp.ID] = recs
	}
	return out, llmDown
}

// fromCatalog filters the opportunity's category for entries that satisfy the
// record's security requirements and are not already in use, ranked by keyword
// overlap, then monthly price, then name.
func (r Recommender) fromCatalog(rec assessment.Record, opp opportunity.Opportunity) []Recommendation {
	tpl, _ := r.Templates.ByID(opp.ID)

	type scored struct {
		entry   catalog.Entry
		overlap int
	}
	var candidates []scored
	for _, entry := range r.Catalog.ByCategory(opp.Category) {
		if rec.HasCurrentTool(entry.Name) {
			continue
		}
		if !entry.Covers(rec.SecurityTags) {
			continue
		}
		candidates = append(candidates, scored{entry: entry, overlap: keywordOverlap(entry.Tags, tpl.Keywords)})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].overlap != candidates[j].overlap {
			return candidates[i].overlap > candidates[j].overlap
		}
		if candidates[i].entry.PriceMonthly != candidates[j].entry.PriceMonthly {
			return candidates[i].entry.PriceMonthly < candidates[j].entry.PriceMonthly
		}
		return candidates[i].entry.Name < candidates[j].entry.Name
	})

	if len(candidates) > maxPerOpportunity {
		candidates = candidates[:maxPerOpportunity]
	}

	recs := make([]Recommendation, 0, len(candidates))
	for _, c := range candidates {
		recs = append(recs, Recommendation{
			Tool:          c.entry.Name,
			Source:        SourceCatalog,
			OpportunityID: opp.ID,
			Rationale:     fmt.Sprintf("Approved %s tool at $%d/mo", opp.Category, c.entry.PriceMonthly),
			PriceBand:     c.entry.PriceBand,
		})
	}
	return recs
}

// fromLLM asks for a single external suggestion and keeps the first parsed
// line that duplicates neither a current tool nor an already-chosen
// recommendation.
func (r Recommender) fromLLM(ctx context.Context, rec assessment.Record, opp opportunity.Opportunity, chosen []Recommendation) ([]Recommendation, error) {
	if r.LLM == nil {
		return nil, llm.ErrUnavailable
	}
	raw, err := r.LLM.GenerateText(ctx, r.buildPrompt(rec, opp, chosen))
	if err != nil {
		return nil, err
	}

	taken := make(map[string]struct{}, len(chosen))
	for _, c := range chosen {
		taken[strings.ToLower(c.Tool)] = struct{}{}
	}

	for _, line := range strings.Split(raw, "\n") {
		suggestion, ok := parseSuggestion(line)
		if !ok {
			continue
		}
		if rec.HasCurrentTool(suggestion.name) {
			continue
		}
		if _, dup := taken[strings.ToLower(suggestion.name)]; dup {
			continue
		}
		return []Recommendation{{
			Tool:          suggestion.name,
			Source:        SourceExternal,
			OpportunityID: opp.ID,
			Rationale:     suggestion.description,
			PriceBand:     suggestion.cost,
		}}, nil
	}
	return nil, nil
}

func (r Recommender) buildPrompt(rec assessment.Record, opp opportunity.Opportunity, chosen []Recommendation) llm.Prompt {
	var b strings.Builder
	fmt.Fprintf(&b, "Suggest one software tool for a %s company of %s employees pursuing %q (%s).\n",
		rec.Industry, rec.CompanySize, opp.Title, opp.Category)
	if len(rec.SecurityTags) > 0 {
		fmt.Fprintf(&b, "Required compliance: %s.\n", strings.Join(rec.SecurityTags, ", "))
	}
	if len(rec.CurrentTools) > 0 {
		fmt.Fprintf(&b, "Already in use, do not suggest: %s.\n", strings.Join(rec.CurrentTools, ", "))
	}
	if len(chosen) > 0 {
		names := make([]string, 0, len(chosen))
		for _, c := range chosen {
			names = append(names, c.Tool)
		}
		fmt.Fprintf(&b, "Already recommended, do not repeat: %s.\n", strings.Join(names, ", "))
	}
	if r.Catalog != nil && r.Catalog.Len() > 0 {
		fmt.Fprintf(&b, "Do not suggest tools from our approved catalog: %s.\n", strings.Join(r.Catalog.Names(), ", "))
	}
	b.WriteString("Respond with one tool per line in the exact format:\n")
	b.WriteString("Tool Name (External) - $Cost - Description\n")
	return llm.Prompt{
		System: "You recommend business software. Answer only in the requested line format, no extra text.",
		User:   b.String(),
	}
}

type suggestion struct {
	name        string
	cost        string
	description string
}

// parseSuggestion accepts "Name (External) - $Cost - Description" and the
// looser "Name - $Cost - Description". Lines that do not split into three
// parts are dropped.
func parseSuggestion(line string) (suggestion, bool) {
	parts := strings.SplitN(strings.TrimSpace(line), " - ", 3)
	if len(parts) < 3 {
		return suggestion{}, false
	}
	name := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(parts[0]), "(External)"))
	cost := strings.TrimSpace(parts[1])
	desc := strings.TrimSpace(parts[2])
	if name == "" || desc == "" {
		return suggestion{}, false
	}
	return suggestion{name: name, cost: cost, description: desc}, true
}

func keywordOverlap(tags, keywords []string) int {
	n := 0
	for _, tag := range tags {
		for _, kw := range keywords {
			if strings.EqualFold(tag, kw) {
				n++
				break
			}
		}
	}
	return n
}
