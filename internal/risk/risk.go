package risk

import (
	"sort"
	"strings"

	"readiness-backend/internal/assessment"
)

// Probability and impact bands, ordered Low < Medium < High.
const (
	Low    = "Low"
	Medium = "Medium"
	High   = "High"
)

// Item is one assessed risk with its mitigation.
type Item struct {
	Category    string `json:"category"`
	Probability string `json:"probability"`
	Impact      string `json:"impact"`
	Mitigation  string `json:"mitigation"`
}

// Table maps declared risk factors to risk items with mitigation templates.
// It is injected at construction like rules.Rules and the tool catalog.
type Table struct {
	Factors map[string]Item
}

// Defaults returns the built-in factor table.
func Defaults() Table {
	return Table{Factors: defaultFactors}
}

var defaultFactors = map[string]Item{
	"budget-constraints": {
		Category:    "Budget",
		Probability: Medium,
		Impact:      High,
		Mitigation:  "Start with a narrowly scoped pilot and expand spend only after measured returns.",
	},
	"time-constraints": {
		Category:    "Timeline",
		Probability: High,
		Impact:      Medium,
		Mitigation:  "Sequence delivery into short phases with explicit go/no-go checkpoints.",
	},
	"skill-gaps": {
		Category:    "Skills",
		Probability: High,
		Impact:      High,
		Mitigation:  "Pair vendor-led training with an internal champion before the pilot starts.",
	},
	"resistance": {
		Category:    "Adoption",
		Probability: Medium,
		Impact:      High,
		Mitigation:  "Involve affected teams in tool selection and communicate wins early.",
	},
	"data-quality": {
		Category:    "Data Quality",
		Probability: High,
		Impact:      Medium,
		Mitigation:  "Run a data audit and cleanup sprint before any model-dependent rollout.",
	},
	"integration": {
		Category:    "Integration",
		Probability: Medium,
		Impact:      Medium,
		Mitigation:  "Prefer tools with native connectors to the existing stack and prove them in the pilot.",
	},
	"vendor-lockin": {
		Category:    "Vendor Lock-in",
		Probability: Low,
		Impact:      Medium,
		Mitigation:  "Require data export paths and document an exit plan per vendor.",
	},
	"data-security": {
		Category:    "Data Security",
		Probability: Medium,
		Impact:      High,
		Mitigation:  "Restrict pilots to vendors meeting %s compliance and review access controls quarterly.",
	},
}

// Assess maps the record's declared risk factors to risk items and derives
// additional ones from weak change-management, capacity and governance
// answers. Duplicated categories keep the higher probability and impact.
// Output is sorted by probability, then impact, then category.
func (t Table) Assess(rec assessment.Record) []Item {
	items := make([]Item, 0, len(rec.RiskFactors)+3)
	for _, factor := range rec.RiskFactors {
		item, ok := t.Factors[factor]
		if !ok {
			continue
		}
		if factor == "data-security" {
			item.Mitigation = strings.Replace(item.Mitigation, "%s", industryLabel(rec.Industry), 1)
		}
		items = append(items, item)
	}
	items = append(items, derived(rec)...)
	items = dedupe(items)

	sort.Slice(items, func(i, j int) bool {
		if bandRank(items[i].Probability) != bandRank(items[j].Probability) {
			return bandRank(items[i].Probability) > bandRank(items[j].Probability)
		}
		if bandRank(items[i].Impact) != bandRank(items[j].Impact) {
			return bandRank(items[i].Impact) > bandRank(items[j].Impact)
		}
		return items[i].Category < items[j].Category
	})
	return items
}

func derived(rec assessment.Record) []Item {
	var items []Item
	switch rec.ChangeExperience {
	case "none":
		items = append(items, Item{
			Category:    "Change Management",
			Probability: High,
			Impact:      High,
			Mitigation:  "Bring in outside change-management support and keep the first rollout small.",
		})
	case "limited":
		items = append(items, Item{
			Category:    "Change Management",
			Probability: Medium,
			Impact:      Medium,
			Mitigation:  "Assign a dedicated rollout owner and reuse the playbook from prior changes.",
		})
	}
	if rec.TeamAvailability == "none" || rec.TeamAvailability == "limited" {
		items = append(items, Item{
			Category:    "Team Capacity",
			Probability: Medium,
			Impact:      Medium,
			Mitigation:  "Reserve explicit weekly hours for the pilot team before committing to dates.",
		})
	}
	if rec.DataGovernance == "none" {
		items = append(items, Item{
			Category:    "Data Governance",
			Probability: High,
			Impact:      Medium,
			Mitigation:  "Establish data ownership and a basic classification policy before onboarding vendors.",
		})
	}
	return items
}

// dedupe keeps one item per category, preferring higher probability and
// impact, and the first mitigation among equals.
func dedupe(items []Item) []Item {
	byCategory := make(map[string]int, len(items))
	out := make([]Item, 0, len(items))
	for _, item := range items {
		idx, seen := byCategory[item.Category]
		if !seen {
			byCategory[item.Category] = len(out)
			out = append(out, item)
			continue
		}
		if bandRank(item.Probability) > bandRank(out[idx].Probability) {
			out[idx].Probability = item.Probability
			out[idx].Mitigation = item.Mitigation
		}
		if bandRank(item.Impact) > bandRank(out[idx].Impact) {
			out[idx].Impact = item.Impact
		}
	}
	return out
}

func bandRank(band string) int {
	switch band {
	case High:
		return 3
	case Medium:
		return 2
	case Low:
		return 1
	default:
		return 0
	}
}

func industryLabel(industry string) string {
	switch industry {
	case "healthcare":
		return "HIPAA"
	case "finance":
		return "SOC 2 and PCI"
	default:
		return "SOC 2"
	}
}
