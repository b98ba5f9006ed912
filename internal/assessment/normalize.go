package assessment

import (
	"sort"
	"strings"
)

// Normalize validates a submission and returns the immutable Record the
// engine runs on. It returns a *ValidationError when a required field is
// absent or an enum/tag value falls outside its declared domain.
func Normalize(sub Submission) (Record, error) {
	var issues []FieldIssue

	industry := requireEnum(&issues, "industry", sub.Industry, Industries)
	companySize := requireEnum(&issues, "companySize", sub.CompanySize, CompanySizes)
	role := requireEnum(&issues, "role", sub.Role, Roles)

	rec := Record{
		CompanyName:      strings.TrimSpace(sub.CompanyName),
		ContactEmail:     strings.TrimSpace(sub.ContactEmail),
		Industry:         industry,
		CompanySize:      companySize,
		Role:             role,
		TechMaturity:     optionalEnum(&issues, "techMaturity", sub.TechMaturity, TechLevels),
		AIExperience:     optionalEnum(&issues, "aiExperience", sub.AIExperience, AILevels),
		CurrentTools:     normalizeStrings(sub.CurrentTools),
		Challenges:       tagSet(&issues, "challenges", sub.Challenges, ChallengeTags),
		Priorities:       tagSet(&issues, "priorities", sub.Priorities, PriorityTags),
		Timeline:         optionalEnum(&issues, "timeline", sub.Timeline, Timelines),
		Budget:           optionalEnum(&issues, "budget", sub.Budget, Budgets),
		TeamAvailability: optionalEnum(&issues, "teamAvailability", sub.TeamAvailability, Availability),
		ChangeExperience: optionalEnum(&issues, "changeExperience", sub.ChangeExperience, ChangeLevels),
		DataGovernance:   optionalEnum(&issues, "dataGovernance", sub.DataGovernance, Governance),
		DecisionProcess:  optionalEnum(&issues, "decisionProcess", sub.DecisionProcess, Decisions),
		RiskFactors:      tagSet(&issues, "riskFactors", sub.RiskFactors, RiskFactorTags),
		SecurityTags:     tagSet(&issues, "securityRequirements", sub.SecurityTags, SecurityRequirementTags),
		PilotPreference:  optionalEnum(&issues, "pilotPreference", sub.PilotPreference, PilotPreferences),
	}

	if len(issues) > 0 {
		return Record{}, &ValidationError{Issues: issues}
	}
	return rec, nil
}

func requireEnum(issues *[]FieldIssue, field, raw string, dom map[string]struct{}) string {
	value := foldTag(raw)
	if value == "" {
		*issues = append(*issues, FieldIssue{Field: field, Reason: "required"})
		return ""
	}
	if _, ok := dom[value]; !ok {
		*issues = append(*issues, FieldIssue{Field: field, Value: value, Reason: "unknown value"})
		return ""
	}
	return value
}

func optionalEnum(issues *[]FieldIssue, field, raw string, dom map[string]struct{}) string {
	value := foldTag(raw)
	if value == "" {
		return Unspecified
	}
	if _, ok := dom[value]; !ok {
		*issues = append(*issues, FieldIssue{Field: field, Value: value, Reason: "unknown value"})
		return ""
	}
	return value
}

// tagSet validates, deduplicates and sorts a tag list. Ordering is fixed so
// identical submissions normalize to identical records.
func tagSet(issues *[]FieldIssue, field string, raw []string, dom map[string]struct{}) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		tag := foldTag(item)
		if tag == "" {
			continue
		}
		if _, ok := dom[tag]; !ok {
			*issues = append(*issues, FieldIssue{Field: field, Value: tag, Reason: "unknown tag"})
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// normalizeStrings trims, deduplicates case-insensitively and sorts free-form
// string sets such as current tools, preserving the first-seen casing.
func normalizeStrings(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}

func foldTag(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
