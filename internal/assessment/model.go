package assessment

// Unspecified marks an optional enum field the submitter left blank. Scoring
// treats it as a zero-contribution signal; other components apply their own
// documented defaults at point of use.
const Unspecified = "unspecified"

// Submission is the raw questionnaire payload supplied by the form layer.
// Unknown extra fields are ignored on decode to tolerate form changes.
type Submission struct {
	CompanyName      string   `json:"companyName"`
	ContactEmail     string   `json:"contactEmail"`
	Industry         string   `json:"industry"`
	CompanySize      string   `json:"companySize"`
	Role             string   `json:"role"`
	TechMaturity     string   `json:"techMaturity"`
	AIExperience     string   `json:"aiExperience"`
	CurrentTools     []string `json:"currentTools"`
	Challenges       []string `json:"challenges"`
	Priorities       []string `json:"priorities"`
	Timeline         string   `json:"timeline"`
	Budget           string   `json:"budget"`
	TeamAvailability string   `json:"teamAvailability"`
	ChangeExperience string   `json:"changeExperience"`
	DataGovernance   string   `json:"dataGovernance"`
	DecisionProcess  string   `json:"decisionProcess"`
	RiskFactors      []string `json:"riskFactors"`
	SecurityTags     []string `json:"securityRequirements"`
	PilotPreference  string   `json:"pilotPreference"`
}

// Record is the validated, immutable input snapshot the engine runs on.
// Enum fields hold a value from their declared domain or Unspecified;
// tag sets are deduplicated and sorted.
type Record struct {
	CompanyName      string   `json:"companyName"`
	ContactEmail     string   `json:"contactEmail"`
	Industry         string   `json:"industry"`
	CompanySize      string   `json:"companySize"`
	Role             string   `json:"role"`
	TechMaturity     string   `json:"techMaturity"`
	AIExperience     string   `json:"aiExperience"`
	CurrentTools     []string `json:"currentTools"`
	Challenges       []string `json:"challenges"`
	Priorities       []string `json:"priorities"`
	Timeline         string   `json:"timeline"`
	Budget           string   `json:"budget"`
	TeamAvailability string   `json:"teamAvailability"`
	ChangeExperience string   `json:"changeExperience"`
	DataGovernance   string   `json:"dataGovernance"`
	DecisionProcess  string   `json:"decisionProcess"`
	RiskFactors      []string `json:"riskFactors"`
	SecurityTags     []string `json:"securityRequirements"`
	PilotPreference  string   `json:"pilotPreference"`
}

// HasCurrentTool reports whether the record declares the named tool,
// compared case-insensitively.
func (r Record) HasCurrentTool(name string) bool {
	key := foldTag(name)
	for _, tool := range r.CurrentTools {
		if foldTag(tool) == key {
			return true
		}
	}
	return false
}

// Enum domains. These are the stable input contract; unknown values are
// rejected rather than coerced.
var (
	Industries = domain(
		"technology", "healthcare", "finance", "manufacturing", "retail", "professional-services",
	)
	CompanySizes = domain("1-10", "11-50", "51-100", "101-250", "250+")
	Roles        = domain("ceo", "coo", "cto", "it-director", "ops-manager", "other")
	TechLevels   = domain("basic", "intermediate", "advanced")
	AILevels     = domain("none", "exploring", "piloting", "implementing")
	Timelines    = domain("immediate", "3-months", "6-months", "12-months")
	Budgets      = domain("under-25k", "25k-50k", "50k-100k", "100k-250k", "250k+")
	Availability = domain("none", "limited", "part-time", "dedicated")
	ChangeLevels = domain("none", "limited", "experienced", "expert")
	Governance   = domain("none", "basic", "intermediate", "advanced")
	Decisions    = domain("owner", "committee", "board", "consensus")

	ChallengeTags = domain(
		"customer-service", "manual-processes", "data-analysis", "document-processing",
	)
	PriorityTags = domain(
		"customer-service", "process-automation", "data-analytics", "marketing", "operations",
	)
	RiskFactorTags = domain(
		"budget-constraints", "time-constraints", "skill-gaps", "resistance",
		"data-quality", "integration", "vendor-lockin", "data-security",
	)
	SecurityRequirementTags = domain("soc2", "gdpr", "hipaa", "iso27001", "sso", "encryption-at-rest")
	PilotPreferences        = domain("customer-service", "process-automation", "data-analytics")
)

func domain(values ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		out[v] = struct{}{}
	}
	return out
}
