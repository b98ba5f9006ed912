package scoring

// Analysis carries per-dimension strength and improvement notes derived from
// the scored set. Notes follow report order and are a pure function of the
// dimension values.
type Analysis struct {
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

const (
	strengthThreshold    = 70
	improvementThreshold = 60
)

var strengthNotes = map[string]string{
	DimTechnology: "Technology foundation is ready to host AI tooling.",
	DimData:       "Data practices can feed AI systems with minimal rework.",
	DimTeam:       "Team has the skills and bandwidth to adopt new tools.",
	DimProcess:    "Processes are documented well enough to automate.",
	DimChange:     "Organization has absorbed comparable changes before.",
	DimSecurity:   "Security and compliance posture supports AI vendors.",
}

var improvementNotes = map[string]string{
	DimTechnology: "Modernize core systems before layering AI on top.",
	DimData:       "Consolidate and clean data sources ahead of any AI pilot.",
	DimTeam:       "Free up owner time or train staff before rollout.",
	DimProcess:    "Document key workflows so automation has a target.",
	DimChange:     "Plan change management explicitly; past rollouts struggled.",
	DimSecurity:   "Close security and governance gaps before sharing data with vendors.",
}

// Analyze derives strength and improvement notes from a scored set.
// Dimensions at or above 70 contribute a strength; below 60 an improvement.
// The middle band contributes neither.
func Analyze(set Set) Analysis {
	var out Analysis
	for _, sc := range set.Dimensions {
		switch {
		case sc.Value >= strengthThreshold:
			if note, ok := strengthNotes[sc.Dimension]; ok {
				out.Strengths = append(out.Strengths, note)
			}
		case sc.Value < improvementThreshold:
			if note, ok := improvementNotes[sc.Dimension]; ok {
				out.Improvements = append(out.Improvements, note)
			}
		}
	}
	return out
}
