package scoring

import (
	"math"

	"readiness-backend/internal/assessment"
	"readiness-backend/internal/rules"
)

// Dimension names, in report order.
const (
	DimTechnology = "Technology"
	DimData       = "Data"
	DimTeam       = "Team"
	DimProcess    = "Process"
	DimChange     = "Change Management"
	DimSecurity   = "Security"
)

// Bands for a dimension value. Band is a pure function of the value.
const (
	BandNeedsImprovement = "Needs Improvement"
	BandGood             = "Good"
	BandExcellent        = "Excellent"
)

// Readiness levels for the aggregate score.
const (
	LevelHigh       = "High"
	LevelMedium     = "Medium"
	LevelDeveloping = "Developing"
)

// Score is one named dimension score in [0,100] with its qualitative band.
type Score struct {
	Dimension string `json:"dimension"`
	Value     int    `json:"value"`
	Band      string `json:"band"`
}

// Set holds the six dimension scores plus the aggregate.
type Set struct {
	Dimensions []Score `json:"dimensions"`
	Aggregate  int     `json:"aggregate"`
	Level      string  `json:"level"`
}

// ByDimension returns the score for a named dimension.
func (s Set) ByDimension(name string) (Score, bool) {
	for _, sc := range s.Dimensions {
		if sc.Dimension == name {
			return sc, true
		}
	}
	return Score{}, false
}

// Band maps a dimension value to its qualitative band.
func Band(value int) string {
	switch {
	case value >= 85:
		return BandExcellent
	case value >= 60:
		return BandGood
	default:
		return BandNeedsImprovement
	}
}

// Level maps the aggregate score to a readiness level.
func Level(aggregate int) string {
	switch {
	case aggregate >= 80:
		return LevelHigh
	case aggregate >= 60:
		return LevelMedium
	default:
		return LevelDeveloping
	}
}

// Compute scores the record against the injected rule tables. Each dimension
// starts at the base value, accumulates signal contributions and is clamped
// to [0,100]. A dimension whose signals are all unspecified lands exactly on
// the base value. The aggregate is the rounded mean of the six dimensions.
func Compute(rec assessment.Record, tables rules.ScoringRules) Set {
	dims := []struct {
		name  string
		rules rules.DimensionRules
	}{
		{DimTechnology, tables.Technology},
		{DimData, tables.Data},
		{DimTeam, tables.Team},
		{DimProcess, tables.Process},
		{DimChange, tables.Change},
		{DimSecurity, tables.Security},
	}

	scores := make([]Score, 0, len(dims))
	sum := 0
	for _, dim := range dims {
		value := scoreDimension(rec, tables.Base, dim.rules)
		sum += value
		scores = append(scores, Score{Dimension: dim.name, Value: value, Band: Band(value)})
	}

	aggregate := int(math.Round(float64(sum) / float64(len(dims))))
	return Set{Dimensions: scores, Aggregate: aggregate, Level: Level(aggregate)}
}

func scoreDimension(rec assessment.Record, base int, dim rules.DimensionRules) int {
	value := base
	for field, points := range dim.Signals {
		value += points[signalValue(rec, field)]
	}
	if dim.PerTool > 0 {
		toolPoints := dim.PerTool * len(rec.CurrentTools)
		if dim.MaxToolPoints > 0 && toolPoints > dim.MaxToolPoints {
			toolPoints = dim.MaxToolPoints
		}
		value += toolPoints
	}
	return clamp(value)
}

// signalValue resolves a rule-table field name to the record value it reads.
// Unknown field names resolve to the empty string, which no signal table maps.
func signalValue(rec assessment.Record, field string) string {
	switch field {
	case "industry":
		return rec.Industry
	case "companySize":
		return rec.CompanySize
	case "role":
		return rec.Role
	case "techMaturity":
		return rec.TechMaturity
	case "aiExperience":
		return rec.AIExperience
	case "timeline":
		return rec.Timeline
	case "budget":
		return rec.Budget
	case "teamAvailability":
		return rec.TeamAvailability
	case "changeExperience":
		return rec.ChangeExperience
	case "dataGovernance":
		return rec.DataGovernance
	case "decisionProcess":
		return rec.DecisionProcess
	default:
		return ""
	}
}

func clamp(value int) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
