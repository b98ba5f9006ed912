package scoring

import (
	"math"
	"testing"

	"readiness-backend/internal/assessment"
	"readiness-backend/internal/rules"
)

func record(t *testing.T, mutate func(*assessment.Submission)) assessment.Record {
	t.Helper()
	sub := assessment.Submission{
		Industry:    "technology",
		CompanySize: "11-50",
		Role:        "ceo",
	}
	if mutate != nil {
		mutate(&sub)
	}
	rec, err := assessment.Normalize(sub)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	return rec
}

func TestComputeSixDimensionsInRange(t *testing.T) {
	tables := rules.MustDefaults().Scoring
	rec := record(t, func(s *assessment.Submission) {
		s.TechMaturity = "advanced"
		s.AIExperience = "implementing"
		s.CurrentTools = []string{"Slack", "HubSpot", "Tableau", "Zapier"}
		s.Timeline = "immediate"
		s.Budget = "250k+"
		s.TeamAvailability = "dedicated"
		s.ChangeExperience = "expert"
		s.DataGovernance = "advanced"
		s.DecisionProcess = "owner"
	})

	set := Compute(rec, tables)
	if len(set.Dimensions) != 6 {
		t.Fatalf("dimensions = %d, want 6", len(set.Dimensions))
	}
	sum := 0
	for _, sc := range set.Dimensions {
		if sc.Value < 0 || sc.Value > 100 {
			t.Fatalf("%s value %d out of range", sc.Dimension, sc.Value)
		}
		if sc.Band != Band(sc.Value) {
			t.Fatalf("%s band %q out of sync with value %d", sc.Dimension, sc.Band, sc.Value)
		}
		sum += sc.Value
	}
	want := int(math.Round(float64(sum) / 6.0))
	if set.Aggregate != want {
		t.Fatalf("aggregate = %d, want rounded mean %d", set.Aggregate, want)
	}
}

func TestComputeNeutralWhenSignalsAbsent(t *testing.T) {
	tables := rules.MustDefaults().Scoring
	rec := record(t, func(s *assessment.Submission) {
		// Process reads only timeline, budget and decision process; leave
		// all three blank so the dimension has no contributing signals.
		s.Industry = "retail"
	})

	set := Compute(rec, tables)
	process, ok := set.ByDimension(DimProcess)
	if !ok {
		t.Fatal("missing Process dimension")
	}
	if process.Value != tables.Base {
		t.Fatalf("Process = %d, want neutral base %d", process.Value, tables.Base)
	}
}

func TestComputeClampsToHundred(t *testing.T) {
	tables := rules.MustDefaults().Scoring
	tables.Security.Signals = map[string]map[string]int{
		"dataGovernance": {"advanced": 500},
	}
	rec := record(t, func(s *assessment.Submission) { s.DataGovernance = "advanced" })

	set := Compute(rec, tables)
	security, _ := set.ByDimension(DimSecurity)
	if security.Value != 100 {
		t.Fatalf("Security = %d, want clamp at 100", security.Value)
	}
}

func TestComputeClampsToZero(t *testing.T) {
	tables := rules.MustDefaults().Scoring
	tables.Change.Signals = map[string]map[string]int{
		"changeExperience": {"none": -500},
	}
	rec := record(t, func(s *assessment.Submission) { s.ChangeExperience = "none" })

	set := Compute(rec, tables)
	change, _ := set.ByDimension(DimChange)
	if change.Value != 0 {
		t.Fatalf("Change Management = %d, want clamp at 0", change.Value)
	}
}

func TestToolPointsCapped(t *testing.T) {
	tables := rules.MustDefaults().Scoring
	few := record(t, func(s *assessment.Submission) {
		s.CurrentTools = []string{"Slack"}
	})
	many := record(t, func(s *assessment.Submission) {
		s.CurrentTools = []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	})
	capped := record(t, func(s *assessment.Submission) {
		s.CurrentTools = []string{"a", "b", "c"}
	})

	fewTech, _ := Compute(few, tables).ByDimension(DimTechnology)
	manyTech, _ := Compute(many, tables).ByDimension(DimTechnology)
	cappedTech, _ := Compute(capped, tables).ByDimension(DimTechnology)

	if manyTech.Value != cappedTech.Value {
		t.Fatalf("tool points not capped: 8 tools = %d, 3 tools = %d", manyTech.Value, cappedTech.Value)
	}
	if fewTech.Value >= manyTech.Value {
		t.Fatalf("more tools should not score lower: 1 tool = %d, 8 tools = %d", fewTech.Value, manyTech.Value)
	}
}

func TestBandBoundaries(t *testing.T) {
	cases := []struct {
		value int
		want  string
	}{
		{0, BandNeedsImprovement},
		{59, BandNeedsImprovement},
		{60, BandGood},
		{84, BandGood},
		{85, BandExcellent},
		{100, BandExcellent},
	}
	for _, tc := range cases {
		if got := Band(tc.value); got != tc.want {
			t.Errorf("Band(%d) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestLevelBoundaries(t *testing.T) {
	cases := []struct {
		value int
		want  string
	}{
		{59, LevelDeveloping},
		{60, LevelMedium},
		{79, LevelMedium},
		{80, LevelHigh},
	}
	for _, tc := range cases {
		if got := Level(tc.value); got != tc.want {
			t.Errorf("Level(%d) = %q, want %q", tc.value, got, tc.want)
		}
	}
}
