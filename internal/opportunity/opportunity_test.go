package opportunity

import (
	"reflect"
	"testing"

	"readiness-backend/internal/assessment"
	"readiness-backend/internal/rules"
)

func record(t *testing.T, mutate func(*assessment.Submission)) assessment.Record {
	t.Helper()
	sub := assessment.Submission{
		Industry:    "manufacturing",
		CompanySize: "11-50",
		Role:        "coo",
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

func TestGenerateRanksContiguously(t *testing.T) {
	roi := rules.MustDefaults().ROI
	rec := record(t, func(s *assessment.Submission) {
		s.Challenges = []string{"manual-processes", "customer-service", "data-analysis", "document-processing"}
		s.Priorities = []string{"marketing", "operations"}
	})

	opps := Defaults().Generate(rec, roi)
	if len(opps) < 2 || len(opps) > 5 {
		t.Fatalf("opportunity count = %d, want 2..5", len(opps))
	}
	for i, opp := range opps {
		if opp.Rank != i+1 {
			t.Fatalf("rank at index %d = %d, want %d", i, opp.Rank, i+1)
		}
		if opp.ROILow < 0 || opp.ROIHigh < opp.ROILow {
			t.Fatalf("%s has invalid ROI range %d..%d", opp.ID, opp.ROILow, opp.ROIHigh)
		}
	}
}

func TestGenerateTruncatesToFive(t *testing.T) {
	roi := rules.MustDefaults().ROI
	rec := record(t, func(s *assessment.Submission) {
		s.Challenges = []string{"manual-processes", "customer-service", "data-analysis", "document-processing"}
		s.Priorities = []string{"marketing", "operations", "process-automation"}
	})

	opps := Defaults().Generate(rec, roi)
	if len(opps) != 5 {
		t.Fatalf("opportunity count = %d, want truncation at 5", len(opps))
	}
}

func TestGenerateDefaultPairWhenNothingMatches(t *testing.T) {
	roi := rules.MustDefaults().ROI
	rec := record(t, nil)

	opps := Defaults().Generate(rec, roi)
	if len(opps) != 2 {
		t.Fatalf("opportunity count = %d, want default pair", len(opps))
	}
	ids := map[string]bool{opps[0].ID: true, opps[1].ID: true}
	if !ids["process-automation"] || !ids["customer-service-automation"] {
		t.Fatalf("default pair missing, got %v", ids)
	}
}

func TestGenerateTopsUpSingleMatch(t *testing.T) {
	roi := rules.MustDefaults().ROI
	rec := record(t, func(s *assessment.Submission) {
		s.Priorities = []string{"marketing"}
	})

	opps := Defaults().Generate(rec, roi)
	if len(opps) != 2 {
		t.Fatalf("opportunity count = %d, want match plus top-up", len(opps))
	}
	found := false
	for _, opp := range opps {
		if opp.ID == "marketing-automation" {
			found = true
		}
	}
	if !found {
		t.Fatal("matched marketing-automation missing from output")
	}
}

func TestGenerateProcessAutomationForManualProcesses(t *testing.T) {
	roi := rules.MustDefaults().ROI
	rec := record(t, func(s *assessment.Submission) {
		s.Challenges = []string{"manual-processes"}
	})

	opps := Defaults().Generate(rec, roi)
	var pa *Opportunity
	for i := range opps {
		if opps[i].ID == "process-automation" {
			pa = &opps[i]
		}
	}
	if pa == nil {
		t.Fatal("expected process-automation opportunity")
	}
	if pa.Title != "Process Automation" {
		t.Fatalf("title = %q", pa.Title)
	}
	if pa.ROILow < 0 || pa.ROIHigh < pa.ROILow {
		t.Fatalf("invalid ROI range %d..%d", pa.ROILow, pa.ROIHigh)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	roi := rules.MustDefaults().ROI
	rec := record(t, func(s *assessment.Submission) {
		s.Challenges = []string{"customer-service", "data-analysis"}
		s.Priorities = []string{"operations"}
	})

	first := Defaults().Generate(rec, roi)
	for i := 0; i < 10; i++ {
		again := Defaults().Generate(rec, roi)
		if len(again) != len(first) {
			t.Fatalf("run %d length differs", i)
		}
		for j := range again {
			if !reflect.DeepEqual(again[j], first[j]) {
				t.Fatalf("run %d differs at %d: %+v vs %+v", i, j, again[j], first[j])
			}
		}
	}
}

func TestGenerateUsesInjectedTemplateSet(t *testing.T) {
	roi := rules.MustDefaults().ROI
	set := TemplateSet{
		Templates: []Template{
			{
				ID:         "field-service-dispatch",
				Title:      "Field Service Dispatch",
				Category:   "operations",
				Challenges: []string{"manual-processes"},
				Multiplier: 1.0,
				Weight:     40,
				Timeline:   "2-4 months",
			},
			{
				ID:         "invoice-matching",
				Title:      "Invoice Matching",
				Category:   "document-processing",
				Challenges: []string{"document-processing"},
				Multiplier: 0.5,
				Weight:     30,
				Timeline:   "1-3 months",
			},
		},
		DefaultPair: []string{"field-service-dispatch", "invoice-matching"},
	}
	rec := record(t, nil)

	opps := set.Generate(rec, roi)
	if len(opps) != 2 {
		t.Fatalf("opportunity count = %d, want injected default pair", len(opps))
	}
	ids := map[string]bool{opps[0].ID: true, opps[1].ID: true}
	if !ids["field-service-dispatch"] || !ids["invoice-matching"] {
		t.Fatalf("injected templates not used, got %v", ids)
	}
	if _, ok := set.ByID("customer-service-automation"); ok {
		t.Fatal("injected set should not expose built-in templates")
	}
}

func TestGenerateROIScalesWithCompanySize(t *testing.T) {
	roi := rules.MustDefaults().ROI
	small := record(t, func(s *assessment.Submission) {
		s.CompanySize = "1-10"
		s.Challenges = []string{"customer-service"}
	})
	large := record(t, func(s *assessment.Submission) {
		s.CompanySize = "250+"
		s.Challenges = []string{"customer-service"}
	})

	so := Defaults().Generate(small, roi)[0]
	lo := Defaults().Generate(large, roi)[0]
	if so.ID != "customer-service-automation" || lo.ID != so.ID {
		t.Fatalf("expected customer-service-automation first, got %s / %s", so.ID, lo.ID)
	}
	if lo.ROIHigh <= so.ROIHigh {
		t.Fatalf("large company ROI %d should exceed small company ROI %d", lo.ROIHigh, so.ROIHigh)
	}
}
