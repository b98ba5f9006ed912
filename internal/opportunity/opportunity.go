package opportunity

import (
	"math"
	"sort"

	"readiness-backend/internal/assessment"
	"readiness-backend/internal/rules"
)

const maxOpportunities = 5

// Opportunity is one ranked initiative in the report. Rank starts at 1 and is
// contiguous across the returned slice.
type Opportunity struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Rank        int      `json:"rank"`
	Timeline    string   `json:"timeline"`
	ROILow      int      `json:"roiLow"`
	ROIHigh     int      `json:"roiHigh"`
	MatchedTags []string `json:"matchedTags,omitempty"`
}

// Generate matches the record's challenge and priority tags against the
// set's template table and returns between two and five ranked opportunities.
// When matching yields fewer than two, the default pair tops the list up so
// every report has something actionable. Ranking is ROI midpoint descending,
// then template weight descending, then ID ascending.
func (s TemplateSet) Generate(rec assessment.Record, roi rules.ROIRules) []Opportunity {
	type candidate struct {
		tpl     Template
		matched []string
		low     int
		high    int
	}

	band := roi.SizeBands[rec.CompanySize]
	candidates := make([]candidate, 0, len(s.Templates))
	for _, tpl := range s.Templates {
		matched := matchedTags(rec, tpl)
		if len(matched) == 0 {
			continue
		}
		low, high := estimate(band, tpl.Multiplier)
		candidates = append(candidates, candidate{tpl: tpl, matched: matched, low: low, high: high})
	}

	if len(candidates) < 2 {
		present := make(map[string]struct{}, len(candidates))
		for _, c := range candidates {
			present[c.tpl.ID] = struct{}{}
		}
		for _, id := range s.DefaultPair {
			if len(candidates) >= 2 {
				break
			}
			if _, ok := present[id]; ok {
				continue
			}
			tpl, ok := s.ByID(id)
			if !ok {
				continue
			}
			low, high := estimate(band, tpl.Multiplier)
			candidates = append(candidates, candidate{tpl: tpl, low: low, high: high})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		mi := candidates[i].low + candidates[i].high
		mj := candidates[j].low + candidates[j].high
		if mi != mj {
			return mi > mj
		}
		if candidates[i].tpl.Weight != candidates[j].tpl.Weight {
			return candidates[i].tpl.Weight > candidates[j].tpl.Weight
		}
		return candidates[i].tpl.ID < candidates[j].tpl.ID
	})

	if len(candidates) > maxOpportunities {
		candidates = candidates[:maxOpportunities]
	}

	out := make([]Opportunity, 0, len(candidates))
	for i, c := range candidates {
		out = append(out, Opportunity{
			ID:          c.tpl.ID,
			Title:       c.tpl.Title,
			Category:    c.tpl.Category,
			Rank:        i + 1,
			Timeline:    c.tpl.Timeline,
			ROILow:      c.low,
			ROIHigh:     c.high,
			MatchedTags: c.matched,
		})
	}
	return out
}

func matchedTags(rec assessment.Record, tpl Template) []string {
	var matched []string
	for _, tag := range tpl.Challenges {
		if contains(rec.Challenges, tag) {
			matched = append(matched, tag)
		}
	}
	for _, tag := range tpl.Priorities {
		if contains(rec.Priorities, tag) && !contains(matched, tag) {
			matched = append(matched, tag)
		}
	}
	sort.Strings(matched)
	return matched
}

// estimate scales the company-size band by the template multiplier, rounded
// to the nearest thousand dollars. An unknown size yields a zero range rather
// than an invented figure.
func estimate(band rules.ROIRange, multiplier float64) (int, int) {
	low := roundThousand(float64(band.Low) * multiplier)
	high := roundThousand(float64(band.High) * multiplier)
	if high < low {
		high = low
	}
	return low, high
}

func roundThousand(v float64) int {
	if v <= 0 {
		return 0
	}
	return int(math.Round(v/1000.0)) * 1000
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
