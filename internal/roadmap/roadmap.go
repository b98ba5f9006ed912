package roadmap

import (
	"fmt"

	"readiness-backend/internal/assessment"
	"readiness-backend/internal/opportunity"
)

// Phase is one stage of the implementation roadmap. OpportunityIDs reference
// opportunities from the same report; the foundation phase references none.
type Phase struct {
	Name           string   `json:"name"`
	Duration       string   `json:"duration"`
	Activities     []string `json:"activities"`
	OpportunityIDs []string `json:"opportunityIds,omitempty"`
}

// Build lays out three phases: foundation work, a pilot around the top-ranked
// opportunity, and a scale-out phase carrying the rest in rank order. Phase
// durations stretch when the team has little time to give.
func Build(rec assessment.Record, opps []opportunity.Opportunity) []Phase {
	constrained := rec.TeamAvailability == "none" || rec.TeamAvailability == "limited"

	phases := make([]Phase, 0, 3)
	phases = append(phases, Phase{
		Name:     "Assessment & Planning",
		Duration: duration(8, constrained),
		Activities: []string{
			"Inventory current systems and data sources",
			"Confirm budget owner and success metrics",
			"Select pilot team and schedule kickoff",
		},
	})

	pilot := Phase{
		Name:     "Pilot Implementation",
		Duration: duration(8, constrained),
	}
	if len(opps) > 0 {
		top := opps[0]
		pilot.OpportunityIDs = []string{top.ID}
		pilot.Activities = append(pilotActivities(rec.PilotPreference, top),
			"Track pilot metrics weekly against the success criteria",
			"Decide go/no-go for wider rollout",
		)
	} else {
		pilot.Activities = []string{
			"Choose a pilot process with measurable baseline costs",
			"Stand up the selected tool with a small user group",
			"Decide go/no-go for wider rollout",
		}
	}
	phases = append(phases, pilot)

	scale := Phase{
		Name:     "Scale & Optimize",
		Duration: duration(8, constrained),
		Activities: []string{
			"Roll the pilot out to remaining teams",
			"Automate reporting on realized savings",
			"Review vendor contracts and consolidate overlap",
		},
	}
	for _, opp := range opps[min(1, len(opps)):] {
		scale.OpportunityIDs = append(scale.OpportunityIDs, opp.ID)
	}
	phases = append(phases, scale)
	return phases
}

// pilotActivities leads the pilot phase with steps specific to the stated
// pilot preference, falling back to the top opportunity's category.
func pilotActivities(preference string, top opportunity.Opportunity) []string {
	focus := preference
	if focus == assessment.Unspecified {
		focus = top.Category
	}
	switch focus {
	case "customer-service", "customer-service-automation":
		return []string{
			"Deploy an assistant on the highest-volume support channel",
			"Build the knowledge base from the top 50 resolved tickets",
		}
	case "process-automation", "workflow-automation":
		return []string{
			"Map the most manual workflow end to end",
			"Automate its top three handoffs with the selected tool",
		}
	case "data-analytics", "business-intelligence":
		return []string{
			"Connect the primary data sources to the analytics tool",
			"Ship one executive dashboard replacing a manual report",
		}
	default:
		return []string{
			fmt.Sprintf("Stand up %q with a small user group", top.Title),
			"Establish baseline metrics before switching over",
		}
	}
}

func duration(weeks int, constrained bool) string {
	if constrained {
		weeks += 4
	}
	return fmt.Sprintf("%d weeks", weeks)
}
