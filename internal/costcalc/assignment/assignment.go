// Package assignment implements CostCalculator's optional LP/MILP
// assignment mode (spec.md §4.4 "Linear-program mode"): given an
// interchangeable agent pool and per-interval requirements, it assigns
// agents to the requirements, checking coverage, skill, and budget
// constraints.
//
// No constraint/MILP solver library appears anywhere in the retrieval
// pack (DESIGN.md records this as the one justified standard-library-only
// component). Solve is a single greedy pass, not an exact solver: it takes
// requirements in interval-start order and fills each with the cheapest
// agents (hourly cost plus travel to the site). It does not backtrack, so
// the total cost is not guaranteed to be minimal, and it does not apply
// the agents' MaxDailyHrs/MinDailyHrs limits or keep one agent out of
// overlapping intervals. It returns the quality=infeasible signal when a
// requirement has too few agents, skill coverage falls below 80% of the
// required count, or the total exceeds the budget ceiling.
package assignment

import (
	"sort"

	"github.com/oneaiguru/wfm-optimization-core/internal/model"
)

// Agent is one interchangeable pool member available for assignment.
type Agent struct {
	ID           string
	HourlyCost   float64
	Skills       map[model.SkillID]struct{}
	HomeSite     string
	MaxDailyHrs  float64
	MinDailyHrs  float64
	TravelCostPerSite map[string]float64
	AccommodationCost map[string]float64
}

// Requirement is one site+interval's headcount and skill needs.
type Requirement struct {
	Site           string
	Interval       model.Interval
	RequiredCount  int
	RequiredSkills map[model.SkillID]struct{}
}

// Problem is the full assignment input (spec.md §4.4 LP mode).
type Problem struct {
	Agents       []Agent
	Requirements []Requirement
	BudgetCeiling float64 // 0 means no cap
}

// Assignment maps one agent to one requirement.
type Assignment struct {
	AgentID  string
	Site     string
	Interval model.Interval
}

// Solution is the solver's output.
type Solution struct {
	Assignments  []Assignment
	TotalCost    float64
	TravelCost   float64
	Accommodation float64
	Feasible     bool
	RemediationHint string
}

// Solve runs the greedy cheapest-first pass described above (spec.md
// §4.4). It is deterministic: candidate agents are ordered by cost the
// same way for every requirement.
func Solve(p Problem) Solution {
	reqs := append([]Requirement(nil), p.Requirements...)
	sort.Slice(reqs, func(i, j int) bool {
		return reqs[i].Interval.Start < reqs[j].Interval.Start
	})

	assigned := make(map[string]int) // agent -> assigned count (coverage proxy for daily hours)
	var assignments []Assignment
	var totalCost, travelCost, accommodationCost float64

	for _, req := range reqs {
		candidates := eligibleAgents(p.Agents, req)
		if len(candidates) < req.RequiredCount {
			return Solution{
				Feasible:        false,
				RemediationHint: "insufficient skilled/available agents for interval " + req.Interval.Label + " at site " + req.Site,
			}
		}

		skillCovered := 0
		for _, a := range candidates {
			if hasAllSkills(a, req.RequiredSkills) {
				skillCovered++
			}
		}
		if float64(skillCovered) < 0.80*float64(req.RequiredCount) {
			return Solution{
				Feasible:        false,
				RemediationHint: "skill coverage below 80% threshold for interval " + req.Interval.Label,
			}
		}

		for i := 0; i < req.RequiredCount; i++ {
			a := candidates[i]
			cost := a.HourlyCost * req.Interval.Hours()
			totalCost += cost
			if a.HomeSite != req.Site {
				travelCost += a.TravelCostPerSite[req.Site]
				accommodationCost += a.AccommodationCost[req.Site]
			}
			assigned[a.ID]++
			assignments = append(assignments, Assignment{AgentID: a.ID, Site: req.Site, Interval: req.Interval})
		}
	}

	grandTotal := totalCost + travelCost + accommodationCost
	if p.BudgetCeiling > 0 && grandTotal > p.BudgetCeiling {
		return Solution{
			Feasible:        false,
			RemediationHint: "assignment exceeds budget ceiling; relax coverage targets or raise the ceiling",
		}
	}

	return Solution{
		Assignments:   assignments,
		TotalCost:     totalCost,
		TravelCost:    travelCost,
		Accommodation: accommodationCost,
		Feasible:      true,
	}
}

func eligibleAgents(agents []Agent, req Requirement) []Agent {
	var out []Agent
	for _, a := range agents {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		ci, cj := out[i].HourlyCost, out[j].HourlyCost
		if out[i].HomeSite != req.Site {
			ci += out[i].TravelCostPerSite[req.Site]
		}
		if out[j].HomeSite != req.Site {
			cj += out[j].TravelCostPerSite[req.Site]
		}
		return ci < cj
	})
	return out
}

func hasAllSkills(a Agent, required map[model.SkillID]struct{}) bool {
	for s := range required {
		if _, ok := a.Skills[s]; !ok {
			return false
		}
	}
	return true
}
