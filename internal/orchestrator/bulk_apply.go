package orchestrator

import (
	"time"

	"github.com/oneaiguru/wfm-optimization-core/internal/gapanalyzer"
	"github.com/oneaiguru/wfm-optimization-core/internal/model"
)

// BulkApplyInput bundles bulk_apply's inputs (spec.md §4.6).
type BulkApplyInput struct {
	Variants        []model.ScheduleVariant
	AvailableSkills map[model.SkillID]struct{}
	RequiredSkills  map[model.SkillID]struct{}
	BudgetCeiling   float64 // 0 defaults to 1000
	Mode            model.OptimizationMode
}

// BulkApply implements spec.md §4.6 bulk_apply(variants, constraints, mode):
// conflict detection, resource availability, budget impact, timeline
// feasibility, combined impact, risk, and a rollback plan.
func (o *Orchestrator) BulkApply(in BulkApplyInput) model.BulkOperationResult {
	ceiling := in.BudgetCeiling
	if ceiling == 0 {
		ceiling = 1000
	}

	conflicts := detectConflicts(in.Variants)

	missingTraining := missingSkills(in.RequiredSkills, in.AvailableSkills)
	resourcesUnavailable := len(missingTraining) > 0

	budgetImpact := 0.0
	var totalCoverageDelta, totalCostSavings, totalComplexity float64
	employees := make(map[string]struct{})
	for _, v := range in.Variants {
		budgetImpact += v.ProjectedWeeklyCost
		totalCoverageDelta += float64(v.ProjectedGaps)
		totalCostSavings += v.ProjectedWeeklyCost
		totalComplexity += v.ComplexityScore
		for _, b := range v.Blocks {
			employees[b.EmployeeID] = struct{}{}
		}
	}
	overBudget := budgetImpact > ceiling

	avgComplexity := 0.0
	if len(in.Variants) > 0 {
		avgComplexity = totalComplexity / float64(len(in.Variants))
	}

	weeks, feasible := timelineFor(in.Mode, avgComplexity)

	riskScore := 0
	if len(conflicts) > 0 {
		riskScore += 2
	}
	if resourcesUnavailable {
		riskScore += 2
	}
	if avgComplexity < 30 {
		riskScore += 1
	}
	if len(employees) > 30 {
		riskScore += 1
	}
	risk := model.RiskLow
	switch {
	case riskScore >= 3:
		risk = model.RiskHigh
	case riskScore >= 1:
		risk = model.RiskMedium
	}

	return model.BulkOperationResult{
		CombinedCoverageDelta: totalCoverageDelta,
		CombinedCostSavings:   totalCostSavings,
		UniqueEmployeeCount:   len(employees),
		AverageComplexity:     avgComplexity,
		Risk:                  risk,
		TimelineWeeks:         weeks,
		TimelineFeasible:      feasible,
		ConflictReport:        model.ConflictReport{EmployeeConflicts: conflicts},
		RollbackPlan:          standardRollbackPlan(),
		MissingTrainingNeeds:  missingTraining,
		BudgetImpact:          budgetImpact,
		BudgetCeiling:         ceiling,
		OverBudget:            overBudget,
	}
}

// detectConflicts finds blocks sharing an employee and overlapping in time
// across different variants (spec.md §4.6 Conflict detection — true
// interval overlap, SPEC_FULL.md §E).
func detectConflicts(variants []model.ScheduleVariant) []model.EmployeeConflict {
	type placement struct {
		variantID string
		interval  model.Interval
	}
	byEmployee := make(map[string][]placement)
	for _, v := range variants {
		for _, b := range v.Blocks {
			byEmployee[b.EmployeeID] = append(byEmployee[b.EmployeeID], placement{v.VariantID, b.Interval()})
		}
	}

	var conflicts []model.EmployeeConflict
	for empID, placements := range byEmployee {
		for i := 0; i < len(placements); i++ {
			for j := i + 1; j < len(placements); j++ {
				if placements[i].variantID == placements[j].variantID {
					continue
				}
				if placements[i].interval.Overlaps(placements[j].interval) {
					conflicts = append(conflicts, model.EmployeeConflict{
						EmployeeID: empID,
						Interval:   placements[i].interval,
						VariantIDs: []string{placements[i].variantID, placements[j].variantID},
					})
				}
			}
		}
	}
	return conflicts
}

// missingSkills reports required skills absent from the available pool.
// Training/roster data entered by separate upstream systems can drift in
// naming (e.g. "cust_service" vs "customer_service"); a required skill
// only counts as missing once a fuzzy match against the available set,
// in either direction, also fails to resolve it (spec.md §4.6 Resource
// availability).
func missingSkills(required, available map[model.SkillID]struct{}) []string {
	availableIDs := make([]model.SkillID, 0, len(available))
	for s := range available {
		availableIDs = append(availableIDs, s)
	}

	var missing []string
	for s := range required {
		if _, ok := available[s]; ok {
			continue
		}
		if _, ok := gapanalyzer.ResolveSkillID(string(s), availableIDs); ok {
			continue
		}
		resolved := false
		for _, a := range availableIDs {
			if _, ok := gapanalyzer.ResolveSkillID(string(a), []model.SkillID{s}); ok {
				resolved = true
				break
			}
		}
		if resolved {
			continue
		}
		missing = append(missing, string(s))
	}
	return missing
}

// timelineFor maps mode to weeks (spec.md §4.6 Timeline feasibility):
// immediate_full -> 1 week, phased -> 3 weeks, pilot -> 4 weeks.
// Feasibility requires complexity > 70 for immediate_full.
func timelineFor(mode model.OptimizationMode, avgComplexity float64) (int, bool) {
	switch mode {
	case model.ModeImmediateFull:
		return 1, avgComplexity > 70
	case model.ModePhased:
		return 3, true
	case model.ModePilot:
		return 4, true
	default:
		return 4, true
	}
}

// standardRollbackPlan is the three standard triggers spec.md §4.6 names.
func standardRollbackPlan() model.RollbackPlan {
	return model.RollbackPlan{
		Triggers: []model.RollbackTrigger{
			{
				Name:            "service_level_degradation",
				DetectionWindow: time.Hour,
				DetectionMethod: "real-time service-level monitoring drops below baseline for the detection window",
				RecoverySteps:   []string{"revert to prior published schedule", "notify affected employees", "re-run orchestrator with adjusted goals"},
			},
			{
				Name:            "satisfaction_drop",
				DetectionWindow: 24 * time.Hour,
				DetectionMethod: "daily employee satisfaction survey average falls below threshold",
				RecoverySteps:   []string{"escalate to workforce management", "review preference data", "consider phased rollback"},
			},
			{
				Name:            "cost_overrun",
				DetectionWindow: 7 * 24 * time.Hour,
				DetectionMethod: "weekly cost actuals exceed projected budget ceiling",
				RecoverySteps:   []string{"freeze further rollout", "audit overtime and premium drivers", "re-optimize with tighter cost targets"},
			},
		},
	}
}
