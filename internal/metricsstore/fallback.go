package metricsstore

import "github.com/oneaiguru/wfm-optimization-core/internal/model"

// FallbackRules is the built-in minimal rule set ConstraintValidator falls
// back to when MetricsStore is unavailable (spec.md §4.3 Fallback): max 40
// h/week, min 11 h rest, overtime ≤ 4 h/day, part-time ≤ 20 h/week. It is
// intentionally conservative and narrower than the store set (spec.md §9).
func FallbackRules() []model.ConstraintRule {
	return []model.ConstraintRule{
		{
			ID:       "fallback.max_weekly_hours",
			Category: model.CategoryLaborLaw,
			Condition: model.ConstraintPredicate{
				Kind:       model.PredicateWeeklyHoursOver,
				HoursLimit: 40,
			},
			Severity:   model.SeverityCritical,
			CostImpact: 0,
			RemedyHint: "reduce weekly hours to 40 or below",
		},
		{
			ID:       "fallback.min_rest",
			Category: model.CategoryLaborLaw,
			Condition: model.ConstraintPredicate{
				Kind:      model.PredicateMinRestBelow,
				RestHours: 11,
			},
			Severity:   model.SeverityCritical,
			CostImpact: 0,
			RemedyHint: "ensure at least 11 hours rest between shifts",
		},
		{
			ID:       "fallback.max_daily_overtime",
			Category: model.CategoryLaborLaw,
			Condition: model.ConstraintPredicate{
				Kind:       model.PredicateDailyOvertimeOver,
				HoursLimit: 4,
			},
			Severity:   model.SeverityHigh,
			CostImpact: 0,
			RemedyHint: "cap daily overtime at 4 hours",
		},
		{
			ID:       "fallback.part_time_weekly_hours",
			Category: model.CategoryContract,
			Condition: model.ConstraintPredicate{
				Kind:       model.PredicateWeeklyHoursOver,
				HoursLimit: 20,
			},
			Severity:               model.SeverityMedium,
			CostImpact:             0,
			RemedyHint:             "part-time employees should not exceed 20 h/week",
			RequiredEmploymentType: model.PartTime,
		},
	}
}

// MinRest is the invariant floor from spec.md §3: "for any ShiftBlock,
// rest_hours_before ≥ MIN_REST unless the rule evaluator records a
// labor-law violation."
const MinRest = 11.0
