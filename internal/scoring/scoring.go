// Package scoring implements the ScoringEngine stage (spec.md §4.5): given
// scored variants and the prior stages' reports, it produces a
// RankedSuggestions. Grounded in original_source/scoring_engine.py.
package scoring

import (
	"context"
	"fmt"
	"sort"

	"github.com/oneaiguru/wfm-optimization-core/internal/metricsstore"
	"github.com/oneaiguru/wfm-optimization-core/internal/model"
)

// Inputs bundles one variant's upstream results for scoring.
type Inputs struct {
	Variant    model.ScheduleVariant
	Compliance model.ComplianceMatrix
	Cost       model.FinancialImpact

	// RequiredSkills and AvailableSkills feed the coverage sub-component
	// skill_match (spec.md §4.5). Both are optional; when RequiredSkills is
	// empty, skill_match degrades to a full match (10).
	RequiredSkills  map[model.SkillID]struct{}
	AvailableSkills map[model.SkillID]struct{}
}

// Engine scores variants. It may optionally consult MetricsStore to
// replace sub-component inputs with real historical values (spec.md §4.5,
// SPEC_FULL.md §C.1 "real data integration") but must never block past its
// budget — callers pass a context with the stage deadline already applied.
type Engine struct {
	store metricsstore.Store
}

func New(store metricsstore.Store) *Engine {
	return &Engine{store: store}
}

// Score implements spec.md §4.5 score(variants, gapReport, cost,
// compliance, targets). baseline is the current (pre-optimization)
// schedule's FinancialImpact, computed once by the caller; cost_reduction
// scores each variant's achieved delta against it (spec.md §4.5).
func (e *Engine) Score(ctx context.Context, inputs []Inputs, gapReport model.GapReport, targets map[string]float64, baseline model.FinancialImpact) model.RankedSuggestions {
	currentGaps := gapReport.TotalGaps

	scores := make([]model.OptimizationScore, 0, len(inputs))
	for _, in := range inputs {
		breakdown := e.scoreBreakdown(ctx, in, currentGaps, gapReport, targets, baseline)
		total := breakdown.Total()

		risk := riskFor(breakdown)
		window := implementationWindow(breakdown, risk)
		level := recommendationLevel(total, risk)

		// Open-question resolution (spec.md §9): infeasible LP variants are
		// retained, never dropped, and forced to plan_accordingly/high risk.
		if in.Cost.Quality == model.QualityInfeasible {
			level = model.RecommendPlanAccordingly
			risk = model.RiskHigh
		}

		scores = append(scores, model.OptimizationScore{
			VariantID:            in.Variant.VariantID,
			OverallScore:         total,
			Breakdown:            breakdown,
			RecommendationLevel:  level,
			Risk:                 risk,
			ImplementationWindow: window,
			ExpectedOutcomes:     expectedOutcomes(breakdown),
		})
	}

	sort.Slice(scores, func(i, j int) bool {
		a, b := scores[i], scores[j]
		if a.OverallScore != b.OverallScore {
			return a.OverallScore > b.OverallScore
		}
		if a.Breakdown.Compliance != b.Breakdown.Compliance {
			return a.Breakdown.Compliance > b.Breakdown.Compliance
		}
		if a.Breakdown.Simplicity != b.Breakdown.Simplicity {
			return a.Breakdown.Simplicity > b.Breakdown.Simplicity
		}
		return a.Breakdown.OvertimeReduction > b.Breakdown.OvertimeReduction
	})
	for i := range scores {
		scores[i].Rank = i + 1
	}

	comparison := buildComparisonMatrix(scores)

	return model.RankedSuggestions{
		Suggestions:      scores,
		ComparisonMatrix: comparison,
		Methodology:      "weighted multi-criteria: coverage 40%, cost 30%, compliance 20%, simplicity 10%",
		Summary:          summaryFor(scores),
	}
}

func summaryFor(scores []model.OptimizationScore) string {
	if len(scores) == 0 {
		return "no variants scored"
	}
	top := scores[0]
	return fmt.Sprintf("top variant %s scores %.1f, recommendation %s", top.VariantID, top.OverallScore, top.RecommendationLevel)
}

func riskFor(b model.ScoreBreakdown) model.Risk {
	if b.Compliance < 15 {
		return model.RiskHigh
	}
	if b.Total() >= 90 {
		return model.RiskLow
	}
	return model.RiskMedium
}

func implementationWindow(b model.ScoreBreakdown, risk model.Risk) string {
	if b.Compliance < 15 {
		return "4-6 weeks"
	}
	switch {
	case b.Simplicity >= 8:
		return "1-2 weeks"
	case b.Simplicity >= 6:
		return "2-3 weeks"
	default:
		return "3-4 weeks"
	}
}

func recommendationLevel(total float64, risk model.Risk) model.RecommendationLevel {
	switch {
	case total >= 90 && risk == model.RiskLow:
		return model.RecommendImplement
	case total >= 75:
		return model.RecommendMonitor
	default:
		return model.RecommendPlanAccordingly
	}
}

func expectedOutcomes(b model.ScoreBreakdown) []string {
	var out []string
	if b.GapReduction > 0 {
		out = append(out, "reduced coverage gaps")
	}
	if b.CostReduction > 0 {
		out = append(out, "lower total labor cost")
	}
	if b.LaborCompliance >= 8 {
		out = append(out, "strong labor-law compliance")
	}
	return out
}

func buildComparisonMatrix(scores []model.OptimizationScore) []model.ComparisonRow {
	n := 3
	if len(scores) < n {
		n = len(scores)
	}
	rows := make([]model.ComparisonRow, 0, n)
	for i := 0; i < n; i++ {
		s := scores[i]
		rows = append(rows, model.ComparisonRow{
			VariantID:           s.VariantID,
			Coverage:            s.Breakdown.Coverage,
			Cost:                s.Breakdown.Cost,
			Compliance:          s.Breakdown.Compliance,
			Simplicity:          s.Breakdown.Simplicity,
			Risk:                s.Risk,
			ImplementationWeeks: parseWeeks(s.ImplementationWindow),
		})
	}
	return rows
}

func parseWeeks(window string) int {
	switch window {
	case "1-2 weeks":
		return 2
	case "2-3 weeks":
		return 3
	case "3-4 weeks":
		return 4
	case "4-6 weeks":
		return 6
	default:
		return 4
	}
}
