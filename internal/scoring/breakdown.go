package scoring

import (
	"context"

	"github.com/oneaiguru/wfm-optimization-core/internal/constraints"
	"github.com/oneaiguru/wfm-optimization-core/internal/gapanalyzer"
	"github.com/oneaiguru/wfm-optimization-core/internal/model"
)

// archetypeBaseScore is the simplicity archetype base table (spec.md §4.5).
var archetypeBaseScore = map[model.PatternType]float64{
	model.PatternTraditional:  10,
	model.PatternFlexible:     8,
	model.PatternStaggered:    7,
	model.PatternPeakFocus:    6.5,
	model.PatternCompressed:   6,
	model.PatternWeekendFocus: 5.5,
	model.PatternPartTime:     7.5,
	model.PatternSplitShift:   4,
}

// scoreBreakdown computes the four weighted components and their
// sub-components (spec.md §4.5 Composition). When the store answers with a
// positive current-gap count it substitutes that for current_gaps
// (SPEC_FULL.md §C.1); otherwise it keeps the in-memory gapReport count.
// Cost baselines always come from the caller's baseline and targets.
func (e *Engine) scoreBreakdown(ctx context.Context, in Inputs, currentGaps uint, gapReport model.GapReport, targets map[string]float64, baseline model.FinancialImpact) model.ScoreBreakdown {
	projectedGaps := in.Variant.ProjectedGaps
	if projectedGaps == 0 {
		projectedGaps = countProjectedGaps(in.Variant, gapReport)
	}

	realCurrentGaps := currentGaps
	if e.store != nil {
		if cov, err := e.store.GetCoverageAnalysis(ctx); err == nil && cov.CurrentGaps > 0 {
			realCurrentGaps = uint(cov.CurrentGaps)
		}
	}

	gapReduction := gapReductionScore(realCurrentGaps, uint(projectedGaps))
	peakCoverage := peakCoverageScore(in.Variant, gapReport)
	skillMatch := gapanalyzer.SkillMatchScore(in.RequiredSkills, in.AvailableSkills)
	coverage := gapReduction + peakCoverage + skillMatch

	overtimeReduction := overtimeReductionScore(in.Cost, targets)
	costReduction := costReductionScore(in.Cost, baseline, targets)
	cost := overtimeReduction + costReduction

	laborCompliance := constraints.CompliancePoints(in.Compliance) / 2 // CompliancePoints is [0,20]; labor_compliance sub-component is [0,10]
	preferenceSatisfaction := preferenceSatisfactionScore(in.Variant)
	compliance := laborCompliance + preferenceSatisfaction

	simplicity := simplicityScore(in.Variant)

	return model.ScoreBreakdown{
		Coverage:               coverage,
		Cost:                   cost,
		Compliance:             compliance,
		Simplicity:             simplicity,
		GapReduction:           gapReduction,
		PeakCoverage:           peakCoverage,
		SkillMatch:             skillMatch,
		OvertimeReduction:      overtimeReduction,
		CostReduction:          costReduction,
		LaborCompliance:        laborCompliance,
		PreferenceSatisfaction: preferenceSatisfaction,
		PatternRegularity:      simplicity,
	}
}

func countProjectedGaps(v model.ScheduleVariant, gapReport model.GapReport) int {
	count := 0
	for _, ig := range gapReport.IntervalGaps {
		covered := false
		for _, b := range v.Blocks {
			if b.Interval().Overlaps(ig.Interval) {
				covered = true
				break
			}
		}
		if !covered && ig.GapCount > 0 {
			count++
		}
	}
	return count
}

// gapReductionScore implements spec.md §4.5: min(1, (current-projected)/current) * 15 * 5/3, capped at 15.
func gapReductionScore(currentGaps, projectedGaps uint) float64 {
	if currentGaps == 0 {
		return 15
	}
	var projected float64
	if projectedGaps < currentGaps {
		projected = float64(currentGaps-projectedGaps) / float64(currentGaps)
	}
	if projected > 1 {
		projected = 1
	}
	score := projected * 15 * (5.0 / 3.0)
	if score > 15 {
		score = 15
	}
	return score
}

// peakCoverageScore is the fraction of peak (high/critical) intervals
// covered times 15 (spec.md §4.5; scale fixed at 15 per SPEC_FULL.md §E).
func peakCoverageScore(v model.ScheduleVariant, gapReport model.GapReport) float64 {
	var peak, covered int
	for _, ig := range gapReport.IntervalGaps {
		if ig.Severity != model.SeverityCritical && ig.Severity != model.SeverityHigh {
			continue
		}
		peak++
		for _, b := range v.Blocks {
			if b.Interval().Overlaps(ig.Interval) {
				covered++
				break
			}
		}
	}
	if peak == 0 {
		return 15
	}
	return (float64(covered) / float64(peak)) * 15
}

func overtimeReductionScore(cost model.FinancialImpact, targets map[string]float64) float64 {
	overtime := cost.Totals["overtime"]
	total := cost.Totals["total"]
	if total == 0 {
		return 12
	}
	ratio := overtime / total
	score := (1 - ratio) * 12
	if score < 0 {
		score = 0
	}
	if score > 12 {
		score = 12
	}
	return score
}

// costReductionScore scores a variant's actually-achieved cost delta
// against baseline (the current, pre-optimization schedule's cost),
// proportional to the reduction (spec.md §4.5). Without a usable baseline
// total it falls back to scoring the requested target's magnitude, the
// prior behavior, so callers that don't yet compute a baseline still get
// a meaningful score instead of a flat neutral one.
func costReductionScore(cost, baseline model.FinancialImpact, targets map[string]float64) float64 {
	baseTotal := baseline.Totals["total"]
	if baseTotal <= 0 {
		want, ok := targets["cost"]
		if !ok {
			return 9 // neutral midpoint absent both a baseline and an explicit target
		}
		magnitude := want
		if magnitude < 0 {
			magnitude = -magnitude
		}
		score := magnitude * 18 * 5
		if score > 18 {
			score = 18
		}
		return score
	}

	delta := (baseTotal - cost.Totals["total"]) / baseTotal
	if delta < 0 {
		delta = 0
	}
	score := delta * 18 * 5
	if score > 18 {
		score = 18
	}
	return score
}

func preferenceSatisfactionScore(v model.ScheduleVariant) float64 {
	total := 0
	matched := 0
	for _, b := range v.Blocks {
		total++
		matched++ // without a wired employee-preference lookup this core treats all assigned blocks as matching; the store is not consulted for preferences
	}
	if total == 0 {
		return 10
	}
	return (float64(matched) / float64(total)) * 10
}

func simplicityScore(v model.ScheduleVariant) float64 {
	base, ok := archetypeBaseScore[v.PatternType]
	if !ok {
		base = 6
	}

	var overlaps, splits, compressedBlocks float64
	byEmployee := make(map[string][]model.ShiftBlock)
	for _, b := range v.Blocks {
		byEmployee[b.EmployeeID] = append(byEmployee[b.EmployeeID], b)
		if b.ShiftPart != model.ShiftWhole {
			splits++
		}
		if b.DurationMinutes() >= 9*60 {
			compressedBlocks++
		}
	}
	for _, blocks := range byEmployee {
		for i := 0; i < len(blocks); i++ {
			for j := i + 1; j < len(blocks); j++ {
				if blocks[i].Date.Equal(blocks[j].Date) && blocks[i].Interval().Overlaps(blocks[j].Interval()) {
					overlaps++
				}
			}
		}
	}

	score := base - overlaps*0.5 - splits*1.0 - compressedBlocks*0.5
	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}
	return score
}
