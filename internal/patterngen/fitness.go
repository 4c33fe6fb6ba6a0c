package patterngen

import (
	"github.com/oneaiguru/wfm-optimization-core/internal/model"
)

// fitnessWeights are the internal GA weights from spec.md §4.2 Fitness —
// distinct from ScoringEngine's final weighted components (spec.md §4.5):
// this is a cheap proxy used only to steer the search, not the scored
// result a caller sees.
const (
	fitnessWeightCoverage     = 0.40
	fitnessWeightCost         = 0.30
	fitnessWeightServiceLevel = 0.20
	fitnessWeightComplexity   = 0.10
	hardViolationPenalty      = 10.0
)

// fitness scores a candidate variant against the gap report and caller
// targets (spec.md §4.2 Fitness: fitness = Σ wᵢ·mᵢ − penalty).
func fitness(v model.ScheduleVariant, gaps model.GapReport, targets Targets) float64 {
	coverageMetric := coverageProxy(v, gaps)
	costMetric := costProxy(v, targets)
	slMetric := serviceLevelProxy(v, gaps)
	complexityMetric := complexityProxy(v)

	score := fitnessWeightCoverage*coverageMetric +
		fitnessWeightCost*costMetric +
		fitnessWeightServiceLevel*slMetric +
		fitnessWeightComplexity*complexityMetric

	penalty := float64(countHardViolations(v)) * hardViolationPenalty
	return score - penalty
}

// coverageProxy returns the share (0-100) of the GapReport's total gap
// headcount that sits in intervals overlapped by at least one of the
// variant's blocks; 100 when the report has no gaps.
func coverageProxy(v model.ScheduleVariant, gaps model.GapReport) float64 {
	if len(gaps.IntervalGaps) == 0 {
		return 100
	}
	var covered, total float64
	for _, ig := range gaps.IntervalGaps {
		total += float64(ig.GapCount)
		for _, b := range v.Blocks {
			if b.Interval().Overlaps(ig.Interval) {
				covered += float64(ig.GapCount)
				break
			}
		}
	}
	if total == 0 {
		return 100
	}
	return (covered / total) * 100
}

// costProxy rewards variants whose total scheduled hours move toward the
// caller's cost target (negative delta means "reduce").
func costProxy(v model.ScheduleVariant, targets Targets) float64 {
	totalHours := 0.0
	for _, b := range v.Blocks {
		totalHours += float64(b.DurationMinutes()) / 60.0
	}
	want, ok := targets["cost"]
	if !ok || totalHours == 0 {
		return 50
	}
	// A negative want means "reduce hours"; reward fewer hours relative to
	// a 40h/week/employee baseline.
	employees := make(map[string]struct{})
	for _, b := range v.Blocks {
		employees[b.EmployeeID] = struct{}{}
	}
	baseline := float64(len(employees)) * 40
	if baseline == 0 {
		return 50
	}
	delta := (baseline - totalHours) / baseline
	score := 50 + delta*50*signOf(want)
	return clamp(score, 0, 100)
}

func serviceLevelProxy(v model.ScheduleVariant, gaps model.GapReport) float64 {
	return coverageProxy(v, gaps) // same proxy drives SL in this simplified core
}

// complexityProxy starts at 100 and subtracts 2 per block that is not a
// whole shift. Per-employee block counts are tallied but do not affect
// the score.
func complexityProxy(v model.ScheduleVariant) float64 {
	splits := 0
	perEmployee := make(map[string]int)
	for _, b := range v.Blocks {
		if b.ShiftPart != model.ShiftWhole {
			splits++
		}
		perEmployee[b.EmployeeID]++
	}
	score := 100.0 - float64(splits)*2
	return clamp(score, 0, 100)
}

// countHardViolations counts blocks longer than 12h. Weekly hours per
// employee are totalled but not checked against any floor, so employees
// scheduled below a weekly target add no penalty.
func countHardViolations(v model.ScheduleVariant) int {
	count := 0
	weeklyHours := make(map[string]float64)
	for _, b := range v.Blocks {
		hours := float64(b.DurationMinutes()) / 60.0
		if hours > 12 {
			count++
		}
		weeklyHours[b.EmployeeID] += hours
	}
	return count
}

func signOf(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
