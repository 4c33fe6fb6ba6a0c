// Package gapanalyzer implements the GapAnalyzer stage (spec.md §4.1):
// given a forecast and a schedule, it produces a GapReport. Analyze is a
// pure function with no I/O — it degrades to an empty report when both
// inputs are empty but never fails.
package gapanalyzer

import (
	"sort"
	"strconv"

	"github.com/oneaiguru/wfm-optimization-core/internal/model"
)

// Rates holds the cost rate GapAnalyzer needs (spec.md §4.1 step 3).
type Rates struct {
	HourlyCostPerUncoveredAgent float64 // default 35
}

// DefaultRates matches spec.md's stated default.
func DefaultRates() Rates {
	return Rates{HourlyCostPerUncoveredAgent: 35}
}

// Analyze computes the coverage gap between forecast and schedule headcount
// maps (spec.md §4.1). Both maps may be sparse; an interval absent from
// schedule is treated as 0 scheduled.
func Analyze(forecast, schedule map[model.Interval]uint, rates Rates) model.GapReport {
	if len(forecast) == 0 {
		return model.GapReport{CoverageScore: 100}
	}

	gaps := make([]model.IntervalGap, 0, len(forecast))
	var weightedCoverageSum, weightSum float64
	var totalGaps uint
	var criticalCount int

	for interval, required := range forecast {
		scheduled := schedule[interval]
		gap := uint(0)
		if required > scheduled {
			gap = required - scheduled
		}
		var gapPct float64
		if required > 0 {
			gapPct = float64(gap) / float64(required)
		}

		severity := severityFor(gapPct)
		hours := interval.Hours()
		costImpact := float64(gap) * rates.HourlyCostPerUncoveredAgent * hours
		slImpact := gapPct * 2
		if slImpact > 1 {
			slImpact = 1
		}

		ig := model.IntervalGap{
			Interval:   interval,
			Required:   required,
			Scheduled:  scheduled,
			GapCount:   gap,
			GapPct:     gapPct,
			Severity:   severity,
			CostImpact: costImpact,
			SLImpact:   slImpact,
		}
		gaps = append(gaps, ig)

		totalGaps += gap
		if severity == model.SeverityCritical {
			criticalCount++
		}

		w := model.CoverageWeight[severity]
		if w > 0 {
			weightedCoverageSum += w * (1 - gapPct)
			weightSum += w
		}
	}

	coverageScore := 100.0
	if weightSum > 0 {
		coverageScore = (weightedCoverageSum / weightSum) * 100
	}

	sort.Slice(gaps, func(i, j int) bool {
		return gaps[i].Interval.Start < gaps[j].Interval.Start
	})

	var avgGapPct float64
	if len(gaps) > 0 {
		var sum float64
		for _, g := range gaps {
			sum += g.GapPct
		}
		avgGapPct = sum / float64(len(gaps))
	}

	return model.GapReport{
		IntervalGaps:      gaps,
		TotalGaps:         totalGaps,
		AverageGapPct:     avgGapPct,
		CriticalIntervals: criticalCount,
		CoverageScore:     coverageScore,
		Recommendations:   buildRecommendations(gaps, totalGaps),
	}
}

func severityFor(gapPct float64) model.Severity {
	switch {
	case gapPct >= 0.20:
		return model.SeverityCritical
	case gapPct >= 0.10:
		return model.SeverityHigh
	case gapPct >= 0.05:
		return model.SeverityMedium
	case gapPct > 0:
		return model.SeverityLow
	default:
		return model.SeverityCovered
	}
}

// buildRecommendations orders: urgent notices for critical intervals, then
// top-cost intervals, then a peak-hour cluster hint, then a headline
// (spec.md §4.1 step 6). Limited to 5.
func buildRecommendations(gaps []model.IntervalGap, totalGaps uint) []string {
	var recs []string

	var criticals []model.IntervalGap
	for _, g := range gaps {
		if g.Severity == model.SeverityCritical {
			criticals = append(criticals, g)
		}
	}
	sort.Slice(criticals, func(i, j int) bool { return criticals[i].CostImpact > criticals[j].CostImpact })
	for _, g := range criticals {
		if len(recs) >= 5 {
			return recs
		}
		recs = append(recs, "URGENT: critical coverage gap at "+g.Interval.Label)
	}

	byCost := append([]model.IntervalGap(nil), gaps...)
	sort.Slice(byCost, func(i, j int) bool { return byCost[i].CostImpact > byCost[j].CostImpact })
	for _, g := range byCost {
		if g.GapCount == 0 {
			continue
		}
		if len(recs) >= 5 {
			return recs
		}
		recs = append(recs, "focus staffing on high-cost interval "+g.Interval.Label)
	}

	midDayGaps := 0
	for _, g := range gaps {
		if g.GapCount > 0 && g.Interval.Start >= 10*60 && g.Interval.Start < 16*60 {
			midDayGaps++
		}
	}
	if midDayGaps >= 4 && len(recs) < 5 {
		recs = append(recs, "peak-hour cluster detected mid-day; consider peak-focus patterns")
	}

	if totalGaps > 0 && len(recs) < 5 {
		recs = append(recs, "total reducible agents across all gaps: "+strconv.Itoa(int(totalGaps)))
	}

	return recs
}
