package gapanalyzer

import (
	"sort"

	"github.com/oneaiguru/wfm-optimization-core/internal/model"
)

// IdentifyPatterns summarizes a GapReport's peak periods, severity spread,
// and top cost hotspots (SPEC_FULL.md §C.2), grounded in
// original_source/gap_analyzer.py's identify_patterns supplemental method.
func IdentifyPatterns(report model.GapReport) model.GapPatternSummary {
	dist := make(map[model.Severity]int)
	var peaks []model.Interval
	for _, g := range report.IntervalGaps {
		dist[g.Severity]++
		if g.Severity == model.SeverityCritical || g.Severity == model.SeverityHigh {
			peaks = append(peaks, g.Interval)
		}
	}

	hotspots := append([]model.IntervalGap(nil), report.IntervalGaps...)
	sort.Slice(hotspots, func(i, j int) bool { return hotspots[i].CostImpact > hotspots[j].CostImpact })
	if len(hotspots) > 5 {
		hotspots = hotspots[:5]
	}

	return model.GapPatternSummary{
		PeakPeriods:          peaks,
		SeverityDistribution: dist,
		CostHotspots:         hotspots,
	}
}
