package gapanalyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneaiguru/wfm-optimization-core/internal/model"
)

// S1 — trivial coverage: forecast fully met, no gaps.
func TestAnalyze_S1_TrivialCoverage(t *testing.T) {
	forecast := map[model.Interval]uint{
		model.NewInterval(9*60, 9*60+15):  2,
		model.NewInterval(10*60, 10*60+15): 2,
	}
	schedule := map[model.Interval]uint{
		model.NewInterval(9*60, 9*60+15):  2,
		model.NewInterval(10*60, 10*60+15): 2,
	}

	report := Analyze(forecast, schedule, DefaultRates())

	require.Equal(t, uint(0), report.TotalGaps)
	assert.Equal(t, 100.0, report.CoverageScore)
}

// S2 — peak gap: 7 intervals each 2 agents short (3 of 5), expect high
// total gap count, at least one high/critical interval, and a recommendation
// mentioning peak coverage or urgency.
func TestAnalyze_S2_PeakGap(t *testing.T) {
	forecast := make(map[model.Interval]uint)
	schedule := make(map[model.Interval]uint)
	for h := 10; h < 16; h++ {
		iv := model.NewInterval(h*60, h*60+60)
		forecast[iv] = 5
		schedule[iv] = 3
	}
	forecast[model.NewInterval(16*60, 17*60)] = 5
	schedule[model.NewInterval(16*60, 17*60)] = 3

	report := Analyze(forecast, schedule, DefaultRates())

	assert.Equal(t, uint(14), report.TotalGaps)

	var sawSevere bool
	for _, g := range report.IntervalGaps {
		if g.Severity == model.SeverityHigh || g.Severity == model.SeverityCritical {
			sawSevere = true
		}
	}
	assert.True(t, sawSevere, "expected at least one high or critical interval")

	require.NotEmpty(t, report.Recommendations)
	first := report.Recommendations[0]
	assert.True(t,
		strings.Contains(first, "URGENT") || strings.Contains(first, "peak"),
		"expected first recommendation to mention urgency or peak coverage, got %q", first)
}

func TestAnalyze_EmptyInputs(t *testing.T) {
	report := Analyze(nil, nil, DefaultRates())
	assert.Equal(t, 100.0, report.CoverageScore)
	assert.Equal(t, uint(0), report.TotalGaps)
}

func TestAnalyze_Deterministic(t *testing.T) {
	forecast := map[model.Interval]uint{model.NewInterval(0, 15): 10}
	schedule := map[model.Interval]uint{model.NewInterval(0, 15): 4}

	r1 := Analyze(forecast, schedule, DefaultRates())
	r2 := Analyze(forecast, schedule, DefaultRates())
	assert.Equal(t, r1, r2)
}

func TestResolveSkillID_ExactMatchWins(t *testing.T) {
	canonical := []model.SkillID{"customer_service", "forklift"}
	got, ok := ResolveSkillID("forklift", canonical)
	require.True(t, ok)
	assert.Equal(t, model.SkillID("forklift"), got)
}

func TestResolveSkillID_TypoFuzzyMatches(t *testing.T) {
	canonical := []model.SkillID{"customer_service", "forklift", "first_aid"}
	got, ok := ResolveSkillID("customer_servic", canonical)
	require.True(t, ok)
	assert.Equal(t, model.SkillID("customer_service"), got)
}

func TestResolveSkillID_NoMatch(t *testing.T) {
	_, ok := ResolveSkillID("", []model.SkillID{"forklift"})
	assert.False(t, ok)
}

func TestSkillMatchScore_FullAndPartial(t *testing.T) {
	required := map[model.SkillID]struct{}{"forklift": {}, "first_aid": {}}
	available := map[model.SkillID]struct{}{"forklift": {}}

	assert.Equal(t, 10.0, SkillMatchScore(nil, nil))
	assert.Equal(t, 5.0, SkillMatchScore(required, available))
	assert.Equal(t, 10.0, SkillMatchScore(required, map[model.SkillID]struct{}{"forklift": {}, "first_aid": {}}))
}
